package share

import (
	"errors"
	"fmt"

	"xray2link/internal/xray"
)

// ErrUnsupportedProtocol is returned for inbound protocols this tool has no
// share-link convention for. No partial output is produced.
var ErrUnsupportedProtocol = errors.New("unsupported protocol")

// MalformedClientError reports a client record missing a field the protocol's
// link format cannot do without.
type MalformedClientError struct {
	Protocol string
	Field    string
}

func (e *MalformedClientError) Error() string {
	return fmt.Sprintf("malformed %s client: missing required field %q", e.Protocol, e.Field)
}

// Build normalizes a located client into a Profile pointed at the given
// server address. The address is taken as a bare host or IP; the tool never
// resolves or connects to it.
func Build(m *xray.Match, address string) (*Profile, error) {
	p := &Profile{
		Protocol: m.Protocol,
		Address:  address,
		Port:     m.Port,
		Remarks:  xray.StringAt(m.Client, "email"),
	}

	switch m.Protocol {
	case "vless", "vmess":
		p.ID = xray.StringAt(m.Client, "id")
		if p.ID == "" {
			return nil, &MalformedClientError{Protocol: m.Protocol, Field: "id"}
		}
		p.Flow = xray.StringAt(m.Client, "flow")
		p.AlterID = xray.IntAt(m.Client, "alterId")
	case "trojan":
		p.Password = xray.StringAt(m.Client, "password")
		if p.Password == "" {
			return nil, &MalformedClientError{Protocol: m.Protocol, Field: "password"}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProtocol, m.Protocol)
	}

	// Transport. An absent streamSettings block means plain TCP.
	p.Network = xray.StringAt(m.Stream, "network")
	if p.Network == "" {
		p.Network = "tcp"
	}
	if sec := xray.StringAt(m.Stream, "security"); sec != "" && sec != "none" {
		p.Security = sec
		tls := xray.ObjectAt(m.Stream, sec+"Settings")
		p.SNI = xray.StringAt(tls, "serverName")
		p.Fingerprint = xray.StringAt(tls, "fingerprint")
	}

	switch p.Network {
	case "ws":
		ws := xray.ObjectAt(m.Stream, "wsSettings")
		p.Path = xray.StringAt(ws, "path")
		p.Host = xray.StringAt(xray.ObjectAt(ws, "headers"), "Host")
	case "grpc":
		p.ServiceName = xray.StringAt(xray.ObjectAt(m.Stream, "grpcSettings"), "serviceName")
	}

	return p, nil
}
