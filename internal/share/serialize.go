package share

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"
)

// URI renders the profile into its protocol's native share-link form. Output
// is deterministic byte-for-byte: query parameters are emitted in a fixed
// order, never the sorted order url.Values.Encode would impose.
func (p *Profile) URI() string {
	switch p.Protocol {
	case "vmess":
		return p.toVMessURI()
	default:
		// VLESS and Trojan share the userinfo@host:port?query#fragment shape.
		return p.toGenericURI()
	}
}

func (p *Profile) toGenericURI() string {
	var userinfo string
	var params []param
	switch p.Protocol {
	case "vless":
		userinfo = p.ID
		params = p.vlessParams()
	case "trojan":
		userinfo = p.Password
		params = p.trojanParams()
	}

	var b strings.Builder
	b.WriteString(p.Protocol)
	b.WriteString("://")
	b.WriteString(userinfo)
	b.WriteByte('@')
	b.WriteString(p.Address)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(p.Port))
	if len(params) > 0 {
		b.WriteByte('?')
		b.WriteString(encodeQuery(params))
	}
	b.WriteByte('#')
	b.WriteString(EscapeFragment(p.Remarks))
	return b.String()
}

func (p *Profile) vlessParams() []param {
	params := []param{{"type", p.Network}}
	if p.Security != "" {
		params = append(params, param{"security", p.Security})
	}
	if p.Flow != "" {
		params = append(params, param{"flow", p.Flow})
	}
	params = append(params, p.tlsParams()...)
	return append(params, p.transportParams()...)
}

func (p *Profile) trojanParams() []param {
	var params []param
	// Trojan share links assume TLS; emit the security block first.
	if p.Security == "tls" || p.Security == "xtls" {
		params = append(params, param{"security", p.Security})
		params = append(params, p.tlsParams()...)
	}
	params = append(params, param{"type", p.Network})
	return append(params, p.transportParams()...)
}

func (p *Profile) tlsParams() []param {
	var params []param
	if p.SNI != "" {
		params = append(params, param{"sni", p.SNI})
	}
	if p.Fingerprint != "" {
		params = append(params, param{"fp", p.Fingerprint})
	}
	return params
}

func (p *Profile) transportParams() []param {
	var params []param
	switch p.Network {
	case "ws":
		if p.Path != "" {
			params = append(params, param{"path", p.Path})
		}
		if p.Host != "" {
			params = append(params, param{"host", p.Host})
		}
	case "grpc":
		if p.ServiceName != "" {
			params = append(params, param{"serviceName", p.ServiceName})
		}
	}
	return params
}

// vmessJSON is the payload behind vmess:// base64 links, per the v2rayN share
// convention. Struct field order is the serialization order, keeping the
// encoded blob stable.
type vmessJSON struct {
	Add  string `json:"add"`
	Aid  string `json:"aid"`
	Host string `json:"host,omitempty"`
	ID   string `json:"id"`
	Net  string `json:"net"`
	Path string `json:"path,omitempty"`
	Port string `json:"port"`
	Ps   string `json:"ps"`
	TLS  string `json:"tls"`
	Type string `json:"type"`
	V    string `json:"v"`
}

func (p *Profile) toVMessURI() string {
	v := vmessJSON{
		Add:  p.Address,
		Aid:  strconv.Itoa(p.AlterID),
		ID:   p.ID,
		Net:  p.Network,
		Port: strconv.Itoa(p.Port),
		Ps:   p.Remarks,
		TLS:  "none",
		Type: "none",
		V:    "2",
	}
	if p.Security == "tls" || p.Security == "xtls" {
		v.TLS = p.Security
	}

	switch p.Network {
	case "ws":
		v.Path = p.Path
		if v.Path == "" {
			v.Path = "/"
		}
		v.Host = p.Host
		if v.Host == "" {
			v.Host = p.Address
		}
	case "grpc":
		v.Path = p.ServiceName
	}

	b, _ := json.Marshal(v)
	return "vmess://" + base64.StdEncoding.EncodeToString(b)
}
