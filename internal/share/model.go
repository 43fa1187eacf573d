package share

// Profile is the normalized set of fields a share link is built from, derived
// jointly from a client record and the inbound that owns it. It is the only
// input to serialization, so identical profiles always yield identical links.
type Profile struct {
	Protocol string // vless, vmess, trojan
	Address  string
	Port     int
	Remarks  string // client email; URI fragment for vless/trojan, "ps" for vmess

	// Credentials
	ID       string // UUID for vless/vmess
	Password string // trojan
	Flow     string // vless flow, e.g. xtls-rprx-vision
	AlterID  int    // vmess legacy alterId

	// Transport (streamSettings)
	Network     string // tcp, ws, grpc
	Security    string // tls, xtls, or empty when none
	SNI         string
	Fingerprint string
	Path        string // ws path
	Host        string // ws Host header
	ServiceName string // grpc
}
