package share

import (
	"net/url"
	"strings"
)

// param is one query key/value pair. A slice keeps emission order under the
// caller's control, which url.Values cannot do.
type param struct {
	key, value string
}

func encodeQuery(params []param) string {
	var b strings.Builder
	for i, kv := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(kv.key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.value))
	}
	return b.String()
}

// EscapeFragment percent-encodes a remark for use as the URI fragment.
// QueryEscape covers the reserved set ('@' becomes %40) but renders spaces as
// '+', which fragment parsers do not undo, so spaces become %20 instead.
func EscapeFragment(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
