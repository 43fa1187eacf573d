package xray

import "fmt"

// Match bundles a located client with the protocol, port and stream settings
// of the inbound that contained it. Link shape depends on all three jointly,
// so they always travel together.
type Match struct {
	Client   map[string]any
	Protocol string
	Port     int
	Stream   map[string]any
}

// ListEmails collects every client email in document order: inbound order
// first, then client order within each inbound. Clients without an email are
// skipped silently. Duplicates are preserved; the config format does not
// enforce email uniqueness and hiding repeats here would mask that.
func ListEmails(doc Document) []string {
	var emails []string
	eachClient(doc, func(inbound, client map[string]any) bool {
		if email := StringAt(client, "email"); email != "" {
			emails = append(emails, email)
		}
		return true
	})
	return emails
}

// FindClient returns the first client whose email equals the target exactly
// (case-sensitive, first match wins). The traversal is protocol-agnostic:
// inbounds with protocols this tool cannot format are still searched, and
// rejection happens later at link-build time.
func FindClient(doc Document, email string) (*Match, error) {
	var match *Match
	eachClient(doc, func(inbound, client map[string]any) bool {
		if StringAt(client, "email") != email {
			return true
		}
		match = &Match{
			Client:   client,
			Protocol: StringAt(inbound, "protocol"),
			Port:     IntAt(inbound, "port"),
			Stream:   ObjectAt(inbound, "streamSettings"),
		}
		return false
	})
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, email)
	}
	return match, nil
}

// eachClient walks inbounds[*].settings.clients[*], treating absent levels as
// empty. The visit callback returns false to stop the walk early.
func eachClient(doc Document, visit func(inbound, client map[string]any) bool) {
	for _, in := range ArrayAt(doc, "inbounds") {
		inbound, ok := in.(map[string]any)
		if !ok {
			continue
		}
		for _, cl := range ArrayAt(ObjectAt(inbound, "settings"), "clients") {
			client, ok := cl.(map[string]any)
			if !ok {
				continue
			}
			if !visit(inbound, client) {
				return
			}
		}
	}
}
