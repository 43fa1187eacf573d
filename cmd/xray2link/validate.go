package main

import (
	"github.com/google/uuid"

	"xray2link/internal/logger"
	"xray2link/internal/share"
)

// warnOnBadUUID flags vless/vmess client ids that are not well-formed UUIDs.
// Generation still proceeds: the server accepted the id, so the link is
// emitted as-is and the user is left to judge.
func warnOnBadUUID(p *share.Profile) {
	if p.ID == "" {
		return
	}
	if _, err := uuid.Parse(p.ID); err != nil {
		logger.Log.Warnf("client id %q is not a well-formed UUID; some client apps may reject the link", p.ID)
	}
}
