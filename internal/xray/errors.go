package xray

import "errors"

var (
	// ErrConfigRead wraps any failure to open or read the server config file.
	ErrConfigRead = errors.New("config file unreadable")

	// ErrConfigParse wraps a config file whose contents are not valid JSON.
	ErrConfigParse = errors.New("config file is not valid JSON")

	// ErrClientNotFound is returned when the full traversal finds no client
	// with the requested email. This is an expected outcome (typo'd email,
	// wrong config), not a programming error.
	ErrClientNotFound = errors.New("client not found")
)
