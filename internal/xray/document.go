package xray

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Document is a parsed Xray server config. No schema is enforced: the tool
// accesses fields optimistically and ignores everything it does not know.
type Document map[string]any

// Load reads and parses the server config at path. Read failures wrap
// ErrConfigRead, JSON failures wrap ErrConfigParse; both are fatal to a run.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigRead, path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	return doc, nil
}

// Optional-field accessors. Each tolerates a nil map, an absent key, and a
// value of the wrong type, returning the zero value instead of failing.

// ObjectAt returns the object stored under key, or nil.
func ObjectAt(m map[string]any, key string) map[string]any {
	obj, _ := m[key].(map[string]any)
	return obj
}

// ArrayAt returns the array stored under key, or nil.
func ArrayAt(m map[string]any, key string) []any {
	arr, _ := m[key].([]any)
	return arr
}

// StringAt returns the string stored under key, or "".
func StringAt(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// IntAt returns the integer stored under key. JSON numbers decode as float64,
// and some configs quote ports as strings; both are accepted.
func IntAt(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}
