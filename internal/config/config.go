package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is tried when no settings file is named explicitly.
const DefaultPath = "xray2link.yaml"

// Settings are optional run defaults read from a YAML file. Flags and
// positional arguments always win over the file.
type Settings struct {
	// ServerAddress is used when the server_address positional is omitted.
	ServerAddress string `yaml:"server_address"`
	// QRCode makes terminal-code output the default mode.
	QRCode bool `yaml:"qrcode"`
}

// Load reads settings from path. With an empty path the default location is
// tried and a missing file simply yields zero settings; an explicitly named
// file must exist.
func Load(path string) (*Settings, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse settings yaml: %w", err)
	}
	return &s, nil
}
