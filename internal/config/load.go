// internal/config/load.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads a config file. The format follows the extension:
// .toml is TOML, anything else is YAML.
// Load does not validate or apply defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw, strings.ToLower(filepath.Ext(path)))
}

// Parse decodes raw config bytes; ext selects the format (".toml", ".yaml", ".yml").
func Parse(raw []byte, ext string) (*Config, error) {
	var cfg Config

	switch ext {
	case ".toml":
		if _, err := toml.Decode(string(raw), &cfg); err != nil {
			return nil, fmt.Errorf("config: toml: %w", err)
		}
	default:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("config: yaml: %w", err)
		}
	}

	return &cfg, nil
}
