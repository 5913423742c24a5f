package config

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/goccy/go-yaml"

	pkgerrors "github.com/tabfuse/tabfuse/pkg/errors"
)

// Load reads, decodes, and validates a configuration file. The format
// is chosen by extension: .yaml and .yml decode as YAML, .toml as TOML.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read reads and decodes a configuration file without validating it.
func Read(path string) (*Config, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, pkgerrors.NewParseError("yaml", path, err.Error(), err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, pkgerrors.NewParseError("toml", path, err.Error(), err)
		}
	default:
		return nil, pkgerrors.NewValidationError("config", path, "unsupported config format, use .yaml, .yml, or .toml")
	}

	cfg.path = path
	return cfg, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.NewIOError("read", path, err)
	}
	return data, nil
}
