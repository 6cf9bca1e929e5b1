package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/tunevault-go/internal/infra/confloader"
)

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".tunevault", "config.yaml")
}

// Load builds the configuration from defaults, the file at path, TUNEVAULT_*
// environment variables and flags, in increasing priority. An empty path
// means DefaultConfigPath, which may be absent; an explicit path must exist.
func Load(path string, flags map[string]any) (*CLIConfig, error) {
	optional := path == ""
	if optional {
		path = DefaultConfigPath()
	}

	cfg := Default()
	loader := confloader.NewLoader(confloader.WithConfigFile(path, optional))
	if err := loader.Load(cfg, flags); err != nil {
		return nil, err
	}

	if err := Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML. The file holds the credential and is created
// with mode 0600.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
