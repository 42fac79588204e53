package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/baiacufmt/internal/config"
	"github.com/oakwood-commons/baiacufmt/pkg/settings"
)

// configLoader centralizes config loading so callers avoid duplicating merge logic.
type configLoader struct {
	defaultConfig func() (config.File, error)
}

var cfgLoader = configLoader{defaultConfig: config.Default}

func loadMergedConfig(cfgPath string) (config.File, error) {
	return cfgLoader.loadMergedConfig(cfgPath)
}

// loadMergedConfig decodes the embedded defaults and overlays the user file
// on top. Keys missing from the user file keep their default value.
func (l configLoader) loadMergedConfig(cfgPath string) (config.File, error) {
	cfg, err := l.defaultConfig()
	if err != nil {
		return cfg, fmt.Errorf("load default config: %w", err)
	}

	if cfgPath != "" {
		data, err := os.ReadFile(cfgPath)
		if err != nil {
			return cfg, err
		}
		if err := decodeConfigFile(cfgPath, data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode config %s: %w", cfgPath, err)
		}
	}

	if err := cfg.Template.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", displayConfigPath(cfgPath), err)
	}
	if _, err := cfg.App.Log.ZapLevel(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", displayConfigPath(cfgPath), err)
	}
	return cfg, nil
}

func decodeConfigFile(path string, data []byte, into *config.File) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, into)
	default:
		return yaml.Unmarshal(data, into)
	}
}

func displayConfigPath(path string) string {
	if path == "" {
		return "(defaults)"
	}
	return path
}

// resolveConfigPath returns the explicit configFile if set, otherwise the XDG path
// ($XDG_CONFIG_HOME/baiacufmt/config.yaml) or ~/.config/baiacufmt/config.yaml if present.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	xdg := os.Getenv("XDG_CONFIG_HOME")
	candidate := ""
	if xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}
