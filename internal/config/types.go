// Package config holds the on-disk configuration schema and the embedded
// defaults it is merged onto.
package config

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/baiacufmt/internal/formatter"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

// File is the full configuration document.
type File struct {
	App      App                `yaml:"app" toml:"app" json:"app"`
	Template formatter.Template `yaml:"template" toml:"template" json:"template"`
}

// App carries settings that are not about the box itself.
type App struct {
	About About `yaml:"about" toml:"about" json:"about"`
	Log   Log   `yaml:"log" toml:"log" json:"log"`
}

// About describes the tool in help and version output.
type About struct {
	Name        string `yaml:"name" toml:"name" json:"name"`
	Description string `yaml:"description" toml:"description" json:"description"`
}

// Log selects the structured log level and encoding.
type Log struct {
	Level  string `yaml:"level" toml:"level" json:"level"`
	Format string `yaml:"format" toml:"format" json:"format"`
}

// ZapLevel maps Level onto a zapcore level value.
func (l Log) ZapLevel() (int8, error) {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "debug":
		return -1, nil
	case "", "info":
		return 0, nil
	case "warn", "warning":
		return 1, nil
	case "error":
		return 2, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (expected debug, info, warn or error)", l.Level)
	}
}

// Console reports whether the console encoder was requested.
func (l Log) Console() bool {
	return strings.EqualFold(strings.TrimSpace(l.Format), "console")
}

// DefaultYAML returns a copy of the embedded default config.
func DefaultYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default decodes the embedded default config.
func Default() (File, error) {
	var f File
	if len(embeddedDefaultConfig) == 0 {
		return f, fmt.Errorf("embedded default config is empty")
	}
	if err := yaml.Unmarshal(embeddedDefaultConfig, &f); err != nil {
		return f, fmt.Errorf("decode embedded default config: %w", err)
	}
	return f, nil
}
