// Package config loads the resolved hooks configuration for toolgate.
//
// The engine itself never merges configuration scopes; it receives one flat
// rule-flag map. This package reads that map from a TOML file:
//
//	hooks = true          # enable every rule
//
// or per flag:
//
//	[hooks]
//	banGitC = true
//	banCommandChaining = true
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/toolgate/toolgate/internal/logger"
)

// Hooks is the resolved rule-flag map supplied to the engine.
type Hooks struct {
	all   bool
	flags map[string]bool
}

// AllHooks returns a Hooks with every flag enabled.
func AllHooks() Hooks {
	return Hooks{all: true}
}

// HooksFromFlags returns a Hooks enabling exactly the given flags.
func HooksFromFlags(flags map[string]bool) Hooks {
	copied := make(map[string]bool, len(flags))
	for name, enabled := range flags {
		copied[name] = enabled
	}
	return Hooks{flags: copied}
}

// Enabled reports whether the named rule flag is on.
func (h Hooks) Enabled(flag string) bool {
	return h.all || h.flags[flag]
}

// Config holds the loaded toolgate configuration.
type Config struct {
	Hooks Hooks
	Audit AuditConfig
}

// AuditConfig controls the tool-use log written by the logToolUse rule.
type AuditConfig struct {
	// Path overrides the default tool-use log location
	Path string `toml:"path"`
}

// DefaultPath returns the default config file path
// (~/.config/toolgate/config.toml).
func DefaultPath() (string, error) {
	if dir := os.Getenv("TOOLGATE_CONFIG"); dir != "" {
		return filepath.Join(dir, "config.toml"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "toolgate", "config.toml"), nil
}

// Load parses a config from TOML data.
func Load(data []byte) (*Config, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg := &Config{}

	switch hooks := raw["hooks"].(type) {
	case nil:
	case bool:
		cfg.Hooks = Hooks{all: hooks}
	case map[string]any:
		flags := make(map[string]bool, len(hooks))
		for name, value := range hooks {
			enabled, ok := value.(bool)
			if !ok {
				return nil, fmt.Errorf("hooks.%s must be a boolean", name)
			}
			flags[name] = enabled
		}
		cfg.Hooks = Hooks{flags: flags}
	default:
		return nil, fmt.Errorf("hooks must be a boolean or a table of booleans")
	}

	if audit, ok := raw["audit"].(map[string]any); ok {
		if path, ok := audit["path"].(string); ok {
			cfg.Audit.Path = path
		}
	}

	return cfg, nil
}

// LoadFile loads a config file. A missing file is not an error: every rule
// flag is simply off, which allows everything.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Debug("config file not found, all rules disabled", "path", path)
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}
