package keybinds

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/studiowebux/openapi-tui/internal/config"
)

// Config represents the user's keybinding configuration.
// Each section maps an action to a comma-separated list of keys.
type Config struct {
	Version string            `json:"version"`
	Global  map[string]string `json:"global,omitempty"`
	Home    map[string]string `json:"home,omitempty"`
	Call    map[string]string `json:"call,omitempty"`
	History map[string]string `json:"history,omitempty"`
	Footer  map[string]string `json:"footer,omitempty"`
	Editor  map[string]string `json:"editor,omitempty"`
}

// sections pairs each config section with its context
func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:  c.Global,
		ContextHome:    c.Home,
		ContextCall:    c.Call,
		ContextHistory: c.History,
		ContextFooter:  c.Footer,
		ContextEditor:  c.Editor,
	}
}

// ParseConfig decodes a keybinds file. Comments and trailing commas are allowed.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return nil, fmt.Errorf("invalid keybinds.jsonc format: %w", err)
	}
	return &cfg, nil
}

// LoadConfig loads keybinding configuration from a JSONC file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// SplitKeys splits a comma-separated key list. A lone "," binds the comma key.
func SplitKeys(list string) []string {
	if strings.TrimSpace(list) == "," {
		return []string{","}
	}
	var keys []string
	for _, k := range strings.Split(list, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// ApplyConfig applies user configuration to a registry.
// A configured action loses its default keys in that context.
func ApplyConfig(registry *Registry, cfg *Config) error {
	var errs []error
	for _, ctx := range Contexts {
		for actionStr, keys := range cfg.sections()[ctx] {
			if err := ValidateAction(actionStr); err != nil {
				errs = append(errs, fmt.Errorf("%s.%s: %w", ctx, actionStr, err))
				continue
			}
			action := Action(actionStr)
			registry.Unbind(ctx, action)
			for _, key := range SplitKeys(keys) {
				if err := ValidateKey(key); err != nil {
					errs = append(errs, fmt.Errorf("%s.%s: %w", ctx, actionStr, err))
					continue
				}
				registry.Register(ctx, key, action)
			}
		}
	}
	return errors.Join(errs...)
}

// LoadOrDefault loads user config if it exists, otherwise returns the default registry.
// The validation result carries warnings (such as shadowed keys) for the caller to log.
func LoadOrDefault(configPath string) (*Registry, *ValidationResult, error) {
	registry := NewDefaultRegistry()

	if configPath == "" {
		return registry, &ValidationResult{}, nil
	}
	if _, err := os.Stat(configPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return registry, &ValidationResult{}, nil
		}
		return nil, nil, fmt.Errorf("failed to stat keybinds file: %w", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load keybinds.jsonc: %w", err)
	}
	if err := ApplyConfig(registry, cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to apply keybinds config: %w", err)
	}

	result := NewValidator().ValidateRegistry(registry)
	if result.HasErrors() {
		return nil, result, fmt.Errorf("invalid keybinds config:\n%s", result)
	}
	return registry, result, nil
}

// GetDefaultConfigPath returns the default path for keybinds.jsonc
func GetDefaultConfigPath() string {
	return config.KeybindsFile
}
