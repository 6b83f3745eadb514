package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

const (
	DefaultTimeout         = 30 * time.Second
	DefaultWorkers         = 4
	DefaultHistoryCapacity = 32
	DefaultTickInterval    = 250 * time.Millisecond
	DefaultLogLevel        = "info"
)

var (
	// ConfigDir is the global configuration directory (~/.openapi-tui)
	ConfigDir string

	// SettingsFile holds user settings (config.yaml)
	SettingsFile string

	// KeybindsFile holds user keybinding overrides (keybinds.jsonc)
	KeybindsFile string

	// LogFile receives structured logs; the terminal is owned by the UI
	LogFile string
)

// Settings are the user-tunable knobs; flags override them
type Settings struct {
	BaseURL            string        `yaml:"base_url"`
	Timeout            time.Duration `yaml:"timeout"`
	Workers            int           `yaml:"workers"`
	HistoryCapacity    int           `yaml:"history_capacity"`
	TickInterval       time.Duration `yaml:"tick_interval"`
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify"`
	CAFile             string        `yaml:"ca_file"`
	CertFile           string        `yaml:"cert_file"`
	KeyFile            string        `yaml:"key_file"`
	LogLevel           string        `yaml:"log_level"`
}

// Defaults returns settings with every field populated
func Defaults() Settings {
	return Settings{
		Timeout:         DefaultTimeout,
		Workers:         DefaultWorkers,
		HistoryCapacity: DefaultHistoryCapacity,
		TickInterval:    DefaultTickInterval,
		LogLevel:        DefaultLogLevel,
	}
}

// Initialize sets up the configuration directory and paths
// It creates ~/.openapi-tui/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitializeAt(filepath.Join(homeDir, ".openapi-tui"))
}

// InitializeAt is Initialize rooted at an explicit directory
func InitializeAt(dir string) error {
	ConfigDir = dir
	SettingsFile = filepath.Join(ConfigDir, "config.yaml")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.jsonc")
	LogFile = filepath.Join(ConfigDir, "openapi-tui.log")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}
	return nil
}

// Load reads the settings file. A missing file yields defaults.
func Load(path string) (Settings, error) {
	settings := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	settings.fill()
	return settings, nil
}

// fill restores defaults for zero values left by a partial file
func (s *Settings) fill() {
	d := Defaults()
	if s.Timeout <= 0 {
		s.Timeout = d.Timeout
	}
	if s.Workers <= 0 {
		s.Workers = d.Workers
	}
	if s.HistoryCapacity <= 0 {
		s.HistoryCapacity = d.HistoryCapacity
	}
	if s.TickInterval <= 0 {
		s.TickInterval = d.TickInterval
	}
	if s.LogLevel == "" {
		s.LogLevel = d.LogLevel
	}
}
