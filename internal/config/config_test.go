package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestInitializeAt(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")

	if err := InitializeAt(dir); err != nil {
		t.Fatalf("InitializeAt() error = %v", err)
	}

	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("config dir not created: %v", err)
	}
	if KeybindsFile != filepath.Join(dir, "keybinds.jsonc") {
		t.Errorf("KeybindsFile = %q", KeybindsFile)
	}
	if LogFile != filepath.Join(dir, "openapi-tui.log") {
		t.Errorf("LogFile = %q", LogFile)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Settings
		wantErr bool
	}{
		{
			name: "missing file",
			want: Defaults(),
		},
		{
			name:    "partial file keeps defaults",
			content: "base_url: https://api.example.com\nworkers: 8\n",
			want: Settings{
				BaseURL:         "https://api.example.com",
				Timeout:         DefaultTimeout,
				Workers:         8,
				HistoryCapacity: DefaultHistoryCapacity,
				TickInterval:    DefaultTickInterval,
				LogLevel:        DefaultLogLevel,
			},
		},
		{
			name:    "durations",
			content: "timeout: 5s\ntick_interval: 100ms\nlog_level: debug\n",
			want: Settings{
				Timeout:         5 * time.Second,
				Workers:         DefaultWorkers,
				HistoryCapacity: DefaultHistoryCapacity,
				TickInterval:    100 * time.Millisecond,
				LogLevel:        "debug",
			},
		},
		{
			name:    "invalid yaml",
			content: "workers: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if tt.content != "" {
				if err := os.WriteFile(path, []byte(tt.content), FilePermissions); err != nil {
					t.Fatal(err)
				}
			}

			got, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("Load() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
