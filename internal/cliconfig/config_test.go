package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.TracePath != DefaultTracePath {
		t.Errorf("TracePath = %v, want %v", cfg.TracePath, DefaultTracePath)
	}
	if cfg.Interval != 250*time.Millisecond {
		t.Errorf("Interval = %v, want 250ms", cfg.Interval)
	}
	if cfg.MaxFrames != 0 {
		t.Errorf("MaxFrames = %v, want 0", cfg.MaxFrames)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name       string
		config     Config
		wantErr    bool
		wantFormat string
	}{
		{
			name:    "valid minimal config",
			config:  Config{TracePath: "run.sim"},
			wantErr: false,
		},
		{
			name:    "missing trace path",
			config:  Config{TracePath: "  "},
			wantErr: true,
		},
		{
			name:    "negative interval",
			config:  Config{TracePath: "run.sim", Interval: -time.Second},
			wantErr: true,
		},
		{
			name:    "zero interval plays unpaced",
			config:  Config{TracePath: "run.sim", Interval: 0},
			wantErr: false,
		},
		{
			name:    "negative max frames",
			config:  Config{TracePath: "run.sim", MaxFrames: -1},
			wantErr: true,
		},
		{
			name:       "format is normalized",
			config:     Config{TracePath: "run.sim", Format: " YAML "},
			wantErr:    false,
			wantFormat: "yaml",
		},
		{
			name:    "unknown format",
			config:  Config{TracePath: "run.sim", Format: "xml"},
			wantErr: true,
		},
		{
			name:    "watch needs a debounce",
			config:  Config{TracePath: "run.sim", Watch: true},
			wantErr: true,
		},
		{
			name:    "watch with debounce",
			config:  Config{TracePath: "run.sim", Watch: true, WatchDebounce: time.Second},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantFormat != "" && tt.config.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", tt.config.Format, tt.wantFormat)
			}
			if err == nil && tt.config.LogLevel == "" {
				t.Error("LogLevel not defaulted")
			}
		})
	}
}
