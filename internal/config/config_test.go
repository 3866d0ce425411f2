package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name: "default values",
			env:  map[string]string{},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Port != "8080" {
					t.Errorf("expected port 8080, got %s", cfg.Port)
				}
				if cfg.LogLevel != "info" {
					t.Errorf("expected log level info, got %s", cfg.LogLevel)
				}
				if cfg.DefaultStep != time.Minute {
					t.Errorf("expected default step 1m, got %v", cfg.DefaultStep)
				}
				if cfg.MaxSamples != 20000 {
					t.Errorf("expected max samples 20000, got %d", cfg.MaxSamples)
				}
				if cfg.MaxDatasets != 16 {
					t.Errorf("expected max datasets 16, got %d", cfg.MaxDatasets)
				}
				if cfg.CapacityLines != 0 {
					t.Errorf("expected capacity lines 0, got %d", cfg.CapacityLines)
				}
				if cfg.WSReadTimeout != 60*time.Second {
					t.Errorf("expected WSReadTimeout 60s, got %v", cfg.WSReadTimeout)
				}
			},
		},
		{
			name: "custom values",
			env: map[string]string{
				"PORT":            "9000",
				"LOG_LEVEL":       "debug",
				"DEFAULT_STEP":    "30s",
				"MAX_SAMPLES":     "500",
				"MAX_DATASETS":    "4",
				"CAPACITY_LINES":  "8",
				"MAX_UPLOAD_MB":   "5",
				"ALLOWED_ORIGINS": "http://example.com,http://test.com",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Port != "9000" {
					t.Errorf("expected port 9000, got %s", cfg.Port)
				}
				if cfg.DefaultStep != 30*time.Second {
					t.Errorf("expected default step 30s, got %v", cfg.DefaultStep)
				}
				if cfg.MaxSamples != 500 {
					t.Errorf("expected max samples 500, got %d", cfg.MaxSamples)
				}
				if cfg.MaxDatasets != 4 {
					t.Errorf("expected max datasets 4, got %d", cfg.MaxDatasets)
				}
				if cfg.CapacityLines != 8 {
					t.Errorf("expected capacity lines 8, got %d", cfg.CapacityLines)
				}
				if cfg.MaxUploadMB != 5 {
					t.Errorf("expected max upload 5, got %d", cfg.MaxUploadMB)
				}
				if len(cfg.AllowedOrigins) != 2 {
					t.Errorf("expected 2 allowed origins, got %d", len(cfg.AllowedOrigins))
				}
			},
		},
		{
			name: "invalid DEFAULT_STEP",
			env: map[string]string{
				"DEFAULT_STEP": "invalid",
			},
			wantErr: true,
		},
		{
			name: "negative DEFAULT_STEP",
			env: map[string]string{
				"DEFAULT_STEP": "-1m",
			},
			wantErr: true,
		},
		{
			name: "invalid MAX_SAMPLES",
			env: map[string]string{
				"MAX_SAMPLES": "lots",
			},
			wantErr: true,
		},
		{
			name: "invalid WS_READ_TIMEOUT",
			env: map[string]string{
				"WS_READ_TIMEOUT": "invalid",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			// Set test environment variables
			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			// Load config
			cfg, err := Load()

			// Check error
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			// Run custom checks
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestWebSocketConstants(t *testing.T) {
	// Clear environment and set clean defaults
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// PongWait should equal WSReadTimeout
	if cfg.PongWait != cfg.WSReadTimeout {
		t.Errorf("PongWait (%v) should equal WSReadTimeout (%v)", cfg.PongWait, cfg.WSReadTimeout)
	}

	// PingPeriod should be less than PongWait
	if cfg.PingPeriod >= cfg.PongWait {
		t.Errorf("PingPeriod (%v) should be less than PongWait (%v)", cfg.PingPeriod, cfg.PongWait)
	}

	// WriteWait should equal WSWriteTimeout
	if cfg.WriteWait != cfg.WSWriteTimeout {
		t.Errorf("WriteWait (%v) should equal WSWriteTimeout (%v)", cfg.WriteWait, cfg.WSWriteTimeout)
	}

	// MaxMessageSize should be set
	if cfg.MaxMessageSize <= 0 {
		t.Errorf("MaxMessageSize should be positive, got %d", cfg.MaxMessageSize)
	}
}
