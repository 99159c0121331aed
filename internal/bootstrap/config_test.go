package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stepcontest/contest-admin/config"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LogConfig
		check   func(t *testing.T, out string)
		debugOn bool
	}{
		{
			name: "json at info",
			cfg:  config.LogConfig{Level: "info", Format: "json"},
			check: func(t *testing.T, out string) {
				var line map[string]any
				if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &line); err != nil {
					t.Fatalf("expected JSON log line, got %q: %v", out, err)
				}
				if line["msg"] != "hello" {
					t.Fatalf("msg = %v, want hello", line["msg"])
				}
			},
		},
		{
			name:    "text at debug",
			cfg:     config.LogConfig{Level: "debug", Format: "text"},
			debugOn: true,
			check: func(t *testing.T, out string) {
				if !strings.Contains(out, "msg=hello") {
					t.Fatalf("expected text log line, got %q", out)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := InitLogger(&buf, tt.cfg)
			logger.Info("hello")
			tt.check(t, buf.String())

			if got := logger.Enabled(context.Background(), -4); got != tt.debugOn {
				t.Fatalf("debug enabled = %v, want %v", got, tt.debugOn)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("ADMIN_API_URL", "https://admin.example.com/")
	t.Setenv("ADMIN_API_BASE_PATH", "api/admin/")
	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("SESSION_INACTIVITY_TIMEOUT", "15m")
	t.Setenv("NODE_ENV", "development")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.API.URL != "https://admin.example.com" {
		t.Errorf("API.URL = %q", cfg.API.URL)
	}
	if cfg.API.BasePath != "/api/admin" {
		t.Errorf("API.BasePath = %q", cfg.API.BasePath)
	}
	if cfg.Session.Store != config.SessionStoreMemory {
		t.Errorf("Session.Store = %q", cfg.Session.Store)
	}
	if cfg.Session.InactivityTimeout != 15*time.Minute {
		t.Errorf("Session.InactivityTimeout = %v", cfg.Session.InactivityTimeout)
	}
	if !cfg.IsDev || cfg.Observability.Log.Format != "text" {
		t.Errorf("dev mode not detected: IsDev=%v format=%q", cfg.IsDev, cfg.Observability.Log.Format)
	}
}

func TestLoadConfig_InvalidStore(t *testing.T) {
	t.Setenv("SESSION_STORE", "cookie")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig() expected error for unknown session store")
	}
}
