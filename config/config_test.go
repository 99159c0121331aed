package config

import (
	"log/slog"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	t.Setenv("NODE_ENV", "")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.URL != "http://127.0.0.1:8080" {
		t.Errorf("API.URL = %q", cfg.API.URL)
	}
	if cfg.API.BasePath != "/api/admin" {
		t.Errorf("API.BasePath = %q", cfg.API.BasePath)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v", cfg.API.Timeout)
	}
	if cfg.Session.Store != SessionStoreFile {
		t.Errorf("Session.Store = %q", cfg.Session.Store)
	}
	if cfg.Session.InactivityTimeout != time.Hour {
		t.Errorf("Session.InactivityTimeout = %v", cfg.Session.InactivityTimeout)
	}
	if cfg.Session.RedisPrefix != "contest-admin:" {
		t.Errorf("Session.RedisPrefix = %q", cfg.Session.RedisPrefix)
	}
	if cfg.Observability.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want json outside dev mode", cfg.Observability.Log.Format)
	}
	if cfg.Observability.Metrics.IsEnabled() {
		t.Errorf("metrics should be disabled by default")
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("ADMIN_API_URL", "https://admin.example.com/")
	t.Setenv("ADMIN_API_BASE_PATH", "v2/admin/")
	t.Setenv("ADMIN_API_TIMEOUT", "5s")
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("SESSION_INACTIVITY_TIMEOUT", "15m")
	t.Setenv("REDIS_URI", "redis://:pw@cache:6379/2")
	t.Setenv("REDIS_CLUSTER_NODES", "a:7000,b:7000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("STATSD_ENABLED", "true")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.URL != "https://admin.example.com" {
		t.Errorf("API.URL = %q", cfg.API.URL)
	}
	if cfg.API.BasePath != "/v2/admin" {
		t.Errorf("API.BasePath = %q", cfg.API.BasePath)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("API.Timeout = %v", cfg.API.Timeout)
	}
	if cfg.Session.Store != SessionStoreRedis {
		t.Errorf("Session.Store = %q", cfg.Session.Store)
	}
	if cfg.Session.InactivityTimeout != 15*time.Minute {
		t.Errorf("Session.InactivityTimeout = %v", cfg.Session.InactivityTimeout)
	}
	if len(cfg.Redis.ClusterNodes) != 2 {
		t.Errorf("Redis.ClusterNodes = %v", cfg.Redis.ClusterNodes)
	}
	if cfg.Observability.Log.SlogLevel() != slog.LevelDebug {
		t.Errorf("Log level = %v", cfg.Observability.Log.SlogLevel())
	}
	if !cfg.Observability.Metrics.IsEnabled() {
		t.Errorf("metrics should be enabled")
	}
}

func TestAppConfig_InvalidSessionStore(t *testing.T) {
	t.Setenv("SESSION_STORE", "sqlite")

	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Fatal("expected error for unknown session store")
	}
}

func TestAppConfig_DevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Fatal("expected dev mode from NODE_ENV")
	}
	if cfg.Observability.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want text in dev mode", cfg.Observability.Log.Format)
	}
}

func TestSessionConfig_Sanitize(t *testing.T) {
	cfg := SessionConfig{InactivityTimeout: -time.Second, RedisPrefix: " ", RedisTTL: -time.Minute, File: " /tmp/s.json "}
	cfg.Sanitize()

	if cfg.Store != SessionStoreFile {
		t.Errorf("Store = %q", cfg.Store)
	}
	if cfg.InactivityTimeout != time.Hour {
		t.Errorf("InactivityTimeout = %v", cfg.InactivityTimeout)
	}
	if cfg.RedisPrefix != "contest-admin:" {
		t.Errorf("RedisPrefix = %q", cfg.RedisPrefix)
	}
	if cfg.RedisTTL != 0 {
		t.Errorf("RedisTTL = %v", cfg.RedisTTL)
	}
	if cfg.File != "/tmp/s.json" {
		t.Errorf("File = %q", cfg.File)
	}
}

func TestAPIConfig_Sanitize(t *testing.T) {
	cfg := APIConfig{URL: " http://localhost:3000/ ", BasePath: "", Timeout: 0}
	cfg.Sanitize()

	if cfg.URL != "http://localhost:3000" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.BasePath != "/api/admin" {
		t.Errorf("BasePath = %q", cfg.BasePath)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
}

func TestLogConfig_Sanitize(t *testing.T) {
	tests := []struct {
		in, format string
		isDev      bool
		wantLevel  string
		wantFormat string
	}{
		{"WARNING", "", false, "warn", "json"},
		{"verbose", "TEXT", false, "info", "text"},
		{"error", "xml", true, "error", "text"},
	}
	for _, tt := range tests {
		cfg := LogConfig{Level: tt.in, Format: tt.format}
		cfg.Sanitize(tt.isDev)
		if cfg.Level != tt.wantLevel || cfg.Format != tt.wantFormat {
			t.Errorf("Sanitize(%q,%q,%v) = %q,%q; want %q,%q",
				tt.in, tt.format, tt.isDev, cfg.Level, cfg.Format, tt.wantLevel, tt.wantFormat)
		}
	}
}

func TestMetricsConfig_Sanitize(t *testing.T) {
	cfg := MetricsConfig{Enabled: true, StatsdAddress: " "}
	cfg.Sanitize()
	if cfg.Enabled {
		t.Fatalf("expected enabled to be false when address is empty")
	}

	cfg = MetricsConfig{Enabled: true, StatsdAddress: " statsd:1234 ", Prefix: " "}
	cfg.Sanitize()
	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}
	if cfg.StatsdAddress != "statsd:1234" {
		t.Fatalf("expected address to be trimmed, got %q", cfg.StatsdAddress)
	}
	if cfg.Prefix != "contest_admin" {
		t.Fatalf("expected default prefix, got %q", cfg.Prefix)
	}
}

func TestRedisConfig_SanitizeCluster(t *testing.T) {
	cfg := RedisConfig{UseCluster: true, UseSentinel: true, DB: 3}
	cfg.Sanitize()
	if cfg.DB != 0 || cfg.UseSentinel {
		t.Fatalf("cluster mode must force DB 0 and disable sentinel, got %+v", cfg)
	}
}
