package config

import (
	"strings"
	"time"
)

const (
	defaultAPIBasePath = "/api/admin"
	defaultAPITimeout  = 30 * time.Second
)

// APIConfig contains admin API client configuration.
type APIConfig struct {
	// URL is the scheme and authority of the admin backend.
	URL string `env:"ADMIN_API_URL" envDefault:"http://127.0.0.1:8080"`

	// BasePath prefixes every admin endpoint.
	BasePath string `env:"ADMIN_API_BASE_PATH" envDefault:"/api/admin"`

	// Timeout bounds a single request round trip.
	Timeout time.Duration `env:"ADMIN_API_TIMEOUT" envDefault:"30s"`

	// InsecureSkipVerify disables TLS certificate verification (development only).
	InsecureSkipVerify bool `env:"ADMIN_API_INSECURE_SKIP_VERIFY" envDefault:"false"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	a.URL = strings.TrimRight(strings.TrimSpace(a.URL), "/")
	a.BasePath = strings.TrimSpace(a.BasePath)
	if a.BasePath == "" {
		a.BasePath = defaultAPIBasePath
	}
	if !strings.HasPrefix(a.BasePath, "/") {
		a.BasePath = "/" + a.BasePath
	}
	a.BasePath = strings.TrimRight(a.BasePath, "/")
	if a.Timeout <= 0 {
		a.Timeout = defaultAPITimeout
	}
}
