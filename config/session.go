package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionStoreKind selects where the bearer token is persisted.
type SessionStoreKind string

const (
	// SessionStoreFile keeps the token in a 0600 file under the user config dir.
	SessionStoreFile SessionStoreKind = "file"
	// SessionStoreRedis keeps the token in Redis, shared between operator hosts.
	SessionStoreRedis SessionStoreKind = "redis"
	// SessionStoreMemory keeps the token for the life of the process only.
	SessionStoreMemory SessionStoreKind = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionStoreKind.
func (k *SessionStoreKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "file", "redis", "memory":
		*k = SessionStoreKind(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionStoreKind: %q (valid options: file, redis, memory)", v)
	}
}

const (
	defaultInactivityTimeout = time.Hour
	defaultRedisKeyPrefix    = "contest-admin:"
)

// SessionConfig groups session persistence and inactivity configuration.
type SessionConfig struct {
	// Store selects the durable token store.
	Store SessionStoreKind `env:"SESSION_STORE" envDefault:"file"`

	// File overrides the token file path (SESSION_STORE=file).
	// Empty means $XDG_CONFIG_HOME/contest-admin/session.json.
	File string `env:"SESSION_FILE"`

	// InactivityTimeout is the sliding window after which an idle session signs out.
	InactivityTimeout time.Duration `env:"SESSION_INACTIVITY_TIMEOUT" envDefault:"1h"`

	// RedisPrefix namespaces token keys (SESSION_STORE=redis).
	RedisPrefix string `env:"SESSION_REDIS_PREFIX" envDefault:"contest-admin:"`

	// RedisTTL bounds how long a token survives in Redis; zero keeps it until logout.
	RedisTTL time.Duration `env:"SESSION_REDIS_TTL" envDefault:"0s"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.Store == "" {
		s.Store = SessionStoreFile
	}
	s.File = strings.TrimSpace(s.File)
	if s.InactivityTimeout <= 0 {
		s.InactivityTimeout = defaultInactivityTimeout
	}
	if s.RedisPrefix = strings.TrimSpace(s.RedisPrefix); s.RedisPrefix == "" {
		s.RedisPrefix = defaultRedisKeyPrefix
	}
	if s.RedisTTL < 0 {
		s.RedisTTL = 0
	}
}
