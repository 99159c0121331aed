package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/stepcontest/contest-admin/config"
	"github.com/stepcontest/contest-admin/internal/adapters/filestore"
	redisadapter "github.com/stepcontest/contest-admin/internal/adapters/redis"
	"github.com/stepcontest/contest-admin/internal/ports"
)

// TokenStoreDeps groups the configuration needed to pick a token store.
type TokenStoreDeps struct {
	Session config.SessionConfig
	Redis   config.RedisConfig
	Logger  *slog.Logger
}

// TokenStore is a durable token store together with the resources it holds open.
type TokenStore struct {
	Store ports.TokenStore
	// Description names the backing store for status output.
	Description string
	close       func() error
}

// Close releases any connection held by the store.
func (t *TokenStore) Close() error {
	if t == nil || t.close == nil {
		return nil
	}
	return t.close()
}

// NewTokenStore builds the token store selected by SESSION_STORE.
func NewTokenStore(ctx context.Context, deps TokenStoreDeps) (*TokenStore, error) {
	switch deps.Session.Store {
	case config.SessionStoreRedis:
		client, err := ConnectRedis(ctx, RedisDeps{RedisConfig: deps.Redis, Logger: deps.Logger})
		if err != nil {
			return nil, fmt.Errorf("connect session redis: %w", err)
		}
		return &TokenStore{
			Store:       redisadapter.NewTokenStoreWithPrefix(client, deps.Session.RedisPrefix, deps.Session.RedisTTL),
			Description: "redis " + redactAddr(deps.Redis.URI),
			close:       client.Close,
		}, nil
	case config.SessionStoreMemory:
		return &TokenStore{Store: newMemoryTokenStore(), Description: "memory"}, nil
	case config.SessionStoreFile, "":
		path := deps.Session.File
		if path == "" {
			path = filestore.DefaultPath()
		}
		store, err := filestore.New(path)
		if err != nil {
			return nil, fmt.Errorf("open session file: %w", err)
		}
		return &TokenStore{Store: store, Description: "file " + store.Path()}, nil
	default:
		return nil, fmt.Errorf("unsupported session store %q", deps.Session.Store)
	}
}

// memoryTokenStore keeps tokens for the life of the process.
type memoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{tokens: make(map[string]string)}
}

func (m *memoryTokenStore) Load(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tok, ok := m.tokens[key]
	return tok, ok, nil
}

func (m *memoryTokenStore) Save(_ context.Context, key, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[key] = token
	return nil
}

func (m *memoryTokenStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, key)
	return nil
}
