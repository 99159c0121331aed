package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/stepcontest/contest-admin/internal/ports"
)

// Ensure compile-time conformance to ports.
var _ ports.TokenStore = (*MemoryTokenStore)(nil)

// MemoryTokenStore is an in-memory token store for unit tests and the "memory" session store.
// SaveErr and DeleteErr, when set, are returned instead of performing the operation.
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string

	SaveErr   error
	DeleteErr error

	saves   int
	deletes int
}

// NewMemoryTokenStore creates a new in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]string)}
}

// NewMemoryTokenStoreWith creates a store that already holds token under key.
func NewMemoryTokenStoreWith(key, token string) *MemoryTokenStore {
	s := NewMemoryTokenStore()
	s.tokens[key] = token
	return s
}

func (m *MemoryTokenStore) Load(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tok, ok := m.tokens[key]
	return tok, ok, nil
}

func (m *MemoryTokenStore) Save(_ context.Context, key, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if key == "" {
		return errors.New("token key cannot be empty")
	}
	m.saves++
	m.tokens[key] = token
	return nil
}

func (m *MemoryTokenStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.deletes++
	delete(m.tokens, key)
	return nil
}

// Saves returns how many successful Save calls were observed.
func (m *MemoryTokenStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Deletes returns how many successful Delete calls were observed.
func (m *MemoryTokenStore) Deletes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deletes
}
