// Package filestore keeps the admin bearer token in a small JSON file so the
// session survives process restarts on the same workstation.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// TokenStore persists tokens in a JSON object keyed by storage key.
// The file is written with mode 0600 since it contains an access token.
type TokenStore struct {
	path string
	mu   sync.Mutex
}

// New returns a store backed by the file at path. The file is created lazily on first Save.
func New(path string) (*TokenStore, error) {
	if path == "" {
		return nil, errors.New("token file path is required")
	}
	return &TokenStore{path: path}, nil
}

// Path returns the backing file path.
func (s *TokenStore) Path() string { return s.path }

// DefaultPath returns $XDG_CONFIG_HOME/contest-admin/session.json, falling back to
// ~/.config/contest-admin/session.json.
func DefaultPath() string {
	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "contest-admin-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "contest-admin", "session.json")
}

func (s *TokenStore) Load(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return "", false, err
	}
	token, ok := entries[key]
	if !ok || token == "" {
		return "", false, nil
	}
	return token, true, nil
}

func (s *TokenStore) Save(_ context.Context, key, token string) error {
	if key == "" {
		return errors.New("token key cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	entries[key] = token
	return s.write(entries)
}

func (s *TokenStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	if len(entries) == 0 {
		if removeErr := os.Remove(s.path); removeErr != nil && !os.IsNotExist(removeErr) {
			return fmt.Errorf("removing token file %s: %w", s.path, removeErr)
		}
		return nil
	}
	return s.write(entries)
}

func (s *TokenStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading token file %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return map[string]string{}, nil
	}

	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing token file %s: %w", s.path, err)
	}
	return entries, nil
}

// write replaces the file atomically via a sibling temp file and rename.
func (s *TokenStore) write(entries map[string]string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling token file: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(s.path)
	if err := os.MkdirAll(directory, 0o700); err != nil {
		return fmt.Errorf("creating token directory %s: %w", directory, err)
	}

	tmp, err := os.CreateTemp(directory, ".session-*.json")
	if err != nil {
		return fmt.Errorf("creating temp token file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("chmod temp token file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("writing temp token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing temp token file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("replacing token file %s: %w", s.path, err)
	}
	return nil
}
