package redis

// Package redis provides Redis-based adapters for contest-admin.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces token keys so several consoles can share one Redis.
const DefaultPrefix = "contest-admin:"

// TokenStore is a Redis-based durable token store. It lets operator workstations
// and jump hosts that share a Redis share one admin session.
type TokenStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewTokenStore creates a new Redis-based token store.
func NewTokenStore(client redis.UniversalClient) *TokenStore {
	return &TokenStore{
		client: client,
		prefix: DefaultPrefix,
	}
}

// NewTokenStoreWithPrefix creates a Redis token store with a custom key prefix.
// A positive ttl bounds how long an abandoned token survives in Redis; zero keeps it
// until it is deleted.
func NewTokenStoreWithPrefix(client redis.UniversalClient, prefix string, ttl time.Duration) *TokenStore {
	if ttl < 0 {
		ttl = 0
	}
	return &TokenStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *TokenStore) Save(ctx context.Context, key, token string) error {
	if key == "" {
		return errors.New("token key cannot be empty")
	}
	if err := s.client.Set(ctx, s.prefix+key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *TokenStore) Load(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, nil
	}

	token, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

func (s *TokenStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil // Nothing to delete
	}
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
