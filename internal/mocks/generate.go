// Package mocks provides test doubles for the contest-admin session ports.
//
// Generated mocks use go.uber.org/mock (gomock) and give a fluent API for strict call
// expectations. The hand-written MemoryTokenStore is a lightweight alternative for tests
// that only need a working store.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	store := mocks.NewMockTokenStore(ctrl)
//	store.EXPECT().Load(gomock.Any(), "admin_token").Return("", false, nil)
package mocks

// Generate mocks for TokenStore and HTTPDoer from internal/ports.
// TokenStore: Load, Save, Delete. HTTPDoer: Do.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=ports_mock.go github.com/stepcontest/contest-admin/internal/ports TokenStore,HTTPDoer
