package ports

// Package ports defines interfaces (hexagonal ports) for session-related behavior.
// Implementations live in internal/adapters; orchestration in internal/session and internal/apiclient.

import (
	"context"
	"net/http"

	domainauth "github.com/stepcontest/contest-admin/internal/domain/auth"
)

// TokenStore durably persists the bearer token under a well-known key.
// Delete of a missing key is not an error.
type TokenStore interface {
	Load(ctx context.Context, key string) (token string, found bool, err error)
	Save(ctx context.Context, key, token string) error
	Delete(ctx context.Context, key string) error
}

// HTTPDoer issues a single HTTP round trip. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// SessionAuthority is the view of the session the request envelope needs.
type SessionAuthority interface {
	// Token returns the current bearer token, if any.
	Token() (string, bool)
	// Deauthorize tears the session down because of a cause outside the caller's control.
	// token is the credential the failed request carried; it reports whether a
	// transition to anonymous actually happened.
	Deauthorize(ctx context.Context, token string, reason domainauth.LogoutReason) bool
}

// LogoutSource lets components react to external logouts without owning the session.
type LogoutSource interface {
	Authenticated() bool
	OnExternalLogout(handler func(domainauth.LogoutEvent)) (unsubscribe func())
}

// SessionController is the view of the session the login flow needs.
type SessionController interface {
	Login(ctx context.Context, token string) error
	Logout(ctx context.Context) error
}
