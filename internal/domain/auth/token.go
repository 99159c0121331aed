package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenFormat describes how much the console can learn from a bearer token.
type TokenFormat string

const (
	TokenFormatJWT    TokenFormat = "jwt"
	TokenFormatOpaque TokenFormat = "opaque"
)

// TokenInfo is the unverified, display-only view of a bearer token.
// The backend remains the only authority on whether the token is valid.
type TokenInfo struct {
	Format    TokenFormat
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that lies before now.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

// InspectToken decodes the claims of a JWT without verifying its signature.
// Tokens that are not JWTs are reported as opaque.
func InspectToken(raw string) TokenInfo {
	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return TokenInfo{Format: TokenFormatOpaque}
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return TokenInfo{Format: TokenFormatOpaque}
	}

	info := TokenInfo{Format: TokenFormatJWT}
	if sub, subErr := claims.GetSubject(); subErr == nil {
		info.Subject = sub
	}
	if iat, iatErr := claims.GetIssuedAt(); iatErr == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, expErr := claims.GetExpirationTime(); expErr == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info
}
