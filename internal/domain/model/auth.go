package model

import (
	"strings"

	apperrors "github.com/stepcontest/contest-admin/internal/errors"
)

// Credentials are posted to the login endpoint.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate validates Credentials.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return apperrors.ValidationField("username", "username is required")
	}
	if c.Password == "" {
		return apperrors.ValidationField("password", "password is required")
	}
	return nil
}

// LoginAdmin identifies the administrator that signed in.
type LoginAdmin struct {
	ID int64 `json:"id"`
}

// LoginResponse is returned by the login endpoint.
type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresIn int64      `json:"expiresIn"`
	Admin     LoginAdmin `json:"admin"`
}
