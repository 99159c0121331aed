package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/stepcontest/contest-admin/internal/apiclient"
	"github.com/stepcontest/contest-admin/internal/domain/model"
	"github.com/stepcontest/contest-admin/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	API     Requester
	Session ports.SessionController
	Logger  *slog.Logger
}

// AuthService exchanges operator credentials for a bearer token and hands it to the session.
type AuthService struct {
	api     Requester
	session ports.SessionController
	logger  *slog.Logger
}

var errEmptyToken = errors.New("login response did not include a token")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	requireAPI(opts.API, "NewAuthService")
	if opts.Session == nil {
		panic("NewAuthService: session is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{api: opts.API, session: opts.Session, logger: logger}
}

// Login posts credentials and, on success, starts an authenticated session.
func (s *AuthService) Login(ctx context.Context, creds model.Credentials) (*model.LoginResponse, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	resp, err := call[model.LoginResponse](ctx, s.api, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   creds,
	})
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errEmptyToken
	}

	if err := s.session.Login(ctx, resp.Token); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	s.logger.InfoContext(ctx, "admin signed in", "admin_id", resp.Admin.ID, "expires_in", resp.ExpiresIn)
	return &resp, nil
}

// Logout ends the session locally. The backend keeps no logout endpoint.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.session.Logout(ctx); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	s.logger.InfoContext(ctx, "admin signed out")
	return nil
}
