package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stepcontest/contest-admin/config"
	"github.com/stepcontest/contest-admin/internal/apiclient"
	"github.com/stepcontest/contest-admin/internal/console"
	"github.com/stepcontest/contest-admin/internal/observability/statsd"
	"github.com/stepcontest/contest-admin/internal/ports"
	"github.com/stepcontest/contest-admin/internal/service"
	"github.com/stepcontest/contest-admin/internal/session"
)

// UserAgent identifies the console to the admin API.
const UserAgent = "contest-admin"

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth        *service.AuthService
	Contests    *service.ContestService
	PrizeRules  *service.PrizeRuleService
	Claims      *service.ClaimService
	Users       *service.UserService
	Leaderboard *service.LeaderboardService
	Regions     *service.RegionService
	Agents      *service.ServiceAgentService
	System      *service.SystemService
	Overview    *service.OverviewService
}

// AppDeps groups dependencies for NewApp. Config is required; the rest default
// from it.
type AppDeps struct {
	Config *config.AppConfig
	Logger *slog.Logger
	// HTTPClient overrides the transport built by NewHTTPClient.
	HTTPClient ports.HTTPDoer
	// TokenStore overrides the store selected by SESSION_STORE.
	TokenStore *TokenStore
}

// App is the wired console: one session, one request envelope, and the
// services and view state layered on top.
type App struct {
	Config     *config.AppConfig
	Logger     *slog.Logger
	Session    *session.Manager
	API        *apiclient.Client
	Console    *console.Console
	Services   ServiceContainer
	TokenStore *TokenStore

	metrics *statsd.Client
}

// NewApp wires the application. The returned App must be closed.
func NewApp(ctx context.Context, deps AppDeps) (*App, error) {
	if deps.Config == nil {
		return nil, errors.New("config is required")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store := deps.TokenStore
	if store == nil {
		var err error
		store, err = NewTokenStore(ctx, TokenStoreDeps{Session: cfg.Session, Redis: cfg.Redis, Logger: logger})
		if err != nil {
			return nil, err
		}
	}

	app := &App{Config: cfg, Logger: logger, TokenStore: store}
	if err := app.wire(ctx, deps.HTTPClient); err != nil {
		return nil, errors.Join(err, app.Close())
	}
	return app, nil
}

func (a *App) wire(ctx context.Context, httpClient ports.HTTPDoer) error {
	cfg := a.Config

	metrics, err := newMetricsClient(a.Logger, cfg.Observability.Metrics)
	if err != nil {
		a.Logger.Warn("failed to initialise statsd client", "error", err)
	}
	a.metrics = metrics

	var sink statsd.Sink = statsd.Discard{}
	if a.metrics != nil {
		sink = a.metrics
	}

	sess, err := session.New(ctx, session.Options{
		Store:             a.TokenStore.Store,
		InactivityTimeout: cfg.Session.InactivityTimeout,
		Logger:            a.Logger,
		Metrics:           sink,
	})
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	a.Session = sess

	if httpClient == nil {
		hc, hcErr := NewHTTPClient(cfg.API)
		if hcErr != nil {
			return hcErr
		}
		httpClient = hc
	}

	client, err := apiclient.New(apiclient.Config{
		BaseURL:    cfg.API.URL,
		BasePath:   cfg.API.BasePath,
		HTTPClient: httpClient,
		Timeout:    cfg.API.Timeout,
		Session:    sess,
		Metrics:    sink,
		Logger:     a.Logger,
		UserAgent:  UserAgent,
	})
	if err != nil {
		return fmt.Errorf("build admin API client: %w", err)
	}
	a.API = client

	a.Services = NewServices(client, sess, a.Logger)
	a.Console = console.New(console.Options{Session: sess, Logger: a.Logger})
	return nil
}

// NewServices builds every service on top of one request envelope.
func NewServices(api service.Requester, sess ports.SessionController, logger *slog.Logger) ServiceContainer {
	contests := service.NewContestService(service.ContestServiceOptions{API: api})
	agents := service.NewServiceAgentService(service.ServiceAgentServiceOptions{API: api})
	claims := service.NewClaimService(service.ClaimServiceOptions{API: api})

	return ServiceContainer{
		Auth:        service.NewAuthService(service.AuthServiceOptions{API: api, Session: sess, Logger: logger}),
		Contests:    contests,
		PrizeRules:  service.NewPrizeRuleService(service.PrizeRuleServiceOptions{API: api}),
		Claims:      claims,
		Users:       service.NewUserService(service.UserServiceOptions{API: api}),
		Leaderboard: service.NewLeaderboardService(service.LeaderboardServiceOptions{API: api}),
		Regions:     service.NewRegionService(service.RegionServiceOptions{API: api}),
		Agents:      agents,
		System:      service.NewSystemService(service.SystemServiceOptions{API: api}),
		Overview: service.NewOverviewService(service.OverviewServiceOptions{
			Contests: contests,
			Agents:   agents,
			Claims:   claims,
		}),
	}
}

// Close stops the inactivity timer and releases the token store and metrics
// connection. The persisted token is kept.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	if a.Console != nil {
		a.Console.Close()
	}
	if a.Session != nil {
		a.Session.Close()
	}
	return errors.Join(a.TokenStore.Close(), a.metrics.Close())
}

func newMetricsClient(logger *slog.Logger, cfg config.MetricsConfig) (*statsd.Client, error) {
	if !cfg.IsEnabled() {
		return nil, nil
	}
	return statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
}
