// Package session owns the admin bearer token: its durable persistence, the
// sliding inactivity window, and the external-logout notifications.
//
// A Manager is the only component that mutates the token. Everything else reads
// it through Token or reacts to teardown through OnExternalLogout.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainauth "github.com/stepcontest/contest-admin/internal/domain/auth"
	apperrors "github.com/stepcontest/contest-admin/internal/errors"
	"github.com/stepcontest/contest-admin/internal/observability/metrics"
	"github.com/stepcontest/contest-admin/internal/observability/statsd"
	"github.com/stepcontest/contest-admin/internal/ports"
)

const storeTimeout = 5 * time.Second

// Options configures a Manager.
type Options struct {
	// Store persists the token under domainauth.StorageKey. Required.
	Store ports.TokenStore
	// InactivityTimeout is the sliding inactivity window; defaults to one hour.
	InactivityTimeout time.Duration
	Logger            *slog.Logger
	// Metrics receives session.transition counts; optional.
	Metrics statsd.Sink
	// Now is used for event timestamps and the reported deadline; defaults to time.Now.
	Now func() time.Time
}

// Manager is the single source of truth for the authentication token.
// It is safe for concurrent use.
type Manager struct {
	store   ports.TokenStore
	timeout time.Duration
	logger  *slog.Logger
	metrics statsd.Sink
	now     func() time.Time

	// ioMu orders durable store writes with the in-memory transitions they
	// belong to. Lock order: ioMu, then mu.
	ioMu sync.Mutex

	mu         sync.Mutex
	token      string
	timer      *time.Timer
	generation uint64
	deadline   time.Time
	closed     bool

	subMu  sync.Mutex
	subs   map[uint64]func(domainauth.LogoutEvent)
	nextID uint64
}

var (
	_ ports.SessionAuthority = (*Manager)(nil)
	_ ports.LogoutSource     = (*Manager)(nil)
)

// New builds a Manager and restores any token already held by the store, in which
// case the session starts authenticated with a fresh inactivity window.
func New(ctx context.Context, opts Options) (*Manager, error) {
	if opts.Store == nil {
		return nil, errors.New("session token store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.InactivityTimeout
	if timeout <= 0 {
		timeout = domainauth.DefaultInactivityTimeout
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := &Manager{
		store:   opts.Store,
		timeout: timeout,
		logger:  logger.With("component", "session"),
		metrics: opts.Metrics,
		now:     now,
		subs:    make(map[uint64]func(domainauth.LogoutEvent)),
	}

	token, found, err := opts.Store.Load(ctx, domainauth.StorageKey)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "load persisted session")
	}
	if found {
		m.mu.Lock()
		m.token = token
		m.armLocked()
		m.mu.Unlock()
		m.logger.DebugContext(ctx, "restored persisted session")
		metrics.EmitSessionTransition(m.metrics, metrics.SessionMetric{Transition: metrics.TransitionRestore})
	}
	return m, nil
}

// Login stores token durably, marks the session authenticated, and (re)starts the
// inactivity window. Subsequent requests carry this token.
func (m *Manager) Login(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.ValidationField("token", "token cannot be empty")
	}

	m.ioMu.Lock()
	defer m.ioMu.Unlock()

	if m.isClosed() {
		return apperrors.Internal("session manager is closed")
	}
	if err := m.store.Save(ctx, domainauth.StorageKey, token); err != nil {
		wrapped := apperrors.Wrap(err, apperrors.ErrCodeInternal, "persist session token")
		metrics.EmitSessionTransition(m.metrics, metrics.SessionMetric{
			Transition: metrics.TransitionLogin,
			Result:     metrics.ResultError,
			Err:        wrapped,
		})
		return wrapped
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return apperrors.Internal("session manager is closed")
	}
	m.token = token
	m.armLocked()
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "session authenticated", "inactivity_timeout", m.timeout.String())
	metrics.EmitSessionTransition(m.metrics, metrics.SessionMetric{Transition: metrics.TransitionLogin})
	return nil
}

// Logout clears the token and cancels the inactivity window. It is idempotent and
// never notifies external-logout subscribers. The in-memory state is cleared even
// when the durable delete fails; that failure is returned.
func (m *Manager) Logout(ctx context.Context) error {
	m.ioMu.Lock()
	m.mu.Lock()
	changed := m.clearLocked()
	m.mu.Unlock()
	err := m.store.Delete(ctx, domainauth.StorageKey)
	m.ioMu.Unlock()

	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "delete session token")
	}
	if !changed {
		metrics.EmitSessionTransition(m.metrics, metrics.SessionMetric{
			Transition: metrics.TransitionLogout,
			Result:     metrics.ResultNoop,
		})
		return nil
	}
	m.logger.InfoContext(ctx, "session signed out")
	metrics.EmitSessionTransition(m.metrics, metrics.SessionMetric{Transition: metrics.TransitionLogout})
	return nil
}

// Token returns the current bearer token. It never blocks on I/O.
func (m *Manager) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

// State reports whether the session is anonymous or authenticated.
func (m *Manager) State() domainauth.State {
	if m.Authenticated() {
		return domainauth.StateAuthenticated
	}
	return domainauth.StateAnonymous
}

// Authenticated reports whether a token is held.
func (m *Manager) Authenticated() bool {
	_, ok := m.Token()
	return ok
}

// Deadline returns when the inactivity window will elapse, or the zero time when anonymous.
func (m *Manager) Deadline() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return time.Time{}
	}
	return m.deadline
}

// InactivityTimeout returns the configured sliding window.
func (m *Manager) InactivityTimeout() time.Duration { return m.timeout }

// Touch records a user interaction. Qualifying activities re-arm the inactivity
// window while authenticated; it reports whether the window was extended.
func (m *Manager) Touch(activity domainauth.Activity) bool {
	if !activity.Qualifies() {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" || m.closed {
		return false
	}
	m.armLocked()
	return true
}

// Deauthorize tears the session down for a cause outside the caller's control and
// notifies subscribers. token is the credential the triggering request carried: when it
// is non-empty and no longer current (the operator signed in again meanwhile) nothing
// happens. Only the call that performs the transition notifies.
func (m *Manager) Deauthorize(ctx context.Context, token string, reason domainauth.LogoutReason) bool {
	return m.deauthorize(ctx, reason, func() bool {
		return token == "" || token == m.token
	})
}

// OnExternalLogout registers handler for inactivity expiry and server-side rejection.
// Handlers run synchronously on the goroutine that observed the cause, outside any lock.
func (m *Manager) OnExternalLogout(handler func(domainauth.LogoutEvent)) func() {
	if handler == nil {
		return func() {}
	}
	m.subMu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = handler
	m.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.subMu.Lock()
			delete(m.subs, id)
			m.subMu.Unlock()
		})
	}
}

// Close stops the inactivity timer. The durable token is left in place so the
// session survives a restart.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.stopTimerLocked()
	m.generation++
}

func (m *Manager) deauthorize(ctx context.Context, reason domainauth.LogoutReason, allowed func() bool) bool {
	m.ioMu.Lock()
	m.mu.Lock()
	if m.token == "" || !allowed() {
		m.mu.Unlock()
		m.ioMu.Unlock()
		return false
	}
	m.clearLocked()
	m.mu.Unlock()
	err := m.store.Delete(ctx, domainauth.StorageKey)
	m.ioMu.Unlock()

	if err != nil {
		m.logger.ErrorContext(ctx, "delete session token", "error", err, "reason", string(reason))
	}
	m.logger.InfoContext(ctx, "session deauthorized", "reason", string(reason))
	metrics.EmitSessionTransition(m.metrics, metrics.SessionMetric{
		Transition: metrics.TransitionDeauthorize,
		Reason:     string(reason),
	})
	m.notify(domainauth.NewLogoutEvent(reason, m.now()))
	return true
}

func (m *Manager) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *Manager) expire(generation uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	m.deauthorize(ctx, domainauth.ReasonInactivity, func() bool {
		return generation == m.generation
	})
}

func (m *Manager) notify(event domainauth.LogoutEvent) {
	m.subMu.Lock()
	handlers := make([]func(domainauth.LogoutEvent), 0, len(m.subs))
	for _, h := range m.subs {
		handlers = append(handlers, h)
	}
	m.subMu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// armLocked restarts the inactivity window. Each arm bumps the generation so a
// timer that already fired but has not yet taken the lock becomes a no-op.
func (m *Manager) armLocked() {
	m.stopTimerLocked()
	m.generation++
	gen := m.generation
	m.deadline = m.now().Add(m.timeout)
	m.timer = time.AfterFunc(m.timeout, func() { m.expire(gen) })
}

// clearLocked drops the in-memory token and reports whether it was set.
func (m *Manager) clearLocked() bool {
	changed := m.token != ""
	m.token = ""
	m.deadline = time.Time{}
	m.stopTimerLocked()
	m.generation++
	return changed
}

func (m *Manager) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
