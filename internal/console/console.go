package console

import (
	"log/slog"
	"sync"

	domainauth "github.com/stepcontest/contest-admin/internal/domain/auth"
	apperrors "github.com/stepcontest/contest-admin/internal/errors"
	"github.com/stepcontest/contest-admin/internal/ports"
)

// Options groups dependencies for Console.
type Options struct {
	Session ports.LogoutSource
	Logger  *slog.Logger
}

// Console tracks the active view and panel and follows external logouts.
type Console struct {
	session ports.LogoutSource
	logger  *slog.Logger

	mu          sync.Mutex
	view        View
	panel       Panel
	notice      string
	unsubscribe func()
}

// New builds a Console. It starts on the dashboard when the session is already
// authenticated and on the login view otherwise.
func New(opts Options) *Console {
	if opts.Session == nil {
		panic("console.New: session is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Console{session: opts.Session, logger: logger, panel: PanelEvents}
	if opts.Session.Authenticated() {
		c.view = ViewDashboard
	}
	c.unsubscribe = opts.Session.OnExternalLogout(c.onExternalLogout)
	return c
}

// View returns the current top-level view.
func (c *Console) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Panel returns the active dashboard panel.
func (c *Console) Panel() Panel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panel
}

// TakeNotice returns and clears the pending notice left by an external logout.
func (c *Console) TakeNotice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.notice
	c.notice = ""
	return n
}

// Select makes p the active panel. Panels are only reachable with an authenticated
// session; otherwise the console falls back to the login view.
func (c *Console) Select(p Panel) error {
	if !p.Valid() {
		return apperrors.ValidationField("panel", "unknown panel")
	}
	if !c.session.Authenticated() {
		c.mu.Lock()
		c.view = ViewLogin
		c.mu.Unlock()
		return apperrors.Unauthorized()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = ViewDashboard
	c.panel = p
	return nil
}

// SignedIn switches to the dashboard on the default panel after a successful login.
func (c *Console) SignedIn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = ViewDashboard
	c.panel = PanelEvents
	c.notice = ""
}

// SignedOut switches to the login view after an explicit logout.
func (c *Console) SignedOut() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = ViewLogin
}

// Close stops following the session.
func (c *Console) Close() {
	c.unsubscribe()
}

func (c *Console) onExternalLogout(ev domainauth.LogoutEvent) {
	c.mu.Lock()
	c.view = ViewLogin
	c.notice = ev.Notice()
	c.mu.Unlock()
	c.logger.Info("console returned to login", "reason", string(ev.Reason))
}
