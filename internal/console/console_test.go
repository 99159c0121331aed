package console

import (
	"context"
	"testing"
	"time"

	domainauth "github.com/stepcontest/contest-admin/internal/domain/auth"
	apperrors "github.com/stepcontest/contest-admin/internal/errors"
	"github.com/stepcontest/contest-admin/internal/mocks"
	"github.com/stepcontest/contest-admin/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, timeout time.Duration) *session.Manager {
	t.Helper()
	mgr, err := session.New(context.Background(), session.Options{
		Store:             mocks.NewMemoryTokenStore(),
		InactivityTimeout: timeout,
	})
	require.NoError(t, err)
	t.Cleanup(mgr.Close)
	return mgr
}

func TestParsePanel(t *testing.T) {
	for _, p := range Panels() {
		got, ok := ParsePanel(p.String())
		assert.True(t, ok)
		assert.Equal(t, p, got)
		assert.NotEqual(t, "Unknown", p.Label())
	}
	_, ok := ParsePanel("billing")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Panel(99).String())
}

func TestConsole_StartsOnLoginWhenAnonymous(t *testing.T) {
	c := New(Options{Session: newSession(t, time.Hour)})
	defer c.Close()
	assert.Equal(t, ViewLogin, c.View())
}

func TestConsole_SelectRequiresSession(t *testing.T) {
	mgr := newSession(t, time.Hour)
	c := New(Options{Session: mgr})
	defer c.Close()

	err := c.Select(PanelReward)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, ViewLogin, c.View())

	require.NoError(t, mgr.Login(context.Background(), "tok"))
	c.SignedIn()
	assert.Equal(t, PanelEvents, c.Panel())

	require.NoError(t, c.Select(PanelReward))
	assert.Equal(t, ViewDashboard, c.View())
	assert.Equal(t, PanelReward, c.Panel())

	assert.True(t, apperrors.IsValidation(c.Select(Panel(42))))
	assert.Equal(t, PanelReward, c.Panel())
}

func TestConsole_ExternalLogoutShowsNotice(t *testing.T) {
	mgr := newSession(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, mgr.Login(ctx, "tok"))

	c := New(Options{Session: mgr})
	defer c.Close()
	assert.Equal(t, ViewDashboard, c.View())

	mgr.Deauthorize(ctx, "tok", domainauth.ReasonUnauthorized)

	assert.Equal(t, ViewLogin, c.View())
	assert.Contains(t, c.TakeNotice(), "rejected by the server")
	assert.Empty(t, c.TakeNotice(), "notice is consumed")
}

func TestConsole_InactivityReturnsToLogin(t *testing.T) {
	mgr := newSession(t, 40*time.Millisecond)
	require.NoError(t, mgr.Login(context.Background(), "tok"))
	c := New(Options{Session: mgr})
	defer c.Close()

	require.Eventually(t, func() bool { return c.View() == ViewLogin }, time.Second, 5*time.Millisecond)
	assert.Contains(t, c.TakeNotice(), "inactivity")
}

func TestConsole_ExplicitLogoutHasNoNotice(t *testing.T) {
	mgr := newSession(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, mgr.Login(ctx, "tok"))
	c := New(Options{Session: mgr})
	defer c.Close()

	require.NoError(t, mgr.Logout(ctx))
	c.SignedOut()
	assert.Equal(t, ViewLogin, c.View())
	assert.Empty(t, c.TakeNotice())
}

func TestConsole_CloseUnsubscribes(t *testing.T) {
	mgr := newSession(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, mgr.Login(ctx, "tok"))
	c := New(Options{Session: mgr})
	c.Close()

	mgr.Deauthorize(ctx, "", domainauth.ReasonUnauthorized)
	assert.Equal(t, ViewDashboard, c.View())
}
