package ports_test

import (
	"net/http"
	"testing"

	"github.com/stepcontest/contest-admin/internal/adapters/filestore"
	redisstore "github.com/stepcontest/contest-admin/internal/adapters/redis"
	"github.com/stepcontest/contest-admin/internal/mocks"
	"github.com/stepcontest/contest-admin/internal/ports"
	"github.com/stepcontest/contest-admin/internal/session"
)

// This test only verifies that our adapters and mocks conform to the ports at compile time.
func TestImplementationsSatisfyPorts(t *testing.T) {
	t.Helper()

	var _ ports.TokenStore = (*mocks.MemoryTokenStore)(nil)
	var _ ports.TokenStore = (*mocks.MockTokenStore)(nil)
	var _ ports.TokenStore = (*filestore.TokenStore)(nil)
	var _ ports.TokenStore = (*redisstore.TokenStore)(nil)
	var _ ports.HTTPDoer = (*http.Client)(nil)
	var _ ports.HTTPDoer = (*mocks.MockHTTPDoer)(nil)
	var _ ports.SessionAuthority = (*session.Manager)(nil)
	var _ ports.LogoutSource = (*session.Manager)(nil)
	var _ ports.SessionController = (*session.Manager)(nil)
}
