package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/stepcontest/contest-admin/internal/errors"
)

const testToken = "tok-abc"

// adminBackend is a canned admin API keyed by "METHOD /path" below /api/admin.
type adminBackend struct {
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	seen   []string
	auth   []string
}

func newAdminBackend(t *testing.T) (*adminBackend, *httptest.Server) {
	t.Helper()
	b := &adminBackend{routes: map[string]http.HandlerFunc{
		"POST /auth/login": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"token": testToken, "expiresIn": 3600, "admin": map[string]any{"id": 7}})
		},
	}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api/admin")
		b.mu.Lock()
		b.seen = append(b.seen, key)
		b.auth = append(b.auth, r.Header.Get("Authorization"))
		h, ok := b.routes[key]
		b.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "no route " + key})
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *adminBackend) handle(key string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[key] = h
}

func (b *adminBackend) requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.seen...)
}

func (b *adminBackend) lastAuth() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.auth) == 0 {
		return ""
	}
	return b.auth[len(b.auth)-1]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// cliEnv points the console at srv with a file-backed session in a temp dir.
func cliEnv(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ADMIN_API_URL", srv.URL)
	t.Setenv("SESSION_STORE", "file")
	t.Setenv("SESSION_FILE", filepath.Join(dir, "session.json"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("STATSD_ENABLED", "false")

	pwFile := filepath.Join(dir, "password")
	require.NoError(t, os.WriteFile(pwFile, []byte("s3cret\n"), 0o600))
	return pwFile
}

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func login(t *testing.T, pwFile string) {
	t.Helper()
	res := runCLI(t, "", "login", "--username", "root", "--password-file", pwFile)
	require.Equal(t, exitOK, res.code, res.stderr)
	require.Contains(t, res.stdout, "Signed in as admin #7")
}

func TestRun_Usage(t *testing.T) {
	res := runCLI(t, "")
	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.stderr, "Usage: contest-admin")

	res = runCLI(t, "", "help")
	assert.Equal(t, exitOK, res.code)
	for _, name := range []string{"login", "contests", "claims", "shell"} {
		assert.Contains(t, res.stdout, name)
	}

	res = runCLI(t, "", "bogus")
	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.stderr, `unknown command "bogus"`)
}

func TestLoginThenList(t *testing.T) {
	backend, srv := newAdminBackend(t)
	backend.handle("GET /contest", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.JSONEq(t, `{"status":"ONGOING"}`, r.URL.Query().Get("filters"))
		writeJSON(w, http.StatusOK, []map[string]any{{"id": 1, "title": "Spring Walk", "status": "ONGOING"}})
	})
	pwFile := cliEnv(t, srv)

	login(t, pwFile)

	res := runCLI(t, "", "contests", "list", "--page", "2", "--filter", "status=ONGOING", "-o", "json")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, `"title": "Spring Walk"`)
	assert.Equal(t, "Bearer "+testToken, backend.lastAuth())

	res = runCLI(t, "", "status", "-o", "json", "--query", "state")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, `"authenticated"`, strings.TrimSpace(res.stdout))
}

func TestUnauthorizedEndsSession(t *testing.T) {
	backend, srv := newAdminBackend(t)
	backend.handle("GET /service-agent", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	pwFile := cliEnv(t, srv)
	login(t, pwFile)

	res := runCLI(t, "", "agents", "list")
	assert.Equal(t, exitUnauthorized, res.code)
	assert.Contains(t, res.stderr, "Unauthorized")

	res = runCLI(t, "", "status", "-o", "json", "--query", "state")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, `"anonymous"`, strings.TrimSpace(res.stdout))

	// The next call goes out without a bearer header.
	_ = runCLI(t, "", "agents", "list")
	assert.Empty(t, backend.lastAuth())
}

func TestRequestFailureMessage(t *testing.T) {
	backend, srv := newAdminBackend(t)
	backend.handle("POST /service-agent", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]any{"error": "agent name already taken"})
	})
	pwFile := cliEnv(t, srv)
	login(t, pwFile)

	res := runCLI(t, "", "agents", "create", "--data", `{"name":"Li"}`)
	assert.Equal(t, exitFailure, res.code)
	assert.Contains(t, res.stderr, "error: agent name already taken")
}

func TestValidationHappensBeforeRequest(t *testing.T) {
	backend, srv := newAdminBackend(t)
	pwFile := cliEnv(t, srv)
	login(t, pwFile)
	before := len(backend.requests())

	res := runCLI(t, "", "prize-rules", "create", "--data", `{"contestId":1,"rankStart":5,"rankEnd":2,"prizeValueCent":100}`)
	assert.Equal(t, exitFailure, res.code)
	assert.Len(t, backend.requests(), before)
}

func TestUsageErrors(t *testing.T) {
	_, srv := newAdminBackend(t)
	cliEnv(t, srv)

	tests := []struct {
		name string
		args []string
	}{
		{"missing subcommand", []string{"contests"}},
		{"unknown subcommand", []string{"contests", "archive"}},
		{"non numeric id", []string{"contests", "get", "abc"}},
		{"unknown claim status", []string{"claims", "status", "1", "LOST"}},
		{"assign without agent", []string{"claims", "assign", "1"}},
		{"unknown flag", []string{"agents", "list", "--bogus"}},
		{"bad output format", []string{"status", "-o", "xml"}},
		{"unknown body field", []string{"agents", "create", "--data", `{"nickname":"x"}`}},
		{"unknown region level", []string{"regions", "--level", "PLANET"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, "", tt.args...)
			assert.Equal(t, exitUsage, res.code, res.stderr)
		})
	}
}

func TestDeleteConfirmation(t *testing.T) {
	backend, srv := newAdminBackend(t)
	backend.handle("DELETE /contest/9", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	pwFile := cliEnv(t, srv)
	login(t, pwFile)

	res := runCLI(t, "n\n", "contests", "delete", "9")
	assert.Equal(t, exitFailure, res.code)
	assert.Contains(t, res.stderr, "aborted by user")
	assert.NotContains(t, backend.requests(), "DELETE /contest/9")

	res = runCLI(t, "yes\n", "contests", "delete", "9")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Deleted contest 9.")
	assert.Contains(t, backend.requests(), "DELETE /contest/9")
}

func TestClaimAssignUnassignSendsNull(t *testing.T) {
	backend, srv := newAdminBackend(t)
	backend.handle("PATCH /prize/claim/4/agent", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"agentId":null}`, string(body))
		writeJSON(w, http.StatusOK, map[string]any{"id": 4, "status": "PENDING"})
	})
	pwFile := cliEnv(t, srv)
	login(t, pwFile)

	res := runCLI(t, "", "claims", "assign", "4", "--unassign", "-o", "yaml")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "status: PENDING")
}

func TestLogout(t *testing.T) {
	_, srv := newAdminBackend(t)
	pwFile := cliEnv(t, srv)
	login(t, pwFile)

	res := runCLI(t, "", "logout")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Signed out.")

	res = runCLI(t, "", "status", "-o", "json", "--query", "state")
	assert.Equal(t, `"anonymous"`, strings.TrimSpace(res.stdout))
}

func TestLoginRequiresTerminalWithoutPasswordFile(t *testing.T) {
	_, srv := newAdminBackend(t)
	cliEnv(t, srv)

	res := runCLI(t, "", "login", "--username", "root")
	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.stderr, "--password-file")
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"help", pflag.ErrHelp, exitOK},
		{"usage", usagef("bad"), exitUsage},
		{"unauthorized", apperrors.Unauthorized(), exitUnauthorized},
		{"request failed", apperrors.RequestFailed(500, "boom"), exitFailure},
		{"plain", errors.New("boom"), exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, tt.want, reportError(&buf, tt.err))
		})
	}
}

func TestParseFilters(t *testing.T) {
	got, err := parseFilters([]string{"status=PENDING", "contestId=3", "claimed=true", "title=Spring Walk", "raw=[1,2]"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"status":    "PENDING",
		"contestId": float64(3),
		"claimed":   true,
		"title":     "Spring Walk",
		"raw":       "[1,2]",
	}, got)

	_, err = parseFilters([]string{"novalue"})
	require.Error(t, err)

	got, err = parseFilters(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "1 hour", humanDuration(time.Hour))
	assert.Equal(t, "15 minutes", humanDuration(15*time.Minute))
}
