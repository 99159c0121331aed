package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stepcontest/contest-admin/internal/apiclient"
	"github.com/stepcontest/contest-admin/internal/mocks"
	"github.com/stepcontest/contest-admin/internal/session"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Body     string
}

// fakeBackend serves canned responses keyed by "METHOD /path" under /api/admin.
type fakeBackend struct {
	t      *testing.T
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	seen   []recordedRequest
}

func newFakeBackend(t *testing.T) (*fakeBackend, *apiclient.Client, *session.Manager) {
	t.Helper()
	fb := &fakeBackend{t: t, routes: map[string]http.HandlerFunc{}}

	srv := httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(srv.Close)

	mgr, err := session.New(context.Background(), session.Options{
		Store:             mocks.NewMemoryTokenStore(),
		InactivityTimeout: time.Hour,
	})
	require.NoError(t, err)
	t.Cleanup(mgr.Close)

	client, err := apiclient.New(apiclient.Config{BaseURL: srv.URL, Session: mgr})
	require.NoError(t, err)
	return fb, client, mgr
}

func (fb *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	path := r.URL.Path[len(apiclient.DefaultBasePath):]

	fb.mu.Lock()
	fb.seen = append(fb.seen, recordedRequest{Method: r.Method, Path: path, RawQuery: r.URL.RawQuery, Body: string(body)})
	h, ok := fb.routes[r.Method+" "+path]
	fb.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"no route"}`)
		return
	}
	h(w, r)
}

func (fb *fakeBackend) handle(route string, h http.HandlerFunc) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[route] = h
}

func (fb *fakeBackend) json(route string, status int, v any) {
	fb.handle(route, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	})
}

func (fb *fakeBackend) requests() []recordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]recordedRequest(nil), fb.seen...)
}

func (fb *fakeBackend) last() recordedRequest {
	reqs := fb.requests()
	require.NotEmpty(fb.t, reqs)
	return reqs[len(reqs)-1]
}

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool     { return &v }
