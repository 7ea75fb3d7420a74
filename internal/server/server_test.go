package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/jonathan/resume-profiler/internal/config"
	"github.com/jonathan/resume-profiler/internal/db"
	"github.com/jonathan/resume-profiler/internal/pipeline"
	"github.com/jonathan/resume-profiler/internal/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Auth.JWTSecret = testJWTSecret
	cfg.Auth.BcryptCost = 10 // Lower cost for faster tests
	cfg.RateLimit.Enabled = false
	return &cfg
}

// newTestServer builds a server over a fresh SQLite store in a temp dir.
func newTestServer(t *testing.T, mutate ...func(*config.Config)) *Server {
	t.Helper()
	return newTestServerWith(t, nil, mutate...)
}

// newTestServerWith adds wfOpts to the workflow handed to New.
func newTestServerWith(t *testing.T, wfOpts []pipeline.Option, mutate ...func(*config.Config)) *Server {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(cfg)
	}

	ctx := context.Background()
	store, err := db.OpenLite(ctx, filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))

	opts := append([]pipeline.Option{pipeline.WithMaxUploadBytes(cfg.MaxUploadBytes)}, wfOpts...)
	wf := pipeline.New(taxonomy.MustEmbedded(), opts...)
	s, err := New(cfg, store, wf, nil)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

// do sends a request through the full middleware chain.
func do(t *testing.T, s *Server, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func doJSON(t *testing.T, s *Server, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return do(t, s, method, path, token, bytes.NewReader(raw), "application/json")
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// register creates an account and returns its token.
func register(t *testing.T, s *Server, email string) string {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[map[string]any](t, w)["token"].(string)
}

// upload builds a multipart body with content under the given file name.
func upload(t *testing.T, field, filename string, content []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestNew_RequiresDependencies(t *testing.T) {
	wf := pipeline.New(taxonomy.MustEmbedded())

	_, err := New(nil, nil, wf, nil)
	assert.Error(t, err)

	_, err = New(testConfig(), nil, wf, nil)
	assert.Error(t, err)
}

func TestNew_RejectsMissingJWTSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = ""

	store, err := db.OpenLite(context.Background(), filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	defer store.Close()

	_, err = New(cfg, store, pipeline.New(taxonomy.MustEmbedded()), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT")
}

func TestNew_ServerSettings(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) {
		c.Server.Port = 9191
		c.Server.ReadTimeout = 5
	})
	assert.Equal(t, ":9191", s.Addr())
	assert.Equal(t, "5s", s.httpServer.ReadTimeout.String())
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/health", "", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "ok", decodeBody[map[string]string](t, w)["status"])
}

func TestHealthEndpoint_StoreDown(t *testing.T) {
	s := newTestServer(t)
	s.store.Close()

	w := do(t, s, http.MethodGet, "/health", "", nil, "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "degraded", decodeBody[map[string]string](t, w)["status"])
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/runs", "", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodPut, "/health", "", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		origins    []string
		origin     string
		wantHeader string
	}{
		{name: "wildcard", origins: []string{"*"}, origin: "https://app.example.com", wantHeader: "*"},
		{name: "listed origin echoed", origins: []string{"https://app.example.com"}, origin: "https://app.example.com", wantHeader: "https://app.example.com"},
		{name: "unlisted origin", origins: []string{"https://app.example.com"}, origin: "https://evil.example.com", wantHeader: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, func(c *config.Config) { c.Server.AllowedOrigins = tt.origins })

			req := httptest.NewRequest(http.MethodOptions, "/resumes", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantHeader, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
			assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
			assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
		})
	}
}

func TestRateLimit_LoginEndpoint(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.RateLimit.Enabled = true })

	// POST /auth/login allows a burst of 10.
	for i := 0; i < 10; i++ {
		w := do(t, s, http.MethodPost, "/auth/login", "", bytes.NewReader([]byte("{")), "application/json")
		require.Equal(t, http.StatusBadRequest, w.Code, "request %d", i+1)
		assert.Equal(t, "30", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, strconv.Itoa(9-i), w.Header().Get("X-RateLimit-Remaining"))
	}

	w := do(t, s, http.MethodPost, "/auth/login", "", bytes.NewReader([]byte("{")), "application/json")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	body := decodeBody[map[string]any](t, w)
	assert.Equal(t, "rate_limit_exceeded", body["error"])
	assert.Contains(t, body, "retry_after")

	// Health checks are never limited.
	w = do(t, s, http.MethodGet, "/health", "", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimit_Blacklist(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) {
		c.RateLimit.Enabled = true
		c.RateLimit.Blacklist = []string{"192.0.2.1"} // httptest default remote address
	})

	w := do(t, s, http.MethodGet, "/resumes", "", nil, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestExtractClientID(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{remote: "10.0.0.7:52100", want: "10.0.0.7"},
		{remote: "[2001:db8::1]:443", want: "2001:db8::1"},
		{remote: "unix-socket", want: "unix-socket"},
	}

	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.RemoteAddr = tt.remote
			req.Header.Set("X-Forwarded-For", "203.0.113.9")
			assert.Equal(t, tt.want, extractClientID(req))
		})
	}
}

func TestStart_ShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Server.Port = 0 })
	s.httpServer.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	cancel()
	assert.NoError(t, <-done)
}
