package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/folio-builder/internal/config"
	"github.com/jonathan/folio-builder/internal/db"
	"github.com/jonathan/folio-builder/internal/persistence"
	"github.com/jonathan/folio-builder/internal/server/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore keeps documents in a persistence.MemoryStore and users in a map.
type fakeStore struct {
	*persistence.MemoryStore

	mu    sync.Mutex
	users map[uuid.UUID]*db.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{MemoryStore: persistence.NewMemoryStore(), users: make(map[uuid.UUID]*db.User)}
}

func (f *fakeStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateUser(_ context.Context, name, email string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	u := &db.User{ID: uuid.New(), Name: name, Email: strings.ToLower(email), CreatedAt: now, UpdatedAt: now}
	f.users[u.ID] = u
	return u.ID, nil
}

func (f *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return &ErrUserNotFound{UserID: id}
	}
	u.PasswordHash = hash
	u.PasswordSet = true
	return nil
}

func (f *fakeStore) DeleteUser(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

// fakePrinter returns a fixed PDF and records the HTML it was given.
type fakePrinter struct {
	mu   sync.Mutex
	html string
}

func (p *fakePrinter) RenderHTMLToPDF(_ context.Context, html string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.html = html
	return []byte("%PDF-1.7 fake"), nil
}

type testServer struct {
	t       *testing.T
	srv     *Server
	store   *fakeStore
	printer *fakePrinter
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	jwtConfig, err := config.NewJWTConfigWith(testJWTSecret, 1)
	require.NoError(t, err)

	store := newFakeStore()
	printer := &fakePrinter{}
	srv, err := New(Config{
		Store:          store,
		Printer:        printer,
		JWTConfig:      jwtConfig,
		PasswordConfig: &config.PasswordConfig{BcryptCost: 4},
		RateLimit:      &ratelimit.Config{Enabled: false},
		AutosaveDelay:  time.Hour,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Sessions().CloseAll(context.Background()) })
	return &testServer{t: t, srv: srv, store: store, printer: printer}
}

func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	case []byte:
		r = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(ts.t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.RemoteAddr = "192.0.2.1:1234"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(w, req)
	return w
}

// register creates an account and returns its token.
func (ts *testServer) register(email string) string {
	ts.t.Helper()
	w := ts.do(http.MethodPost, "/v1/auth/register", "", map[string]string{
		"name": "Test User", "email": email, "password": "correct-horse",
	})
	require.Equal(ts.t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	decode(ts.t, w, &resp)
	require.NotEmpty(ts.t, resp.Token)
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decode(t, w, &body)
	return body.Error
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","sessions":0}`, w.Body.String())
}

func TestCORS_Preflight(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodOptions, "/v1/documents", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestProtectedRoutes_RequireSignIn(t *testing.T) {
	ts := newTestServer(t)
	routes := []struct{ method, path string }{
		{http.MethodGet, "/v1/me"},
		{http.MethodGet, "/v1/documents"},
		{http.MethodPost, "/v1/documents"},
		{http.MethodDelete, "/v1/documents/" + uuid.NewString()},
		{http.MethodPost, "/v1/sessions"},
		{http.MethodGet, "/v1/sessions/abc"},
		{http.MethodPost, "/v1/sessions/abc/ops"},
		{http.MethodGet, "/v1/sessions/abc/preview"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := ts.do(rt.method, rt.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "sign in required", errorMessage(t, w))
		})
	}

	w := ts.do(http.MethodGet, "/v1/documents", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimit_Applied(t *testing.T) {
	jwtConfig, err := config.NewJWTConfigWith(testJWTSecret, 1)
	require.NoError(t, err)
	srv, err := New(Config{
		Store:          newFakeStore(),
		JWTConfig:      jwtConfig,
		PasswordConfig: &config.PasswordConfig{BcryptCost: 4},
		RateLimit: &ratelimit.Config{
			Enabled:       true,
			DefaultLimit:  2,
			DefaultWindow: time.Minute,
		},
	})
	require.NoError(t, err)

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
		req.RemoteAddr = "198.51.100.7:5555"
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
		}
	}
	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	writeError(w, &persistence.StoreError{Op: "save", Err: io.ErrUnexpectedEOF})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "unexpected EOF")
}
