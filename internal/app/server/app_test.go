package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"notebook/internal/app/server/config"
	"notebook/internal/domain/dictionary"
	"notebook/internal/domain/identity"
	"notebook/internal/infrastructure/storage"
)

type fakeSynth struct{}

func (fakeSynth) Synthesize(_ context.Context, text, path string) error {
	return os.WriteFile(path, append([]byte("RIFF"), text...), 0o600)
}

func testConfig(t *testing.T, strategy string) *config.Config {
	t.Helper()
	return &config.Config{
		Env: config.EnvLocal,
		DB:  config.DB{Driver: config.DriverSQLite, DatabaseURI: filepath.Join(t.TempDir(), "notebook.db")},
		Server: config.Server{
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: time.Second,
		},
		Auth: config.Auth{
			Strategy:     strategy,
			Secret:       "test-secret",
			TokenTTL:     time.Hour,
			SessionTTL:   time.Hour,
			SessionStore: config.SessionStoreDB,
		},
		Speech: config.Speech{TempDir: t.TempDir()},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()

	dict := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/test") {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"word":"test","meanings":[]}]`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"title":"No Definitions Found"}`))
	}))
	t.Cleanup(dict.Close)

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	repos, err := storage.Open(context.Background(), cfg, log)
	require.NoError(t, err)

	a := NewWithRepositories(cfg, repos, fakeSynth{}, dictionary.NewClient(dict.URL, time.Second, log), log)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

// client хранит cookies между запросами и подставляет CSRF-заголовок из cookie
type client struct {
	t       *testing.T
	h       http.Handler
	cookies map[string]string
	csrf    bool
}

func newClient(t *testing.T, h http.Handler) *client {
	return &client{t: t, h: h, cookies: map[string]string{}, csrf: true}
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, value := range c.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	if v, ok := c.cookies[identity.CSRFCookie]; ok && c.csrf {
		req.Header.Set(identity.CSRFHeader, v)
	}

	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 || ck.Value == "" {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck.Value
	}
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestApp_RegisterLoginNotes(t *testing.T) {
	for _, strategy := range []string{config.StrategyToken, config.StrategySession} {
		t.Run(strategy, func(t *testing.T) {
			a := newTestApp(t, testConfig(t, strategy))
			c := newClient(t, a.Handler)

			rec := c.do(http.MethodPost, "/api/register", map[string]string{"uid": "u1"})
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			assert.Equal(t, "User registered successfully", decode(t, rec)["message"])

			rec = c.do(http.MethodPost, "/api/register", map[string]string{"uid": "u1"})
			assert.Equal(t, http.StatusConflict, rec.Code)
			assert.Contains(t, decode(t, rec), "error")

			rec = c.do(http.MethodGet, "/api/notes", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			rec = c.do(http.MethodPost, "/api/login", map[string]string{"uid": "u1"})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, "Login successful", decode(t, rec)["message"])

			rec = c.do(http.MethodGet, "/api/protected", nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "u1", decode(t, rec)["logged_in_as"])

			rec = c.do(http.MethodGet, "/api/notes", nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `[]`, rec.Body.String())

			rec = c.do(http.MethodPut, "/api/notes", map[string]any{
				"notes": []map[string]string{{"id": "a", "title": "first", "body": "x"}, {"body": "no title"}},
			})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.EqualValues(t, 2, decode(t, rec)["count"])

			rec = c.do(http.MethodGet, "/api/notes", nil)
			require.Equal(t, http.StatusOK, rec.Code)
			var notes []map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notes))
			require.Len(t, notes, 2)
			assert.Equal(t, "a", notes[0]["id"])
			assert.Equal(t, "Untitled", notes[1]["title"])
			assert.NotEmpty(t, notes[1]["id"])

			rec = c.do(http.MethodPost, "/api/logout", map[string]any{
				"notes": []map[string]string{{"id": "b", "title": "kept"}},
			})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, "Logout successful", decode(t, rec)["message"])

			rec = c.do(http.MethodGet, "/api/notes", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			c.do(http.MethodPost, "/api/login", map[string]string{"uid": "u1"})
			rec = c.do(http.MethodGet, "/api/notes", nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `[{"id":"b","title":"kept","body":""}]`, rec.Body.String())
		})
	}
}

func TestApp_LoginUnknownUser(t *testing.T) {
	a := newTestApp(t, testConfig(t, config.StrategySession))
	c := newClient(t, a.Handler)

	rec := c.do(http.MethodPost, "/api/login", map[string]string{"uid": "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, c.cookies)
}

func TestApp_TokenRequiresCSRF(t *testing.T) {
	a := newTestApp(t, testConfig(t, config.StrategyToken))
	c := newClient(t, a.Handler)

	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/register", map[string]string{"uid": "u1"}).Code)
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/login", map[string]string{"uid": "u1"}).Code)
	require.Contains(t, c.cookies, identity.AccessTokenCookie)
	require.Contains(t, c.cookies, identity.CSRFCookie)

	c.csrf = false
	rec := c.do(http.MethodPut, "/api/notes", map[string]any{"notes": []any{}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// GET не требует CSRF
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/notes", nil).Code)

	c.csrf = true
	assert.Equal(t, http.StatusOK, c.do(http.MethodPut, "/api/notes", map[string]any{"notes": []any{}}).Code)
}

func TestApp_PasswordStrategy(t *testing.T) {
	a := newTestApp(t, testConfig(t, config.StrategyPassword))
	c := newClient(t, a.Handler)

	creds := map[string]string{"username": "alice", "password": "correct-horse"}
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/register", creds).Code)

	rec := c.do(http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodPost, "/api/login", creds)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, c.cookies, identity.SessionCookie)
}

func TestApp_ExpiredSession(t *testing.T) {
	cfg := testConfig(t, config.StrategySession)
	cfg.Auth.SessionTTL = time.Second
	a := newTestApp(t, cfg)
	c := newClient(t, a.Handler)

	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/register", map[string]string{"uid": "u1"}).Code)
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/login", map[string]string{"uid": "u1"}).Code)

	time.Sleep(1100 * time.Millisecond)

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/protected", nil).Code)
}

func TestApp_TTS(t *testing.T) {
	a := newTestApp(t, testConfig(t, config.StrategySession))
	c := newClient(t, a.Handler)

	rec := c.do(http.MethodPost, "/api/tts", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "no text provided", decode(t, rec)["error"])

	rec = c.do(http.MethodPost, "/api/tts", map[string]string{"text": "hello"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "audio/wav", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(t, "RIFFhello", rec.Body.String())

	entries, err := os.ReadDir(a.cfg.Speech.TempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestApp_Definition(t *testing.T) {
	a := newTestApp(t, testConfig(t, config.StrategySession))
	c := newClient(t, a.Handler)

	rec := c.do(http.MethodGet, "/api/definition?word=test", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"word":"test","meanings":[]}]`, rec.Body.String())

	rec = c.do(http.MethodGet, "/api/definition?word=qwzx", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "failed to fetch definition", decode(t, rec)["error"])

	rec = c.do(http.MethodGet, "/api/definition", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApp_CORSPreflight(t *testing.T) {
	a := newTestApp(t, testConfig(t, config.StrategySession))

	req := httptest.NewRequest(http.MethodOptions, "/api/notes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
