package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

const testSecret = "test-secret"

// discardProducer swallows user.created events.
type discardProducer struct{}

func (discardProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	return nil
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func newTestConfig() *Config {
	return &Config{
		Environment:      "testing",
		Version:          "test",
		Secret:           testSecret,
		TokenTTL:         time.Hour,
		TrustedOrigins:   []string{"http://localhost:5173"},
		RateLimitEnabled: false,
		RateLimitRPS:     2,
		RateLimitBurst:   4,
	}
}

// newUnitApplication has no database; only paths that never reach storage may use it.
func newUnitApplication() *application {
	cfg := newTestConfig()
	cache := common.NewCache(time.Minute, time.Minute)

	return &application{
		config:      cfg,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		userService: userservice.NewUserService(nil, discardProducer{}, cache, userservice.NewTokenManager(cfg.Secret, cfg.TokenTTL)),
		blogService: blogservice.NewBlogService(nil, cache),
		metrics:     newHTTPMetrics(),
		limiter:     newIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}
}

func newTestApplication(t *testing.T) (*application, *sql.DB) {
	db := common.TestDB("file://../../migrations", t)
	cfg := newTestConfig()
	cache := common.NewCache(time.Minute, time.Minute)

	app := &application{
		config:      cfg,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		userService: userservice.NewUserService(db, discardProducer{}, cache, userservice.NewTokenManager(cfg.Secret, cfg.TokenTTL)),
		blogService: blogservice.NewBlogService(db, cache),
		metrics:     newHTTPMetrics(),
		limiter:     newIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}

	return app, db
}

// do sends payload as JSON and returns the status, headers and raw body.
func (ts *testServer) do(t *testing.T, method, path string, token string, payload any) (int, http.Header, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		js, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(js)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res.StatusCode, res.Header, resBody
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))

	return v
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()

	return decode[map[string]string](t, body)["error"]
}

// createUser stores a user and logs it in, returning its id and token.
func createUser(t *testing.T, app *application, username, password string) (int, string) {
	t.Helper()
	ctx := context.Background()

	u, err := app.userService.CreateUser(ctx, &userservice.CreateUserRequest{Username: username, Name: username + " name", Password: password})
	require.NoError(t, err)

	token, err := app.userService.LoginUser(ctx, username, password)
	require.NoError(t, err)

	return u.ID, token.Token
}
