//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/postcards-home/internal/app"
	"github.com/heartmarshall/postcards-home/internal/config"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// defaultConfig mirrors the env-default values of config.Config with the
// in-memory backend and no collaborators.
func defaultConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			MaxBodyBytes:    16 << 20,
			ShutdownTimeout: 5 * time.Second,
		},
		Storage: config.StorageConfig{Backend: config.BackendMemory, QuotaBytes: 5 << 20},
		Archive: config.ArchiveConfig{MaxStored: 30, RetryKeep: 5},
		Household: config.HouseholdConfig{
			MembersRaw:      "Julian,Tracey,Francis,Lucy,Orla,Ruby",
			DefaultIdentity: "Julian",
		},
		Compose: config.ComposeConfig{
			MaxMessageLength:    90,
			DefaultLocation:     "Private Grounds",
			ImageMaxDimension:   800,
			ImageQuality:        60,
			PlaceholderImageURL: "https://picsum.photos/800/1000?grayscale",
		},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,OPTIONS",
			AllowedHeaders: "Content-Type,X-Request-Id",
			MaxAge:         86400,
		},
		RateLimit: config.RateLimitConfig{ComposePerMinute: 600, CleanupInterval: time.Minute},
	}
}

// setupTestServer bootstraps the whole application from cfg.
func setupTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelWarn}))

	srv, cleanup, err := app.Build(context.Background(), logger, cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)

	return &testServer{URL: ts.URL, Client: ts.Client()}
}

// do sends a JSON request and decodes the JSON response into out when out
// is non-nil. It returns the status code.
func (ts *testServer) do(t *testing.T, method, path string, body, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type postcard struct {
	ID         string   `json:"id"`
	Sender     string   `json:"sender"`
	Recipients []string `json:"recipients"`
	Message    string   `json:"message"`
	Location   string   `json:"location"`
	ImageURL   string   `json:"imageUrl"`
	Timestamp  int64    `json:"timestamp"`
	Date       string   `json:"date"`
}

type feed struct {
	Postcards []postcard `json:"postcards"`
}

type widgetData struct {
	ImageURL string `json:"imageUrl"`
	Sender   string `json:"sender"`
	Message  string `json:"message"`
	Location string `json:"location"`
	Date     string `json:"date"`
}

func sendPostcard(t *testing.T, ts *testServer, message string, recipients ...string) postcard {
	t.Helper()

	var p postcard
	status := ts.do(t, http.MethodPost, "/api/postcards", map[string]any{
		"message":    message,
		"recipients": recipients,
		"imageUrl":   "https://example.com/" + message + ".jpg",
	}, &p)
	require.Equal(t, http.StatusCreated, status)
	return p
}
