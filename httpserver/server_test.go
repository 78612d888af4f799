package httpserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/attestia/sui-proxy/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(&fakeRunner{}, &fakeVerifier{}, logger)
	srv, err := New(&HTTPServerConfig{
		ListenAddr:               "127.0.0.1:0",
		Log:                      logger,
		DrainDuration:            10 * time.Millisecond,
		GracefulShutdownDuration: time.Second,
		ReadTimeout:              time.Second,
		WriteTimeout:             time.Second,
	}, handler)
	require.NoError(t, err)
	return srv
}

func getStatus(t *testing.T, router http.Handler, path string) (int, api.HealthResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	resp := w.Result()
	defer resp.Body.Close()
	var health api.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	return resp.StatusCode, health
}

func TestReadinessAndDrain(t *testing.T) {
	srv := testServer(t)
	router := srv.getRouter()

	status, health := getStatus(t, router, "/readyz")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", health.Status)

	status, health = getStatus(t, router, "/drain")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "draining", health.Status)

	status, _ = getStatus(t, router, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, status)

	status, health = getStatus(t, router, "/undrain")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", health.Status)

	status, _ = getStatus(t, router, "/readyz")
	assert.Equal(t, http.StatusOK, status)
}

func TestLiveness(t *testing.T) {
	srv := testServer(t)

	status, health := getStatus(t, srv.getRouter(), "/livez")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alive", health.Status)
}

func TestPanicRecoveryEnvelope(t *testing.T) {
	srv := testServer(t)

	// Panicking handler mounted through the same recovery middleware the
	// router uses.
	wrapped := srv.recoverPanics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var errResp api.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.False(t, errResp.Success)
	assert.NotEmpty(t, errResp.Error)
}
