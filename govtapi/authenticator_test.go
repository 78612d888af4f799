package govtapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthenticate_Success(t *testing.T) {
	var gotKey, gotSecret string
	var gotBody []byte
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotSecret = r.Header.Get("x-api-secret")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"access_token":"jwt-abc"}`))
	}))
	defer upstream.Close()

	auth := NewAuthenticator(upstream.URL, StaticCredentials("key-1", "secret-1"), 24*time.Hour, testLogger())

	token, lifetime, err := auth.Authenticate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "jwt-abc", token)
	assert.Equal(t, 24*time.Hour, lifetime)
	assert.Equal(t, "key-1", gotKey)
	assert.Equal(t, "secret-1", gotSecret)
	// Credentials go out as headers only, never in the request body.
	assert.Empty(t, gotBody)
}

func TestAuthenticate_NonSuccessStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid key"}`))
	}))
	defer upstream.Close()

	auth := NewAuthenticator(upstream.URL, StaticCredentials("k", "s"), 0, testLogger())

	_, _, err := auth.Authenticate(context.Background())

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Contains(t, authErr.Body, "invalid key")
}

func TestAuthenticate_MissingTokenField(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"something_else":"x"}`))
	}))
	defer upstream.Close()

	auth := NewAuthenticator(upstream.URL, StaticCredentials("k", "s"), 0, testLogger())

	_, _, err := auth.Authenticate(context.Background())

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Contains(t, authErr.Body, "no access_token")
}

func TestAuthenticate_CredentialsMissing(t *testing.T) {
	calls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer upstream.Close()

	auth := NewAuthenticator(upstream.URL, StaticCredentials("", ""), 0, testLogger())

	_, _, err := auth.Authenticate(context.Background())

	require.ErrorIs(t, err, ErrCredentialsMissing)
	assert.Equal(t, 0, calls, "no outbound call may happen without credentials")
}
