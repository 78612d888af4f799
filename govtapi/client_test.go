package govtapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider stands in for both the auth endpoint and the verification
// endpoint of the government API.
func fakeProvider(t *testing.T, verify http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/authenticate", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"jwt-xyz"}`))
	})
	mux.HandleFunc("/kyc/pan/verify", verify)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(&ClientConfig{
		AuthURL:     srv.URL + "/authenticate",
		BaseURL:     srv.URL,
		Credentials: StaticCredentials("key-1", "secret-1"),
		Log:         testLogger(),
	})
}

func TestVerifyPAN_ForwardsBodyAndHeaders(t *testing.T) {
	var gotBody []byte
	var gotAuth, gotKey, gotContentType string
	srv := fakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotAuth = r.Header.Get("authorization")
		gotKey = r.Header.Get("x-api-key")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"code":200,"data":{"status":"valid"}}`))
	})

	client := newTestClient(srv)
	body := []byte(`{"pan":"ABCDE1234F","consent":"Y"}`)

	resp, err := client.VerifyPAN(context.Background(), body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"code":200,"data":{"status":"valid"}}`, string(resp.Body))
	assert.Equal(t, body, gotBody, "inbound body must be forwarded verbatim")
	assert.Equal(t, "jwt-xyz", gotAuth, "raw token, no Bearer prefix")
	assert.Equal(t, "key-1", gotKey)
	assert.Equal(t, "application/json", gotContentType)
}

func TestVerifyPAN_UpstreamRejectionPassedThrough(t *testing.T) {
	srv := fakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"bad pan"}`))
	})

	client := newTestClient(srv)

	resp, err := client.VerifyPAN(context.Background(), []byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.JSONEq(t, `{"error":"bad pan"}`, string(resp.Body))
}

func TestVerifyPAN_CredentialsMissing(t *testing.T) {
	verifyCalled := false
	srv := fakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		verifyCalled = true
	})

	client := NewClient(&ClientConfig{
		AuthURL:     srv.URL + "/authenticate",
		BaseURL:     srv.URL,
		Credentials: StaticCredentials("", ""),
		Log:         testLogger(),
	})

	_, err := client.VerifyPAN(context.Background(), []byte(`{}`))

	require.ErrorIs(t, err, ErrCredentialsMissing)
	assert.False(t, verifyCalled)
}

func TestVerifyPAN_TokenReusedAcrossCalls(t *testing.T) {
	authCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/authenticate", func(w http.ResponseWriter, r *http.Request) {
		authCalls++
		w.Write([]byte(`{"access_token":"jwt-once"}`))
	})
	mux.HandleFunc("/kyc/pan/verify", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(&ClientConfig{
		AuthURL:     srv.URL + "/authenticate",
		BaseURL:     srv.URL,
		Credentials: StaticCredentials("k", "s"),
		Log:         testLogger(),
	})

	for i := 0; i < 3; i++ {
		_, err := client.VerifyPAN(context.Background(), []byte(`{}`))
		require.NoError(t, err)
	}
	assert.Equal(t, 1, authCalls)
}
