package govtapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"
)

const (
	// DefaultAuthURL is the government API authentication endpoint.
	DefaultAuthURL = "https://api.sandbox.co.in/authenticate"

	// DefaultBaseURL is the government API base used for verification calls.
	DefaultBaseURL = "https://api.sandbox.co.in"

	// DefaultTokenLifetime is the nominal validity the provider grants per
	// token.
	DefaultTokenLifetime = 24 * time.Hour

	// DefaultRefreshMargin is how long before nominal expiry a token is
	// treated as stale and proactively renewed.
	DefaultRefreshMargin = time.Hour

	authTimeout = 30 * time.Second

	// maxResponseSize bounds upstream response bodies (1MB).
	maxResponseSize = 1024 * 1024
)

// Credentials holds the static API key pair for the government API.
type Credentials struct {
	APIKey    string
	APISecret string
}

// Missing reports whether either credential is unset.
func (c Credentials) Missing() bool {
	return c.APIKey == "" || c.APISecret == ""
}

// CredentialSource supplies credentials at call time. Credentials are never
// cached beyond a single lookup, so rotating the source takes effect on the
// next authentication.
type CredentialSource func() Credentials

// EnvCredentials reads GOVT_API_KEY and GOVT_API_SECRET from the process
// environment on every call.
func EnvCredentials() Credentials {
	return Credentials{
		APIKey:    os.Getenv("GOVT_API_KEY"),
		APISecret: os.Getenv("GOVT_API_SECRET"),
	}
}

// StaticCredentials returns a source that always yields the given pair.
func StaticCredentials(apiKey, apiSecret string) CredentialSource {
	return func() Credentials {
		return Credentials{APIKey: apiKey, APISecret: apiSecret}
	}
}

// Authenticator performs the out-of-band authentication exchange: API key and
// secret go out as headers, a bearer token with a nominal lifetime comes
// back. It does not retry; retry policy belongs to the next GetValidToken
// call on the cache.
type Authenticator struct {
	authURL  string
	creds    CredentialSource
	lifetime time.Duration
	client   *http.Client
	log      *slog.Logger
}

// NewAuthenticator creates an authenticator against authURL. Empty arguments
// fall back to package defaults.
func NewAuthenticator(authURL string, creds CredentialSource, lifetime time.Duration, log *slog.Logger) *Authenticator {
	if authURL == "" {
		authURL = DefaultAuthURL
	}
	if creds == nil {
		creds = EnvCredentials
	}
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	return &Authenticator{
		authURL:  authURL,
		creds:    creds,
		lifetime: lifetime,
		client:   &http.Client{Timeout: authTimeout},
		log:      log,
	}
}

// Authenticate exchanges the configured credentials for a bearer token and
// its nominal lifetime. Credentials travel as headers, never in the body. A
// non-success status, transport failure, or a response without access_token
// is a hard AuthError.
func (a *Authenticator) Authenticate(ctx context.Context) (string, time.Duration, error) {
	creds := a.creds()
	if creds.Missing() {
		return "", 0, ErrCredentialsMissing
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.authURL, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-api-key", creds.APIKey)
	req.Header.Set("x-api-secret", creds.APISecret)

	a.log.Info("Authenticating with government API", "url", a.authURL)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", 0, &AuthError{Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", 0, &AuthError{StatusCode: resp.StatusCode, Body: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", 0, &AuthError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.AccessToken == "" {
		return "", 0, &AuthError{StatusCode: resp.StatusCode, Body: "no access_token in auth response"}
	}

	a.log.Info("Successfully authenticated with government API")
	return parsed.AccessToken, a.lifetime, nil
}
