package govtapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const verifyTimeout = 60 * time.Second

// ClientConfig configures the government API client.
type ClientConfig struct {
	// AuthURL is the authentication endpoint. Defaults to DefaultAuthURL.
	AuthURL string

	// BaseURL is the API base for verification calls. Defaults to
	// DefaultBaseURL.
	BaseURL string

	// Credentials supplies the API key pair at call time. Defaults to
	// EnvCredentials.
	Credentials CredentialSource

	// TokenLifetime and RefreshMargin tune the credential cache. Zero values
	// fall back to the 24h/1h provider defaults.
	TokenLifetime time.Duration
	RefreshMargin time.Duration

	Log *slog.Logger
}

// UpstreamResponse carries the government API status and body verbatim.
// Provider rejections are passed through to the inbound caller unchanged.
type UpstreamResponse struct {
	StatusCode int
	Body       []byte
}

// Client calls the government KYC API, attaching a bearer token from the
// credential cache to every request.
type Client struct {
	baseURL string
	creds   CredentialSource
	tokens  *TokenCache
	client  *http.Client
	log     *slog.Logger
}

// NewClient builds a client plus its authenticator and token cache.
func NewClient(cfg *ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	creds := cfg.Credentials
	if creds == nil {
		creds = EnvCredentials
	}
	auth := NewAuthenticator(cfg.AuthURL, creds, cfg.TokenLifetime, cfg.Log)
	return &Client{
		baseURL: baseURL,
		creds:   creds,
		tokens:  NewTokenCache(auth, cfg.RefreshMargin, cfg.Log),
		client:  &http.Client{Timeout: verifyTimeout},
		log:     cfg.Log,
	}
}

// Tokens exposes the credential cache, used by the startup credential check.
func (c *Client) Tokens() *TokenCache {
	return c.tokens
}

// CredentialsConfigured reports whether an API key pair is currently
// available from the configured source.
func (c *Client) CredentialsConfigured() bool {
	return !c.creds().Missing()
}

// VerifyPAN forwards the inbound JSON body verbatim to the PAN verification
// endpoint. The upstream status and body are returned unchanged whether or
// not the provider accepted the call; only credential/authentication
// problems and transport failures surface as errors.
func (c *Client) VerifyPAN(ctx context.Context, body []byte) (*UpstreamResponse, error) {
	token, err := c.tokens.GetValidToken(ctx)
	if err != nil {
		return nil, err
	}

	url := c.baseURL + "/kyc/pan/verify"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	// The provider expects the raw JWT here, not an RFC 6750 "Bearer" prefix.
	req.Header.Set("authorization", token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.creds().APIKey)

	c.log.Info("Forwarding PAN verification request", "url", url)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("government API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading government API response: %w", err)
	}

	c.log.Info("Government API responded", "status", resp.StatusCode)
	return &UpstreamResponse{StatusCode: resp.StatusCode, Body: respBody}, nil
}
