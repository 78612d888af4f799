package govtapi

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/attestia/sui-proxy/metrics"
	"golang.org/x/sync/singleflight"
)

// TokenCache holds at most one government API bearer token together with its
// expiry instant, and refreshes it before it goes stale. The cached pair is
// replaced atomically under the mutex; a reader never observes a token
// without its expiry.
//
// Concurrent callers that find the token stale collapse into one refresh via
// singleflight: exactly one authentication call reaches the provider, and
// every waiter receives the same token or the same error. Duplicate
// concurrent authentication calls trip the provider's rate limits and audit
// alarms, so this is a correctness property, not an optimization.
type TokenCache struct {
	auth          *Authenticator
	refreshMargin time.Duration
	log           *slog.Logger

	// now is swappable for expiry tests.
	now func() time.Time

	group singleflight.Group

	mu        sync.RWMutex
	token     string
	expiresAt time.Time
}

// NewTokenCache wraps an authenticator with a refresh margin. A margin of
// zero or less falls back to DefaultRefreshMargin.
func NewTokenCache(auth *Authenticator, refreshMargin time.Duration, log *slog.Logger) *TokenCache {
	if refreshMargin <= 0 {
		refreshMargin = DefaultRefreshMargin
	}
	return &TokenCache{
		auth:          auth,
		refreshMargin: refreshMargin,
		log:           log,
		now:           time.Now,
	}
}

// GetValidToken returns the cached token if it is still comfortably within
// its lifetime, refreshing it otherwise. On refresh failure the previous
// state is left untouched and the next call retries.
func (c *TokenCache) GetValidToken(ctx context.Context) (string, error) {
	if token, ok := c.cached(); ok {
		return token, nil
	}

	result, err, _ := c.group.Do("token", func() (any, error) {
		// A waiter that queued behind a completed refresh must not trigger
		// another one.
		if token, ok := c.cached(); ok {
			return token, nil
		}
		return c.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// cached returns the token if present and not yet within the refresh margin
// of its expiry.
func (c *TokenCache) cached() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == "" || !c.now().Before(c.expiresAt.Add(-c.refreshMargin)) {
		return "", false
	}
	return c.token, true
}

func (c *TokenCache) refresh(ctx context.Context) (string, error) {
	token, lifetime, err := c.auth.Authenticate(ctx)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("error").Inc()
		c.log.Error("Government API token refresh failed", "err", err)
		return "", err
	}

	expiresAt := c.now().Add(lifetime)
	c.mu.Lock()
	c.token = token
	c.expiresAt = expiresAt
	c.mu.Unlock()

	metrics.TokenRefreshesTotal.WithLabelValues("ok").Inc()
	c.log.Info("Government API token refreshed", "expiresAt", expiresAt)
	return token, nil
}
