// Package auth holds the session token cache. The cache is the only piece
// of state in the client shared across concurrent callers, so it carries
// the process's one explicit mutual-exclusion requirement: never more than
// one outstanding token fetch.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"
	"go.uber.org/zap"
)

// ExpiryBuffer treats tokens as expired a minute early to absorb clock
// skew and in-flight request latency.
const ExpiryBuffer = time.Minute

// Provider is the upstream token source (the identity-provider session
// endpoint in production, a fake in tests).
type Provider interface {
	Fetch(ctx context.Context) (string, error)
}

type Cache struct {
	provider Provider
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	token    string
	expiry   time.Time
	inflight chan struct{}
}

func NewCache(provider Provider, logger *zap.Logger) *Cache {
	return &Cache{
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}
}

// Token returns a valid bearer token or "" when none can be obtained.
// Provider failures are never raised; callers proceed unauthenticated and
// let the backend's own 401 surface downstream.
//
// A cached token is served while expiry-ExpiryBuffer is still ahead of
// now. When a refresh is already running, every caller waits on the same
// fetch rather than issuing its own.
func (c *Cache) Token(ctx context.Context) string {
	c.mu.Lock()

	if c.token != "" && c.expiry.Add(-ExpiryBuffer).After(c.now()) {
		tok := c.token
		c.mu.Unlock()
		return tok
	}

	if c.inflight != nil {
		done := c.inflight
		c.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return ""
		}
		c.mu.Lock()
		tok := c.token
		c.mu.Unlock()
		return tok
	}

	done := make(chan struct{})
	c.inflight = done
	c.mu.Unlock()

	tok, err := c.provider.Fetch(ctx)

	c.mu.Lock()
	if err != nil {
		c.token = ""
		c.expiry = time.Time{}
		c.logger.Warn("token refresh failed", zap.Error(err))
	} else {
		c.token = tok
		if exp, ok := decodeExpiry(tok); ok {
			c.expiry = exp
		} else {
			// Undecodable expiry: hand the token out once, refresh on
			// the next call.
			c.expiry = c.now()
			c.logger.Warn("failed to decode token expiry")
		}
	}
	c.inflight = nil
	close(done)
	tok = c.token
	c.mu.Unlock()

	return tok
}

// Clear drops the cached token, used on logout. An in-flight refresh is
// left to finish on its own.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.token = ""
	c.expiry = time.Time{}
	c.mu.Unlock()
}

// Expiry reports the cached token's recorded expiry, zero when absent.
func (c *Cache) Expiry() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expiry
}

func decodeExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(exp), 0), true
}
