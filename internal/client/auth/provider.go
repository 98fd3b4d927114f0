// Package auth manages the bearer credential for the remote blob store.
//
// The credential is obtained from the backend's auth flow, cached, and
// refreshed lazily shortly before it expires. Acquisition failure is an
// auth error, never a retryable transport error: the caller should send the
// user back through authentication instead of retrying the backup.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// refreshLeeway renews tokens slightly before their expiry so an in-flight
// request does not race the deadline.
const refreshLeeway = 30 * time.Second

// FetchFunc obtains a fresh credential. expiresAt may be zero when the
// endpoint does not report it; the provider then falls back to the token's
// own exp claim.
type FetchFunc func(ctx context.Context) (token string, expiresAt time.Time, err error)

// Provider caches one bearer credential. Safe for concurrent use.
type Provider struct {
	mu    sync.Mutex
	fetch FetchFunc

	token     string
	expiresAt time.Time

	now func() time.Time
}

func NewProvider(fetch FetchFunc) *Provider {
	return &Provider{fetch: fetch, now: time.Now}
}

// Token returns a valid credential, fetching or refreshing as needed.
func (p *Provider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && !p.expired() {
		return p.token, nil
	}

	token, expiresAt, err := p.fetch(ctx)
	if err != nil {
		p.token = ""
		if errors.Is(err, common.ErrUnauthorized) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", common.ErrUnauthorized, err)
	}

	if expiresAt.IsZero() {
		expiresAt = tokenExpiry(token)
	}

	p.token = token
	p.expiresAt = expiresAt
	return token, nil
}

// Invalidate drops the cached credential so the next Token call re-fetches.
// Called when the remote side rejects a request with an auth failure.
func (p *Provider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = ""
	p.expiresAt = time.Time{}
}

// expired must be called with mu held. A token with unknown expiry is kept
// until the remote side rejects it.
func (p *Provider) expired() bool {
	if p.expiresAt.IsZero() {
		return false
	}
	return !p.now().Add(refreshLeeway).Before(p.expiresAt)
}

// tokenExpiry reads the exp claim from a JWT without verifying the
// signature; the client only schedules refreshes with it, validation is the
// server's job. Returns zero for opaque non-JWT tokens.
func tokenExpiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
