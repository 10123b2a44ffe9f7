package auth

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"go.uber.org/zap"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

type fakeProvider struct {
	mu      sync.Mutex
	fetches int32
	token   string
	err     error
	block   chan struct{}
}

func (p *fakeProvider) Fetch(ctx context.Context) (string, error) {
	atomic.AddInt32(&p.fetches, 1)
	if p.block != nil {
		<-p.block
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token, p.err
}

func (p *fakeProvider) count() int32 {
	return atomic.LoadInt32(&p.fetches)
}

func TestTokenServesCachedUntilExpiryBuffer(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{token: signedToken(t, time.Now().Add(time.Hour))}
	cache := NewCache(provider, zap.NewNop())

	first := cache.Token(context.Background())
	if first == "" {
		t.Fatalf("expected a token")
	}
	second := cache.Token(context.Background())
	if second != first {
		t.Fatalf("expected cached token, got a different one")
	}
	if provider.count() != 1 {
		t.Fatalf("expected 1 fetch, got %d", provider.count())
	}
}

func TestTokenRefreshesInsideExpiryBuffer(t *testing.T) {
	t.Parallel()

	// Expires in 30s, inside the one-minute buffer, so every call
	// refreshes.
	provider := &fakeProvider{token: signedToken(t, time.Now().Add(30*time.Second))}
	cache := NewCache(provider, zap.NewNop())

	cache.Token(context.Background())
	cache.Token(context.Background())

	if provider.count() != 2 {
		t.Fatalf("expected 2 fetches, got %d", provider.count())
	}
}

func TestTokenCoalescesConcurrentRefreshes(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		token: signedToken(t, time.Now().Add(time.Hour)),
		block: make(chan struct{}),
	}
	cache := NewCache(provider, zap.NewNop())

	const callers = 16
	var wg sync.WaitGroup
	tokens := make([]string, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i] = cache.Token(context.Background())
		}(i)
	}

	// Give the goroutines time to pile onto the in-flight fetch.
	time.Sleep(50 * time.Millisecond)
	close(provider.block)
	wg.Wait()

	if provider.count() != 1 {
		t.Fatalf("expected a single coalesced fetch, got %d", provider.count())
	}
	for i, tok := range tokens {
		if tok != tokens[0] {
			t.Fatalf("caller %d got a different token", i)
		}
	}
}

func TestTokenProviderFailureReturnsEmpty(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{err: errors.New("session endpoint down")}
	cache := NewCache(provider, zap.NewNop())

	if tok := cache.Token(context.Background()); tok != "" {
		t.Fatalf("expected empty token on provider failure, got %q", tok)
	}

	// Recovery: the provider comes back and the next call succeeds.
	provider.mu.Lock()
	provider.err = nil
	provider.token = signedToken(t, time.Now().Add(time.Hour))
	provider.mu.Unlock()

	if tok := cache.Token(context.Background()); tok == "" {
		t.Fatalf("expected token after provider recovery")
	}
}

func TestTokenUndecodableExpiryServedOnce(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{token: "opaque-not-a-jwt"}
	cache := NewCache(provider, zap.NewNop())

	if tok := cache.Token(context.Background()); tok != "opaque-not-a-jwt" {
		t.Fatalf("expected opaque token to be served, got %q", tok)
	}
	cache.Token(context.Background())

	if provider.count() != 2 {
		t.Fatalf("expected undecodable expiry to force a refetch, got %d fetches", provider.count())
	}
}

func TestClearDropsToken(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{token: signedToken(t, time.Now().Add(time.Hour))}
	cache := NewCache(provider, zap.NewNop())

	cache.Token(context.Background())
	cache.Clear()

	if !cache.Expiry().IsZero() {
		t.Fatalf("expected zero expiry after Clear")
	}

	cache.Token(context.Background())
	if provider.count() != 2 {
		t.Fatalf("expected refetch after Clear, got %d fetches", provider.count())
	}
}

func TestDecodeExpiry(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	got, ok := decodeExpiry(signedToken(t, exp))
	if !ok {
		t.Fatalf("expected expiry to decode")
	}
	if !got.Equal(exp) {
		t.Fatalf("expected expiry %v, got %v", exp, got)
	}

	if _, ok := decodeExpiry("garbage"); ok {
		t.Fatalf("expected garbage token to fail decoding")
	}
}
