package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/plinkolabs/plinko/internal/api/apierr"
)

// Throttle is an advisory per-caller request limiter: a UX guard against
// runaway clients, NOT a security boundary. The authoritative limits are
// the ledger's own precondition checks (turns remaining, cooldown
// elapsed, exact payment), which hold no matter how often a client calls.
func Throttle(perMinute int) func(http.Handler) http.Handler {
	limiter := &tokenBuckets{
		perMinute: perMinute,
		buckets:   make(map[string]*bucket),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := extractToken(r)
			if key == "" {
				key = r.RemoteAddr
			}
			if !limiter.allow(key, time.Now()) {
				apierr.WriteError(w, apierr.NewRateLimitedError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

type tokenBuckets struct {
	mu        sync.Mutex
	perMinute int
	buckets   map[string]*bucket
	lastPrune time.Time
}

func (t *tokenBuckets) allow(key string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.prune(now)

	b, ok := t.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(t.perMinute), lastSeen: now}
		t.buckets[key] = b
	}

	refill := now.Sub(b.lastSeen).Minutes() * float64(t.perMinute)
	b.tokens += refill
	if b.tokens > float64(t.perMinute) {
		b.tokens = float64(t.perMinute)
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// prune drops buckets idle for a full refill window, at most once per
// window. A bucket refills completely within a minute, so an evicted
// caller returns to a full budget either way and eviction is lossless.
func (t *tokenBuckets) prune(now time.Time) {
	if now.Sub(t.lastPrune) < time.Minute {
		return
	}
	for key, b := range t.buckets {
		if now.Sub(b.lastSeen) >= time.Minute {
			delete(t.buckets, key)
		}
	}
	t.lastPrune = now
}
