package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"scorecard/internal/transport/http/api"
)

// KeyFunc derives the bucket a request is counted against.
type KeyFunc func(r *http.Request) string

type LimitOption func(*limiter)

// WithKeyFunc replaces the default actor-or-IP key.
func WithKeyFunc(fn KeyFunc) LimitOption {
	return func(l *limiter) {
		if fn != nil {
			l.keyFn = fn
		}
	}
}

// WithClock is used by tests to control window expiry.
func WithClock(now func() time.Time) LimitOption {
	return func(l *limiter) {
		if now != nil {
			l.now = now
		}
	}
}

type bucket struct {
	hits  int
	reset time.Time
}

// limiter is a fixed-window counter per key. Expired buckets are swept once
// the table grows past sweepThreshold.
type limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	keyFn   KeyFunc
	now     func() time.Time
	buckets map[string]*bucket
}

const sweepThreshold = 4096

// RateLimit caps requests per key within window. A non-positive limit
// disables the check.
func RateLimit(limit int, window time.Duration, opts ...LimitOption) func(http.Handler) http.Handler {
	l := &limiter{
		limit:   limit,
		window:  window,
		keyFn:   ActorOrIPKey,
		now:     time.Now,
		buckets: map[string]*bucket{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l.allow(w, r) {
				next.ServeHTTP(w, r)
			}
		})
	}
}

// ActorOrIPKey counts authenticated callers per tenant user and anonymous
// callers per client address.
func ActorOrIPKey(r *http.Request) string {
	if user, ok := GetUser(r.Context()); ok && user.UserID != "" {
		return "user:" + user.TenantID + ":" + user.UserID
	}
	return "ip:" + ClientIP(r)
}

// TenantKey shares one bucket across every caller of a tenant.
func TenantKey(r *http.Request) string {
	if user, ok := GetUser(r.Context()); ok && user.TenantID != "" {
		return "tenant:" + user.TenantID
	}
	return ""
}

func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
		return host
	}
	return addr
}

func (l *limiter) allow(w http.ResponseWriter, r *http.Request) bool {
	if l.limit <= 0 {
		return true
	}
	key := l.keyFn(r)
	if key == "" {
		key = "ip:" + ClientIP(r)
	}

	now := l.now()
	l.mu.Lock()
	if len(l.buckets) > sweepThreshold {
		l.sweep(now)
	}
	b, ok := l.buckets[key]
	if !ok || !now.Before(b.reset) {
		b = &bucket{reset: now.Add(l.window)}
		l.buckets[key] = b
	}
	b.hits++
	hits, reset := b.hits, b.reset
	l.mu.Unlock()

	resetIn := ceilSeconds(reset.Sub(now))
	header := w.Header()
	header.Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
	header.Set("X-RateLimit-Remaining", strconv.Itoa(max(l.limit-hits, 0)))
	header.Set("X-RateLimit-Reset", strconv.Itoa(resetIn))

	if hits <= l.limit {
		return true
	}
	header.Set("Retry-After", strconv.Itoa(max(resetIn, 1)))
	slog.Warn("rate limit exceeded",
		"key", key,
		"path", r.URL.Path,
		"limit", l.limit,
		"windowSec", int(l.window.Seconds()),
		"requestId", GetRequestID(r.Context()),
	)
	api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
	return false
}

func (l *limiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if !now.Before(b.reset) {
			delete(l.buckets, key)
		}
	}
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
