package chi

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/juju/ratelimit"
)

// ClientRateLimiter keeps one token bucket per client IP.
type ClientRateLimiter struct {
	mu       sync.RWMutex
	clients  map[string]*ratelimit.Bucket
	rate     float64
	capacity int64
}

// NewClientRateLimiter creates a limiter refilling rate tokens per second up to capacity.
func NewClientRateLimiter(rate float64, capacity int64) *ClientRateLimiter {
	return &ClientRateLimiter{
		clients:  make(map[string]*ratelimit.Bucket),
		rate:     rate,
		capacity: capacity,
	}
}

func (rl *ClientRateLimiter) bucket(clientIP string) *ratelimit.Bucket {
	rl.mu.RLock()
	b, ok := rl.clients[clientIP]
	rl.mu.RUnlock()
	if ok {
		return b
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if b, ok = rl.clients[clientIP]; !ok {
		b = ratelimit.NewBucketWithRate(rl.rate, rl.capacity)
		rl.clients[clientIP] = b
	}
	return b
}

// Allow takes one token from the client's bucket.
func (rl *ClientRateLimiter) Allow(clientIP string) bool {
	return rl.bucket(clientIP).TakeAvailable(1) == 1
}

// Prune drops buckets that have refilled completely.
func (rl *ClientRateLimiter) Prune() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, b := range rl.clients {
		if b.Available() == b.Capacity() {
			delete(rl.clients, ip)
		}
	}
}

// Len returns the number of tracked clients.
func (rl *ClientRateLimiter) Len() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.clients)
}

// RunPruner calls Prune every interval until ctx is done.
func (rl *ClientRateLimiter) RunPruner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Prune()
		}
	}
}

// Middleware rejects requests with 429 once the client's bucket is empty.
func (rl *ClientRateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b := rl.bucket(clientIP(r))
			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(b.Capacity(), 10))

			if b.TakeAvailable(1) < 1 {
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(rl.rate)))
				writeError(w, http.StatusTooManyRequests, ErrorResponseCodeRateLimited, "rate limit exceeded")
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(b.Available(), 10))
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr. chi's RealIP middleware runs first when enabled.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func retryAfterSeconds(rate float64) int {
	if rate <= 0 {
		return 60
	}
	s := int(1 / rate)
	if s < 1 {
		return 1
	}
	return s
}
