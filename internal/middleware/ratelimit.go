package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// tokenBucket refills at a fixed rate up to a burst capacity.
type tokenBucket struct {
	tokens     float64
	capacity   float64
	refillRate float64
	lastRefill time.Time
}

func (b *tokenBucket) allow(now time.Time) bool {
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * b.refillRate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// RateLimiter applies a per-client token bucket keyed by client IP. Idle
// buckets are evicted periodically.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*tokenBucket

	requestsPerMinute int
	burst             int
	now               func() time.Time
}

func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 120
	}
	if burst <= 0 {
		burst = requestsPerMinute / 6
		if burst < 1 {
			burst = 1
		}
	}
	rl := &RateLimiter{
		buckets:           make(map[string]*tokenBucket),
		requestsPerMinute: requestsPerMinute,
		burst:             burst,
		now:               time.Now,
	}
	go rl.evictLoop()
	return rl
}

// Allow reports whether the client may proceed.
func (rl *RateLimiter) Allow(clientKey string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[clientKey]
	if !ok {
		b = &tokenBucket{
			tokens:     float64(rl.burst),
			capacity:   float64(rl.burst),
			refillRate: float64(rl.requestsPerMinute) / 60.0,
			lastRefill: now,
		}
		rl.buckets[clientKey] = b
	}
	return b.allow(now)
}

func (rl *RateLimiter) evictLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := rl.now().Add(-10 * time.Minute)
		rl.mu.Lock()
		for key, b := range rl.buckets {
			if b.lastRefill.Before(cutoff) {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware returns the gin handler enforcing the limit.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    42900,
				"message": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
