package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/shopledger/backend/internal/interfaces/http/dto"
)

// KeyFunc picks the bucket a request is counted against
type KeyFunc func(c *gin.Context) string

// ByClientIP counts requests per client address
func ByClientIP(c *gin.Context) string {
	return c.ClientIP()
}

// ByShop counts requests per shop, falling back to the client address
func ByShop(c *gin.Context) string {
	if id := c.GetString(ShopIDKey); id != "" {
		return "shop:" + id
	}
	return "ip:" + c.ClientIP()
}

// RateLimiter keeps one token bucket per key. Buckets unused for idleTTL
// are dropped on the next sweep.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows perSecond requests per key with the given burst
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		now:      time.Now,
	}
}

// NewWindowRateLimiter allows requests per window per key, bursting up to requests
func NewWindowRateLimiter(requests int, window time.Duration) *RateLimiter {
	if requests < 1 || window <= 0 {
		return NewRateLimiter(float64(rate.Inf), 1)
	}
	return NewRateLimiter(float64(requests)/window.Seconds(), requests)
}

// Allow reports whether a request for key may proceed now
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	entry, ok := rl.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// Burst returns the bucket size
func (rl *RateLimiter) Burst() int {
	return rl.burst
}

func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.idleTTL {
		return
	}
	for key, entry := range rl.limiters {
		if now.Sub(entry.lastSeen) > rl.idleTTL {
			delete(rl.limiters, key)
		}
	}
	rl.lastSweep = now
}

// RateLimit rejects requests over the limiter's budget with 429
func RateLimit(rl *RateLimiter, key KeyFunc) gin.HandlerFunc {
	if key == nil {
		key = ByClientIP
	}
	return func(c *gin.Context) {
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.Burst()))
		if !rl.Allow(key(c)) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRateLimited, "Too many requests, slow down", GetRequestID(c)))
			return
		}
		c.Next()
	}
}
