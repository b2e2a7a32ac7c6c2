package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	rateLimitMessage = "Too many requests, please try again later"
	sweepInterval    = time.Minute
)

// RateLimitRule admits Burst requests at once and refills at Rate per second.
// A zero Rate or Burst disables limiting.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

// RateLimiter enforces one rule per client key with the generic cell rate
// algorithm: each key stores only the time its allowance is fully spent.
type RateLimiter struct {
	rule RateLimitRule
	now  func() time.Time

	mu    sync.Mutex
	tat   map[string]time.Time
	swept time.Time
}

// NewRateLimiter returns a limiter for rule using now as its clock (time.Now if nil).
func NewRateLimiter(rule RateLimitRule, now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{rule: rule, now: now, tat: make(map[string]time.Time)}
}

func (l *RateLimiter) enabled() bool {
	return l != nil && l.rule.Rate > 0 && l.rule.Burst > 0
}

// Allow admits one request for key, or reports how long until one would be admitted.
func (l *RateLimiter) Allow(key string) (bool, time.Duration) {
	if !l.enabled() {
		return true, 0
	}
	interval := time.Duration(float64(time.Second) / l.rule.Rate)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweepLocked(now)

	tat, ok := l.tat[key]
	if !ok || tat.Before(now) {
		tat = now
	}
	next := tat.Add(interval)
	allowAt := next.Add(-time.Duration(l.rule.Burst) * interval)
	if now.Before(allowAt) {
		return false, allowAt.Sub(now)
	}
	l.tat[key] = next
	return true, 0
}

// sweepLocked drops keys whose allowance has fully refilled; they behave like new keys.
func (l *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.swept) < sweepInterval {
		return
	}
	for key, tat := range l.tat {
		if !tat.After(now) {
			delete(l.tat, key)
		}
	}
	l.swept = now
}

// Tracked returns the number of keys currently held.
func (l *RateLimiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tat)
}

// RateLimit rejects requests over the limiter's rule, keyed on client IP,
// with 429 and a Retry-After header.
func RateLimit(l *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, wait := l.Allow(c.ClientIP())
		if ok {
			c.Next()
			return
		}
		ms := int(math.Ceil(float64(wait) / float64(time.Millisecond)))
		if ms < 1 {
			ms = 1
		}
		c.Header("Retry-After", strconv.Itoa((ms+999)/1000))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":        rateLimitMessage,
			"retryAfterMs": ms,
		})
	}
}
