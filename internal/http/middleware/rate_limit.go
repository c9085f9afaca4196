package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/utils"
)

// RateLimiter is a fixed-window per-IP limiter for the auth endpoints,
// mainly to slow down password guessing.
type RateLimiter struct {
	limit     int
	mu        sync.Mutex
	items     map[string]*rateEntry
	lastSweep time.Time
}

type rateEntry struct {
	count int
	reset time.Time
}

func NewRateLimiter(limit int) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		items:     make(map[string]*rateEntry),
		lastSweep: time.Now(),
	}
}

// sweepLocked drops entries whose window has lapsed, so the map does not
// grow without bound across distinct client IPs. Caller holds rl.mu.
func (rl *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(rl.lastSweep) < time.Minute {
		return
	}
	for ip, entry := range rl.items {
		if now.After(entry.reset) {
			delete(rl.items, ip)
		}
	}
	rl.lastSweep = now
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rl.mu.Lock()
		rl.sweepLocked(now)
		entry, ok := rl.items[ip]
		if !ok || now.After(entry.reset) {
			entry = &rateEntry{count: 0, reset: now.Add(time.Minute)}
			rl.items[ip] = entry
		}
		entry.count++
		count := entry.count
		reset := entry.reset
		rl.mu.Unlock()

		if count > rl.limit {
			retry := int(time.Until(reset).Seconds())
			c.Header("Retry-After", fmt.Sprintf("%d", retry))
			utils.RespondError(c, utils.NewAppError(http.StatusTooManyRequests, "RATE_LIMIT", "too many requests", nil))
			c.Abort()
			return
		}

		c.Next()
	}
}
