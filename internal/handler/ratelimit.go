package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
)

// idleClientTTL is how long an untouched client bucket is kept.
const idleClientTTL = 10 * time.Minute

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter keeps one token bucket per client address.
type clientLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	clients   map[string]*clientBucket
	lastPrune time.Time
	now       func() time.Time
}

// newClientLimiter returns a limiter allowing rps requests per second with
// the given burst. A non-positive rps disables limiting.
func newClientLimiter(rps float64, burst int) *clientLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	return &clientLimiter{
		limit:     limit,
		burst:     burst,
		clients:   make(map[string]*clientBucket),
		lastPrune: time.Now(),
		now:       time.Now,
	}
}

func (l *clientLimiter) allow(client string) bool {
	l.mu.Lock()
	now := l.now()
	if now.Sub(l.lastPrune) > idleClientTTL {
		l.prune(now)
	}
	b, ok := l.clients[client]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = b
	}
	b.lastSeen = now
	l.mu.Unlock()

	return b.limiter.AllowN(now, 1)
}

// prune drops buckets idle for longer than idleClientTTL. The caller holds
// the lock.
func (l *clientLimiter) prune(now time.Time) {
	for client, b := range l.clients {
		if now.Sub(b.lastSeen) > idleClientTTL {
			delete(l.clients, client)
		}
	}
	l.lastPrune = now
}

// rateLimit rejects requests from clients that exhausted their bucket.
func (h *Handler) rateLimit(c *gin.Context) {
	if !h.limiter.allow(c.ClientIP()) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
			Error:   "rate_limited",
			Message: "too many requests",
		})
		return
	}
	c.Next()
}
