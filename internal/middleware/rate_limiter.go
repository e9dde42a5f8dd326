package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/yery-max/Proyecto-final/internal/apierror"
)

// clientWindow counts requests of one client inside a fixed window.
type clientWindow struct {
	count     int
	windowEnd time.Time
}

// RateLimiter caps requests per client IP in fixed windows. It guards the
// endpoints that render files or rewrite the whole state.
type RateLimiter struct {
	limit   int
	window  time.Duration
	now     func() time.Time
	mu      sync.Mutex
	clients map[string]*clientWindow
	sweep   time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		clients: make(map[string]*clientWindow),
	}
}

// Allow records one request of client and reports whether it fits the
// window, plus the time the current window ends.
func (l *RateLimiter) Allow(client string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.After(l.sweep) {
		l.purge(now)
		l.sweep = now.Add(5 * l.window)
	}

	entry, ok := l.clients[client]
	if !ok || now.After(entry.windowEnd) {
		entry = &clientWindow{windowEnd: now.Add(l.window)}
		l.clients[client] = entry
	}
	entry.count++
	return entry.count <= l.limit, entry.windowEnd
}

// purge drops expired windows. Caller holds mu.
func (l *RateLimiter) purge(now time.Time) {
	purged := 0
	for client, entry := range l.clients {
		if now.After(entry.windowEnd) {
			delete(l.clients, client)
			purged++
		}
	}
	if purged > 0 {
		log.Debug().Int("purged", purged).Int("remaining", len(l.clients)).Msg("rate limiter purged")
	}
}

// Middleware rejects requests over the limit with 429 and Retry-After.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := l.Allow(c.ClientIP())
		if !ok {
			retry := int(time.Until(windowEnd).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}
