package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/Jcepedarey/emmita-backend/app/metrics"
	apperrors "github.com/Jcepedarey/emmita-backend/app/utils/errors"
)

const (
	visitorCleanupInterval = 5 * time.Minute
	visitorIdleTimeout     = 30 * time.Minute
)

// RateLimitRule is a per-IP allowance of Max requests per Window.
type RateLimitRule struct {
	Name    string
	Max     int
	Window  time.Duration
	Message string
}

// RateLimiter enforces one RateLimitRule per client IP with token buckets
// that refill at Max/Window and hold at most Max tokens.
type RateLimiter struct {
	rule     RateLimitRule
	limit    rate.Limit
	visitors map[string]*visitor
	mu       sync.Mutex
	stop     chan struct{}
	stopOnce sync.Once
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter and starts its cleanup loop. Call Stop to
// release the goroutine.
func NewRateLimiter(rule RateLimitRule) *RateLimiter {
	rl := &RateLimiter{
		rule:     rule,
		limit:    rate.Limit(float64(rule.Max) / rule.Window.Seconds()),
		visitors: make(map[string]*visitor),
		stop:     make(chan struct{}),
	}
	go rl.cleanupVisitors()
	return rl
}

// Middleware rejects requests over the allowance with 429 and Retry-After.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limiter := rl.get(c.RealIP())
			headers := c.Response().Header()
			headers.Set("RateLimit-Limit", strconv.Itoa(rl.rule.Max))

			reservation := limiter.Reserve()
			if d := reservation.Delay(); d > 0 {
				// Return the token; this request is rejected.
				reservation.Cancel()
				retryAfter := int(math.Ceil(d.Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				headers.Set(echo.HeaderRetryAfter, strconv.Itoa(retryAfter))
				headers.Set("RateLimit-Remaining", "0")
				metrics.RecordRateLimited(rl.rule.Name)
				return apperrors.New(apperrors.ErrCodeRateLimitExceeded, rl.rule.Message)
			}

			remaining := int(math.Max(0, math.Floor(limiter.Tokens())))
			headers.Set("RateLimit-Remaining", strconv.Itoa(remaining))

			return next(c)
		}
	}
}

// Stop ends the cleanup loop. It is safe to call multiple times.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) get(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.rule.Max)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) cleanupVisitors() {
	ticker := time.NewTicker(visitorCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for ip, v := range rl.visitors {
				if time.Since(v.lastSeen) > visitorIdleTimeout {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}
