package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// Whether to fail closed (reject) when Redis is unavailable
	FailClosed bool
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// sweepEvery bounds how often the in-memory store drops expired windows.
const sweepEvery = 5 * time.Minute

type rateLimitEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

// RateLimiter counts requests in Redis when a client is available and in
// process memory otherwise.
type RateLimiter struct {
	redis *goredis.Client

	store     sync.Map
	sweepMu   sync.Mutex
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter returns a limiter backed by client. A nil client selects
// the in-memory store.
func NewRateLimiter(client *goredis.Client) *RateLimiter {
	return &RateLimiter{redis: client, now: time.Now}
}

// GlobalRateLimitConfig limits every request by client IP.
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// ApplyRateLimitConfig limits job applications per authenticated caller.
func ApplyRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:apply:",
		KeyFunc: func(c *gin.Context) string {
			if id := c.GetString(string(domain.KeyUserID)); id != "" {
				return id
			}
			return c.ClientIP()
		},
	}
}

// Middleware enforces config on every request it sees.
func (l *RateLimiter) Middleware(config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)

		var count int
		var resetAt time.Time
		if l.redis != nil {
			var err error
			count, resetAt, err = l.checkRedis(c.Request.Context(), fullKey, config)
			if err != nil {
				logger.Log.Warn("Rate limit store unavailable", "error", err, "request_id", requestID(c))
				if config.FailClosed {
					response.Abort(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.")
					return
				}
				count, resetAt = l.checkInMemory(fullKey, config)
			}
		} else {
			count, resetAt = l.checkInMemory(fullKey, config)
		}

		if count > config.Limit {
			retryAfter := int(resetAt.Sub(l.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Info("Rate limit triggered",
				"key_prefix", config.KeyPrefix,
				"ip", c.ClientIP(),
				"path", c.FullPath(),
				"request_id", requestID(c),
			)
			response.Abort(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}

		remaining := config.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))
		c.Next()
	}
}

// checkRedis checks rate limit using Redis with atomic Lua script
func (l *RateLimiter) checkRedis(ctx context.Context, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())

	result, err := l.redis.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), l.now().Add(time.Duration(ttl) * time.Second), nil
}

func (l *RateLimiter) checkInMemory(key string, config RateLimitConfig) (int, time.Time) {
	now := l.now()
	l.sweep(now)

	entryI, _ := l.store.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(config.Window)})
	entry := entryI.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(config.Window)
	}
	entry.count++
	return entry.count, entry.resetAt
}

// sweep drops expired entries at most once per sweepEvery, on the request
// path instead of a background goroutine.
func (l *RateLimiter) sweep(now time.Time) {
	l.sweepMu.Lock()
	if now.Sub(l.lastSweep) < sweepEvery {
		l.sweepMu.Unlock()
		return
	}
	l.lastSweep = now
	l.sweepMu.Unlock()

	l.store.Range(func(key, value interface{}) bool {
		entry := value.(*rateLimitEntry)
		entry.mu.Lock()
		if now.After(entry.resetAt) {
			l.store.Delete(key)
		}
		entry.mu.Unlock()
		return true
	})
}
