package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"ninetytozero-backend/internal/delivery/http/response"
	"ninetytozero-backend/pkg/apperror"
	"ninetytozero-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: client IP)
	KeyFunc func(*gin.Context) string
	// Key prefix, also separates in-memory buckets
	KeyPrefix string
	// Reject requests when Redis errors instead of falling back to memory
	FailClosed bool
}

// GlobalRateLimitConfig is the per-IP budget applied to every route.
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		KeyFunc:   clientIP,
	}
}

// LoginRateLimitConfig is the stricter per-IP budget for credential checks.
func LoginRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:login:",
		FailClosed: true,
		KeyFunc:    clientIP,
	}
}

func clientIP(c *gin.Context) string {
	return c.ClientIP()
}

type rateLimitEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

// RateLimiter counts requests in fixed windows. Redis is used when a client
// is configured, otherwise counters live in process memory.
type RateLimiter struct {
	client *goredis.Client
	logger *security.SecurityLogger
	now    func() time.Time

	store sync.Map // key -> *rateLimitEntry
}

// NewRateLimiter creates a limiter. client may be nil.
func NewRateLimiter(client *goredis.Client, logger *security.SecurityLogger) *RateLimiter {
	return &RateLimiter{client: client, logger: logger, now: time.Now}
}

// KEYS[1] = counter key, ARGV[1] = TTL in seconds. Returns {count, ttl}.
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// StartCleanup evicts expired in-memory windows until ctx is done.
func (rl *RateLimiter) StartCleanup(ctx context.Context, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.evictExpired()
			}
		}
	}()
}

func (rl *RateLimiter) evictExpired() {
	now := rl.now()
	rl.store.Range(func(key, value any) bool {
		entry := value.(*rateLimitEntry)
		entry.mu.Lock()
		if now.After(entry.resetAt) {
			rl.store.Delete(key)
		}
		entry.mu.Unlock()
		return true
	})
}

// Middleware enforces config and sets the X-RateLimit-* headers.
func (rl *RateLimiter) Middleware(config RateLimitConfig) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = clientIP
	}

	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)

		var count int
		var resetAt time.Time

		if rl.client != nil {
			var err error
			count, resetAt, err = rl.checkRedis(c.Request.Context(), fullKey, config)
			if err != nil {
				rl.logger.Log(c.Request.Context(), security.SecurityEvent{
					Event:       security.EventRateLimitTriggered,
					SubjectType: "system",
					IP:          c.ClientIP(),
					RequestID:   c.GetString(requestIDKey),
					Details:     map[string]any{"error_type": "redis_error", "error": err.Error()},
				})
				if config.FailClosed {
					response.AppError(c, apperror.Unavailable("Service temporarily unavailable. Please try again."))
					c.Abort()
					return
				}
				count, resetAt = rl.checkInMemory(fullKey, config)
			}
		} else {
			count, resetAt = rl.checkInMemory(fullKey, config)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.UTC().Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(resetAt.Sub(rl.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			rl.logger.LogRateLimitTriggered(
				c.Request.Context(),
				c.ClientIP(),
				c.GetHeader("User-Agent"),
				c.GetString(requestIDKey),
				c.FullPath(),
			)

			response.AppError(c, apperror.TooManyRequests("Rate limit exceeded. Please try again later."))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(config.Limit-count))
		c.Next()
	}
}

func (rl *RateLimiter) checkRedis(ctx context.Context, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())

	result, err := rl.client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), rl.now().Add(time.Duration(ttl) * time.Second), nil
}

func (rl *RateLimiter) checkInMemory(key string, config RateLimitConfig) (int, time.Time) {
	now := rl.now()
	entryI, _ := rl.store.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(config.Window)})
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
