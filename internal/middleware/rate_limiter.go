package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/neuronest/neuronest/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiterConfig defines rate limiting rules for the auth endpoints.
type RateLimiterConfig struct {
	MaxRequests int           // Maximum requests allowed in the window
	Window      time.Duration // Counting window
	BlockTime   time.Duration // How long to block after exceeding the limit
}

// RateLimiter provides IP-based rate limiting backed by redis. It fails open:
// when redis is unreachable requests pass through.
type RateLimiter struct {
	redis  *redis.Client
	ctx    context.Context
	config RateLimiterConfig
}

func NewRateLimiter(redisClient *redis.Client, config RateLimiterConfig) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		ctx:    context.Background(),
		config: config,
	}
}

// Middleware returns a gin middleware enforcing the limit per client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		allowed, retryAfter, err := rl.CheckLimit(clientIP)
		if err != nil {
			logger.Log.Warn("Rate limit check failed, allowing request",
				zap.String("ip", clientIP),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests. Please try again later.",
				"retry_after": int(retryAfter.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CheckLimit counts requests for the IP in the current window.
// Returns (allowed, retryAfter, error).
func (rl *RateLimiter) CheckLimit(ip string) (bool, time.Duration, error) {
	blockKey := fmt.Sprintf("ratelimit:block:%s", ip)
	if blocked, err := rl.redis.Exists(rl.ctx, blockKey).Result(); err != nil {
		return false, 0, err
	} else if blocked > 0 {
		ttl, err := rl.redis.TTL(rl.ctx, blockKey).Result()
		if err != nil {
			ttl = rl.config.BlockTime
		}
		return false, ttl, nil
	}

	key := fmt.Sprintf("ratelimit:%s", ip)

	// INCR + EXPIRE gives an atomic fixed-window counter.
	count, err := rl.redis.Incr(rl.ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	if count == 1 {
		if err := rl.redis.Expire(rl.ctx, key, rl.config.Window).Err(); err != nil {
			return false, 0, err
		}
	}

	if count > int64(rl.config.MaxRequests) {
		// Over the limit: start the block period.
		if err := rl.redis.Set(rl.ctx, blockKey, 1, rl.config.BlockTime).Err(); err != nil {
			return false, 0, err
		}
		return false, rl.config.BlockTime, nil
	}

	return true, 0, nil
}
