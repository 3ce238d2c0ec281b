package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/neuronest/neuronest/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// setupTestRateLimiter creates a rate limiter backed by miniredis.
func setupTestRateLimiter(t *testing.T, maxRequests int, window time.Duration) (*RateLimiter, *miniredis.Miniredis) {
	logger.Init(false)

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	rl := NewRateLimiter(client, RateLimiterConfig{
		MaxRequests: maxRequests,
		Window:      window,
		BlockTime:   5 * time.Minute,
	})

	return rl, mr
}

func limitedRouter(rl *RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(rl.Middleware())
	router.POST("/auth/token", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})
	return router
}

func doRequest(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/token", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_AllowsRequestsUnderLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl, _ := setupTestRateLimiter(t, 5, 1*time.Minute)
	router := limitedRouter(rl)

	for i := 0; i < 5; i++ {
		w := doRequest(router, "192.168.1.1")
		assert.Equal(t, http.StatusOK, w.Code, "request %d should succeed", i+1)
	}
}

func TestRateLimiter_BlocksRequestsOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl, _ := setupTestRateLimiter(t, 3, 1*time.Minute)
	router := limitedRouter(rl)

	for i := 0; i < 3; i++ {
		w := doRequest(router, "192.168.1.2")
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := doRequest(router, "192.168.1.2")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// Still blocked on the next attempt: the block key is in place.
	w = doRequest(router, "192.168.1.2")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimiter_TracksIPsIndependently(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl, _ := setupTestRateLimiter(t, 2, 1*time.Minute)
	router := limitedRouter(rl)

	for i := 0; i < 3; i++ {
		doRequest(router, "10.0.0.1")
	}
	w := doRequest(router, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = doRequest(router, "10.0.0.2")
	assert.Equal(t, http.StatusOK, w.Code, "other IPs should be unaffected")
}

func TestRateLimiter_BlockExpires(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl, mr := setupTestRateLimiter(t, 1, 1*time.Minute)
	router := limitedRouter(rl)

	doRequest(router, "10.0.0.3")
	w := doRequest(router, "10.0.0.3")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Fast-forward past block time and window.
	mr.FastForward(6 * time.Minute)

	w = doRequest(router, "10.0.0.3")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_FailsOpenWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl, mr := setupTestRateLimiter(t, 1, 1*time.Minute)
	router := limitedRouter(rl)

	mr.Close()

	w := doRequest(router, "10.0.0.4")
	assert.Equal(t, http.StatusOK, w.Code, "requests pass through when redis is down")
}
