package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiterBlocksAfterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 2})

	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes[i] = rec.Code
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
}

func TestIPRateLimiterIsolatesClients(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1})

	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	first := httptest.NewRequest(http.MethodGet, "/ping", nil)
	first.RemoteAddr = "10.0.0.1:1000"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, first)

	// Exhausted for 10.0.0.1, but 10.0.0.2 has its own bucket.
	second := httptest.NewRequest(http.MethodGet, "/ping", nil)
	second.RemoteAddr = "10.0.0.2:1000"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, second)

	assert.Equal(t, http.StatusOK, rec1.Code)
	assert.Equal(t, http.StatusOK, rec2.Code)
}

func TestCleanupDropsStaleEntries(t *testing.T) {
	rl := NewIPRateLimiter(DefaultRateLimitConfig())
	rl.get("10.0.0.1")
	rl.get("10.0.0.2")

	time.Sleep(time.Millisecond)
	rl.Cleanup(time.Microsecond)

	rl.mu.Lock()
	remaining := len(rl.limiters)
	rl.mu.Unlock()
	assert.Zero(t, remaining)
}
