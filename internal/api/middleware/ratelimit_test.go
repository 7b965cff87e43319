package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonwise/carbonwise/internal/api/middleware"
	"github.com/carbonwise/carbonwise/internal/api/models"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRateLimitByIP_BlocksOverLimit(t *testing.T) {
	handler := middleware.RateLimitByIP(middleware.PerMinute(3))(http.HandlerFunc(okHandler))

	testIP := "10.0.0.1:12345"
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/footprint:calculate", http.NoBody)
		req.RemoteAddr = testIP
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should be allowed", i+1)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/footprint:calculate", http.NoBody)
	req.RemoteAddr = testIP
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestRateLimitByIP_DifferentIPsHaveSeparateLimits(t *testing.T) {
	handler := middleware.RateLimitByIP(middleware.PerMinute(1))(http.HandlerFunc(okHandler))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("172.16.0.1:12345"))
	assert.Equal(t, http.StatusTooManyRequests, send("172.16.0.1:12345"))
	assert.Equal(t, http.StatusOK, send("172.16.0.2:12345"))
}

func TestRateLimitByIP_RetryAfterFollowsWindow(t *testing.T) {
	cfg := middleware.RateLimitConfig{RequestLimit: 1, WindowLength: 10 * time.Second}
	handler := middleware.RateLimitByIP(cfg)(http.HandlerFunc(okHandler))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
		req.RemoteAddr = "198.51.100.7:1"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if i == 1 {
			assert.Equal(t, "10", rec.Header().Get("Retry-After"))
		}
	}
}

func TestRateLimitExceededResponse_Format(t *testing.T) {
	handler := middleware.RequestID(
		middleware.RateLimitByIP(middleware.PerMinute(1))(http.HandlerFunc(okHandler)),
	)

	testIP := "203.0.113.1:12345"
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test/path", http.NoBody)
		req.RemoteAddr = testIP
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if i == 0 {
			assert.Equal(t, http.StatusOK, rec.Code)
			continue
		}

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

		var problem models.Problem
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
		assert.Equal(t, models.ProblemTypeTooManyRequests, problem.Type)
		assert.Equal(t, "/test/path", problem.Instance)
		assert.Equal(t, rec.Header().Get("X-Request-Id"), problem.TraceID)
	}
}

func TestDefaultRateLimitConfigs(t *testing.T) {
	assert.Equal(t, 30, middleware.CalculateRateLimit.RequestLimit)
	assert.Equal(t, time.Minute, middleware.CalculateRateLimit.WindowLength)
	assert.Equal(t, 100, middleware.StandardRateLimit.RequestLimit)
	assert.Equal(t, time.Minute, middleware.StandardRateLimit.WindowLength)
}
