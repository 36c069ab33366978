package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitPipelineTighterThanDefault(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	groupFor := func(c *gin.Context) string {
		if strings.Contains(c.Request.URL.Path, "/analyze-cv/") {
			return "PIPELINE"
		}
		return "DEFAULT"
	}

	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor:     groupFor,
		Limiter:      limiter,
		Rules: map[string]RateLimitRule{
			"DEFAULT":  {Rate: 5, Burst: 10},
			"PIPELINE": {Rate: 1, Burst: 2},
		},
	}))
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	r.POST("/api/v1/analyze-cv/:session", ok)
	r.GET("/api/v1/analysis/:session", ok)

	// Pipeline burst is 2; third call must be limited.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze-cv/s1", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("pipeline request %d: expected 200, got %d", i+1, resp.Code)
		}
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze-cv/s1", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}

	// Default group still has budget.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/analysis/s1", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("default group: expected 200, got %d", resp.Code)
	}
}

func TestRateLimitRefillsOverTime(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	allowed, _ := limiter.Allow("ip|G", rule)
	if !allowed {
		t.Fatal("first request should pass")
	}
	allowed, retryAfter := limiter.Allow("ip|G", rule)
	if allowed {
		t.Fatal("second request should be limited")
	}
	if retryAfter <= 0 {
		t.Fatalf("retryAfter = %v", retryAfter)
	}

	now = now.Add(time.Second)
	allowed, _ = limiter.Allow("ip|G", rule)
	if !allowed {
		t.Fatal("request should pass after refill")
	}
}

func TestRateLimitUnknownGroupPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor:     func(*gin.Context) string { return "UNLIMITED" },
		Rules: map[string]RateLimitRule{
			"DEFAULT": {Rate: 1, Burst: 1},
		},
	}))
	r.GET("/x", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, resp.Code)
		}
	}
}
