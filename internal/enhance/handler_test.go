package enhance

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"cv-suite/internal/sessions"
	local "cv-suite/internal/shared/storage/object/local"
)

func setupEnhanceRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &Service{
		Store: local.New(t.TempDir()),
		Repo:  sessions.NewMemoryRepo(),
		LLM:   &stubLLM{},
		Model: "o1-mini",
	}
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestGenerateEnhancedResumeEndpoint(t *testing.T) {
	router := setupEnhanceRouter(t)

	payload := map[string]any{
		"cvText":       "original cv",
		"analysisText": "analysis",
		"qa": []map[string]string{
			{"question": "Team size?", "answer": "6"},
			{"question": "Budget?", "answer": ""},
		},
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate-enhanced-resume", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var out struct {
		SessionID      string `json:"sessionId"`
		EnhancedResume string `json:"enhancedResume"`
		QuestionCount  int    `json:"questionCount"`
		Success        bool   `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.SessionID == "" || !out.Success || out.EnhancedResume == "" {
		t.Errorf("unexpected response: %+v", out)
	}
	if out.QuestionCount != 2 {
		t.Errorf("questionCount = %d, want 2 (empty answers are kept)", out.QuestionCount)
	}
}

func TestGenerateEnhancedResumeValidation(t *testing.T) {
	router := setupEnhanceRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate-enhanced-resume", strings.NewReader(`{"cvText":"only cv"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestGenerateEnhancedResumeUnknownSession(t *testing.T) {
	router := setupEnhanceRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate-enhanced-resume", strings.NewReader(`{"sessionId":"ghost"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), sessions.ExtractedTextKey("ghost")) {
		t.Errorf("error should name the missing artifact, got %s", resp.Body.String())
	}
}
