package questions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cv-suite/internal/sessions"
	"cv-suite/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the questions service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches question routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate-questions", h.generate)
	rg.GET("/questions/:session", h.getQuestions)
}

type generateRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "sessionId is required", nil)
		return
	}

	result, err := h.Svc.Generate(c.Request.Context(), req.SessionID)
	if err != nil {
		var missing *sessions.MissingArtifactError
		switch {
		case errors.As(err, &missing):
			respond.Error(c, http.StatusNotFound, "not_found", missing.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate questions", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"sessionId":    result.SessionID,
		"response":     result.Response,
		"responseFile": result.ResponseFile,
		"success":      true,
	})
}

func (h *Handler) getQuestions(c *gin.Context) {
	sessionID := c.Param("session")
	if sessionID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "session id is required", nil)
		return
	}

	text, err := h.Svc.Get(c.Request.Context(), sessionID)
	if err != nil {
		var missing *sessions.MissingArtifactError
		switch {
		case errors.As(err, &missing):
			respond.Error(c, http.StatusNotFound, "not_found", missing.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch questions", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"sessionId": sessionID,
		"questions": text,
	})
}
