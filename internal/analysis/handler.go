package analysis

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cv-suite/internal/parsing"
	"cv-suite/internal/sessions"
	"cv-suite/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analysis service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze-cv/:session", h.analyze)
	rg.GET("/analysis/:session", h.getAnalysis)
}

func (h *Handler) analyze(c *gin.Context) {
	sessionID := c.Param("session")
	if sessionID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "session id is required", nil)
		return
	}

	result, err := h.Svc.Run(c.Request.Context(), sessionID)
	if err != nil {
		var missing *sessions.MissingArtifactError
		switch {
		case errors.As(err, &missing):
			respond.Error(c, http.StatusNotFound, "not_found", missing.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "analysis pipeline failed", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"sessionId":               result.SessionID,
		"cvStructureDetected":     result.Structure,
		"analysisPassesCompleted": result.Passes,
		"comprehensiveAnalysis":   result.Report,
		"individualAnalyses":      result.Individual,
		"filesCreated":            result.FilesCreated,
		"success":                 true,
	})
}

func (h *Handler) getAnalysis(c *gin.Context) {
	sessionID := c.Param("session")
	if sessionID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "session id is required", nil)
		return
	}

	report, err := h.Svc.Report(c.Request.Context(), sessionID)
	if err != nil {
		var missing *sessions.MissingArtifactError
		switch {
		case errors.As(err, &missing):
			respond.Error(c, http.StatusNotFound, "not_found", missing.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"sessionId":             sessionID,
		"comprehensiveAnalysis": report,
		"parsed":                parsing.Parse(report),
	})
}
