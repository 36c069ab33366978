package enhance

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cv-suite/internal/sessions"
	"cv-suite/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the enhancement service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches enhancement routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate-enhanced-resume", h.generate)
}

type generateRequest struct {
	SessionID    string `json:"sessionId"`
	CVText       string `json:"cvText"`
	AnalysisText string `json:"analysisText"`
	QA           []QA   `json:"qa"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.SessionID == "" && (req.CVText == "" || req.AnalysisText == "") {
		respond.Error(c, http.StatusBadRequest, "validation_error", "either sessionId or both cvText and analysisText are required", nil)
		return
	}

	doc, err := h.Svc.Generate(c.Request.Context(), Input{
		SessionID:    req.SessionID,
		CVText:       req.CVText,
		AnalysisText: req.AnalysisText,
		QA:           req.QA,
	})
	if err != nil {
		var missing *sessions.MissingArtifactError
		switch {
		case errors.As(err, &missing):
			respond.Error(c, http.StatusNotFound, "not_found", missing.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate enhanced resume", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"sessionId":      doc.SessionID,
		"enhancedResume": doc.EnhancedResume,
		"modelUsed":      doc.ModelUsed,
		"questionCount":  len(doc.Questions),
		"responseFile":   sessions.EnhancedResumeKey(doc.SessionID),
		"success":        true,
	})
}
