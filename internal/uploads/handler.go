package uploads

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cv-suite/internal/extract"
	"cv-suite/internal/shared/server/respond"
	"cv-suite/internal/shared/util"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the uploads service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches upload routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload-cv", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil || !strings.HasSuffix(strings.ToLower(fileName), ".pdf") {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Only PDF files are supported", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	result, err := h.Svc.Process(c.Request.Context(), fileName, data)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrNoText):
			respond.Error(c, http.StatusInternalServerError, "extraction_failed", "Failed to extract text from PDF", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Error processing PDF", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"sessionId":       result.SessionID,
		"extractedCvPath": result.ExtractedCVPath,
		"textPreview":     result.TextPreview,
		"characterCount":  result.CharacterCount,
		"success":         true,
	})
}
