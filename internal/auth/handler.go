package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"cv-suite/internal/shared/server/respond"
)

// Handler verifies the shared access password.
type Handler struct {
	Password string
}

// NewHandler constructs a Handler. An empty password disables the check and
// every attempt authenticates.
func NewHandler(password string) *Handler {
	return &Handler{Password: password}
}

// RegisterRoutes attaches auth routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth", h.authenticate)
}

type authRequest struct {
	Password string `json:"password"`
}

func (h *Handler) authenticate(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	if h.Password != "" && subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.Password)) != 1 {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Invalid password", nil)
		return
	}

	respond.OK(c, gin.H{"authenticated": true})
}
