package health

import (
	"net/http"
	"strings"

	"github.com/TomasB/ipcheck/internal/data"
	"github.com/gin-gonic/gin"
)

// Handler manages health check endpoints
type Handler struct {
	token data.TokenSource
}

// NewHandler creates a new health check handler. Readiness requires
// token to yield a non-empty access token.
func NewHandler(token data.TokenSource) *Handler {
	return &Handler{token: token}
}

// Health is the liveness probe endpoint
// GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready is the readiness probe endpoint
// GET /ready
func (h *Handler) Ready(c *gin.Context) {
	if h.token == nil || strings.TrimSpace(h.token.Token()) == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"error":  data.ErrMissingCredential.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}
