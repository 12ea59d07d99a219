package compare

import (
	"log/slog"
	"net/http"

	"github.com/TomasB/ipcheck/internal/handler/response"
	"github.com/TomasB/ipcheck/internal/lookup"
	"github.com/gin-gonic/gin"
)

// CompareRequest represents the JSON body for a comparison.
type CompareRequest struct {
	IPA string `json:"ip_a"`
	IPB string `json:"ip_b"`
}

// Handler manages side-by-side comparison endpoints.
type Handler struct {
	service *lookup.Service
}

// NewHandler creates a new compare handler with the given Service.
func NewHandler(service *lookup.Service) *Handler {
	return &Handler{service: service}
}

// Compare handles POST /api/v1/compare. Results are not added to history.
func (h *Handler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error: "invalid request: " + err.Error(),
		})
		return
	}

	slog.Debug("compare request received", "ip_a", req.IPA, "ip_b", req.IPB)

	cmp, err := h.service.Compare(c.Request.Context(), req.IPA, req.IPB)
	if err != nil {
		status, body := response.FromError(err)
		if status >= http.StatusInternalServerError {
			slog.Error("comparison failed", "ip_a", req.IPA, "ip_b", req.IPB, "error", err)
		}
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, cmp)
}
