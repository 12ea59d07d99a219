package query

import (
	"log/slog"
	"net/http"

	"github.com/TomasB/ipcheck/internal/data"
	"github.com/TomasB/ipcheck/internal/export"
	"github.com/TomasB/ipcheck/internal/handler/response"
	"github.com/TomasB/ipcheck/internal/handler/session"
	"github.com/TomasB/ipcheck/internal/history"
	"github.com/TomasB/ipcheck/internal/lookup"
	"github.com/gin-gonic/gin"
)

// Handler manages single-address lookup endpoints.
type Handler struct {
	service *lookup.Service
}

// NewHandler creates a new lookup handler with the given Service.
func NewHandler(service *lookup.Service) *Handler {
	return &Handler{service: service}
}

// Lookup handles GET /api/v1/lookup/:ip
func (h *Handler) Lookup(c *gin.Context) {
	rec, ok := h.lookupAndRecord(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Export handles GET /api/v1/lookup/:ip/csv
func (h *Handler) Export(c *gin.Context) {
	rec, ok := h.lookupAndRecord(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+export.FileName(rec.Address)+`"`)
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer, rec); err != nil {
		slog.Error("csv export failed", "ip", rec.Address, "error", err)
		_ = c.Error(err)
	}
}

func (h *Handler) lookupAndRecord(c *gin.Context) (data.Record, bool) {
	ip := c.Param("ip")
	store := session.Store(c)
	slog.Debug("lookup request received", "ip", ip, "session", session.ID(c))

	rec, err := h.service.LookupAndRecord(c.Request.Context(), store, ip)
	if err != nil {
		status, body := response.FromError(err)
		if status >= http.StatusInternalServerError {
			slog.Error("lookup failed", "ip", ip, "error", err)
		}
		c.JSON(status, body)
		return data.Record{}, false
	}
	return rec, true
}

// HistoryEntry is the compact history view shown to clients.
type HistoryEntry struct {
	IP     string      `json:"ip"`
	City   string      `json:"city"`
	Region string      `json:"region"`
	Record data.Record `json:"record"`
}

// HistoryResponse is the JSON body of GET /api/v1/history.
type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
}

// History handles GET /api/v1/history, most recent lookup first.
func (h *Handler) History(c *gin.Context) {
	c.JSON(http.StatusOK, NewHistoryResponse(session.Store(c).All()))
}

// NewHistoryResponse builds the history view from store entries.
func NewHistoryResponse(entries []history.Entry) HistoryResponse {
	resp := HistoryResponse{Entries: make([]HistoryEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, HistoryEntry{
			IP:     e.Address,
			City:   e.Record.City,
			Region: e.Record.Region,
			Record: e.Record,
		})
	}
	return resp
}
