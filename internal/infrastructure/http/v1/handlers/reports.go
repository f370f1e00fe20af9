package handlers

import (
	"github.com/gin-gonic/gin"

	"stockmaster/internal/domain/reports"
)

// ReportsHandler serves dashboard and report endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// GetSummary handles GET /reports/summary
func (h *ReportsHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.GetSummary(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, summary)
}

// GetLowStock handles GET /reports/low-stock
func (h *ReportsHandler) GetLowStock(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 20)

	items, err := h.service.GetLowStock(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": items})
}

// GetRecentMoves handles GET /reports/recent-moves
func (h *ReportsHandler) GetRecentMoves(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 20)

	result, err := h.service.GetRecentMoves(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": result.Items})
}

// RegisterRoutes registers report routes.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/summary", h.GetSummary)
	rg.GET("/low-stock", h.GetLowStock)
	rg.GET("/recent-moves", h.GetRecentMoves)
}
