package handlers

import (
	"github.com/gin-gonic/gin"

	"stockmaster/internal/infrastructure/storage/postgres"
)

// AuditHandler serves the audit trail.
type AuditHandler struct {
	*BaseHandler
	recorder *postgres.AuditRecorder
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, recorder *postgres.AuditRecorder) *AuditHandler {
	return &AuditHandler{BaseHandler: base, recorder: recorder}
}

// History handles GET /audit/:entityId
// Returns the recorded events for one entity, newest first.
func (h *AuditHandler) History(c *gin.Context) {
	entityID, ok := h.ParseIDParam(c, "entityId")
	if !ok {
		return
	}
	limit := h.ParseIntQuery(c, "limit", 50)

	entries, err := h.recorder.History(c.Request.Context(), entityID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": entries})
}

// RegisterRoutes registers audit routes.
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:entityId", h.History)
}
