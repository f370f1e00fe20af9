package handlers

import (
	"github.com/gin-gonic/gin"

	"stockmaster/internal/domain/operations/adjustment"
	"stockmaster/internal/infrastructure/http/v1/dto"
)

// AdjustmentHandler handles adjustment endpoints.
type AdjustmentHandler struct {
	*OperationHandler[adjustment.Adjustment]
	service *adjustment.Service
}

// NewAdjustmentHandler creates a new adjustment handler.
func NewAdjustmentHandler(base *BaseHandler, service *adjustment.Service) *AdjustmentHandler {
	return &AdjustmentHandler{
		OperationHandler: NewOperationHandler[adjustment.Adjustment](base, service),
		service:          service,
	}
}

// Create handles POST /operations/adjustments
func (h *AdjustmentHandler) Create(c *gin.Context) {
	var req dto.CreateAdjustmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := req.ToEntity(h.ActorID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}

	h.respondCreated(c, doc)
}

// Update handles PUT /operations/adjustments/:id
func (h *AdjustmentHandler) Update(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAdjustmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := req.ApplyTo(doc); err != nil {
		h.Error(c, err)
		return
	}
	if err := h.service.Update(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// RegisterRoutes registers adjustment routes.
func (h *AdjustmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	h.registerLifecycleRoutes(rg)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
}
