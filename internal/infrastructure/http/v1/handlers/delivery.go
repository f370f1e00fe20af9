package handlers

import (
	"github.com/gin-gonic/gin"

	"stockmaster/internal/domain/operations/delivery"
	"stockmaster/internal/infrastructure/http/v1/dto"
)

// DeliveryHandler handles delivery endpoints.
type DeliveryHandler struct {
	*OperationHandler[delivery.Delivery]
	service *delivery.Service
}

// NewDeliveryHandler creates a new delivery handler.
func NewDeliveryHandler(base *BaseHandler, service *delivery.Service) *DeliveryHandler {
	return &DeliveryHandler{
		OperationHandler: NewOperationHandler[delivery.Delivery](base, service),
		service:          service,
	}
}

// Create handles POST /operations/deliveries
func (h *DeliveryHandler) Create(c *gin.Context) {
	var req dto.CreateDeliveryRequest
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

// Update handles PUT /operations/deliveries/:id
func (h *DeliveryHandler) Update(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDeliveryRequest
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

// RegisterRoutes registers delivery routes.
func (h *DeliveryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	h.registerLifecycleRoutes(rg)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
}
