package handlers

import (
	"github.com/gin-gonic/gin"

	"stockmaster/internal/domain/operations/receipt"
	"stockmaster/internal/infrastructure/http/v1/dto"
)

// ReceiptHandler handles goods receipt endpoints.
type ReceiptHandler struct {
	*OperationHandler[receipt.Receipt]
	service *receipt.Service
}

// NewReceiptHandler creates a new receipt handler.
func NewReceiptHandler(base *BaseHandler, service *receipt.Service) *ReceiptHandler {
	return &ReceiptHandler{
		OperationHandler: NewOperationHandler[receipt.Receipt](base, service),
		service:          service,
	}
}

// Create handles POST /operations/receipts
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req dto.CreateReceiptRequest
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

// Update handles PUT /operations/receipts/:id
func (h *ReceiptHandler) Update(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateReceiptRequest
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

// RegisterRoutes registers receipt routes.
func (h *ReceiptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	h.registerLifecycleRoutes(rg)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
}
