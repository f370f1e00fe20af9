package handlers

import (
	"github.com/gin-gonic/gin"

	"stockmaster/internal/domain/operations/transfer"
	"stockmaster/internal/infrastructure/http/v1/dto"
)

// TransferHandler handles transfer endpoints.
type TransferHandler struct {
	*OperationHandler[transfer.Transfer]
	service *transfer.Service
}

// NewTransferHandler creates a new transfer handler.
func NewTransferHandler(base *BaseHandler, service *transfer.Service) *TransferHandler {
	return &TransferHandler{
		OperationHandler: NewOperationHandler[transfer.Transfer](base, service),
		service:          service,
	}
}

// Create handles POST /operations/transfers
func (h *TransferHandler) Create(c *gin.Context) {
	var req dto.CreateTransferRequest
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

// Update handles PUT /operations/transfers/:id
func (h *TransferHandler) Update(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTransferRequest
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

// RegisterRoutes registers transfer routes.
func (h *TransferHandler) RegisterRoutes(rg *gin.RouterGroup) {
	h.registerLifecycleRoutes(rg)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
}
