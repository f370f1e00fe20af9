package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	usercontext "stockmaster/internal/core/context"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/operations"
	"stockmaster/internal/infrastructure/http/v1/dto"
	"stockmaster/internal/infrastructure/http/v1/middleware"
)

// OperationService is the method set every operation service exposes.
// T is the concrete document type (receipt.Receipt, delivery.Delivery, ...).
type OperationService[T any] interface {
	GetByID(ctx context.Context, docID id.ID) (*T, error)
	Validate(ctx context.Context, docID id.ID) (*T, error)
	Cancel(ctx context.Context, docID id.ID) (*T, error)
	Advance(ctx context.Context, docID id.ID) (*T, error)
	List(ctx context.Context, filter operations.ListFilter) (*domain.ListResult[T], error)
}

// OperationHandler serves the lifecycle endpoints shared by all operation
// kinds. Create and Update differ per kind and live on the concrete
// handlers.
type OperationHandler[T any] struct {
	*BaseHandler
	svc OperationService[T]
}

// NewOperationHandler creates the shared lifecycle handler.
func NewOperationHandler[T any](base *BaseHandler, svc OperationService[T]) *OperationHandler[T] {
	return &OperationHandler[T]{BaseHandler: base, svc: svc}
}

// Get handles GET /:id
func (h *OperationHandler[T]) Get(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.svc.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// Validate handles POST /:id/validate. On success the document is DONE and
// its stock effects are applied.
func (h *OperationHandler[T]) Validate(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.svc.Validate(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// Cancel handles POST /:id/cancel
func (h *OperationHandler[T]) Cancel(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.svc.Cancel(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// Advance handles POST /:id/advance. Moves the document one step along
// DRAFT, WAITING, READY.
func (h *OperationHandler[T]) Advance(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.svc.Advance(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// List handles GET ""
func (h *OperationHandler[T]) List(c *gin.Context) {
	filter := operations.ListFilter{
		Reference: c.Query("reference"),
		Limit:     h.ParseIntQuery(c, "limit", 50),
		Offset:    h.ParseIntQuery(c, "offset", 0),
	}

	if status := c.Query("status"); status != "" {
		parsed := operations.Status(status)
		filter.Status = &parsed
	}
	if userID := c.Query("userId"); userID != "" {
		if parsed, err := id.Parse(userID); err == nil {
			filter.UserID = &parsed
		}
	}

	result, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// respondCreated sends the full document after creation.
func (h *OperationHandler[T]) respondCreated(c *gin.Context, doc *T) {
	c.JSON(http.StatusCreated, doc)
}

// registerLifecycleRoutes wires the endpoints shared by all operation kinds.
// Validate and cancel touch the ledger, so staff accounts cannot call them.
func (h *OperationHandler[T]) registerLifecycleRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("/:id/advance", h.Advance)

	elevated := middleware.RequireRole(usercontext.RoleAdmin, usercontext.RoleManager)
	rg.POST("/:id/validate", elevated, h.Validate)
	rg.POST("/:id/cancel", elevated, h.Cancel)
}
