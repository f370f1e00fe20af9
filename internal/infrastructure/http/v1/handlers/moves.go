package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain/moves"
	"stockmaster/internal/infrastructure/http/v1/dto"
)

// MovesHandler serves the immutable stock move log.
type MovesHandler struct {
	*BaseHandler
	service *moves.Service
}

// NewMovesHandler creates a new moves handler.
func NewMovesHandler(base *BaseHandler, service *moves.Service) *MovesHandler {
	return &MovesHandler{BaseHandler: base, service: service}
}

// List handles GET /moves
func (h *MovesHandler) List(c *gin.Context) {
	filter := moves.ListFilter{
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if productID := c.Query("productId"); productID != "" {
		if parsed, err := id.Parse(productID); err == nil {
			filter.ProductID = &parsed
		}
	}
	if locationID := c.Query("locationId"); locationID != "" {
		if parsed, err := id.Parse(locationID); err == nil {
			filter.LocationID = &parsed
		}
	}
	if operationID := c.Query("operationId"); operationID != "" {
		if parsed, err := id.Parse(operationID); err == nil {
			filter.OperationID = &parsed
		}
	}
	if moveType := c.Query("type"); moveType != "" {
		parsed := moves.MoveType(moveType)
		filter.Type = &parsed
	}
	if since := c.Query("since"); since != "" {
		if parsed, err := time.Parse(time.RFC3339, since); err == nil {
			filter.Since = parsed
		}
	}
	if until := c.Query("until"); until != "" {
		if parsed, err := time.Parse(time.RFC3339, until); err == nil {
			filter.Until = parsed
		}
	}

	result, err := h.service.List(c.Request.Context(), filter)
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

// ListByProduct handles GET /moves/products/:id
func (h *MovesHandler) ListByProduct(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	filter := moves.ListFilter{
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	result, err := h.service.ListByProduct(c.Request.Context(), productID, filter)
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

// RegisterRoutes registers move log routes.
func (h *MovesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/products/:id", h.ListByProduct)
}
