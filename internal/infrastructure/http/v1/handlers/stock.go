package handlers

import (
	"github.com/gin-gonic/gin"

	"stockmaster/internal/domain/ledger"
	"stockmaster/internal/domain/reorder"
)

// StockHandler serves stock ledger and reorder queries.
type StockHandler struct {
	*BaseHandler
	ledger  *ledger.Service
	reorder *reorder.Evaluator
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, ledgerSvc *ledger.Service, evaluator *reorder.Evaluator) *StockHandler {
	return &StockHandler{BaseHandler: base, ledger: ledgerSvc, reorder: evaluator}
}

// GetByProduct handles GET /stock/products/:id
// Returns the per-location rows for one product.
func (h *StockHandler) GetByProduct(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	rows, err := h.ledger.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": rows})
}

// GetTotals handles GET /stock/products/:id/totals
// Returns the product's quantity summed across all tracked locations.
func (h *StockHandler) GetTotals(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	totals, err := h.ledger.GetTotalForProduct(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, totals)
}

// GetByLocation handles GET /stock/locations/:id
func (h *StockHandler) GetByLocation(c *gin.Context) {
	locationID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	rows, err := h.ledger.ListByLocation(c.Request.Context(), locationID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": rows})
}

// GetReorderStatus handles GET /stock/products/:id/reorder
// Classifies the product against its reorder point and suggests a
// replenishment quantity.
func (h *StockHandler) GetReorderStatus(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	status, err := h.reorder.Evaluate(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, status)
}

// RegisterRoutes registers stock routes.
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products/:id", h.GetByProduct)
	rg.GET("/products/:id/totals", h.GetTotals)
	rg.GET("/products/:id/reorder", h.GetReorderStatus)
	rg.GET("/locations/:id", h.GetByLocation)
}
