// Package reorder classifies product stock levels against their reorder
// thresholds. Pure computation over the ledger totals, recomputed on every
// read so it is always consistent with the latest ledger state.
package reorder

import (
	"context"

	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/catalogs/product"
	"stockmaster/internal/domain/ledger"
)

// Level is the classification of a product's aggregate stock.
type Level string

const (
	LevelOutOfStock Level = "OUT_OF_STOCK"
	LevelLow        Level = "LOW_STOCK"
	LevelInStock    Level = "IN_STOCK"
)

// Status is the evaluation result for one product.
type Status struct {
	ProductID    id.ID          `json:"productId"`
	SKU          string         `json:"sku"`
	Level        Level          `json:"level"`
	Totals       ledger.Totals  `json:"totals"`
	ReorderPoint types.Quantity `json:"reorderPoint"`
	OptimalStock types.Quantity `json:"optimalStock"`

	// SuggestedQty tops the product back up to its optimal stock. Zero
	// when the product is in stock or has no optimal target.
	SuggestedQty types.Quantity `json:"suggestedQty"`
}

// Classify maps a total on-hand quantity to a level.
func Classify(total, reorderPoint types.Quantity) Level {
	switch {
	case total.IsZero() || total.IsNegative():
		return LevelOutOfStock
	case total <= reorderPoint:
		return LevelLow
	default:
		return LevelInStock
	}
}

// Suggest computes the replenishment quantity that restores optimal stock.
func Suggest(level Level, total, optimal types.Quantity) types.Quantity {
	if level == LevelInStock || optimal <= total {
		return 0
	}
	return optimal - total
}

// Ledger is the aggregate totals read the evaluator depends on.
type Ledger interface {
	GetTotalForProduct(ctx context.Context, productID id.ID) (ledger.Totals, error)
}

// Products resolves the product whose thresholds apply.
type Products interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
}

type Evaluator struct {
	ledger   Ledger
	products Products
}

func NewEvaluator(l Ledger, p Products) *Evaluator {
	return &Evaluator{ledger: l, products: p}
}

// Evaluate reads the product and its live totals and classifies them.
func (e *Evaluator) Evaluate(ctx context.Context, productID id.ID) (*Status, error) {
	p, err := e.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	totals, err := e.ledger.GetTotalForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return e.evaluate(p, totals), nil
}

func (e *Evaluator) evaluate(p *product.Product, totals ledger.Totals) *Status {
	level := Classify(totals.Quantity, p.ReorderPoint)
	return &Status{
		ProductID:    p.ID,
		SKU:          p.SKU,
		Level:        level,
		Totals:       totals,
		ReorderPoint: p.ReorderPoint,
		OptimalStock: p.OptimalStock,
		SuggestedQty: Suggest(level, totals.Quantity, p.OptimalStock),
	}
}
