// Package product provides the product catalog.
package product

import (
	"context"
	"time"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
)

// Product represents a stock-keeping unit.
// Inactive products are excluded from stock and reporting views but keep
// their historical moves.
type Product struct {
	ID          id.ID  `db:"id" json:"id"`
	SKU         string `db:"sku" json:"sku"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description,omitempty"`

	UnitOfMeasure string `db:"unit_of_measure" json:"unitOfMeasure"`

	// CategoryID is optional; uncategorized products are valid.
	CategoryID *id.ID `db:"category_id" json:"categoryId,omitempty"`

	// ReorderPoint is the threshold at or below which the product is
	// classified low-stock; OptimalStock is the replenishment target.
	ReorderPoint types.Quantity `db:"reorder_point" json:"reorderPoint"`
	OptimalStock types.Quantity `db:"optimal_stock" json:"optimalStock"`

	IsActive bool `db:"is_active" json:"isActive"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// New creates a product with generated ID.
func New(sku, name string) *Product {
	now := time.Now().UTC()
	return &Product{
		ID:        id.New(),
		SKU:       sku,
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks entity invariants.
func (p *Product) Validate(ctx context.Context) error {
	if p.SKU == "" {
		return apperror.NewValidation("sku is required").
			WithDetail("field", "sku")
	}

	if p.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if p.ReorderPoint.IsNegative() {
		return apperror.NewValidation("reorder point must be >= 0").
			WithDetail("field", "reorderPoint")
	}

	if p.OptimalStock.IsNegative() {
		return apperror.NewValidation("optimal stock must be >= 0").
			WithDetail("field", "optimalStock")
	}

	return nil
}

// Touch updates the UpdatedAt timestamp.
func (p *Product) Touch() {
	p.UpdatedAt = time.Now().UTC()
}
