package operations

import (
	"context"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain/catalogs/product"
)

// Products is the product catalog lookup needed for line validation.
type Products interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
}

// ListFilter narrows operation document list queries.
type ListFilter struct {
	Status    *Status
	UserID    *id.ID
	Reference string
	Limit     int
	Offset    int
}

// Checker validates catalog references at document creation time, before
// anything is persisted.
type Checker struct {
	products  Products
	locations Locations
}

func NewChecker(products Products, locations Locations) *Checker {
	return &Checker{products: products, locations: locations}
}

// Product fails with a validation error unless the product exists and is
// active.
func (c *Checker) Product(ctx context.Context, productID id.ID) error {
	p, err := c.products.GetByID(ctx, productID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewValidation("unknown product").
				WithDetail("product_id", productID.String())
		}
		return err
	}
	if !p.IsActive {
		return apperror.NewValidation("product is inactive").
			WithDetail("product_id", productID.String()).
			WithDetail("sku", p.SKU)
	}
	return nil
}

// StockLocation fails unless the location exists, is active, and can hold
// real stock. Virtual boundary locations fail with InvalidLocation so the
// rejection happens before any ledger call.
func (c *Checker) StockLocation(ctx context.Context, locationID id.ID) error {
	loc, err := c.locations.GetByID(ctx, locationID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewValidation("unknown location").
				WithDetail("location_id", locationID.String())
		}
		return err
	}
	if !loc.IsActive {
		return apperror.NewValidation("location is inactive").
			WithDetail("location_id", locationID.String()).
			WithDetail("code", loc.Code)
	}
	if !loc.Type.Tracked() {
		return apperror.NewInvalidLocation(locationID.String(), string(loc.Type))
	}
	return nil
}
