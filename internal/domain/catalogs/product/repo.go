package product

import (
	"context"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
)

// Repository defines persistence operations for products.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, productID id.ID) (*Product, error)
	GetBySKU(ctx context.Context, sku string) (*Product, error)
	Update(ctx context.Context, p *Product) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
}
