package warehouse

import (
	"context"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
)

// Repository defines persistence operations for warehouses.
type Repository interface {
	Create(ctx context.Context, w *Warehouse) error
	GetByID(ctx context.Context, warehouseID id.ID) (*Warehouse, error)
	GetByCode(ctx context.Context, code string) (*Warehouse, error)
	Update(ctx context.Context, w *Warehouse) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Warehouse], error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
