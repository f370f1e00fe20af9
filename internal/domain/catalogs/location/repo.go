package location

import (
	"context"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
)

// ListFilter for filtering locations.
type ListFilter struct {
	domain.ListFilter

	WarehouseID *id.ID
	Type        *Type
}

// Repository defines persistence operations for locations.
type Repository interface {
	Create(ctx context.Context, l *Location) error
	GetByID(ctx context.Context, locationID id.ID) (*Location, error)
	GetByCode(ctx context.Context, code string) (*Location, error)
	Update(ctx context.Context, l *Location) error
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Location], error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
