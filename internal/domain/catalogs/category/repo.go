package category

import (
	"context"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
)

// Repository defines persistence operations for categories.
type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, categoryID id.ID) (*Category, error)
	Update(ctx context.Context, c *Category) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Category], error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
