package ledger

import (
	"context"

	"stockmaster/internal/core/id"
)

// Repository persists ledger rows. Mutating methods must be called inside an
// enclosing transaction; GetForUpdate takes a row-level lock so concurrent
// writers to the same (product, location) serialize.
type Repository interface {
	// GetForUpdate locks and returns the row, or (nil, nil) when no row
	// exists yet for this (product, location) pair.
	GetForUpdate(ctx context.Context, productID, locationID id.ID) (*Stock, error)

	Insert(ctx context.Context, s *Stock) error
	Update(ctx context.Context, s *Stock) error

	// Get is a plain read, no lock. Returns (nil, nil) when absent.
	Get(ctx context.Context, productID, locationID id.ID) (*Stock, error)

	ListByProduct(ctx context.Context, productID id.ID) ([]Stock, error)
	ListByLocation(ctx context.Context, locationID id.ID) ([]Stock, error)

	// SumByProduct aggregates quantity, reserved and available over all
	// rows of the product. Absent rows contribute zero.
	SumByProduct(ctx context.Context, productID id.ID) (Totals, error)
}
