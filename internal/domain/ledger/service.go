package ledger

import (
	"context"
	"time"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain/catalogs/location"
)

// Locations is the catalog lookup the ledger needs to reject writes against
// virtual locations.
type Locations interface {
	GetByID(ctx context.Context, locationID id.ID) (*location.Location, error)
}

type Service struct {
	repo      Repository
	locations Locations
}

func NewService(repo Repository, locations Locations) *Service {
	return &Service{repo: repo, locations: locations}
}

// ApplyDelta mutates a single ledger row inside the caller's transaction.
// The row is locked for the duration, created lazily when absent, and never
// deleted even when both balances reach zero.
//
// Virtual locations (SUPPLIER, CUSTOMER) have no ledger rows; a delta
// against one is a caller bug and fails with InvalidLocation.
func (s *Service) ApplyDelta(ctx context.Context, d Delta) (*Stock, error) {
	loc, err := s.locations.GetByID(ctx, d.LocationID)
	if err != nil {
		return nil, err
	}
	if !loc.Type.Tracked() {
		return nil, apperror.NewInvalidLocation(d.LocationID.String(), string(loc.Type))
	}

	row, err := s.repo.GetForUpdate(ctx, d.ProductID, d.LocationID)
	if err != nil {
		return nil, err
	}
	created := false
	if row == nil {
		created = true
		row = &Stock{ProductID: d.ProductID, LocationID: d.LocationID}
	}

	newQty := row.Quantity + d.Quantity
	newReserved := row.Reserved + d.Reserved

	if newQty.IsNegative() || newQty < newReserved {
		available := row.Quantity - row.Reserved
		return nil, apperror.NewInsufficientStock(
			d.ProductID.String(), d.LocationID.String(),
			d.Quantity.Neg().String(), available.String(),
		)
	}
	if newReserved.IsNegative() {
		return nil, apperror.NewValidation("reserved quantity cannot be negative").
			WithDetail("product_id", d.ProductID.String()).
			WithDetail("location_id", d.LocationID.String())
	}

	row.Quantity = newQty
	row.Reserved = newReserved
	row.Available = newQty - newReserved
	row.UpdatedAt = time.Now().UTC()

	if created {
		err = s.repo.Insert(ctx, row)
	} else {
		err = s.repo.Update(ctx, row)
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Get returns the ledger row, or a zero-valued row when the pair has never
// been stocked. Callers that care about the distinction use the repository.
func (s *Service) Get(ctx context.Context, productID, locationID id.ID) (*Stock, error) {
	row, err := s.repo.Get(ctx, productID, locationID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return &Stock{ProductID: productID, LocationID: locationID}, nil
	}
	return row, nil
}

// GetTotalForProduct sums the product's stock across all tracked locations.
func (s *Service) GetTotalForProduct(ctx context.Context, productID id.ID) (Totals, error) {
	return s.repo.SumByProduct(ctx, productID)
}

func (s *Service) ListByProduct(ctx context.Context, productID id.ID) ([]Stock, error) {
	return s.repo.ListByProduct(ctx, productID)
}

func (s *Service) ListByLocation(ctx context.Context, locationID id.ID) ([]Stock, error) {
	return s.repo.ListByLocation(ctx, locationID)
}
