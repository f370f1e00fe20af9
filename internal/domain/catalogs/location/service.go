package location

import (
	"context"
	"fmt"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
	"stockmaster/pkg/logger"
)

// WarehouseChecker verifies warehouse references without importing the
// warehouse package directly.
type WarehouseChecker interface {
	Exists(ctx context.Context, warehouseID id.ID) (bool, error)
}

// Service provides business operations for the location catalog.
type Service struct {
	repo       Repository
	warehouses WarehouseChecker
}

// NewService creates a new location service.
func NewService(repo Repository, warehouses WarehouseChecker) *Service {
	return &Service{repo: repo, warehouses: warehouses}
}

// Create registers a new location inside an existing warehouse.
func (s *Service) Create(ctx context.Context, l *Location) error {
	if err := l.Validate(ctx); err != nil {
		return err
	}

	ok, err := s.warehouses.Exists(ctx, l.WarehouseID)
	if err != nil {
		return fmt.Errorf("check warehouse: %w", err)
	}
	if !ok {
		return apperror.NewNotFound("warehouse", l.WarehouseID.String())
	}

	exists, err := s.repo.ExistsByCode(ctx, l.Code)
	if err != nil {
		return fmt.Errorf("check code: %w", err)
	}
	if exists {
		return apperror.NewDuplicate("location", "code", l.Code)
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return err
	}

	logger.Info(ctx, "location created", "id", l.ID, "code", l.Code, "type", l.Type)
	return nil
}

// GetByID retrieves a location.
func (s *Service) GetByID(ctx context.Context, locationID id.ID) (*Location, error) {
	return s.repo.GetByID(ctx, locationID)
}

// Update modifies an existing location. The type of a location is fixed
// after creation; changing it would reinterpret historical moves.
func (s *Service) Update(ctx context.Context, l *Location) error {
	if err := l.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(ctx, l.ID)
	if err != nil {
		return err
	}
	if existing.Type != l.Type {
		return apperror.NewValidation("location type cannot be changed").
			WithDetail("field", "type")
	}

	l.Touch()
	return s.repo.Update(ctx, l)
}

// List retrieves locations with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Location], error) {
	return s.repo.List(ctx, filter)
}
