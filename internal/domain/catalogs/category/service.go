package category

import (
	"context"
	"fmt"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
	"stockmaster/pkg/logger"
)

// Service provides business operations for the category catalog.
type Service struct {
	repo Repository
}

// NewService creates a new category service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new category. Name must be unique.
func (s *Service) Create(ctx context.Context, c *Category) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByName(ctx, c.Name)
	if err != nil {
		return fmt.Errorf("check name: %w", err)
	}
	if exists {
		return apperror.NewDuplicate("category", "name", c.Name)
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}

	logger.Info(ctx, "category created", "id", c.ID, "name", c.Name)
	return nil
}

// GetByID retrieves a category.
func (s *Service) GetByID(ctx context.Context, categoryID id.ID) (*Category, error) {
	return s.repo.GetByID(ctx, categoryID)
}

// Update modifies an existing category.
func (s *Service) Update(ctx context.Context, c *Category) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	c.Touch()
	return s.repo.Update(ctx, c)
}

// List retrieves categories with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Category], error) {
	return s.repo.List(ctx, filter)
}
