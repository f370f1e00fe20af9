package product

import (
	"context"
	"fmt"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
	"stockmaster/pkg/logger"
)

// CategoryChecker verifies category references without importing the
// category package directly.
type CategoryChecker interface {
	Exists(ctx context.Context, categoryID id.ID) (bool, error)
}

// Service provides business operations for the product catalog.
type Service struct {
	repo       Repository
	categories CategoryChecker
}

// NewService creates a new product service.
func NewService(repo Repository, categories CategoryChecker) *Service {
	return &Service{repo: repo, categories: categories}
}

func (s *Service) checkCategory(ctx context.Context, p *Product) error {
	if p.CategoryID == nil {
		return nil
	}
	ok, err := s.categories.Exists(ctx, *p.CategoryID)
	if err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if !ok {
		return apperror.NewNotFound("category", p.CategoryID.String())
	}
	return nil
}

// Create registers a new product. SKU must be globally unique.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if err := s.checkCategory(ctx, p); err != nil {
		return err
	}

	exists, err := s.repo.ExistsBySKU(ctx, p.SKU)
	if err != nil {
		return fmt.Errorf("check sku: %w", err)
	}
	if exists {
		return apperror.NewDuplicate("product", "sku", p.SKU)
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}

	logger.Info(ctx, "product created", "id", p.ID, "sku", p.SKU)
	return nil
}

// GetByID retrieves a product.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// Update modifies an existing product.
func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if err := s.checkCategory(ctx, p); err != nil {
		return err
	}

	existing, err := s.repo.GetBySKU(ctx, p.SKU)
	if err != nil && !apperror.IsNotFound(err) {
		return fmt.Errorf("check sku: %w", err)
	}
	if existing != nil && existing.ID != p.ID {
		return apperror.NewDuplicate("product", "sku", p.SKU)
	}

	p.Touch()
	return s.repo.Update(ctx, p)
}

// Deactivate retires a product from stock and reporting views.
// Historical moves are kept untouched.
func (s *Service) Deactivate(ctx context.Context, productID id.ID) error {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	if !p.IsActive {
		return apperror.NewConflict("product is already inactive")
	}

	p.IsActive = false
	p.Touch()

	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}

	logger.Info(ctx, "product deactivated", "id", p.ID, "sku", p.SKU)
	return nil
}

// List retrieves products with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	return s.repo.List(ctx, filter)
}
