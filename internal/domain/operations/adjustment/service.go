package adjustment

import (
	"context"
	"fmt"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/operations"
	"stockmaster/pkg/reference"
)

type Service struct {
	repo    Repository
	engine  *operations.Engine
	refs    reference.Generator
	checker *operations.Checker
}

func NewService(repo Repository, engine *operations.Engine, refs reference.Generator, checker *operations.Checker) *Service {
	return &Service{repo: repo, engine: engine, refs: refs, checker: checker}
}

// Create validates and persists a new DRAFT adjustment.
func (s *Service) Create(ctx context.Context, doc *Adjustment) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}
	if err := s.checkReferences(ctx, doc); err != nil {
		return err
	}
	return s.engine.Create(ctx, doc, s.refs, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return err
		}
		return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
	})
}

func (s *Service) checkReferences(ctx context.Context, doc *Adjustment) error {
	if err := s.checker.StockLocation(ctx, doc.LocationID); err != nil {
		return err
	}
	for _, line := range doc.Lines {
		if err := s.checker.Product(ctx, line.ProductID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Adjustment, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines
	return doc, nil
}

// Update replaces header fields and lines of a non-terminal adjustment.
func (s *Service) Update(ctx context.Context, doc *Adjustment) error {
	if err := doc.CanModify(); err != nil {
		return err
	}
	if err := doc.Validate(ctx); err != nil {
		return err
	}
	if err := s.checkReferences(ctx, doc); err != nil {
		return err
	}
	return s.engine.Update(ctx, doc, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return err
		}
		return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
	})
}

// Validate posts the adjustment: each line's difference is recomputed
// against the live ledger and applied atomically, and the document becomes
// DONE with the recomputed figures persisted on its lines.
func (s *Service) Validate(ctx context.Context, docID id.ID) (*Adjustment, error) {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	err = s.engine.Validate(ctx, doc, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return err
		}
		return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Cancel marks a not-yet-validated adjustment CANCELLED.
func (s *Service) Cancel(ctx context.Context, docID id.ID) (*Adjustment, error) {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	err = s.engine.Cancel(ctx, doc, func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Advance moves the adjustment one lifecycle step forward.
func (s *Service) Advance(ctx context.Context, docID id.ID) (*Adjustment, error) {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	err = s.engine.Advance(ctx, doc, func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Service) List(ctx context.Context, filter operations.ListFilter) (*domain.ListResult[Adjustment], error) {
	return s.repo.List(ctx, filter)
}
