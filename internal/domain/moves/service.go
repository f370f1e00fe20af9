package moves

import (
	"context"
	"fmt"
	"time"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Append writes one move record inside the caller's transaction. The record
// comes from the posting engine, so a malformed one signals a programming
// error rather than bad user input: it fails with InvalidMove.
func (s *Service) Append(ctx context.Context, m *StockMove) error {
	if !m.Quantity.IsPositive() {
		return apperror.NewInvalidMove(fmt.Sprintf("move quantity must be positive, got %s", m.Quantity))
	}
	if m.FromID == nil && m.ToID == nil {
		return apperror.NewInvalidMove("move must have at least one endpoint")
	}
	if !m.Type.Valid() {
		return apperror.NewInvalidMove(fmt.Sprintf("unknown move type %q", m.Type))
	}
	if id.IsNil(m.OperationID) {
		return apperror.NewInvalidMove("move must reference the operation that produced it")
	}

	if id.IsNil(m.ID) {
		m.ID = id.New()
	}
	m.Status = StatusDone
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return s.repo.Insert(ctx, m)
}

// List returns a history page, newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

// ListByProduct is the common history query: all moves touching a product.
func (s *Service) ListByProduct(ctx context.Context, productID id.ID, filter ListFilter) (*ListResult, error) {
	filter.ProductID = &productID
	return s.List(ctx, filter)
}
