package transfer

import (
	"context"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/operations"
)

// Repository persists receipt documents and their lines.
type Repository interface {
	Create(ctx context.Context, doc *Transfer) error
	Update(ctx context.Context, doc *Transfer) error
	GetByID(ctx context.Context, docID id.ID) (*Transfer, error)
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error
	List(ctx context.Context, filter operations.ListFilter) (*domain.ListResult[Transfer], error)
}
