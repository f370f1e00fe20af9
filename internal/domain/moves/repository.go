package moves

import "context"

// Repository is the append-only store for move records. There is no update
// and no delete: history is immutable once written.
type Repository interface {
	Insert(ctx context.Context, m *StockMove) error
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
}
