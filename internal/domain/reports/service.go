// Package reports aggregates read-only dashboard figures. Everything here
// reads the ledger and the move log; nothing writes.
package reports

import (
	"context"
	"time"

	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/moves"
)

// Summary is the dashboard headline block.
type Summary struct {
	TotalProducts     int `json:"totalProducts"`
	LowStockCount     int `json:"lowStockCount"`
	OutOfStockCount   int `json:"outOfStockCount"`
	PendingReceipts   int `json:"pendingReceipts"`
	PendingDeliveries int `json:"pendingDeliveries"`
	PendingTransfers  int `json:"pendingTransfers"`
	MovesToday        int `json:"movesToday"`
}

// LowStockItem is one row of the replenishment list.
type LowStockItem struct {
	ProductID    id.ID          `db:"product_id" json:"productId"`
	SKU          string         `db:"sku" json:"sku"`
	Name         string         `db:"name" json:"name"`
	TotalQty     types.Quantity `db:"total_qty" json:"totalQty"`
	ReorderPoint types.Quantity `db:"reorder_point" json:"reorderPoint"`
	OptimalStock types.Quantity `db:"optimal_stock" json:"optimalStock"`
}

// Repository runs the aggregate queries. Implemented by the storage layer;
// all counts respect product/location active flags.
type Repository interface {
	Summary(ctx context.Context, since time.Time) (*Summary, error)
	LowStock(ctx context.Context, limit int) ([]LowStockItem, error)
}

// Moves is the history read used for the dashboard feed.
type Moves interface {
	List(ctx context.Context, filter moves.ListFilter) (*moves.ListResult, error)
}

type Service struct {
	repo  Repository
	moves Moves
}

func NewService(repo Repository, movesSvc Moves) *Service {
	return &Service{repo: repo, moves: movesSvc}
}

// GetSummary returns the headline figures; "today" is the UTC calendar day.
func (s *Service) GetSummary(ctx context.Context) (*Summary, error) {
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.repo.Summary(ctx, midnight)
}

// GetLowStock lists products at or below their reorder point, worst first.
func (s *Service) GetLowStock(ctx context.Context, limit int) ([]LowStockItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.LowStock(ctx, limit)
}

// GetRecentMoves returns the newest move log entries for the dashboard feed.
func (s *Service) GetRecentMoves(ctx context.Context, limit int) (*moves.ListResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.moves.List(ctx, moves.ListFilter{Limit: limit})
}
