// Package report_repo provides read-only aggregate queries for dashboards.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockmaster/internal/domain/reports"
	"stockmaster/internal/infrastructure/storage/postgres"
)

// DashboardRepo implements reports.Repository.
type DashboardRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

var _ reports.Repository = (*DashboardRepo)(nil)

func NewDashboardRepo(txm *postgres.TxManager) *DashboardRepo {
	return &DashboardRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Summary gathers the headline counts in one round trip per figure.
// Stock totals come from the ledger; a product with no ledger rows at all
// counts as out of stock.
func (r *DashboardRepo) Summary(ctx context.Context, since time.Time) (*reports.Summary, error) {
	querier := r.txm.GetQuerier(ctx)
	s := &reports.Summary{}

	const stockLevelSQL = `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE COALESCE(t.total_qty, 0) <= 0) AS out_of_stock,
			COUNT(*) FILTER (WHERE COALESCE(t.total_qty, 0) > 0
				AND COALESCE(t.total_qty, 0) <= p.reorder_point) AS low_stock
		FROM products p
		LEFT JOIN (
			SELECT product_id, SUM(quantity) AS total_qty
			FROM stock
			GROUP BY product_id
		) t ON t.product_id = p.id
		WHERE p.is_active = true`

	err := querier.QueryRow(ctx, stockLevelSQL).
		Scan(&s.TotalProducts, &s.OutOfStockCount, &s.LowStockCount)
	if err != nil {
		return nil, postgres.MapError(fmt.Errorf("stock level counts: %w", err))
	}

	pending := []struct {
		table string
		dest  *int
	}{
		{"op_receipts", &s.PendingReceipts},
		{"op_deliveries", &s.PendingDeliveries},
		{"op_transfers", &s.PendingTransfers},
	}
	for _, p := range pending {
		sql, args, err := r.builder.
			Select("COUNT(*)").
			From(p.table).
			Where(squirrel.NotEq{"status": []string{"DONE", "CANCELLED"}}).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build pending query: %w", err)
		}
		if err := querier.QueryRow(ctx, sql, args...).Scan(p.dest); err != nil {
			return nil, postgres.MapError(fmt.Errorf("count pending %s: %w", p.table, err))
		}
	}

	movesSQL, movesArgs, err := r.builder.
		Select("COUNT(*)").
		From("stock_moves").
		Where(squirrel.GtOrEq{"created_at": since}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build moves query: %w", err)
	}
	if err := querier.QueryRow(ctx, movesSQL, movesArgs...).Scan(&s.MovesToday); err != nil {
		return nil, postgres.MapError(fmt.Errorf("count moves: %w", err))
	}

	return s, nil
}

// LowStock lists active products at or below their reorder point, most
// depleted relative to the threshold first.
func (r *DashboardRepo) LowStock(ctx context.Context, limit int) ([]reports.LowStockItem, error) {
	const lowStockSQL = `
		SELECT
			p.id AS product_id,
			p.sku,
			p.name,
			COALESCE(t.total_qty, 0) AS total_qty,
			p.reorder_point,
			p.optimal_stock
		FROM products p
		LEFT JOIN (
			SELECT product_id, SUM(quantity) AS total_qty
			FROM stock
			GROUP BY product_id
		) t ON t.product_id = p.id
		WHERE p.is_active = true
		  AND COALESCE(t.total_qty, 0) <= p.reorder_point
		ORDER BY COALESCE(t.total_qty, 0) - p.reorder_point ASC, p.name ASC
		LIMIT $1`

	var items []reports.LowStockItem
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, lowStockSQL, limit); err != nil {
		return nil, postgres.MapError(fmt.Errorf("low stock query: %w", err))
	}
	return items, nil
}
