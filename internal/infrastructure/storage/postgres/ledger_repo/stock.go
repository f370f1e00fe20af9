// Package ledger_repo provides the PostgreSQL implementation of the stock
// ledger and the move log.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain/ledger"
	"stockmaster/internal/infrastructure/storage/postgres"
)

const stockTable = "stock"

// StockRepo implements ledger.Repository. GetForUpdate takes a FOR UPDATE
// row lock so two concurrent validations touching the same
// (product, location) row serialize; the lock holds until the enclosing
// transaction ends.
type StockRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
	cols    []string
}

var _ ledger.Repository = (*StockRepo)(nil)

func NewStockRepo(txm *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		cols:    postgres.ExtractDBColumns[ledger.Stock](),
	}
}

func (r *StockRepo) GetForUpdate(ctx context.Context, productID, locationID id.ID) (*ledger.Stock, error) {
	if r.txm.GetTx(ctx) == nil {
		return nil, fmt.Errorf("GetForUpdate requires transaction context")
	}

	sql, args, err := r.builder.
		Select(r.cols...).
		From(stockTable).
		Where(squirrel.Eq{"product_id": productID, "location_id": locationID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row ledger.Stock
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, postgres.MapError(fmt.Errorf("lock stock row: %w", err))
	}
	return &row, nil
}

func (r *StockRepo) Insert(ctx context.Context, s *ledger.Stock) error {
	sql, args, err := r.builder.
		Insert(stockTable).
		SetMap(postgres.StructToMap(s)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(fmt.Errorf("insert stock row: %w", err))
	}
	return nil
}

func (r *StockRepo) Update(ctx context.Context, s *ledger.Stock) error {
	sql, args, err := r.builder.
		Update(stockTable).
		Set("quantity", s.Quantity).
		Set("reserved", s.Reserved).
		Set("available", s.Available).
		Set("updated_at", s.UpdatedAt).
		Where(squirrel.Eq{"product_id": s.ProductID, "location_id": s.LocationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(fmt.Errorf("update stock row: %w", err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("stock row vanished under lock: product=%s location=%s", s.ProductID, s.LocationID)
	}
	return nil
}

func (r *StockRepo) Get(ctx context.Context, productID, locationID id.ID) (*ledger.Stock, error) {
	sql, args, err := r.builder.
		Select(r.cols...).
		From(stockTable).
		Where(squirrel.Eq{"product_id": productID, "location_id": locationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row ledger.Stock
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, postgres.MapError(fmt.Errorf("get stock row: %w", err))
	}
	return &row, nil
}

func (r *StockRepo) ListByProduct(ctx context.Context, productID id.ID) ([]ledger.Stock, error) {
	return r.list(ctx, squirrel.Eq{"product_id": productID})
}

func (r *StockRepo) ListByLocation(ctx context.Context, locationID id.ID) ([]ledger.Stock, error) {
	return r.list(ctx, squirrel.Eq{"location_id": locationID})
}

func (r *StockRepo) list(ctx context.Context, where squirrel.Eq) ([]ledger.Stock, error) {
	sql, args, err := r.builder.
		Select(r.cols...).
		From(stockTable).
		Where(where).
		OrderBy("updated_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []ledger.Stock
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(fmt.Errorf("list stock rows: %w", err))
	}
	return rows, nil
}

func (r *StockRepo) SumByProduct(ctx context.Context, productID id.ID) (ledger.Totals, error) {
	sql, args, err := r.builder.
		Select(
			"COALESCE(SUM(quantity), 0) AS quantity",
			"COALESCE(SUM(reserved), 0) AS reserved",
			"COALESCE(SUM(available), 0) AS available",
		).
		From(stockTable).
		Where(squirrel.Eq{"product_id": productID}).
		ToSql()
	if err != nil {
		return ledger.Totals{}, fmt.Errorf("build query: %w", err)
	}

	var totals ledger.Totals
	err = r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).
		Scan(&totals.Quantity, &totals.Reserved, &totals.Available)
	if err != nil {
		return ledger.Totals{}, postgres.MapError(fmt.Errorf("sum stock: %w", err))
	}
	return totals, nil
}
