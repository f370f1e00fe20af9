package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockmaster/internal/domain/moves"
	"stockmaster/internal/infrastructure/storage/postgres"
)

const movesTable = "stock_moves"

// MoveRepo implements moves.Repository. Insert-only; the table carries no
// UPDATE or DELETE path anywhere in the codebase.
type MoveRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
	cols    []string
}

var _ moves.Repository = (*MoveRepo)(nil)

func NewMoveRepo(txm *postgres.TxManager) *MoveRepo {
	return &MoveRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		cols:    postgres.ExtractDBColumns[moves.StockMove](),
	}
}

func (r *MoveRepo) Insert(ctx context.Context, m *moves.StockMove) error {
	sql, args, err := r.builder.
		Insert(movesTable).
		SetMap(postgres.StructToMap(m)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(fmt.Errorf("insert stock move: %w", err))
	}
	return nil
}

func (r *MoveRepo) List(ctx context.Context, filter moves.ListFilter) (*moves.ListResult, error) {
	q := r.builder.Select(r.cols...).From(movesTable)

	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.LocationID != nil {
		q = q.Where(squirrel.Or{
			squirrel.Eq{"from_location_id": *filter.LocationID},
			squirrel.Eq{"to_location_id": *filter.LocationID},
		})
	}
	if filter.OperationID != nil {
		q = q.Where(squirrel.Eq{"operation_id": *filter.OperationID})
	}
	if filter.Type != nil {
		q = q.Where(squirrel.Eq{"move_type": *filter.Type})
	}
	if !filter.Since.IsZero() {
		q = q.Where(squirrel.GtOrEq{"created_at": filter.Since})
	}
	if !filter.Until.IsZero() {
		q = q.Where(squirrel.Lt{"created_at": filter.Until})
	}

	result := &moves.ListResult{Limit: filter.Limit, Offset: filter.Offset}

	countSQL, countArgs, err := r.builder.
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count query: %w", err)
	}
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return nil, postgres.MapError(fmt.Errorf("count moves: %w", err))
	}

	q = q.OrderBy("created_at DESC", "reference DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &result.Items, sql, args...); err != nil {
		return nil, postgres.MapError(fmt.Errorf("list moves: %w", err))
	}
	return result, nil
}
