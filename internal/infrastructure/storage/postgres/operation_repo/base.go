// Package operation_repo provides PostgreSQL implementations for the four
// operation document repositories. Each kind has a header table and a line
// table; lines are replaced wholesale on save, headers updated in place.
package operation_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/operations"
	"stockmaster/internal/infrastructure/storage/postgres"
)

// BaseOperationRepo provides header CRUD shared by the four kinds.
type BaseOperationRepo[T any] struct {
	txm        *postgres.TxManager
	tableName  string
	selectCols []string
	newFn      func() T
}

func NewBaseOperationRepo[T any](
	txm *postgres.TxManager,
	tableName string,
	selectCols []string,
	newFn func() T,
) *BaseOperationRepo[T] {
	return &BaseOperationRepo[T]{
		txm:        txm,
		tableName:  tableName,
		selectCols: selectCols,
		newFn:      newFn,
	}
}

func (r *BaseOperationRepo[T]) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *BaseOperationRepo[T]) Create(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.builder().Insert(r.tableName).SetMap(filtered).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(fmt.Errorf("insert %s: %w", r.tableName, err))
	}
	return nil
}

func (r *BaseOperationRepo[T]) Update(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("entity has no 'id' field")
	}

	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "created_at" {
			continue
		}
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.builder().
		Update(r.tableName).
		SetMap(filtered).
		Where(squirrel.Eq{"id": entityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(fmt.Errorf("update %s: %w", r.tableName, err))
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, entityID)
	}
	return nil
}

func (r *BaseOperationRepo[T]) GetByID(ctx context.Context, docID id.ID) (T, error) {
	entity := r.newFn()

	sql, args, err := r.builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(squirrel.Eq{"id": docID}).
		Limit(1).
		ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, docID.String())
		}
		return entity, postgres.MapError(fmt.Errorf("get %s: %w", r.tableName, err))
	}
	return entity, nil
}

// List filters by status, owner, and reference substring, newest first.
func (r *BaseOperationRepo[T]) List(ctx context.Context, filter operations.ListFilter) (*domain.ListResult[T], error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	result := &domain.ListResult[T]{Limit: filter.Limit, Offset: filter.Offset}

	q := r.builder().Select(r.selectCols...).From(r.tableName)
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.UserID != nil {
		q = q.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.Reference != "" {
		q = q.Where(squirrel.ILike{"reference": "%" + filter.Reference + "%"})
	}

	countSQL, countArgs, err := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count query: %w", err)
	}
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return nil, postgres.MapError(fmt.Errorf("count %s: %w", r.tableName, err))
	}

	q = q.OrderBy("created_at DESC").Limit(uint64(filter.Limit))
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var items []T
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, postgres.MapError(fmt.Errorf("list %s: %w", r.tableName, err))
	}
	result.Items = items
	return result, nil
}

// derefList converts the pointer-item lists the scanner produces into the
// value-item shape the domain repositories expose.
func derefList[T any](res *domain.ListResult[*T]) *domain.ListResult[T] {
	out := &domain.ListResult[T]{
		Items:      make([]T, 0, len(res.Items)),
		TotalCount: res.TotalCount,
		Limit:      res.Limit,
		Offset:     res.Offset,
	}
	for _, item := range res.Items {
		out.Items = append(out.Items, *item)
	}
	return out
}

// saveLines replaces a document's line set. Delete-then-insert keeps line
// renumbering trivial; line counts are small enough that COPY is not worth
// the extra path.
func saveLines[L any](ctx context.Context, txm *postgres.TxManager, table string, docID id.ID, lines []L) error {
	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	delSQL, delArgs, err := builder.
		Delete(table).
		Where(squirrel.Eq{"operation_id": docID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := txm.GetQuerier(ctx).Exec(ctx, delSQL, delArgs...); err != nil {
		return postgres.MapError(fmt.Errorf("delete %s: %w", table, err))
	}

	if len(lines) == 0 {
		return nil
	}

	cols := postgres.ExtractDBColumns[L]()
	q := builder.Insert(table).Columns(append([]string{"operation_id"}, cols...)...)
	for i := range lines {
		data := postgres.StructToMap(&lines[i])
		values := make([]any, 0, len(cols)+1)
		values = append(values, docID)
		for _, col := range cols {
			values = append(values, data[col])
		}
		q = q.Values(values...)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(fmt.Errorf("insert %s: %w", table, err))
	}
	return nil
}

// getLines loads a document's lines in line order.
func getLines[L any](ctx context.Context, txm *postgres.TxManager, table string, docID id.ID) ([]L, error) {
	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	sql, args, err := builder.
		Select(postgres.ExtractDBColumns[L]()...).
		From(table).
		Where(squirrel.Eq{"operation_id": docID}).
		OrderBy("line_no ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []L
	if err := pgxscan.Select(ctx, txm.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, postgres.MapError(fmt.Errorf("get %s: %w", table, err))
	}
	return lines, nil
}
