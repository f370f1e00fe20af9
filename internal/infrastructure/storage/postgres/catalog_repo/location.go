package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockmaster/internal/domain"
	"stockmaster/internal/domain/catalogs/location"
	"stockmaster/internal/infrastructure/storage/postgres"
)

const locationsTable = "locations"

// LocationRepo implements location.Repository.
type LocationRepo struct {
	*BaseRepo[*location.Location]
}

var _ location.Repository = (*LocationRepo)(nil)

func NewLocationRepo(txm *postgres.TxManager) *LocationRepo {
	return &LocationRepo{
		BaseRepo: NewBaseRepo(
			txm,
			locationsTable,
			postgres.ExtractDBColumns[location.Location](),
			[]string{"code", "name"},
			func() *location.Location { return &location.Location{} },
		),
	}
}

func (r *LocationRepo) GetByCode(ctx context.Context, code string) (*location.Location, error) {
	return r.getByField(ctx, "code", code)
}

func (r *LocationRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return r.existsBy(ctx, "code", code)
}

// List applies location-specific filters on top of the common ones.
func (r *LocationRepo) List(ctx context.Context, filter location.ListFilter) (domain.ListResult[*location.Location], error) {
	result := domain.ListResult[*location.Location]{Limit: filter.Limit, Offset: filter.Offset}

	q := r.baseSelect()
	if !filter.IncludeInactive {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"code": pattern},
			squirrel.ILike{"name": pattern},
		})
	}
	if filter.WarehouseID != nil {
		q = q.Where(squirrel.Eq{"warehouse_id": *filter.WarehouseID})
	}
	if filter.Type != nil {
		q = q.Where(squirrel.Eq{"type": *filter.Type})
	}

	countSQL, countArgs, err := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}
	if err := r.querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, postgres.MapError(fmt.Errorf("count locations: %w", err))
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Select(ctx, r.querier(ctx), &result.Items, sql, args...); err != nil {
		return result, postgres.MapError(fmt.Errorf("list locations: %w", err))
	}
	return result, nil
}
