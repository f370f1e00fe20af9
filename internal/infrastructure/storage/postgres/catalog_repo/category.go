package catalog_repo

import (
	"context"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain/catalogs/category"
	"stockmaster/internal/infrastructure/storage/postgres"
)

const categoriesTable = "categories"

// CategoryRepo implements category.Repository.
type CategoryRepo struct {
	*BaseRepo[*category.Category]
}

var _ category.Repository = (*CategoryRepo)(nil)

func NewCategoryRepo(txm *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseRepo: NewBaseRepo(
			txm,
			categoriesTable,
			postgres.ExtractDBColumns[category.Category](),
			[]string{"name"},
			func() *category.Category { return &category.Category{} },
		),
	}
}

func (r *CategoryRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.existsBy(ctx, "name", name)
}

// Exists satisfies the category lookup the product service depends on.
func (r *CategoryRepo) Exists(ctx context.Context, categoryID id.ID) (bool, error) {
	return r.existsBy(ctx, "id", categoryID)
}
