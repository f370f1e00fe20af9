package catalog_repo

import (
	"context"

	"stockmaster/internal/domain/catalogs/product"
	"stockmaster/internal/infrastructure/storage/postgres"
)

const productsTable = "products"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseRepo[*product.Product]
}

var _ product.Repository = (*ProductRepo)(nil)

func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseRepo: NewBaseRepo(
			txm,
			productsTable,
			postgres.ExtractDBColumns[product.Product](),
			[]string{"sku", "name"},
			func() *product.Product { return &product.Product{} },
		),
	}
}

func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*product.Product, error) {
	return r.getByField(ctx, "sku", sku)
}

func (r *ProductRepo) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	return r.existsBy(ctx, "sku", sku)
}
