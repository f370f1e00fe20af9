package catalog_repo

import (
	"context"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain/catalogs/warehouse"
	"stockmaster/internal/infrastructure/storage/postgres"
)

const warehousesTable = "warehouses"

// WarehouseRepo implements warehouse.Repository.
type WarehouseRepo struct {
	*BaseRepo[*warehouse.Warehouse]
}

var _ warehouse.Repository = (*WarehouseRepo)(nil)

func NewWarehouseRepo(txm *postgres.TxManager) *WarehouseRepo {
	return &WarehouseRepo{
		BaseRepo: NewBaseRepo(
			txm,
			warehousesTable,
			postgres.ExtractDBColumns[warehouse.Warehouse](),
			[]string{"code", "name"},
			func() *warehouse.Warehouse { return &warehouse.Warehouse{} },
		),
	}
}

func (r *WarehouseRepo) GetByCode(ctx context.Context, code string) (*warehouse.Warehouse, error) {
	return r.getByField(ctx, "code", code)
}

func (r *WarehouseRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return r.existsBy(ctx, "code", code)
}

// Exists satisfies the warehouse lookup the location service depends on.
func (r *WarehouseRepo) Exists(ctx context.Context, warehouseID id.ID) (bool, error) {
	return r.existsBy(ctx, "id", warehouseID)
}
