package operation_repo

import (
	"context"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/operations"
	"stockmaster/internal/domain/operations/delivery"
	"stockmaster/internal/infrastructure/storage/postgres"
)

const (
	deliveriesTable    = "op_deliveries"
	deliveryLinesTable = "op_delivery_lines"
)

// DeliveryRepo implements delivery.Repository.
type DeliveryRepo struct {
	*BaseOperationRepo[*delivery.Delivery]
	txm *postgres.TxManager
}

var _ delivery.Repository = (*DeliveryRepo)(nil)

func NewDeliveryRepo(txm *postgres.TxManager) *DeliveryRepo {
	return &DeliveryRepo{
		BaseOperationRepo: NewBaseOperationRepo(
			txm,
			deliveriesTable,
			postgres.ExtractDBColumns[delivery.Delivery](),
			func() *delivery.Delivery { return &delivery.Delivery{} },
		),
		txm: txm,
	}
}

// List narrows the pointer-item base result to the repository contract.
func (r *DeliveryRepo) List(ctx context.Context, filter operations.ListFilter) (*domain.ListResult[delivery.Delivery], error) {
	res, err := r.BaseOperationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return derefList(res), nil
}

func (r *DeliveryRepo) GetLines(ctx context.Context, docID id.ID) ([]delivery.Line, error) {
	return getLines[delivery.Line](ctx, r.txm, deliveryLinesTable, docID)
}

func (r *DeliveryRepo) SaveLines(ctx context.Context, docID id.ID, lines []delivery.Line) error {
	return saveLines(ctx, r.txm, deliveryLinesTable, docID, lines)
}
