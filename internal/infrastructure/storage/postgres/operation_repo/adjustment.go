package operation_repo

import (
	"context"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/operations"
	"stockmaster/internal/domain/operations/adjustment"
	"stockmaster/internal/infrastructure/storage/postgres"
)

const (
	adjustmentsTable     = "op_adjustments"
	adjustmentLinesTable = "op_adjustment_lines"
)

// AdjustmentRepo implements adjustment.Repository.
type AdjustmentRepo struct {
	*BaseOperationRepo[*adjustment.Adjustment]
	txm *postgres.TxManager
}

var _ adjustment.Repository = (*AdjustmentRepo)(nil)

func NewAdjustmentRepo(txm *postgres.TxManager) *AdjustmentRepo {
	return &AdjustmentRepo{
		BaseOperationRepo: NewBaseOperationRepo(
			txm,
			adjustmentsTable,
			postgres.ExtractDBColumns[adjustment.Adjustment](),
			func() *adjustment.Adjustment { return &adjustment.Adjustment{} },
		),
		txm: txm,
	}
}

// List narrows the pointer-item base result to the repository contract.
func (r *AdjustmentRepo) List(ctx context.Context, filter operations.ListFilter) (*domain.ListResult[adjustment.Adjustment], error) {
	res, err := r.BaseOperationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return derefList(res), nil
}

func (r *AdjustmentRepo) GetLines(ctx context.Context, docID id.ID) ([]adjustment.Line, error) {
	return getLines[adjustment.Line](ctx, r.txm, adjustmentLinesTable, docID)
}

func (r *AdjustmentRepo) SaveLines(ctx context.Context, docID id.ID, lines []adjustment.Line) error {
	return saveLines(ctx, r.txm, adjustmentLinesTable, docID, lines)
}
