package operation_repo

import (
	"context"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/operations"
	"stockmaster/internal/domain/operations/receipt"
	"stockmaster/internal/infrastructure/storage/postgres"
)

const (
	receiptsTable     = "op_receipts"
	receiptLinesTable = "op_receipt_lines"
)

// ReceiptRepo implements receipt.Repository.
type ReceiptRepo struct {
	*BaseOperationRepo[*receipt.Receipt]
	txm *postgres.TxManager
}

var _ receipt.Repository = (*ReceiptRepo)(nil)

func NewReceiptRepo(txm *postgres.TxManager) *ReceiptRepo {
	return &ReceiptRepo{
		BaseOperationRepo: NewBaseOperationRepo(
			txm,
			receiptsTable,
			postgres.ExtractDBColumns[receipt.Receipt](),
			func() *receipt.Receipt { return &receipt.Receipt{} },
		),
		txm: txm,
	}
}

// List narrows the pointer-item base result to the repository contract.
func (r *ReceiptRepo) List(ctx context.Context, filter operations.ListFilter) (*domain.ListResult[receipt.Receipt], error) {
	res, err := r.BaseOperationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return derefList(res), nil
}

func (r *ReceiptRepo) GetLines(ctx context.Context, docID id.ID) ([]receipt.Line, error) {
	return getLines[receipt.Line](ctx, r.txm, receiptLinesTable, docID)
}

func (r *ReceiptRepo) SaveLines(ctx context.Context, docID id.ID, lines []receipt.Line) error {
	return saveLines(ctx, r.txm, receiptLinesTable, docID, lines)
}
