package operation_repo

import (
	"context"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/operations"
	"stockmaster/internal/domain/operations/transfer"
	"stockmaster/internal/infrastructure/storage/postgres"
)

const (
	transfersTable     = "op_transfers"
	transferLinesTable = "op_transfer_lines"
)

// TransferRepo implements transfer.Repository.
type TransferRepo struct {
	*BaseOperationRepo[*transfer.Transfer]
	txm *postgres.TxManager
}

var _ transfer.Repository = (*TransferRepo)(nil)

func NewTransferRepo(txm *postgres.TxManager) *TransferRepo {
	return &TransferRepo{
		BaseOperationRepo: NewBaseOperationRepo(
			txm,
			transfersTable,
			postgres.ExtractDBColumns[transfer.Transfer](),
			func() *transfer.Transfer { return &transfer.Transfer{} },
		),
		txm: txm,
	}
}

// List narrows the pointer-item base result to the repository contract.
func (r *TransferRepo) List(ctx context.Context, filter operations.ListFilter) (*domain.ListResult[transfer.Transfer], error) {
	res, err := r.BaseOperationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return derefList(res), nil
}

func (r *TransferRepo) GetLines(ctx context.Context, docID id.ID) ([]transfer.Line, error) {
	return getLines[transfer.Line](ctx, r.txm, transferLinesTable, docID)
}

func (r *TransferRepo) SaveLines(ctx context.Context, docID id.ID, lines []transfer.Line) error {
	return saveLines(ctx, r.txm, transferLinesTable, docID, lines)
}
