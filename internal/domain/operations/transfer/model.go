// Package transfer provides the internal transfer operation: stock moved
// between two tracked locations.
package transfer

import (
	"context"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/operations"
)

type Transfer struct {
	operations.Header

	FromID id.ID `db:"from_location_id" json:"fromLocationId"`
	ToID   id.ID `db:"to_location_id" json:"toLocationId"`

	Lines []Line `db:"-" json:"lines"`
}

type Line struct {
	LineID    id.ID          `db:"line_id" json:"lineId"`
	LineNo    int            `db:"line_no" json:"lineNo"`
	ProductID id.ID          `db:"product_id" json:"productId"`
	Quantity  types.Quantity `db:"quantity" json:"quantity"`
}

func New(userID id.ID, fromID, toID id.ID) *Transfer {
	return &Transfer{
		Header: operations.NewHeader(userID),
		FromID: fromID,
		ToID:   toID,
		Lines:  make([]Line, 0),
	}
}

func (t *Transfer) Kind() operations.Kind { return operations.KindTransfer }

func (t *Transfer) AddLine(productID id.ID, quantity types.Quantity) {
	t.Lines = append(t.Lines, Line{
		LineID:    id.New(),
		LineNo:    len(t.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
	})
}

func (t *Transfer) Validate(ctx context.Context) error {
	if id.IsNil(t.FromID) {
		return apperror.NewValidation("source location is required").
			WithDetail("field", "fromLocationId")
	}
	if id.IsNil(t.ToID) {
		return apperror.NewValidation("destination location is required").
			WithDetail("field", "toLocationId")
	}
	if t.FromID == t.ToID {
		return apperror.NewValidation("source and destination locations must differ").
			WithDetail("field", "toLocationId")
	}
	if len(t.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	for i, line := range t.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if !line.Quantity.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}
	return nil
}

// Effects posts one two-ended effect per line: minus at the source, plus at
// the destination, both in the same transaction.
func (t *Transfer) Effects(ctx context.Context, _ operations.LedgerReader) ([]operations.LineEffect, error) {
	effects := make([]operations.LineEffect, 0, len(t.Lines))
	for _, line := range t.Lines {
		effects = append(effects, operations.LineEffect{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			FromID:    &t.FromID,
			ToID:      &t.ToID,
		})
	}
	return effects, nil
}

var _ operations.Operation = (*Transfer)(nil)
