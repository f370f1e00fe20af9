// Package receipt provides the goods receipt operation: incoming stock from
// a supplier into a tracked location.
package receipt

import (
	"context"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/operations"
)

type Receipt struct {
	operations.Header

	SupplierName  string `db:"supplier_name" json:"supplierName"`
	DestinationID id.ID  `db:"destination_location_id" json:"destinationLocationId"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is one ordered product. ReceivedQty is what actually arrived; when
// left at zero the ordered quantity is posted in full.
type Line struct {
	LineID      id.ID          `db:"line_id" json:"lineId"`
	LineNo      int            `db:"line_no" json:"lineNo"`
	ProductID   id.ID          `db:"product_id" json:"productId"`
	Quantity    types.Quantity `db:"quantity" json:"quantity"`
	ReceivedQty types.Quantity `db:"received_qty" json:"receivedQty"`
}

func New(userID id.ID, supplierName string, destinationID id.ID) *Receipt {
	return &Receipt{
		Header:        operations.NewHeader(userID),
		SupplierName:  supplierName,
		DestinationID: destinationID,
		Lines:         make([]Line, 0),
	}
}

func (r *Receipt) Kind() operations.Kind { return operations.KindReceipt }

// AddLine appends an ordered product.
func (r *Receipt) AddLine(productID id.ID, quantity types.Quantity) {
	r.Lines = append(r.Lines, Line{
		LineID:    id.New(),
		LineNo:    len(r.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
	})
}

func (r *Receipt) Validate(ctx context.Context) error {
	if r.SupplierName == "" {
		return apperror.NewValidation("supplier name is required").
			WithDetail("field", "supplierName")
	}
	if id.IsNil(r.DestinationID) {
		return apperror.NewValidation("destination location is required").
			WithDetail("field", "destinationLocationId")
	}
	if len(r.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	for i, line := range r.Lines {
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
		if line.ReceivedQty.IsNegative() {
			return apperror.NewValidation("received quantity cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}
	return nil
}

// Effects posts one inbound effect per line into the destination. The
// supplier side is outside tracked stock, so the effect has no source.
func (r *Receipt) Effects(ctx context.Context, _ operations.LedgerReader) ([]operations.LineEffect, error) {
	effects := make([]operations.LineEffect, 0, len(r.Lines))
	for i := range r.Lines {
		line := &r.Lines[i]
		qty := line.ReceivedQty
		if qty.IsZero() {
			qty = line.Quantity
			line.ReceivedQty = line.Quantity
		}
		effects = append(effects, operations.LineEffect{
			ProductID: line.ProductID,
			Quantity:  qty,
			ToID:      &r.DestinationID,
		})
	}
	return effects, nil
}

var _ operations.Operation = (*Receipt)(nil)
