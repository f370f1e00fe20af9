// Package delivery provides the delivery operation: outbound stock from a
// tracked location to a customer.
package delivery

import (
	"context"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/operations"
)

type Delivery struct {
	operations.Header

	CustomerName string `db:"customer_name" json:"customerName"`
	SourceID     id.ID  `db:"source_location_id" json:"sourceLocationId"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is one product to ship. DeliveredQty is what actually left; when
// left at zero the ordered quantity ships in full.
type Line struct {
	LineID       id.ID          `db:"line_id" json:"lineId"`
	LineNo       int            `db:"line_no" json:"lineNo"`
	ProductID    id.ID          `db:"product_id" json:"productId"`
	Quantity     types.Quantity `db:"quantity" json:"quantity"`
	DeliveredQty types.Quantity `db:"delivered_qty" json:"deliveredQty"`
}

func New(userID id.ID, customerName string, sourceID id.ID) *Delivery {
	return &Delivery{
		Header:       operations.NewHeader(userID),
		CustomerName: customerName,
		SourceID:     sourceID,
		Lines:        make([]Line, 0),
	}
}

func (d *Delivery) Kind() operations.Kind { return operations.KindDelivery }

func (d *Delivery) AddLine(productID id.ID, quantity types.Quantity) {
	d.Lines = append(d.Lines, Line{
		LineID:    id.New(),
		LineNo:    len(d.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
	})
}

func (d *Delivery) Validate(ctx context.Context) error {
	if d.CustomerName == "" {
		return apperror.NewValidation("customer name is required").
			WithDetail("field", "customerName")
	}
	if id.IsNil(d.SourceID) {
		return apperror.NewValidation("source location is required").
			WithDetail("field", "sourceLocationId")
	}
	if len(d.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	for i, line := range d.Lines {
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
		if line.DeliveredQty.IsNegative() {
			return apperror.NewValidation("delivered quantity cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}
	return nil
}

// Effects posts one outbound effect per line from the source. A line asking
// for more than the source has available aborts the whole document when the
// ledger rejects the delta; there is no partial shipment.
func (d *Delivery) Effects(ctx context.Context, _ operations.LedgerReader) ([]operations.LineEffect, error) {
	effects := make([]operations.LineEffect, 0, len(d.Lines))
	for i := range d.Lines {
		line := &d.Lines[i]
		qty := line.DeliveredQty
		if qty.IsZero() {
			qty = line.Quantity
			line.DeliveredQty = line.Quantity
		}
		effects = append(effects, operations.LineEffect{
			ProductID: line.ProductID,
			Quantity:  qty,
			FromID:    &d.SourceID,
		})
	}
	return effects, nil
}

var _ operations.Operation = (*Delivery)(nil)
