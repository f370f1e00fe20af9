// Package adjustment provides the stock adjustment operation: reconciling
// the ledger with a physical count at one location.
package adjustment

import (
	"context"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/operations"
)

type Adjustment struct {
	operations.Header

	LocationID id.ID `db:"location_id" json:"locationId"`

	Lines []Line `db:"-" json:"lines"`
}

// Line records a count. SystemQty is the ledger value seen when the line
// was captured and Difference its delta; both are recomputed against the
// live ledger during validation, so a count taken from a stale snapshot
// still posts correctly. CountedQty is the operator's input and is never
// touched.
type Line struct {
	LineID     id.ID          `db:"line_id" json:"lineId"`
	LineNo     int            `db:"line_no" json:"lineNo"`
	ProductID  id.ID          `db:"product_id" json:"productId"`
	SystemQty  types.Quantity `db:"system_qty" json:"systemQty"`
	CountedQty types.Quantity `db:"counted_qty" json:"countedQty"`
	Difference types.Quantity `db:"difference" json:"difference"`
}

func New(userID id.ID, locationID id.ID) *Adjustment {
	return &Adjustment{
		Header:     operations.NewHeader(userID),
		LocationID: locationID,
		Lines:      make([]Line, 0),
	}
}

func (a *Adjustment) Kind() operations.Kind { return operations.KindAdjustment }

// AddLine captures one count against the snapshot the caller read.
func (a *Adjustment) AddLine(productID id.ID, systemQty, countedQty types.Quantity) {
	a.Lines = append(a.Lines, Line{
		LineID:     id.New(),
		LineNo:     len(a.Lines) + 1,
		ProductID:  productID,
		SystemQty:  systemQty,
		CountedQty: countedQty,
		Difference: countedQty - systemQty,
	})
}

func (a *Adjustment) Validate(ctx context.Context) error {
	if id.IsNil(a.LocationID) {
		return apperror.NewValidation("location is required").
			WithDetail("field", "locationId")
	}
	if len(a.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	for i, line := range a.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.CountedQty.IsNegative() {
			return apperror.NewValidation("counted quantity cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}
	return nil
}

// Effects re-reads each product's ledger row and posts the recomputed
// difference: a gain flows into the location, a loss flows out of it.
// Lines whose count matches the live ledger contribute nothing.
func (a *Adjustment) Effects(ctx context.Context, snap operations.LedgerReader) ([]operations.LineEffect, error) {
	effects := make([]operations.LineEffect, 0, len(a.Lines))
	for i := range a.Lines {
		line := &a.Lines[i]

		row, err := snap.Get(ctx, line.ProductID, a.LocationID)
		if err != nil {
			return nil, err
		}
		line.SystemQty = row.Quantity
		line.Difference = line.CountedQty - line.SystemQty

		if line.Difference.IsZero() {
			continue
		}
		eff := operations.LineEffect{
			ProductID: line.ProductID,
			Quantity:  line.Difference.Abs(),
		}
		if line.Difference.IsPositive() {
			eff.ToID = &a.LocationID
		} else {
			eff.FromID = &a.LocationID
		}
		effects = append(effects, eff)
	}
	return effects, nil
}

var _ operations.Operation = (*Adjustment)(nil)
