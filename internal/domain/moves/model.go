// Package moves keeps the append-only stock move log. Every stock-affecting
// line of a validated operation produces exactly one move record, so the log
// replays to the current ledger state.
package moves

import (
	"time"

	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain"
)

// MoveType mirrors the operation kind that produced the move.
type MoveType string

const (
	TypeReceipt    MoveType = "RECEIPT"
	TypeDelivery   MoveType = "DELIVERY"
	TypeTransfer   MoveType = "TRANSFER"
	TypeAdjustment MoveType = "ADJUSTMENT"
)

func (t MoveType) Valid() bool {
	switch t {
	case TypeReceipt, TypeDelivery, TypeTransfer, TypeAdjustment:
		return true
	}
	return false
}

// StatusDone is the only status a logged move ever has. Moves are written at
// validation time, after the ledger deltas succeeded, so there is nothing
// pending about them. The column exists for forward compatibility.
const StatusDone = "DONE"

// StockMove is one immutable log entry. Quantity is always positive;
// direction is carried by the endpoints. An endpoint is nil when the
// counterpart lies outside tracked stock: the supplier side of a receipt,
// the customer side of a delivery, the phantom side of an adjustment.
type StockMove struct {
	ID          id.ID          `db:"id" json:"id"`
	Reference   string         `db:"reference" json:"reference"`
	OperationID id.ID          `db:"operation_id" json:"operationId"`
	Type        MoveType       `db:"move_type" json:"type"`
	ProductID   id.ID          `db:"product_id" json:"productId"`
	FromID      *id.ID         `db:"from_location_id" json:"fromLocationId"`
	ToID        *id.ID         `db:"to_location_id" json:"toLocationId"`
	Quantity    types.Quantity `db:"quantity" json:"quantity"`
	Status      string         `db:"status" json:"status"`
	UserID      id.ID          `db:"user_id" json:"userId"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
}

// ListFilter narrows move history queries. Zero-value time bounds are open.
type ListFilter struct {
	ProductID   *id.ID
	LocationID  *id.ID // matches either endpoint
	OperationID *id.ID
	Type        *MoveType
	Since       time.Time
	Until       time.Time
	Limit       int
	Offset      int
}

// ListResult pairs a history page with its total count.
type ListResult = domain.ListResult[StockMove]
