// Package ledger provides the stock ledger: the single source of truth for
// per-(product, location) quantities.
package ledger

import (
	"time"

	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
)

// Stock is one ledger row. Rows are created lazily on the first
// stock-affecting move into a location and never deleted: a zero-quantity
// row is valid and distinct from "never stocked here".
//
// Invariants, enforced on every mutation:
//
//	quantity  >= 0
//	reserved  >= 0
//	available == quantity - reserved  (hence quantity >= reserved)
type Stock struct {
	ProductID  id.ID `db:"product_id" json:"productId"`
	LocationID id.ID `db:"location_id" json:"locationId"`

	Quantity  types.Quantity `db:"quantity" json:"quantity"`
	Reserved  types.Quantity `db:"reserved" json:"reserved"`
	Available types.Quantity `db:"available" json:"available"`

	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Delta is a signed change to one ledger row. Every operation kind reduces
// to one or two deltas, which keeps the arithmetic in a single place.
type Delta struct {
	ProductID  id.ID
	LocationID id.ID
	Quantity   types.Quantity // signed change to on-hand
	Reserved   types.Quantity // signed change to reserved
}

// Totals aggregates a product's stock across all tracked locations.
type Totals struct {
	Quantity  types.Quantity `json:"quantity"`
	Reserved  types.Quantity `json:"reserved"`
	Available types.Quantity `json:"available"`
}
