// Package operations implements the shared lifecycle of the four operation
// document kinds. One engine carries the state machine and the posting
// transaction; each kind contributes only its delta rule as a set of line
// effects.
package operations

import (
	"context"
	"time"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/ledger"
	"stockmaster/internal/domain/moves"
	"stockmaster/pkg/reference"
)

// Kind discriminates the four operation document variants.
type Kind string

const (
	KindReceipt    Kind = "RECEIPT"
	KindDelivery   Kind = "DELIVERY"
	KindTransfer   Kind = "TRANSFER"
	KindAdjustment Kind = "ADJUSTMENT"
)

// Prefix returns the reference prefix for documents of this kind.
func (k Kind) Prefix() string {
	switch k {
	case KindReceipt:
		return reference.PrefixReceipt
	case KindDelivery:
		return reference.PrefixDelivery
	case KindTransfer:
		return reference.PrefixTransfer
	case KindAdjustment:
		return reference.PrefixAdjustment
	}
	return "OP"
}

// MoveType returns the move log type produced by this kind.
func (k Kind) MoveType() moves.MoveType {
	switch k {
	case KindReceipt:
		return moves.TypeReceipt
	case KindDelivery:
		return moves.TypeDelivery
	case KindTransfer:
		return moves.TypeTransfer
	case KindAdjustment:
		return moves.TypeAdjustment
	}
	return ""
}

// Header holds the fields every operation document shares. Kind models
// embed it.
type Header struct {
	ID            id.ID      `db:"id" json:"id"`
	Reference     string     `db:"reference" json:"reference"`
	Status        Status     `db:"status" json:"status"`
	ScheduledDate *time.Time `db:"scheduled_date" json:"scheduledDate,omitempty"`
	ValidatedDate *time.Time `db:"validated_date" json:"validatedDate,omitempty"`
	UserID        id.ID      `db:"user_id" json:"userId"`
	Notes         string     `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
}

// NewHeader initializes a DRAFT header owned by userID.
func NewHeader(userID id.ID) Header {
	now := time.Now().UTC()
	return Header{
		ID:        id.New(),
		Status:    StatusDraft,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (h *Header) GetID() id.ID          { return h.ID }
func (h *Header) GetReference() string  { return h.Reference }
func (h *Header) SetReference(r string) { h.Reference = r }
func (h *Header) GetStatus() Status     { return h.Status }
func (h *Header) SetStatus(s Status)    { h.Status = s; h.UpdatedAt = time.Now().UTC() }
func (h *Header) GetUserID() id.ID      { return h.UserID }
// SetValidated stamps the validation time; the zero time clears it.
func (h *Header) SetValidated(t time.Time) {
	if t.IsZero() {
		h.ValidatedDate = nil
		return
	}
	h.ValidatedDate = &t
}

// CanModify returns a validation error once the document is terminal.
// Header and line mutations are rejected after DONE or CANCELLED.
func (h *Header) CanModify() error {
	if h.Status.Terminal() {
		return apperror.NewValidation("operation is " + string(h.Status) + " and cannot be modified").
			WithDetail("id", h.ID.String()).
			WithDetail("status", string(h.Status))
	}
	return nil
}

// LineEffect is one stock-affecting consequence of a document line.
// Quantity is always positive; direction is the endpoint pair. The engine
// turns each effect into ledger deltas on its tracked endpoints and exactly
// one move record. Lines with nothing to post (a zero adjustment
// difference) contribute no effect.
type LineEffect struct {
	ProductID id.ID
	Quantity  types.Quantity
	FromID    *id.ID
	ToID      *id.ID
}

// LedgerReader is the snapshot view a delta rule may consult while
// computing effects. Adjustments re-read system quantities through it so a
// count taken against a stale snapshot still posts the correct difference.
type LedgerReader interface {
	Get(ctx context.Context, productID, locationID id.ID) (*ledger.Stock, error)
}

// Operation is what the engine requires of a document kind.
type Operation interface {
	GetID() id.ID
	GetReference() string
	SetReference(string)
	GetStatus() Status
	SetStatus(Status)
	SetValidated(time.Time)
	GetUserID() id.ID
	Kind() Kind

	// Effects computes the document's line effects against the current
	// ledger state. Called inside the posting transaction, after the
	// status check.
	Effects(ctx context.Context, snap LedgerReader) ([]LineEffect, error)
}
