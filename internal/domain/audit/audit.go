// Package audit defines the audit trail port. The storage layer provides a
// compressed implementation; domain services only emit events.
package audit

import (
	"context"
	"time"

	"stockmaster/internal/core/id"
)

// Actions recorded by the core.
const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionValidated = "validated"
	ActionCancelled = "cancelled"
	ActionLogin     = "login"
)

// Event is one audit trail entry. Payload is marshalled and compressed by
// the recorder; keep it to plain maps and structs.
type Event struct {
	ID       id.ID
	Entity   string // "receipt", "product", ...
	EntityID id.ID
	Action   string
	UserID   id.ID
	At       time.Time
	Payload  any
}

// Recorder persists events. Implementations must be safe to call inside a
// transaction; a recorder failure aborts the surrounding operation.
type Recorder interface {
	Record(ctx context.Context, e *Event) error
}

// Nop discards events. Used in tests and when auditing is disabled.
type Nop struct{}

func (Nop) Record(context.Context, *Event) error { return nil }
