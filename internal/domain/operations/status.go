package operations

import "stockmaster/internal/core/apperror"

// Status is the lifecycle state of an operation document.
//
//	DRAFT -> WAITING -> READY -> DONE
//	DRAFT | WAITING | READY -> CANCELLED
//
// DONE and CANCELLED are terminal. A DONE operation's ledger effects are
// permanent; reversal requires a new counter-operation.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusWaiting   Status = "WAITING"
	StatusReady     Status = "READY"
	StatusDone      Status = "DONE"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusWaiting, StatusReady, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusCancelled
}

// CanValidate reports whether the validate action is permitted from s.
func (s Status) CanValidate() bool {
	switch s {
	case StatusDraft, StatusWaiting, StatusReady:
		return true
	}
	return false
}

// CanCancel reports whether the cancel action is permitted from s.
func (s Status) CanCancel() bool {
	return s.CanValidate()
}

// next returns the single forward step, or "" from READY's successor onward.
func (s Status) next() Status {
	switch s {
	case StatusDraft:
		return StatusWaiting
	case StatusWaiting:
		return StatusReady
	}
	return ""
}

// Advance returns the next forward status or a validation error when the
// document is READY (validate is the only way to DONE) or terminal.
func (s Status) Advance() (Status, error) {
	n := s.next()
	if n == "" {
		return "", apperror.NewValidation("operation cannot advance from status " + string(s)).
			WithDetail("status", string(s))
	}
	return n, nil
}
