package operations

import (
	"context"
	"fmt"
	"time"

	"stockmaster/internal/core/apperror"
	usercontext "stockmaster/internal/core/context"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/tx"
	"stockmaster/internal/domain/audit"
	"stockmaster/internal/domain/catalogs/location"
	"stockmaster/internal/domain/ledger"
	"stockmaster/internal/domain/moves"
	"stockmaster/pkg/logger"
)

// Locations resolves endpoint locations so the engine can tell tracked
// stock locations from virtual boundary ones.
type Locations interface {
	GetByID(ctx context.Context, locationID id.ID) (*location.Location, error)
}

// Engine runs the lifecycle shared by all operation kinds. Validation is
// one transaction: every line effect lands on the ledger and in the move
// log, or none do and the document keeps its prior status.
type Engine struct {
	txm       tx.Manager
	ledger    *ledger.Service
	moves     *moves.Service
	locations Locations
	audit     audit.Recorder
}

func NewEngine(
	txm tx.Manager,
	ledgerSvc *ledger.Service,
	movesSvc *moves.Service,
	locations Locations,
	recorder audit.Recorder,
) *Engine {
	if recorder == nil {
		recorder = audit.Nop{}
	}
	return &Engine{
		txm:       txm,
		ledger:    ledgerSvc,
		moves:     movesSvc,
		locations: locations,
		audit:     recorder,
	}
}

// Validate transitions the document to DONE, applying its line effects to
// the ledger and appending one move record per effect. persist must save
// the updated header inside the supplied context's transaction.
//
// On any failure the transaction rolls back and the in-memory document is
// restored to its prior status, so a retry sees the same state the
// database does.
func (e *Engine) Validate(ctx context.Context, op Operation, persist func(ctx context.Context) error) error {
	prior := op.GetStatus()
	if !prior.CanValidate() {
		return apperror.NewValidation(
			fmt.Sprintf("operation in status %s cannot be validated", prior)).
			WithDetail("id", op.GetID().String()).
			WithDetail("status", string(prior))
	}

	err := e.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		effects, err := op.Effects(ctx, e.ledger)
		if err != nil {
			return err
		}

		for i, eff := range effects {
			if !eff.Quantity.IsPositive() {
				return apperror.NewInvalidMove(
					fmt.Sprintf("effect %d of %s has non-positive quantity %s", i+1, op.GetReference(), eff.Quantity))
			}
			if err := e.applyEffect(ctx, eff); err != nil {
				return err
			}
			move := &moves.StockMove{
				Reference:   fmt.Sprintf("%s-%02d", op.GetReference(), i+1),
				OperationID: op.GetID(),
				Type:        op.Kind().MoveType(),
				ProductID:   eff.ProductID,
				FromID:      eff.FromID,
				ToID:        eff.ToID,
				Quantity:    eff.Quantity,
				UserID:      e.actor(ctx, op),
			}
			if err := e.moves.Append(ctx, move); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		op.SetStatus(StatusDone)
		op.SetValidated(now)
		if err := persist(ctx); err != nil {
			return fmt.Errorf("persist operation: %w", err)
		}

		return e.audit.Record(ctx, &audit.Event{
			ID:       id.New(),
			Entity:   string(op.Kind()),
			EntityID: op.GetID(),
			Action:   audit.ActionValidated,
			UserID:   e.actor(ctx, op),
			At:       now,
			Payload:  map[string]any{"reference": op.GetReference(), "effects": len(effects)},
		})
	})
	if err != nil {
		op.SetStatus(prior)
		op.SetValidated(time.Time{})
		return err
	}

	logger.Info(ctx, "operation validated",
		"kind", op.Kind(),
		"id", op.GetID(),
		"reference", op.GetReference())
	return nil
}

// applyEffect posts the ledger deltas for one effect. Virtual endpoints
// carry no ledger row and are skipped; the move record still names them.
func (e *Engine) applyEffect(ctx context.Context, eff LineEffect) error {
	posted := false
	for _, end := range []struct {
		locID *id.ID
		sign  int64
	}{
		{eff.FromID, -1},
		{eff.ToID, +1},
	} {
		if end.locID == nil {
			continue
		}
		loc, err := e.locations.GetByID(ctx, *end.locID)
		if err != nil {
			return err
		}
		if !loc.Type.Tracked() {
			continue
		}
		delta := ledger.Delta{
			ProductID:  eff.ProductID,
			LocationID: loc.ID,
			Quantity:   eff.Quantity,
		}
		if end.sign < 0 {
			delta.Quantity = delta.Quantity.Neg()
		}
		if _, err := e.ledger.ApplyDelta(ctx, delta); err != nil {
			return err
		}
		posted = true
	}
	if !posted && eff.FromID == nil && eff.ToID == nil {
		return apperror.NewInvalidMove("effect has no endpoint")
	}
	return nil
}

// Cancel transitions a not-yet-validated document to CANCELLED. Pure status
// change: no ledger or move log effect.
func (e *Engine) Cancel(ctx context.Context, op Operation, persist func(ctx context.Context) error) error {
	prior := op.GetStatus()
	if prior == StatusCancelled {
		return apperror.NewValidation("operation is already cancelled").
			WithDetail("id", op.GetID().String())
	}
	if !prior.CanCancel() {
		return apperror.NewValidation("a validated operation cannot be cancelled; create a counter-operation instead").
			WithDetail("id", op.GetID().String()).
			WithDetail("status", string(prior))
	}

	err := e.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		op.SetStatus(StatusCancelled)
		if err := persist(ctx); err != nil {
			return fmt.Errorf("persist operation: %w", err)
		}
		return e.audit.Record(ctx, &audit.Event{
			ID:       id.New(),
			Entity:   string(op.Kind()),
			EntityID: op.GetID(),
			Action:   audit.ActionCancelled,
			UserID:   e.actor(ctx, op),
			At:       time.Now().UTC(),
			Payload:  map[string]any{"reference": op.GetReference(), "from_status": string(prior)},
		})
	})
	if err != nil {
		op.SetStatus(prior)
		return err
	}

	logger.Info(ctx, "operation cancelled",
		"kind", op.Kind(),
		"id", op.GetID(),
		"reference", op.GetReference())
	return nil
}

// Advance moves the document one step forward (DRAFT to WAITING, WAITING to
// READY) without touching the ledger.
func (e *Engine) Advance(ctx context.Context, op Operation, persist func(ctx context.Context) error) error {
	prior := op.GetStatus()
	next, err := prior.Advance()
	if err != nil {
		return err
	}

	err = e.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		op.SetStatus(next)
		if err := persist(ctx); err != nil {
			return fmt.Errorf("persist operation: %w", err)
		}
		return e.audit.Record(ctx, &audit.Event{
			ID:       id.New(),
			Entity:   string(op.Kind()),
			EntityID: op.GetID(),
			Action:   audit.ActionUpdated,
			UserID:   e.actor(ctx, op),
			At:       time.Now().UTC(),
			Payload:  map[string]any{"from_status": string(prior), "to_status": string(next)},
		})
	})
	if err != nil {
		op.SetStatus(prior)
		return err
	}
	return nil
}

// Update saves header and line changes of a non-terminal document.
func (e *Engine) Update(ctx context.Context, op Operation, persist func(ctx context.Context) error) error {
	if op.GetStatus().Terminal() {
		return apperror.NewValidation("operation is " + string(op.GetStatus()) + " and cannot be modified").
			WithDetail("id", op.GetID().String()).
			WithDetail("status", string(op.GetStatus()))
	}

	return e.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := persist(ctx); err != nil {
			return err
		}
		return e.audit.Record(ctx, &audit.Event{
			ID:       id.New(),
			Entity:   string(op.Kind()),
			EntityID: op.GetID(),
			Action:   audit.ActionUpdated,
			UserID:   e.actor(ctx, op),
			At:       time.Now().UTC(),
			Payload:  map[string]any{"reference": op.GetReference()},
		})
	})
}

// actor resolves the acting user: the authenticated caller when present,
// otherwise the document owner.
func (e *Engine) actor(ctx context.Context, op Operation) id.ID {
	if raw := usercontext.GetUserID(ctx); raw != "" {
		if uid, err := id.Parse(raw); err == nil {
			return uid
		}
	}
	return op.GetUserID()
}
