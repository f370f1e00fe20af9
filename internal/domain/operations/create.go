package operations

import (
	"context"
	"time"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain/audit"
	"stockmaster/pkg/logger"
	"stockmaster/pkg/reference"
)

// Create persists a new DRAFT document, assigning a reference from gen when
// the caller supplied none. persist saves header and lines in the supplied
// context's transaction; nothing is written partially.
//
// The timestamp+random reference scheme makes collisions improbable but
// not impossible; the unique constraint is the backstop. On a duplicate of
// a generated reference, a fresh one is drawn and the write retried once.
func (e *Engine) Create(ctx context.Context, op Operation, gen reference.Generator, persist func(ctx context.Context) error) error {
	generated := op.GetReference() == ""
	if generated {
		op.SetReference(gen.Next(op.Kind().Prefix()))
	}

	run := func() error {
		return e.txm.RunInTransaction(ctx, func(ctx context.Context) error {
			if err := persist(ctx); err != nil {
				return err
			}
			return e.audit.Record(ctx, &audit.Event{
				ID:       id.New(),
				Entity:   string(op.Kind()),
				EntityID: op.GetID(),
				Action:   audit.ActionCreated,
				UserID:   e.actor(ctx, op),
				At:       time.Now().UTC(),
				Payload:  map[string]any{"reference": op.GetReference()},
			})
		})
	}

	err := run()
	if err != nil && generated && apperror.IsDuplicate(err) {
		op.SetReference(gen.Next(op.Kind().Prefix()))
		err = run()
	}
	if err != nil {
		return err
	}

	logger.Info(ctx, "operation created",
		"kind", op.Kind(),
		"id", op.GetID(),
		"reference", op.GetReference())
	return nil
}
