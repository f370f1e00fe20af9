package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"stockmaster/internal/core/apperror"
)

// PostgreSQL SQLSTATE codes the storage layer translates into typed errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeSerializationFail   = "40001"
	codeDeadlockDetected    = "40P01"
	codeLockNotAvailable    = "55P03"
	codeQueryCanceled       = "57014" // statement_timeout
)

// MapError translates driver errors into the application taxonomy. Typed
// errors pass through unchanged; lock contention, deadlocks, and statement
// timeouts become retryable concurrency errors.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return apperror.NewDuplicate(pgErr.TableName, pgErr.ConstraintName, pgErr.Detail).WithCause(err)
		case codeForeignKeyViolation:
			return apperror.NewConflict("referenced row does not exist or is still referenced").
				WithDetail("constraint", pgErr.ConstraintName).
				WithCause(err)
		case codeSerializationFail, codeDeadlockDetected, codeLockNotAvailable, codeQueryCanceled:
			return apperror.NewConcurrency(pgErr.TableName, pgErr.ConstraintName).WithCause(err)
		}
	}
	return err
}
