package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for database transaction management.
type TransactionManager interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction.
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// NumberReader exposes the document-number lookup used by sequence generation:
// the lexicographically greatest persisted number starting with the given
// prefix (e.g. "INV-2025-"). Implementations return apperrors.ErrNotFound when
// no number with that prefix exists yet.
type NumberReader interface {
	FindLatestNumber(ctx context.Context, prefix string) (string, error)
}
