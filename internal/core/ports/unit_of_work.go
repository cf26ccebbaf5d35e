package ports

import "context"

// UnitOfWork coordinates a database transaction across repository calls.
// Each business operation gets a fresh instance; Begin, the repository work,
// and Commit happen on one transaction, with Rollback as the failure path.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to the current transaction.
	OrderRepository() OrderRepository
}
