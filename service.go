package txn

import (
	"context"
	"fmt"

	"github.com/tarantool/go-txn/tx"
)

// Service is the capability a key-value backend provides to execute transactions.
type Service interface {
	// Txn atomically evaluates every condition of t against the current value
	// (or absence) of its key. If all hold it executes the success operations,
	// otherwise the failure operations, and returns one response per executed
	// operation in order. No partial application of a branch is observable.
	Txn(ctx context.Context, t Txn) (tx.Response, error)

	// MaxTxnOps returns the largest number of conditions or branch operations
	// the backend accepts in one transaction.
	MaxTxnOps() int
}

// CheckOperations fails with ErrTooManyOperations when t does not fit into limit.
func CheckOperations(t Txn, limit int) error {
	if ops := t.MaxOperations(); ops > limit {
		return fmt.Errorf("%w: %d > %d", ErrTooManyOperations, ops, limit)
	}

	return nil
}

// Commit checks t for builder misuse and against the operation limit of svc,
// then submits it. Errors returned by svc are passed through unchanged.
func Commit(ctx context.Context, svc Service, t Txn) (tx.Response, error) {
	if err := t.Err(); err != nil {
		return tx.Response{}, err //nolint:exhaustruct
	}

	if err := CheckOperations(t, svc.MaxTxnOps()); err != nil {
		return tx.Response{}, err //nolint:exhaustruct
	}

	return svc.Txn(ctx, t) //nolint:wrapcheck
}
