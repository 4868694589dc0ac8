package txn

import (
	"errors"
	"slices"

	"github.com/tarantool/go-txn/compare"
	"github.com/tarantool/go-txn/operation"
	"github.com/tarantool/go-txn/tx"
)

// Txn is a compare-and-swap transaction under construction.
//
// Builder methods have value receivers: each returns the next Txn and leaves
// the receiver unchanged. Stages must be used in the order When, AndThen,
// OrElse, each at most once; any of them may be skipped. The first violation
// is kept as the Txn's error, later builder calls are ignored, and the Txn
// cannot be submitted.
//
// A Txn under construction must not be shared by concurrent mutators.
type Txn struct {
	req    tx.Request
	stages Stage
	err    error
}

// New returns an empty transaction.
func New() Txn {
	return Txn{
		req:    tx.Request{Compare: nil, Success: nil, Failure: nil},
		stages: 0,
		err:    nil,
	}
}

// When sets the conditions. If all of them hold, the operations passed to
// AndThen are executed, otherwise the operations passed to OrElse are.
// When must be called before AndThen and OrElse.
func (t Txn) When(compares ...compare.Compare) Txn {
	if t.err != nil {
		return t
	}

	for _, conflict := range []Stage{StageWhen, StageThen, StageElse} {
		if t.Used(conflict) {
			return t.fail(StageWhen, conflict)
		}
	}

	t.req.Compare = slices.Clone(compares)
	t.stages |= StageWhen

	return t
}

// AndThen sets the operations executed when all conditions hold.
// AndThen must be called before OrElse.
func (t Txn) AndThen(operations ...operation.Operation) Txn {
	if t.err != nil {
		return t
	}

	for _, conflict := range []Stage{StageThen, StageElse} {
		if t.Used(conflict) {
			return t.fail(StageThen, conflict)
		}
	}

	t.req.Success = slices.Clone(operations)
	t.stages |= StageThen

	return t
}

// OrElse sets the operations executed when any condition fails.
func (t Txn) OrElse(operations ...operation.Operation) Txn {
	if t.err != nil {
		return t
	}

	if t.Used(StageElse) {
		return t.fail(StageElse, StageElse)
	}

	t.req.Failure = slices.Clone(operations)
	t.stages |= StageElse

	return t
}

func (t Txn) fail(call, conflict Stage) Txn {
	t.err = &StageError{Call: call, Conflict: conflict}
	return t
}

// Used reports whether every stage in s has been used.
func (t Txn) Used(s Stage) bool {
	return t.stages&s == s
}

// Stages returns the set of used stages.
func (t Txn) Stages() Stage {
	return t.stages
}

// Err returns the builder misuse error, if any.
func (t Txn) Err() error {
	return t.err
}

// MaxOperations returns the largest of the numbers of conditions, success
// operations and failure operations. Compare it with Service.MaxTxnOps before
// submission.
func (t Txn) MaxOperations() int {
	return max(len(t.req.Compare), len(t.req.Success), len(t.req.Failure))
}

// Merge returns a transaction holding the conditions and operations of t
// followed by those of other. The used stages are the union of both.
func (t Txn) Merge(other Txn) Txn {
	req := t.req.Clone()
	req.Extend(other.req)

	return Txn{
		req:    req,
		stages: t.stages | other.stages,
		err:    errors.Join(t.err, other.err),
	}
}

// MergeAll merges the transactions in order. It returns an empty transaction
// for an empty input.
func MergeAll(txns ...Txn) Txn {
	merged := New()
	for _, t := range txns {
		merged = merged.Merge(t)
	}

	return merged
}

// MapKeys returns a copy of t with every key rewritten by fn. Used stages are kept.
func (t Txn) MapKeys(fn func([]byte) []byte) Txn {
	mapOps := func(ops []operation.Operation) []operation.Operation {
		if ops == nil {
			return nil
		}

		mapped := make([]operation.Operation, 0, len(ops))
		for _, op := range ops {
			mapped = append(mapped, op.WithKey(fn(op.Key())))
		}

		return mapped
	}

	var compares []compare.Compare
	if t.req.Compare != nil {
		compares = make([]compare.Compare, 0, len(t.req.Compare))
		for _, c := range t.req.Compare {
			compares = append(compares, c.WithKey(fn(c.Key())))
		}
	}

	t.req = tx.Request{
		Compare: compares,
		Success: mapOps(t.req.Success),
		Failure: mapOps(t.req.Failure),
	}

	return t
}

// Request returns the transaction description without the stage flags.
// It fails if the builder was misused.
func (t Txn) Request() (tx.Request, error) {
	if t.err != nil {
		return tx.Request{}, t.err //nolint:exhaustruct
	}

	return t.req.Clone(), nil
}
