// Package tx provides the plain request and response aggregates of a transaction.
package tx

import (
	"slices"

	"github.com/tarantool/go-txn/compare"
	"github.com/tarantool/go-txn/operation"
)

// Request is a transaction description: the conditions and the two alternative branches.
// Order within each sequence is the evaluation and execution order.
type Request struct {
	// Compare lists the conditions, all of which must hold for Success to run.
	Compare []compare.Compare
	// Success lists the operations executed when every condition holds.
	Success []operation.Operation
	// Failure lists the operations executed otherwise.
	Failure []operation.Operation
}

// Extend appends the sequences of other after the sequences of r.
// An empty non-nil sequence of other leaves a nil sequence of r empty but non-nil.
func (r *Request) Extend(other Request) {
	r.Compare = extend(r.Compare, other.Compare)
	r.Success = extend(r.Success, other.Success)
	r.Failure = extend(r.Failure, other.Failure)
}

func extend[T any](dst, src []T) []T {
	if dst == nil && src != nil {
		dst = make([]T, 0, len(src))
	}

	return append(dst, src...)
}

// Clone returns a copy of r that shares no backing arrays with it.
func (r Request) Clone() Request {
	return Request{
		Compare: slices.Clone(r.Compare),
		Success: slices.Clone(r.Success),
		Failure: slices.Clone(r.Failure),
	}
}

// Branch returns the operations executed for the given outcome.
func (r Request) Branch(succeeded bool) []operation.Operation {
	if succeeded {
		return r.Success
	}

	return r.Failure
}
