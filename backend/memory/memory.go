// Package memory provides an in-process implementation of txn.Service
// for tests and single-process deployments.
package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/tarantool/go-option"

	txn "github.com/tarantool/go-txn"
	"github.com/tarantool/go-txn/compare"
	"github.com/tarantool/go-txn/internal/options"
	"github.com/tarantool/go-txn/kv"
	"github.com/tarantool/go-txn/operation"
	"github.com/tarantool/go-txn/tx"
)

// DefaultMaxTxnOps is the default operation limit, equal to etcd's default.
const DefaultMaxTxnOps = 128

// PutResponse is the payload of a Put response.
type PutResponse struct {
	// PrevKv is the overwritten key-value, nil if the key did not exist.
	PrevKv *kv.KeyValue
}

// RangeResponse is the payload of a Get response.
type RangeResponse struct {
	Kvs   []kv.KeyValue
	Count int64
}

// DeleteResponse is the payload of a Delete response.
type DeleteResponse struct {
	Deleted int64
	PrevKvs []kv.KeyValue
}

type backendOptions struct {
	maxTxnOps int
}

// Option configures the backend.
type Option = options.OptionCallback[backendOptions]

// WithMaxTxnOps sets the operation limit of a single transaction.
func WithMaxTxnOps(n int) Option {
	return func(opts *backendOptions) {
		opts.maxTxnOps = n
	}
}

// Backend is a thread-safe in-memory key-value store executing transactions
// atomically under a single lock.
type Backend struct {
	mu        sync.RWMutex
	data      map[string]kv.KeyValue
	revision  int64
	maxTxnOps int
}

var _ txn.Service = &Backend{} //nolint:exhaustruct

// New creates an empty backend.
func New(opts ...Option) *Backend {
	applied := options.ApplyOptions(func() backendOptions {
		return backendOptions{maxTxnOps: DefaultMaxTxnOps}
	}, opts)

	return &Backend{
		mu:        sync.RWMutex{},
		data:      make(map[string]kv.KeyValue),
		revision:  1,
		maxTxnOps: applied.maxTxnOps,
	}
}

// MaxTxnOps returns the operation limit of a single transaction.
func (b *Backend) MaxTxnOps() int {
	return b.maxTxnOps
}

// Revision returns the current store revision.
func (b *Backend) Revision() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.revision
}

// Get returns the stored key-value outside of any transaction.
func (b *Backend) Get(key []byte) (kv.KeyValue, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	val, ok := b.data[string(key)]

	return val, ok
}

// Txn executes the transaction atomically.
func (b *Backend) Txn(ctx context.Context, t txn.Txn) (tx.Response, error) {
	req, err := t.Request()
	if err != nil {
		return tx.Response{}, err //nolint:exhaustruct,wrapcheck
	}

	if err := txn.CheckOperations(t, b.maxTxnOps); err != nil {
		return tx.Response{}, txn.NewBackendError(txn.KindTooManyOperations, "memory", err) //nolint:exhaustruct
	}

	if err := ctx.Err(); err != nil {
		return tx.Response{}, txn.NewBackendError(txn.KindCanceled, "memory", err) //nolint:exhaustruct
	}

	if readOnly(req) {
		b.mu.RLock()
		defer b.mu.RUnlock()
	} else {
		b.mu.Lock()
		defer b.mu.Unlock()
	}

	succeeded := b.checkCompares(req.Compare)

	return tx.Response{
		Succeeded: succeeded,
		Responses: b.executeOps(req.Branch(succeeded)),
	}, nil
}

// readOnly reports whether neither branch of req changes the store.
func readOnly(req tx.Request) bool {
	for _, ops := range [][]operation.Operation{req.Success, req.Failure} {
		for _, op := range ops {
			if op.Type().IsMutation() {
				return false
			}
		}
	}

	return true
}

// checkCompares checks if all compares hold on the current state of the store.
func (b *Backend) checkCompares(compares []compare.Compare) bool {
	for _, cmp := range compares {
		actual := option.None[[]byte]()
		if val, ok := b.data[string(cmp.Key())]; ok {
			actual = option.Some(val.Value)
		}

		if !cmp.CompareValue(actual) {
			return false
		}
	}

	return true
}

func (b *Backend) executeOps(ops []operation.Operation) []tx.OpResponse {
	result := make([]tx.OpResponse, 0, len(ops))
	next := b.revision + 1
	mutated := false

	for _, op := range ops {
		key := string(op.Key())

		switch op.Type() {
		case operation.TypePut:
			resp := &PutResponse{PrevKv: nil}

			createRevision := next
			if prev, ok := b.data[key]; ok {
				resp.PrevKv = &prev
				createRevision = prev.CreateRevision
			}

			b.data[key] = kv.KeyValue{
				Key:            bytes.Clone(op.Key()),
				Value:          bytes.Clone(op.Value()),
				CreateRevision: createRevision,
				ModRevision:    next,
			}
			mutated = true

			if resp.PrevKv != nil {
				result = append(result, tx.PutResponse(resp, *resp.PrevKv))
			} else {
				result = append(result, tx.PutResponse(resp))
			}
		case operation.TypeGet:
			resp := &RangeResponse{Kvs: nil, Count: 0}
			if val, ok := b.data[key]; ok {
				resp.Kvs = []kv.KeyValue{val}
				resp.Count = 1
			}

			result = append(result, tx.GetResponse(resp, resp.Kvs...))
		case operation.TypeDelete:
			resp := &DeleteResponse{Deleted: 0, PrevKvs: nil}
			if prev, ok := b.data[key]; ok {
				delete(b.data, key)

				resp.Deleted = 1
				resp.PrevKvs = []kv.KeyValue{prev}
				mutated = true
			}

			result = append(result, tx.DeleteResponse(resp, resp.PrevKvs...))
		}
	}

	if mutated {
		b.revision = next
	}

	return result
}
