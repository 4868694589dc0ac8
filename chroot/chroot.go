// Package chroot provides a txn.Service wrapper confining every key of a
// transaction under a fixed root prefix. Several tenants can share one
// backend this way without seeing each other's keys.
//
// Only the keys of tx.OpResponse.Values are reported without the root.
// Backend payloads in tx.OpResponse.Payload are passed through untouched and
// still carry the full, prefixed keys, so read keys from Values.
package chroot

import (
	"bytes"
	"context"
	"slices"

	txn "github.com/tarantool/go-txn"
	"github.com/tarantool/go-txn/kv"
	"github.com/tarantool/go-txn/tx"
)

// Service prefixes keys of submitted transactions with root and strips root
// from keys reported in responses. Backend payloads are passed through as is.
type Service struct {
	root  []byte
	inner txn.Service
}

var _ txn.Service = &Service{} //nolint:exhaustruct

// New creates a Service confining inner to root.
func New(root []byte, inner txn.Service) *Service {
	return &Service{
		root:  slices.Clone(root),
		inner: inner,
	}
}

// Root returns the key prefix.
func (s *Service) Root() []byte {
	return s.root
}

// Txn submits t with every key placed under root.
func (s *Service) Txn(ctx context.Context, t txn.Txn) (tx.Response, error) {
	if err := t.Err(); err != nil {
		return tx.Response{}, err //nolint:exhaustruct,wrapcheck
	}

	resp, err := s.inner.Txn(ctx, t.MapKeys(s.addRoot))
	if err != nil {
		return tx.Response{}, err //nolint:exhaustruct,wrapcheck
	}

	for i := range resp.Responses {
		resp.Responses[i].Values = s.stripValues(resp.Responses[i].Values)
	}

	return resp, nil
}

// MaxTxnOps returns the limit of the wrapped service.
func (s *Service) MaxTxnOps() int {
	return s.inner.MaxTxnOps()
}

func (s *Service) addRoot(key []byte) []byte {
	return slices.Concat(s.root, key)
}

func (s *Service) stripValues(values []kv.KeyValue) []kv.KeyValue {
	if values == nil {
		return nil
	}

	stripped := make([]kv.KeyValue, 0, len(values))
	for _, val := range values {
		val.Key = bytes.TrimPrefix(val.Key, s.root)
		stripped = append(stripped, val)
	}

	return stripped
}
