// Package etcd provides an etcd v3 implementation of txn.Service.
package etcd

import (
	"context"
	"errors"
	"fmt"

	"go.etcd.io/etcd/api/v3/v3rpc/rpctypes"
	etcd "go.etcd.io/etcd/client/v3"
	"go.uber.org/zap"

	txn "github.com/tarantool/go-txn"
	"github.com/tarantool/go-txn/internal/options"
	"github.com/tarantool/go-txn/tx"
)

// DefaultMaxTxnOps is the default value of etcd's --max-txn-ops.
const DefaultMaxTxnOps = 128

// Client defines the minimal interface needed for etcd operations.
// This allows for easier testing and mock implementations.
type Client interface {
	// Txn creates a new transaction.
	Txn(ctx context.Context) etcd.Txn
}

type backendOptions struct {
	maxTxnOps int
	logger    *zap.Logger
}

func defaultOptions() backendOptions {
	return backendOptions{
		maxTxnOps: DefaultMaxTxnOps,
		logger:    zap.NewNop(),
	}
}

// Option configures the backend.
type Option = options.OptionCallback[backendOptions]

// WithMaxTxnOps sets the operation limit. It must match the server's --max-txn-ops.
func WithMaxTxnOps(n int) Option {
	return func(opts *backendOptions) {
		opts.maxTxnOps = n
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(opts *backendOptions) {
		if logger == nil {
			logger = zap.NewNop()
		}

		opts.logger = logger
	}
}

// Backend is an etcd implementation of txn.Service.
type Backend struct {
	client    Client
	maxTxnOps int
	logger    *zap.Logger
	closer    func() error
}

var _ txn.Service = &Backend{} //nolint:exhaustruct

// New creates a new etcd backend using an existing etcd client.
// The client should be properly configured and connected to an etcd cluster.
func New(client *etcd.Client, opts ...Option) *Backend {
	return NewWithClient(client, opts...)
}

// NewWithClient creates a new etcd backend over any Client implementation.
func NewWithClient(client Client, opts ...Option) *Backend {
	applied := options.ApplyOptions(defaultOptions, opts)

	return &Backend{
		client:    client,
		maxTxnOps: applied.maxTxnOps,
		logger:    applied.logger,
		closer:    nil,
	}
}

// MaxTxnOps returns the operation limit of a single transaction.
func (b *Backend) MaxTxnOps() int {
	return b.maxTxnOps
}

// Close closes the etcd client if the backend was created by Dial.
func (b *Backend) Close() error {
	if b.closer == nil {
		return nil
	}

	if err := b.closer(); err != nil {
		return fmt.Errorf("failed to close etcd client: %w", err)
	}

	return nil
}

// Txn converts t to an etcd transaction and commits it.
func (b *Backend) Txn(ctx context.Context, t txn.Txn) (tx.Response, error) {
	req, err := t.Request()
	if err != nil {
		return tx.Response{}, err //nolint:exhaustruct,wrapcheck
	}

	if err := txn.CheckOperations(t, b.maxTxnOps); err != nil {
		return tx.Response{}, txn.NewBackendError(txn.KindTooManyOperations, "etcd", err) //nolint:exhaustruct
	}

	thenOps, err := operationsToEtcdOps(req.Success)
	if err != nil {
		return tx.Response{}, txn.NewBackendError(txn.KindEncoding, "failed to convert success operations", err) //nolint:exhaustruct
	}

	elseOps, err := operationsToEtcdOps(req.Failure)
	if err != nil {
		return tx.Response{}, txn.NewBackendError(txn.KindEncoding, "failed to convert failure operations", err) //nolint:exhaustruct
	}

	if hasGuardedCompares(req.Compare) {
		return b.commitGuarded(ctx, req.Compare, thenOps, elseOps)
	}

	cmps, err := comparesToCmps(req.Compare)
	if err != nil {
		return tx.Response{}, txn.NewBackendError(txn.KindEncoding, "failed to convert compares", err) //nolint:exhaustruct
	}

	resp, err := b.commit(ctx, cmps, thenOps, elseOps)
	if err != nil {
		return tx.Response{}, err //nolint:exhaustruct
	}

	return etcdResponseToTxResponse(resp)
}

// commit sends a single etcd transaction. Client errors are classified.
func (b *Backend) commit(ctx context.Context, cmps []etcd.Cmp, thenOps, elseOps []etcd.Op) (*etcd.TxnResponse, error) {
	resp, err := b.client.Txn(ctx).If(cmps...).Then(thenOps...).Else(elseOps...).Commit()
	if err != nil {
		b.logger.Debug("etcd transaction failed",
			zap.Int("compares", len(cmps)), zap.Int("success", len(thenOps)), zap.Int("failure", len(elseOps)),
			zap.Error(err))

		return nil, classifyError(err)
	}

	b.logger.Debug("etcd transaction committed",
		zap.Int("compares", len(cmps)), zap.Int("success", len(thenOps)), zap.Int("failure", len(elseOps)),
		zap.Bool("succeeded", resp.Succeeded), zap.Int64("revision", resp.Header.GetRevision()))

	return resp, nil
}

// classifyError wraps an etcd client error into a txn.BackendError.
func classifyError(err error) error {
	switch {
	case errors.Is(err, rpctypes.ErrTooManyOps):
		return txn.NewBackendError(txn.KindTooManyOperations, "etcd", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return txn.NewBackendError(txn.KindCanceled, "etcd", err)
	default:
		return txn.NewBackendError(txn.KindUnavailable, "etcd transaction failed", err)
	}
}
