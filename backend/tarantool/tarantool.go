// Package tarantool provides a Tarantool config storage implementation of
// txn.Service. Transactions are executed by a stored function, by default
// config.storage.txn.
package tarantool

import (
	"context"
	"errors"
	"fmt"

	"github.com/tarantool/go-tarantool/v2"
	"go.uber.org/zap"

	txn "github.com/tarantool/go-txn"
	"github.com/tarantool/go-txn/internal/options"
	"github.com/tarantool/go-txn/tx"
)

const (
	// DefaultFunction is the stored function that executes transactions.
	DefaultFunction = "config.storage.txn"
	// DefaultMaxTxnOps is the default operation limit of a single transaction.
	DefaultMaxTxnOps = 128
)

type backendOptions struct {
	function  string
	maxTxnOps int
	logger    *zap.Logger
}

func defaultOptions() backendOptions {
	return backendOptions{
		function:  DefaultFunction,
		maxTxnOps: DefaultMaxTxnOps,
		logger:    zap.NewNop(),
	}
}

// Option configures the backend.
type Option = options.OptionCallback[backendOptions]

// WithFunction sets the stored function called to execute a transaction.
func WithFunction(name string) Option {
	return func(opts *backendOptions) {
		opts.function = name
	}
}

// WithMaxTxnOps sets the operation limit.
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

// Backend is a Tarantool implementation of txn.Service.
// tarantool.Connection and pool.ConnectorAdapter can serve as its doer.
type Backend struct {
	doer      tarantool.Doer
	function  string
	maxTxnOps int
	logger    *zap.Logger
}

var _ txn.Service = &Backend{} //nolint:exhaustruct

// New creates a new Tarantool backend.
func New(doer tarantool.Doer, opts ...Option) *Backend {
	applied := options.ApplyOptions(defaultOptions, opts)

	return &Backend{
		doer:      doer,
		function:  applied.function,
		maxTxnOps: applied.maxTxnOps,
		logger:    applied.logger,
	}
}

// MaxTxnOps returns the operation limit of a single transaction.
func (b *Backend) MaxTxnOps() int {
	return b.maxTxnOps
}

// Txn encodes t and executes it with the stored function.
func (b *Backend) Txn(ctx context.Context, t txn.Txn) (tx.Response, error) {
	req, err := t.Request()
	if err != nil {
		return tx.Response{}, err //nolint:exhaustruct,wrapcheck
	}

	if err := txn.CheckOperations(t, b.maxTxnOps); err != nil {
		return tx.Response{}, txn.NewBackendError(txn.KindTooManyOperations, "tarantool", err) //nolint:exhaustruct
	}

	if err := validate(req); err != nil {
		return tx.Response{}, txn.NewBackendError(txn.KindEncoding, "tarantool", err) //nolint:exhaustruct
	}

	call := tarantool.NewCallRequest(b.function).
		Args([]any{newTxnRequest(req)}).
		Context(ctx)

	var result []txnResponse

	switch err := b.doer.Do(call).GetTyped(&result); {
	case err != nil:
		b.logger.Debug("tarantool transaction failed",
			zap.String("function", b.function), zap.Error(err))

		return tx.Response{}, classifyError(ctx, err) //nolint:exhaustruct
	case len(result) != 1:
		return tx.Response{}, txn.NewBackendError(txn.KindUnexpectedResponse, "tarantool", //nolint:exhaustruct
			fmt.Errorf("%w: expected 1 response, got %d", ErrUnexpectedResponse, len(result)))
	}

	resp, err := result[0].asTxnResponse(req)
	if err != nil {
		return tx.Response{}, txn.NewBackendError(txn.KindUnexpectedResponse, "tarantool", err) //nolint:exhaustruct
	}

	b.logger.Debug("tarantool transaction committed",
		zap.String("function", b.function),
		zap.Int("compares", len(req.Compare)), zap.Int("success", len(req.Success)), zap.Int("failure", len(req.Failure)),
		zap.Bool("succeeded", resp.Succeeded), zap.Int64("revision", result[0].Revision))

	return resp, nil
}

func classifyError(ctx context.Context, err error) error {
	var decodingErr DecodingError

	switch {
	case errors.As(err, &decodingErr):
		return txn.NewBackendError(txn.KindUnexpectedResponse, "tarantool", err)
	case ctx.Err() != nil, errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return txn.NewBackendError(txn.KindCanceled, "tarantool", err)
	default:
		return txn.NewBackendError(txn.KindUnavailable, "tarantool transaction failed", err)
	}
}
