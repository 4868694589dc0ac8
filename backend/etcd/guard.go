package etcd

import (
	"context"
	"errors"
	"fmt"

	etcd "go.etcd.io/etcd/client/v3"
	"go.uber.org/zap"

	txn "github.com/tarantool/go-txn"
	"github.com/tarantool/go-txn/compare"
	"github.com/tarantool/go-txn/tx"
)

// maxGuardAttempts bounds the attempts of a guarded transaction whose keys
// keep appearing and disappearing between attempts.
const maxGuardAttempts = 8

// ErrGuardAttemptsExhausted is returned when the existence of the keys of a
// guarded transaction changed on every attempt.
var ErrGuardAttemptsExhausted = errors.New("key existence changed on every attempt")

// needsGuard reports whether c holds for a missing key while etcd cannot say so.
// etcd fails every value comparison on a missing key, but Less and NotEqual
// against a value hold when the key is absent.
func needsGuard(c compare.Compare) bool {
	if !c.HasTarget() {
		return false
	}

	return c.Op() == compare.OpLess || c.Op() == compare.OpNotEqual
}

func hasGuardedCompares(compares []compare.Compare) bool {
	for _, c := range compares {
		if needsGuard(c) {
			return true
		}
	}

	return false
}

// guardedTxn is an attempt of a transaction with guarded compares.
// The outer transaction pins the existence of every guarded key. Its success
// branch is a nested transaction with the remaining compares: a guarded
// compare on a key known to be absent holds and is dropped, on a key known
// to exist it is an ordinary value comparison. Its failure branch counts the
// guarded keys, so the next attempt starts from their actual existence.
type guardedTxn struct {
	guards []etcd.Cmp
	inner  []etcd.Cmp
	probes []etcd.Op
	keys   []string
}

func newGuardedTxn(compares []compare.Compare, absent map[string]bool) (guardedTxn, error) {
	var g guardedTxn

	for _, c := range compares {
		if !needsGuard(c) {
			cmp, err := compareToCmp(c)
			if err != nil {
				return guardedTxn{}, err //nolint:exhaustruct
			}

			g.inner = append(g.inner, cmp)

			continue
		}

		key := string(c.Key())
		g.keys = append(g.keys, key)
		g.probes = append(g.probes, etcd.OpGet(key, etcd.WithCountOnly()))

		if absent[key] {
			g.guards = append(g.guards, etcd.Compare(etcd.CreateRevision(key), "=", int64(0)))
			continue
		}

		g.guards = append(g.guards, etcd.Compare(etcd.CreateRevision(key), ">", int64(0)))

		cmp, err := compareToCmp(c)
		if err != nil {
			return guardedTxn{}, err //nolint:exhaustruct
		}

		g.inner = append(g.inner, cmp)
	}

	return g, nil
}

// absentKeys returns the guarded keys the failure branch found missing.
func (g guardedTxn) absentKeys(resp *etcd.TxnResponse) (map[string]bool, error) {
	if len(resp.Responses) != len(g.keys) {
		return nil, fmt.Errorf("%w: expected %d key counts, got %d",
			ErrUnexpectedResponse, len(g.keys), len(resp.Responses))
	}

	absent := make(map[string]bool, len(g.keys))

	for i, r := range resp.Responses {
		rangeResp := r.GetResponseRange()
		if rangeResp == nil {
			return nil, fmt.Errorf("%w: response %d is not a key count", ErrUnexpectedResponse, i)
		}

		if rangeResp.Count == 0 {
			absent[g.keys[i]] = true
		}
	}

	return absent, nil
}

// commitGuarded runs attempts until the existence guards hold, then reports
// the outcome of the nested transaction.
func (b *Backend) commitGuarded(
	ctx context.Context,
	compares []compare.Compare,
	thenOps, elseOps []etcd.Op,
) (tx.Response, error) {
	absent := map[string]bool{}

	for attempt := 1; attempt <= maxGuardAttempts; attempt++ {
		g, err := newGuardedTxn(compares, absent)
		if err != nil {
			return tx.Response{}, txn.NewBackendError(txn.KindEncoding, "failed to convert compares", err) //nolint:exhaustruct
		}

		resp, err := b.commit(ctx, g.guards, []etcd.Op{etcd.OpTxn(g.inner, thenOps, elseOps)}, g.probes)
		if err != nil {
			return tx.Response{}, err //nolint:exhaustruct
		}

		if resp.Succeeded {
			if len(resp.Responses) != 1 || resp.Responses[0].GetResponseTxn() == nil {
				return tx.Response{}, txn.NewBackendError(txn.KindUnexpectedResponse, "etcd", //nolint:exhaustruct
					fmt.Errorf("%w: expected a nested transaction response", ErrUnexpectedResponse))
			}

			return etcdResponseToTxResponse((*etcd.TxnResponse)(resp.Responses[0].GetResponseTxn()))
		}

		absent, err = g.absentKeys(resp)
		if err != nil {
			return tx.Response{}, txn.NewBackendError(txn.KindUnexpectedResponse, "etcd", err) //nolint:exhaustruct
		}

		b.logger.Debug("etcd transaction guards failed, retrying",
			zap.Int("attempt", attempt), zap.Int("guards", len(g.guards)))
	}

	return tx.Response{}, txn.NewBackendError(txn.KindUnavailable, "etcd", //nolint:exhaustruct
		fmt.Errorf("%w: %d attempts", ErrGuardAttemptsExhausted, maxGuardAttempts))
}
