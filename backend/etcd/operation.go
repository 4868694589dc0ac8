package etcd

import (
	"errors"
	"fmt"

	etcd "go.etcd.io/etcd/client/v3"

	"github.com/tarantool/go-txn/operation"
)

// ErrUnsupportedOperationType is returned for an operation type etcd cannot express.
var ErrUnsupportedOperationType = errors.New("unsupported operation type")

// operationsToEtcdOps converts operations to etcd operations.
func operationsToEtcdOps(ops []operation.Operation) ([]etcd.Op, error) {
	etcdOps := make([]etcd.Op, 0, len(ops))
	for _, op := range ops {
		etcdOp, err := operationToEtcdOp(op)
		if err != nil {
			return nil, err
		}

		etcdOps = append(etcdOps, etcdOp)
	}

	return etcdOps, nil
}

// operationToEtcdOp converts an operation to an etcd operation.
// Put and Delete ask for the previous key-value.
func operationToEtcdOp(op operation.Operation) (etcd.Op, error) {
	key := string(op.Key())

	switch op.Type() {
	case operation.TypeGet:
		return etcd.OpGet(key), nil
	case operation.TypePut:
		return etcd.OpPut(key, string(op.Value()), etcd.WithPrevKV()), nil
	case operation.TypeDelete:
		return etcd.OpDelete(key, etcd.WithPrevKV()), nil
	default:
		return etcd.Op{}, fmt.Errorf("%w: %v", ErrUnsupportedOperationType, op.Type()) //nolint:exhaustruct
	}
}
