package tx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarantool/go-txn/compare"
	"github.com/tarantool/go-txn/operation"
	"github.com/tarantool/go-txn/tx"
)

func TestRequest_Extend(t *testing.T) {
	t.Parallel()

	req := tx.Request{
		Compare: []compare.Compare{compare.WithValue([]byte("a"), compare.OpEqual, []byte("1"))},
		Success: []operation.Operation{operation.Put([]byte("a"), []byte("2"))},
		Failure: nil,
	}

	req.Extend(tx.Request{
		Compare: []compare.Compare{compare.WithValueNotExists([]byte("b"), compare.OpEqual)},
		Success: []operation.Operation{operation.Put([]byte("b"), []byte("1"))},
		Failure: []operation.Operation{operation.Get([]byte("b"))},
	})

	require.Len(t, req.Compare, 2)
	require.Len(t, req.Success, 2)
	require.Len(t, req.Failure, 1)

	assert.Equal(t, []byte("a"), req.Compare[0].Key())
	assert.Equal(t, []byte("b"), req.Compare[1].Key())
	assert.Equal(t, []byte("a"), req.Success[0].Key())
	assert.Equal(t, []byte("b"), req.Success[1].Key())
	assert.Equal(t, operation.TypeGet, req.Failure[0].Type())
}

func TestRequest_ExtendEmpty(t *testing.T) {
	t.Parallel()

	req := tx.Request{
		Compare: nil,
		Success: []operation.Operation{operation.Delete([]byte("a"))},
		Failure: nil,
	}

	req.Extend(tx.Request{}) //nolint:exhaustruct

	assert.Empty(t, req.Compare)
	assert.Len(t, req.Success, 1)
	assert.Empty(t, req.Failure)
}

func TestRequest_ExtendKeepsEmptySequences(t *testing.T) {
	t.Parallel()

	var req tx.Request

	req.Extend(tx.Request{
		Compare: []compare.Compare{},
		Success: nil,
		Failure: []operation.Operation{},
	})

	assert.NotNil(t, req.Compare)
	assert.Empty(t, req.Compare)
	assert.Nil(t, req.Success)
	assert.NotNil(t, req.Failure)
	assert.Empty(t, req.Failure)
}

func TestRequest_Clone(t *testing.T) {
	t.Parallel()

	ops := make([]operation.Operation, 1, 4)
	ops[0] = operation.Get([]byte("a"))

	req := tx.Request{Compare: nil, Success: ops, Failure: nil}
	clone := req.Clone()

	clone.Extend(tx.Request{
		Compare: nil,
		Success: []operation.Operation{operation.Get([]byte("b"))},
		Failure: nil,
	})

	// The source backing array has spare capacity and must stay untouched.
	assert.Len(t, req.Success, 1)
	assert.Equal(t, []byte("a"), ops[:2][0].Key())
	assert.Empty(t, ops[:2][1].Key())
	assert.Len(t, clone.Success, 2)
}

func TestRequest_Branch(t *testing.T) {
	t.Parallel()

	req := tx.Request{
		Compare: nil,
		Success: []operation.Operation{operation.Put([]byte("a"), []byte("1"))},
		Failure: []operation.Operation{operation.Get([]byte("a")), operation.Get([]byte("b"))},
	}

	assert.Len(t, req.Branch(true), 1)
	assert.Len(t, req.Branch(false), 2)
}

func TestOpResponseConstructors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, operation.TypePut, tx.PutResponse(nil).Type)
	assert.Equal(t, operation.TypeGet, tx.GetResponse("payload").Type)
	assert.Equal(t, "payload", tx.GetResponse("payload").Payload)
	assert.Equal(t, operation.TypeDelete, tx.DeleteResponse(nil).Type)
	assert.Empty(t, tx.DeleteResponse(nil).Values)
}
