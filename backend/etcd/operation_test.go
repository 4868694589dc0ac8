package etcd //nolint:testpackage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarantool/go-txn/operation"
)

func TestOperationToEtcdOp(t *testing.T) {
	t.Parallel()

	put, err := operationToEtcdOp(operation.Put([]byte("test-key"), []byte("test-value")))
	require.NoError(t, err)
	assert.True(t, put.IsPut())
	assert.Equal(t, []byte("test-key"), put.KeyBytes())
	assert.Equal(t, []byte("test-value"), put.ValueBytes())

	get, err := operationToEtcdOp(operation.Get([]byte("test-key")))
	require.NoError(t, err)
	assert.True(t, get.IsGet())
	assert.Equal(t, []byte("test-key"), get.KeyBytes())

	del, err := operationToEtcdOp(operation.Delete([]byte("test-key")))
	require.NoError(t, err)
	assert.True(t, del.IsDelete())
	assert.Equal(t, []byte("test-key"), del.KeyBytes())
}

func TestOperationsToEtcdOps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		operations  []operation.Operation
		expectedOps int
	}{
		{
			name:        "empty operations slice",
			operations:  []operation.Operation{},
			expectedOps: 0,
		},
		{
			name:        "single get operation",
			operations:  []operation.Operation{operation.Get([]byte("test-key"))},
			expectedOps: 1,
		},
		{
			name: "multiple operations",
			operations: []operation.Operation{
				operation.Get([]byte("key1")),
				operation.Put([]byte("key2"), []byte("value2")),
				operation.Delete([]byte("key3")),
			},
			expectedOps: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			etcdOps, err := operationsToEtcdOps(tt.operations)
			require.NoError(t, err)
			require.Len(t, etcdOps, tt.expectedOps)

			for i, op := range tt.operations {
				assert.Equal(t, op.Key(), etcdOps[i].KeyBytes(), "order must be preserved")
			}
		})
	}
}
