package etcd //nolint:testpackage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/etcd/api/v3/etcdserverpb"

	"github.com/tarantool/go-txn/compare"
)

func TestCompareToCmp_Value(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		op       compare.Op
		expected etcdserverpb.Compare_CompareResult
	}{
		{"equal", compare.OpEqual, etcdserverpb.Compare_EQUAL},
		{"greater", compare.OpGreater, etcdserverpb.Compare_GREATER},
		{"less", compare.OpLess, etcdserverpb.Compare_LESS},
		{"not equal", compare.OpNotEqual, etcdserverpb.Compare_NOT_EQUAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmp, err := compareToCmp(compare.WithValue([]byte("test-key"), tt.op, []byte("test-value")))
			require.NoError(t, err)

			assert.Equal(t, etcdserverpb.Compare_VALUE, cmp.Target)
			assert.Equal(t, tt.expected, cmp.Result)
			assert.Equal(t, []byte("test-key"), cmp.KeyBytes())
			require.IsType(t, &etcdserverpb.Compare_Value{}, cmp.TargetUnion) //nolint:exhaustruct
			assert.Equal(t, []byte("test-value"),
				cmp.TargetUnion.(*etcdserverpb.Compare_Value).Value) //nolint:forcetypeassert
		})
	}
}

func TestCompareToCmp_NotExists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		op       compare.Op
		expected etcdserverpb.Compare_CompareResult
	}{
		{"equal", compare.OpEqual, etcdserverpb.Compare_EQUAL},
		{"greater", compare.OpGreater, etcdserverpb.Compare_GREATER},
		{"less", compare.OpLess, etcdserverpb.Compare_LESS},
		{"not equal", compare.OpNotEqual, etcdserverpb.Compare_NOT_EQUAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmp, err := compareToCmp(compare.WithValueNotExists([]byte("test-key"), tt.op))
			require.NoError(t, err)

			assert.Equal(t, etcdserverpb.Compare_CREATE, cmp.Target)
			assert.Equal(t, tt.expected, cmp.Result)
			assert.Equal(t, []byte("test-key"), cmp.KeyBytes())
			require.IsType(t, &etcdserverpb.Compare_CreateRevision{}, cmp.TargetUnion) //nolint:exhaustruct
			assert.Equal(t, int64(0),
				cmp.TargetUnion.(*etcdserverpb.Compare_CreateRevision).CreateRevision) //nolint:forcetypeassert
		})
	}
}

func TestCompareToCmp_UnsupportedOp(t *testing.T) {
	t.Parallel()

	_, err := compareToCmp(compare.WithValue([]byte("test-key"), compare.Op(99), []byte("v")))

	require.ErrorIs(t, err, ErrUnsupportedCompareOp)
}

func TestComparesToCmps(t *testing.T) {
	t.Parallel()

	cmps, err := comparesToCmps([]compare.Compare{
		compare.WithValue([]byte("a"), compare.OpEqual, []byte("1")),
		compare.WithValueNotExists([]byte("b"), compare.OpEqual),
	})
	require.NoError(t, err)
	require.Len(t, cmps, 2)
	assert.Equal(t, []byte("a"), cmps[0].KeyBytes())
	assert.Equal(t, []byte("b"), cmps[1].KeyBytes())

	_, err = comparesToCmps([]compare.Compare{
		compare.WithValue([]byte("a"), compare.OpEqual, []byte("1")),
		compare.WithValue([]byte("b"), compare.Op(99), []byte("1")),
	})
	require.ErrorIs(t, err, ErrUnsupportedCompareOp)

	cmps, err = comparesToCmps(nil)
	require.NoError(t, err)
	assert.Empty(t, cmps)
}
