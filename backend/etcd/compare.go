package etcd

import (
	"errors"
	"fmt"

	etcd "go.etcd.io/etcd/client/v3"

	"github.com/tarantool/go-txn/compare"
)

var (
	// ErrUnsupportedCompareOp is returned for a compare operation etcd cannot express.
	ErrUnsupportedCompareOp = errors.New("unsupported compare operation")

	//nolint:gochecknoglobals
	results = map[compare.Op]string{
		compare.OpEqual:    "=",
		compare.OpGreater:  ">",
		compare.OpLess:     "<",
		compare.OpNotEqual: "!=",
	}
)

// comparesToCmps converts a compare list to an etcd comparison list.
func comparesToCmps(compares []compare.Compare) ([]etcd.Cmp, error) {
	cmps := make([]etcd.Cmp, 0, len(compares))
	for _, c := range compares {
		cmp, err := compareToCmp(c)
		if err != nil {
			return nil, err
		}

		cmps = append(cmps, cmp)
	}

	return cmps, nil
}

// compareToCmp converts a compare to an etcd comparison.
// A compare against nonexistence checks the create revision, which is 0 only
// for missing keys and orders below any existing key's create revision.
// A value comparison fails on a missing key, see needsGuard.
func compareToCmp(c compare.Compare) (etcd.Cmp, error) {
	result, ok := results[c.Op()]
	if !ok {
		return etcd.Cmp{}, fmt.Errorf("%w: %v", ErrUnsupportedCompareOp, c.Op()) //nolint:exhaustruct
	}

	key := string(c.Key())

	target, exists := c.Target()
	if !exists {
		return etcd.Compare(etcd.CreateRevision(key), result, int64(0)), nil
	}

	return etcd.Compare(etcd.Value(key), result, string(target)), nil
}
