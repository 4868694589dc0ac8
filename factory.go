package txn

import (
	"github.com/tarantool/go-txn/compare"
	"github.com/tarantool/go-txn/operation"
)

// PutIfNotExists builds a transaction that puts value at key if the key does
// not exist. Otherwise it reads the existing value.
func PutIfNotExists(key, value []byte) Txn {
	return New().
		When(compare.WithValueNotExists(key, compare.OpEqual)).
		AndThen(operation.Put(key, value)).
		OrElse(operation.Get(key))
}

// CompareAndPut builds a transaction that puts value at key if the key exists
// and holds expect. Otherwise it reads the current value.
func CompareAndPut(key, expect, value []byte) Txn {
	return New().
		When(compare.WithValue(key, compare.OpEqual, expect)).
		AndThen(operation.Put(key, value)).
		OrElse(operation.Get(key))
}
