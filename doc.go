// Package txn provides a backend-independent description of compare-and-swap
// transactions over a key-value store.
//
// A transaction is built with [New] and the staged builder methods
// [Txn.When], [Txn.AndThen] and [Txn.OrElse], or with one of the factory
// helpers, and is then submitted to any [Service] implementation, see the
// [github.com/tarantool/go-txn/backend/etcd],
// [github.com/tarantool/go-txn/backend/tarantool] and
// [github.com/tarantool/go-txn/backend/memory] packages.
package txn
