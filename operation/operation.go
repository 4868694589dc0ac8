// Package operation provides the atomic operations executed by a transaction branch.
package operation

// Operation is a single Put, Get or Delete over a key.
// It is immutable once constructed.
type Operation struct {
	typ   Type
	key   []byte
	value []byte
}

// Put creates an operation storing value under key.
func Put(key, value []byte) Operation {
	return Operation{typ: TypePut, key: key, value: value}
}

// Get creates an operation reading key.
func Get(key []byte) Operation {
	return Operation{typ: TypeGet, key: key, value: nil}
}

// Delete creates an operation removing key.
func Delete(key []byte) Operation {
	return Operation{typ: TypeDelete, key: key, value: nil}
}

// Type returns the operation type.
func (o Operation) Type() Type {
	return o.typ
}

// Key returns the target key.
func (o Operation) Key() []byte {
	return o.key
}

// Value returns the data for put operations, nil for get and delete.
func (o Operation) Value() []byte {
	return o.value
}

// WithKey returns a copy of the operation applied to another key.
func (o Operation) WithKey(key []byte) Operation {
	return Operation{typ: o.typ, key: key, value: o.value}
}
