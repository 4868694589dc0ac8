// Package compare provides the predicates used as transaction conditions.
// A Compare checks the current value of a key, or its absence, against a target.
package compare

import (
	"bytes"

	"github.com/tarantool/go-option"
)

// Compare is a single condition of a transaction.
// It is immutable once constructed.
type Compare struct {
	key []byte
	op  Op
	// None means the key must not exist.
	target option.Generic[[]byte]
}

// New creates a Compare of the key against the target under the given operation.
func New(key []byte, op Op, target option.Generic[[]byte]) Compare {
	return Compare{
		key:    key,
		op:     op,
		target: target,
	}
}

// WithValue creates a Compare of the key against an existing value.
func WithValue(key []byte, op Op, target []byte) Compare {
	return New(key, op, option.Some(target))
}

// WithValueNotExists creates a Compare of the key against nonexistence.
// With OpEqual it holds only when the key does not exist.
func WithValueNotExists(key []byte, op Op) Compare {
	return New(key, op, option.None[[]byte]())
}

// Key returns the key this compare applies to.
func (c Compare) Key() []byte {
	return c.key
}

// Op returns the comparison operation.
func (c Compare) Op() Op {
	return c.op
}

// Target returns the expected value and true, or nil and false when the
// compare is made against nonexistence.
func (c Compare) Target() ([]byte, bool) {
	return c.target.UnwrapOr(nil), c.target.IsSome()
}

// HasTarget reports whether the compare is made against an existing value.
func (c Compare) HasTarget() bool {
	return c.target.IsSome()
}

// WithKey returns a copy of the compare applied to another key.
func (c Compare) WithKey(key []byte) Compare {
	return New(key, c.op, c.target)
}

// CompareValue evaluates the compare against the actual stored value,
// None meaning that the key does not exist.
//
// Absence orders below any value. Under Equal and NotEqual two absences are
// equal, so NotEqual of an absent key against nonexistence is false.
func (c Compare) CompareValue(actual option.Generic[[]byte]) bool {
	switch {
	case actual.IsSome() && c.target.IsSome():
		cmp := bytes.Compare(actual.UnwrapOr(nil), c.target.UnwrapOr(nil))

		switch c.op {
		case OpEqual:
			return cmp == 0
		case OpGreater:
			return cmp > 0
		case OpLess:
			return cmp < 0
		case OpNotEqual:
			return cmp != 0
		}
	case actual.IsSome():
		return c.op == OpGreater || c.op == OpNotEqual
	case c.target.IsSome():
		return c.op == OpLess || c.op == OpNotEqual
	default:
		return c.op == OpEqual
	}

	return false
}

// Equal reports whether two compares are identical.
func (c Compare) Equal(other Compare) bool {
	return bytes.Equal(c.key, other.key) &&
		c.op == other.op &&
		c.target.IsSome() == other.target.IsSome() &&
		bytes.Equal(c.target.UnwrapOr(nil), other.target.UnwrapOr(nil))
}
