// Package kv provides the key-value pair reported by backends in transaction responses.
package kv

// KeyValue represents a stored key-value pair with revision metadata.
type KeyValue struct {
	// Key is the serialized representation of the key.
	Key []byte
	// Value is the serialized representation of the value.
	Value []byte

	// CreateRevision is the revision at which the key was created.
	CreateRevision int64
	// ModRevision is the revision number of the last modification to this key.
	ModRevision int64
}
