package tx

import (
	"github.com/tarantool/go-txn/kv"
	"github.com/tarantool/go-txn/operation"
)

// OpResponse is the result of a single operation of the executed branch.
type OpResponse struct {
	// Type matches the type of the corresponding operation.
	Type operation.Type
	// Values holds the key-values reported by the backend: the current value
	// for Get, the previous value for Put and Delete.
	Values []kv.KeyValue
	// Payload is the backend's own response, not interpreted by this package.
	Payload any
}

// PutResponse creates a response of a Put operation.
func PutResponse(payload any, values ...kv.KeyValue) OpResponse {
	return OpResponse{Type: operation.TypePut, Values: values, Payload: payload}
}

// GetResponse creates a response of a Get operation.
func GetResponse(payload any, values ...kv.KeyValue) OpResponse {
	return OpResponse{Type: operation.TypeGet, Values: values, Payload: payload}
}

// DeleteResponse creates a response of a Delete operation.
func DeleteResponse(payload any, values ...kv.KeyValue) OpResponse {
	return OpResponse{Type: operation.TypeDelete, Values: values, Payload: payload}
}

// Response contains the result of a transaction execution.
type Response struct {
	// Succeeded indicates whether the success branch was executed.
	Succeeded bool
	// Responses holds one entry per operation of the executed branch, in order.
	Responses []OpResponse
}
