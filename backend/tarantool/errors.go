package tarantool

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOperator is returned for a compare operator the storage cannot express.
	ErrUnknownOperator = errors.New("unknown operator")
	// ErrUnknownOperation is returned for an operation type the storage cannot express.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrUnexpectedResponse is returned when the response from tarantool has unexpected format.
	ErrUnexpectedResponse = errors.New("unexpected response from tarantool")
)

// EncodingError is returned when a transaction part cannot be encoded.
type EncodingError struct {
	Text string
	Err  error
}

// Error returns the error message.
func (e EncodingError) Error() string {
	return fmt.Sprintf("failed to encode %s: %s", e.Text, e.Err)
}

// Unwrap returns the underlying error.
func (e EncodingError) Unwrap() error {
	return e.Err
}

// DecodingError is returned when the transaction response cannot be decoded.
type DecodingError struct {
	Text string
	Err  error
}

// Error returns the error message.
func (e DecodingError) Error() string {
	return fmt.Sprintf("failed to decode %s: %s", e.Text, e.Err)
}

// Unwrap returns the underlying error.
func (e DecodingError) Unwrap() error {
	return e.Err
}
