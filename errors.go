package txn

import (
	"errors"
	"fmt"
)

var (
	// ErrBuilderMisuse is matched by every builder stage order error.
	ErrBuilderMisuse = errors.New("transaction builder misuse")
	// ErrTooManyOperations is returned when a transaction exceeds the operation limit.
	ErrTooManyOperations = errors.New("too many operations in transaction")
)

// StageError is recorded when a builder stage is called twice or after a later stage.
type StageError struct {
	// Call is the stage being called.
	Call Stage
	// Conflict is the already used stage that forbids the call.
	Conflict Stage
}

// Error returns the error message.
func (e *StageError) Error() string {
	if e.Call == e.Conflict {
		return fmt.Sprintf("cannot call %s twice", e.Call)
	}

	return fmt.Sprintf("cannot call %s after %s", e.Call, e.Conflict)
}

// Is makes StageError match ErrBuilderMisuse.
func (e *StageError) Is(target error) bool {
	return target == ErrBuilderMisuse //nolint:errorlint
}

// ErrorKind classifies a backend execution failure.
type ErrorKind int

const (
	// KindUnknown is an unclassified backend failure.
	KindUnknown ErrorKind = iota
	// KindUnavailable means the backend could not be reached or failed to answer.
	KindUnavailable
	// KindCanceled means the caller's context was canceled or timed out.
	KindCanceled
	// KindTooManyOperations means the backend rejected an oversized transaction.
	KindTooManyOperations
	// KindEncoding means the transaction could not be encoded for the backend.
	KindEncoding
	// KindUnexpectedResponse means the backend answered with a malformed response.
	KindUnexpectedResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnknown:
		return "Unknown"
	case KindUnavailable:
		return "Unavailable"
	case KindCanceled:
		return "Canceled"
	case KindTooManyOperations:
		return "TooManyOperations"
	case KindEncoding:
		return "Encoding"
	case KindUnexpectedResponse:
		return "UnexpectedResponse"
	default:
		return "Unknown"
	}
}

// BackendError is the structured error returned by Service implementations.
type BackendError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// NewBackendError returns a new backend error, or nil if err is nil.
func NewBackendError(kind ErrorKind, message string, err error) error {
	if err == nil {
		return nil
	}

	return &BackendError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Error returns the error message.
func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Err)
	}

	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a BackendError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var backendErr *BackendError

	return errors.As(err, &backendErr) && backendErr.Kind == kind
}
