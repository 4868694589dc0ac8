package tarantool

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tarantool/go-txn/operation"
)

const (
	putArrayLen = 3
	keyArrayLen = 2
)

var (
	_ msgpack.CustomEncoder = encodedOperation{} //nolint:exhaustruct

	//nolint:gochecknoglobals
	operationNames = map[operation.Type]string{
		operation.TypeGet:    "get",
		operation.TypePut:    "put",
		operation.TypeDelete: "delete",
	}
)

// encodedOperation is [put, key, value], [get, key] or [delete, key].
type encodedOperation struct {
	operation.Operation
}

func newEncodedOperations(ops []operation.Operation) []encodedOperation {
	encoded := make([]encodedOperation, 0, len(ops))
	for _, o := range ops {
		encoded = append(encoded, encodedOperation{o})
	}

	return encoded
}

func (o encodedOperation) EncodeMsgpack(encoder *msgpack.Encoder) error {
	name, ok := operationNames[o.Type()]
	if !ok {
		return EncodingError{Text: "operation", Err: ErrUnknownOperation}
	}

	arrayLen := keyArrayLen
	if o.Type() == operation.TypePut {
		arrayLen = putArrayLen
	}

	if err := encoder.EncodeArrayLen(arrayLen); err != nil {
		return EncodingError{Text: name + " operation array length", Err: err}
	}

	if err := encoder.EncodeString(name); err != nil {
		return EncodingError{Text: name + " operation name", Err: err}
	}

	if err := encoder.EncodeString(string(o.Key())); err != nil {
		return EncodingError{Text: name + " operation key", Err: err}
	}

	if o.Type() == operation.TypePut {
		if err := encoder.EncodeString(string(o.Value())); err != nil {
			return EncodingError{Text: "put operation value", Err: err}
		}
	}

	return nil
}
