package tarantool

import (
	"fmt"

	"github.com/tarantool/go-txn/operation"
	"github.com/tarantool/go-txn/tx"
)

type txnRequest struct {
	_msgpack struct{} `msgpack:",omitempty"`

	Predicates []encodedCompare   `msgpack:"predicates"`
	OnSuccess  []encodedOperation `msgpack:"on_success"`
	OnFailure  []encodedOperation `msgpack:"on_failure"`
}

func newTxnRequest(req tx.Request) txnRequest {
	return txnRequest{
		_msgpack:   struct{}{},
		Predicates: newEncodedCompares(req.Compare),
		OnSuccess:  newEncodedOperations(req.Success),
		OnFailure:  newEncodedOperations(req.Failure),
	}
}

// validate reports the first compare or operation the storage cannot express.
func validate(req tx.Request) error {
	for _, c := range req.Compare {
		if _, ok := operators[c.Op()]; !ok {
			return EncodingError{Text: fmt.Sprintf("compare on %q", c.Key()), Err: ErrUnknownOperator}
		}
	}

	for _, ops := range [][]operation.Operation{req.Success, req.Failure} {
		for _, o := range ops {
			if _, ok := operationNames[o.Type()]; !ok {
				return EncodingError{Text: fmt.Sprintf("operation on %q", o.Key()), Err: ErrUnknownOperation}
			}
		}
	}

	return nil
}
