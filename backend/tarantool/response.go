package tarantool

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/tarantool/go-txn/kv"
	"github.com/tarantool/go-txn/tx"
)

// Entry is a key reported by the storage for a single operation.
// The Payload of every tx.OpResponse produced by this backend is an []Entry.
type Entry struct {
	Path        []byte `msgpack:"path"`
	ModRevision int64  `msgpack:"mod_revision"`
	Value       []byte `msgpack:"value"`
}

type opResult struct {
	Entries []Entry
}

var _ msgpack.CustomDecoder = &opResult{} //nolint:exhaustruct

func (r *opResult) DecodeMsgpack(decoder *msgpack.Decoder) error {
	if err := decoder.Decode(&r.Entries); err != nil {
		return DecodingError{Text: "operation result", Err: err}
	}

	return nil
}

type txnResponseData struct {
	IsSuccess bool       `msgpack:"is_success"`
	Responses []opResult `msgpack:"responses"`
}

type txnResponse struct {
	Data     txnResponseData `msgpack:"data"`
	Revision int64           `msgpack:"revision"`
}

// asTxnResponse tags every result with the type of the operation at the same
// position of the executed branch.
func (r txnResponse) asTxnResponse(req tx.Request) (tx.Response, error) {
	branch := req.Branch(r.Data.IsSuccess)
	if len(branch) != len(r.Data.Responses) {
		return tx.Response{}, fmt.Errorf("%w: expected %d operation results, got %d", //nolint:exhaustruct
			ErrUnexpectedResponse, len(branch), len(r.Data.Responses))
	}

	responses := make([]tx.OpResponse, 0, len(branch))
	for i, result := range r.Data.Responses {
		responses = append(responses, tx.OpResponse{
			Type:    branch[i].Type(),
			Values:  r.keyValues(result.Entries),
			Payload: result.Entries,
		})
	}

	return tx.Response{
		Succeeded: r.Data.IsSuccess,
		Responses: responses,
	}, nil
}

// keyValues converts entries, filling a missing mod revision with the
// revision of the whole transaction.
func (r txnResponse) keyValues(entries []Entry) []kv.KeyValue {
	if len(entries) == 0 {
		return nil
	}

	values := make([]kv.KeyValue, 0, len(entries))
	for _, entry := range entries {
		modRevision := entry.ModRevision
		if modRevision == 0 && r.Revision != 0 {
			modRevision = r.Revision
		}

		values = append(values, kv.KeyValue{
			Key:            entry.Path,
			Value:          entry.Value,
			CreateRevision: 0,
			ModRevision:    modRevision,
		})
	}

	return values
}

