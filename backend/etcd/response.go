package etcd

import (
	"errors"
	"fmt"

	"go.etcd.io/etcd/api/v3/mvccpb"
	etcd "go.etcd.io/etcd/client/v3"

	txn "github.com/tarantool/go-txn"
	"github.com/tarantool/go-txn/kv"
	"github.com/tarantool/go-txn/tx"
)

// ErrUnexpectedResponse is returned when an etcd response entry has no known type.
var ErrUnexpectedResponse = errors.New("unexpected response from etcd")

// etcdResponseToTxResponse converts an etcd transaction response to tx.Response.
// Payloads are the etcdserverpb Put, Range and DeleteRange responses.
func etcdResponseToTxResponse(resp *etcd.TxnResponse) (tx.Response, error) {
	responses := make([]tx.OpResponse, 0, len(resp.Responses))

	for i, etcdResp := range resp.Responses {
		switch {
		case etcdResp.GetResponseRange() != nil:
			rangeResp := etcdResp.GetResponseRange()
			responses = append(responses, tx.GetResponse(rangeResp, keyValues(rangeResp.Kvs)...))
		case etcdResp.GetResponsePut() != nil:
			putResp := etcdResp.GetResponsePut()

			var values []kv.KeyValue
			if putResp.PrevKv != nil {
				values = keyValues([]*mvccpb.KeyValue{putResp.PrevKv})
			}

			responses = append(responses, tx.PutResponse(putResp, values...))
		case etcdResp.GetResponseDeleteRange() != nil:
			deleteResp := etcdResp.GetResponseDeleteRange()
			responses = append(responses, tx.DeleteResponse(deleteResp, keyValues(deleteResp.PrevKvs)...))
		default:
			return tx.Response{}, txn.NewBackendError(txn.KindUnexpectedResponse, "etcd", //nolint:exhaustruct
				fmt.Errorf("%w: response %d", ErrUnexpectedResponse, i))
		}
	}

	return tx.Response{
		Succeeded: resp.Succeeded,
		Responses: responses,
	}, nil
}

func keyValues(etcdKvs []*mvccpb.KeyValue) []kv.KeyValue {
	if len(etcdKvs) == 0 {
		return nil
	}

	values := make([]kv.KeyValue, 0, len(etcdKvs))
	for _, etcdKv := range etcdKvs {
		values = append(values, kv.KeyValue{
			Key:            etcdKv.Key,
			Value:          etcdKv.Value,
			CreateRevision: etcdKv.CreateRevision,
			ModRevision:    etcdKv.ModRevision,
		})
	}

	return values
}
