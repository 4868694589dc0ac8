// Package testing provides test doubles shared by the backend tests.
package testing

import (
	"bytes"
	"errors"
	"sync"

	"github.com/tarantool/go-iproto"
	"github.com/tarantool/go-tarantool/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrNoReply is set on the future when Doer has no queued reply.
var ErrNoReply = errors.New("no reply queued")

type reply struct {
	data []any
	err  error
}

// Doer is a tarantool.Doer that answers requests with queued replies.
type Doer struct {
	mu sync.Mutex
	// Requests holds every received request in order.
	Requests []tarantool.Request
	replies  []reply
}

var _ tarantool.Doer = &Doer{} //nolint:exhaustruct

// NewDoer creates a Doer without queued replies.
func NewDoer() *Doer {
	return &Doer{
		mu:       sync.Mutex{},
		Requests: nil,
		replies:  nil,
	}
}

// Reply queues a successful reply carrying data as the returned values.
func (d *Doer) Reply(data ...any) *Doer {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.replies = append(d.replies, reply{data: data, err: nil})

	return d
}

// Fail queues a failed reply.
func (d *Doer) Fail(err error) *Doer {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.replies = append(d.replies, reply{data: nil, err: err})

	return d
}

// Do records req and resolves a future with the next queued reply.
func (d *Doer) Do(req tarantool.Request) *tarantool.Future {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.Requests = append(d.Requests, req)

	fut := tarantool.NewFuture(req)

	if len(d.replies) == 0 {
		fut.SetError(ErrNoReply)
		return fut
	}

	next := d.replies[0]
	d.replies = d.replies[1:]

	if next.err != nil {
		fut.SetError(next.err)
		return fut
	}

	body, err := encodeBody(next.data)
	if err != nil {
		fut.SetError(err)
		return fut
	}

	if err := fut.SetResponse(tarantool.Header{}, bytes.NewReader(body)); err != nil { //nolint:exhaustruct
		fut.SetError(err)
	}

	return fut
}

func encodeBody(data []any) ([]byte, error) {
	var buf bytes.Buffer

	encoder := msgpack.NewEncoder(&buf)

	if err := encoder.EncodeMapLen(1); err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err := encoder.EncodeUint(uint64(iproto.IPROTO_DATA)); err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err := encoder.Encode(data); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return buf.Bytes(), nil
}
