package tarantool

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tarantool/go-txn/compare"
)

const (
	targetValue       = "value"
	targetModRevision = "mod_revision"

	compareArrayLen = 4
)

var (
	_ msgpack.CustomEncoder = encodedCompare{} //nolint:exhaustruct

	//nolint:gochecknoglobals
	operators = map[compare.Op]string{
		compare.OpEqual:    "==",
		compare.OpNotEqual: "!=",
		compare.OpGreater:  ">",
		compare.OpLess:     "<",
	}
)

// encodedCompare is a compare in the storage wire form.
// A compare against a value is [value, op, target, key]. A compare against
// absence checks the mod revision, which is 0 for a missing key.
type encodedCompare struct {
	compare.Compare
}

func newEncodedCompares(cmps []compare.Compare) []encodedCompare {
	encoded := make([]encodedCompare, 0, len(cmps))
	for _, c := range cmps {
		encoded = append(encoded, encodedCompare{c})
	}

	return encoded
}

func (c encodedCompare) EncodeMsgpack(encoder *msgpack.Encoder) error {
	op, ok := operators[c.Op()] //nolint:varnamelen
	if !ok {
		return EncodingError{Text: "compare operator", Err: ErrUnknownOperator}
	}

	if err := encoder.EncodeArrayLen(compareArrayLen); err != nil {
		return EncodingError{Text: "compare array length", Err: err}
	}

	target, hasTarget := c.Target()

	name := targetModRevision
	if hasTarget {
		name = targetValue
	}

	if err := encoder.EncodeString(name); err != nil {
		return EncodingError{Text: "compare target name", Err: err}
	}

	if err := encoder.EncodeString(op); err != nil {
		return EncodingError{Text: "compare operator", Err: err}
	}

	var err error
	if hasTarget {
		err = encoder.EncodeString(string(target))
	} else {
		err = encoder.EncodeInt(0)
	}

	if err != nil {
		return EncodingError{Text: "compare target", Err: err}
	}

	if err := encoder.EncodeString(string(c.Key())); err != nil {
		return EncodingError{Text: "compare key", Err: err}
	}

	return nil
}
