package codec

import (
	"encoding/binary"
	"math"

	"github.com/basiliskin/sajc/errs"
	"github.com/basiliskin/sajc/header"
	"github.com/basiliskin/sajc/internal/pool"
	"github.com/basiliskin/sajc/profile"
	"github.com/basiliskin/sajc/value"
)

// nullRowLength is the reserved row-length sentinel meaning "this row's
// array itself is null", distinct from a present-but-empty array (length
// 0); no real array payload approaches four billion elements.
const nullRowLength = uint32(math.MaxUint32)

// ArrayPrimitiveCodec encodes a column of arrays of primitive values by
// concatenating every row's elements into one flat column, profiling and
// dispatching it through the registered codec for its detected element
// type, and recording per-row lengths to slice the flat output back apart.
type ArrayPrimitiveCodec struct {
	registry *Registry
}

var _ Codec = (*ArrayPrimitiveCodec)(nil)

// NewArrayPrimitiveCodec creates an array-of-primitives codec that resolves
// its element codec lazily from registry.
func NewArrayPrimitiveCodec(registry *Registry) *ArrayPrimitiveCodec {
	return &ArrayPrimitiveCodec{registry: registry}
}

// Encode emits Varint(rowCount), one Varint row length per row (or the
// null-row sentinel for a null row), and, unless every row is null or
// empty, the inner type tag plus the inner codec's payload over the
// concatenation of every row's elements.
func (c *ArrayPrimitiveCodec) Encode(values []value.Value) ([]byte, error) {
	var flat []value.Value
	lengths := make([]uint32, len(values))
	anyElements := false

	for i, v := range values {
		switch {
		case v.IsNull():
			lengths[i] = nullRowLength
		case v.Kind == value.KindSeq:
			lengths[i] = uint32(len(v.Seq)) //nolint:gosec
			flat = append(flat, v.Seq...)
			if len(v.Seq) > 0 {
				anyElements = true
			}
		default:
			return nil, errs.ErrTypeMismatch
		}
	}

	var innerType header.FieldType
	var payload []byte

	if anyElements {
		innerType = profile.Column(flat)
		if innerType != header.NUMBER && allNumbers(flat) {
			innerType = header.NUMBER
		}

		innerCodec, err := c.registry.Get(innerType)
		if err != nil {
			return nil, err
		}

		payload, err = innerCodec.Encode(flat)
		if err != nil {
			return nil, err
		}
	}

	return pool.BuildColumn(func(bb *pool.ByteBuffer) {
		bb.B = binary.AppendUvarint(bb.B, uint64(len(values)))
		for _, l := range lengths {
			bb.B = binary.AppendUvarint(bb.B, uint64(l))
		}

		if !anyElements {
			return
		}

		bb.MustWrite([]byte{byte(innerType)})
		bb.B = binary.AppendUvarint(bb.B, uint64(len(payload)))
		bb.MustWrite(payload)
	}), nil
}

func allNumbers(values []value.Value) bool {
	for _, v := range values {
		if v.IsNullOrMissing() {
			continue
		}
		if v.Kind != value.KindNumber {
			return false
		}
	}

	return true
}

// Decode reads the row-length vector, dispatches to the inner codec over
// the recorded type tag, and slices the flat decoded output back into
// per-row arrays (or Null, for the sentinel length).
func (c *ArrayPrimitiveCodec) Decode(data []byte) ([]value.Value, error) {
	rowCount, offset := binary.Uvarint(data)
	if offset <= 0 {
		return nil, errs.ErrTruncated
	}

	lengths := make([]uint32, rowCount)
	totalElements := uint64(0)
	for i := range lengths {
		l, n := binary.Uvarint(data[offset:])
		if n <= 0 {
			return nil, errs.ErrTruncated
		}
		offset += n

		lengths[i] = uint32(l) //nolint:gosec
		if lengths[i] != nullRowLength {
			totalElements += l
		}
	}

	out := make([]value.Value, rowCount)
	if totalElements == 0 {
		for i, l := range lengths {
			if l == nullRowLength {
				out[i] = value.Null()
			} else {
				out[i] = value.OfSeq(nil)
			}
		}

		return out, nil
	}

	if offset >= len(data) {
		return nil, errs.ErrTruncated
	}

	innerType := header.FieldType(data[offset])
	offset++

	payloadLen, n := binary.Uvarint(data[offset:])
	if n <= 0 {
		return nil, errs.ErrTruncated
	}
	offset += n

	if offset+int(payloadLen) > len(data) {
		return nil, errs.ErrTruncated
	}

	innerCodec, err := c.registry.Get(innerType)
	if err != nil {
		return nil, err
	}

	flat, err := innerCodec.Decode(data[offset : offset+int(payloadLen)])
	if err != nil {
		return nil, err
	}

	if uint64(len(flat)) != totalElements {
		return nil, errs.ErrRowLengthMismatch
	}

	pos := 0
	for i, l := range lengths {
		if l == nullRowLength {
			out[i] = value.Null()
			continue
		}

		out[i] = value.OfSeq(flat[pos : pos+int(l)])
		pos += int(l)
	}

	return out, nil
}
