package codec

import (
	"encoding/binary"

	"github.com/basiliskin/sajc/column"
	"github.com/basiliskin/sajc/errs"
	"github.com/basiliskin/sajc/header"
	"github.com/basiliskin/sajc/internal/pool"
	"github.com/basiliskin/sajc/profile"
	"github.com/basiliskin/sajc/value"
)

// ArrayObjectCodec encodes a column of arrays of objects by flattening the
// concatenation of every row's inner objects column-wise (the same pivot
// used at the top level) and storing one nested column per distinct
// flattened field.
//
// Nested columns are encoded directly by their type codec, with no
// nullable wrapper: a flattened key absent from a given inner object is
// folded into Null before encoding, and a decoded Null is dropped when the
// object is rebuilt, so a genuinely-missing nested key and an
// explicitly-null one are indistinguishable on the way out. This is a
// deliberate tradeoff: top-level MISSING/Null distinction is preserved,
// but nesting one level deep loses it.
type ArrayObjectCodec struct {
	registry *Registry
}

var _ Codec = (*ArrayObjectCodec)(nil)

// NewArrayObjectCodec creates an array-of-objects codec that resolves its
// nested field codecs lazily from registry.
func NewArrayObjectCodec(registry *Registry) *ArrayObjectCodec {
	return &ArrayObjectCodec{registry: registry}
}

// Encode emits Varint(arrayCount), one Varint row length per row (or the
// null-row sentinel), and, unless the flattened item list is empty, the
// nested field block: field count followed by each field's name, type
// code, and codec payload.
func (c *ArrayObjectCodec) Encode(values []value.Value) ([]byte, error) {
	var items []value.Value
	lengths := make([]uint32, len(values))

	for i, v := range values {
		switch {
		case v.IsNull():
			lengths[i] = nullRowLength
		case v.Kind == value.KindSeq:
			lengths[i] = uint32(len(v.Seq)) //nolint:gosec
			items = append(items, v.Seq...)
		default:
			return nil, errs.ErrTypeMismatch
		}
	}

	if len(items) == 0 {
		return pool.BuildColumn(func(bb *pool.ByteBuffer) {
			bb.B = binary.AppendUvarint(bb.B, uint64(len(values)))
			for _, l := range lengths {
				bb.B = binary.AppendUvarint(bb.B, uint64(l))
			}
		}), nil
	}

	records := make([]value.Record, len(items))
	for i, item := range items {
		if item.Kind != value.KindMap {
			return nil, errs.ErrTypeMismatch
		}
		records[i] = value.Record(item.Map)
	}

	names, columns := column.Pivot(records)

	type fieldPayload struct {
		name      string
		fieldType header.FieldType
		payload   []byte
	}

	fields := make([]fieldPayload, len(names))
	for i, name := range names {
		col := foldMissingToNull(columns[i])
		fieldType := profile.Column(col)

		fieldCodec, err := c.registry.Get(fieldType)
		if err != nil {
			return nil, err
		}

		payload, err := fieldCodec.Encode(col)
		if err != nil {
			return nil, err
		}

		fields[i] = fieldPayload{name: name, fieldType: fieldType, payload: payload}
	}

	return pool.BuildColumn(func(bb *pool.ByteBuffer) {
		bb.B = binary.AppendUvarint(bb.B, uint64(len(values)))
		for _, l := range lengths {
			bb.B = binary.AppendUvarint(bb.B, uint64(l))
		}

		bb.B = binary.AppendUvarint(bb.B, uint64(len(fields)))
		for _, f := range fields {
			bb.MustWrite([]byte{byte(len(f.name))}) //nolint:gosec
			bb.MustWrite([]byte(f.name))
			bb.MustWrite([]byte{byte(f.fieldType)}) //nolint:gosec
			bb.B = binary.AppendUvarint(bb.B, uint64(len(f.payload)))
			bb.MustWrite(f.payload)
		}
	}), nil
}

func foldMissingToNull(values []value.Value) []value.Value {
	out := make([]value.Value, len(values))
	for i, v := range values {
		if v.IsMissing() {
			out[i] = value.Null()
			continue
		}
		out[i] = v
	}

	return out
}

// Decode reads the row-length vector, decodes every nested column, rebuilds
// one flat object per inner item (dropping keys whose value decoded to
// Null), unflattens it, and slices the flat item sequence back into
// per-row arrays.
func (c *ArrayObjectCodec) Decode(data []byte) ([]value.Value, error) {
	rowCount, offset := binary.Uvarint(data)
	if offset <= 0 {
		return nil, errs.ErrTruncated
	}

	lengths := make([]uint32, rowCount)
	totalItems := uint64(0)
	for i := range lengths {
		l, n := binary.Uvarint(data[offset:])
		if n <= 0 {
			return nil, errs.ErrTruncated
		}
		offset += n

		lengths[i] = uint32(l) //nolint:gosec
		if lengths[i] != nullRowLength {
			totalItems += l
		}
	}

	out := make([]value.Value, rowCount)
	if totalItems == 0 {
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

	fieldCount, n := binary.Uvarint(data[offset:])
	if n <= 0 {
		return nil, errs.ErrTruncated
	}
	offset += n

	names := make([]string, fieldCount)
	columns := make([][]value.Value, fieldCount)

	for i := 0; i < int(fieldCount); i++ {
		if offset >= len(data) {
			return nil, errs.ErrTruncated
		}
		nameLen := int(data[offset])
		offset++
		if offset+nameLen > len(data) {
			return nil, errs.ErrTruncated
		}
		names[i] = string(data[offset : offset+nameLen])
		offset += nameLen

		if offset >= len(data) {
			return nil, errs.ErrTruncated
		}
		fieldType := header.FieldType(data[offset])
		offset++

		payloadLen, n := binary.Uvarint(data[offset:])
		if n <= 0 {
			return nil, errs.ErrTruncated
		}
		offset += n

		if offset+int(payloadLen) > len(data) {
			return nil, errs.ErrTruncated
		}

		fieldCodec, err := c.registry.Get(fieldType)
		if err != nil {
			return nil, err
		}

		col, err := fieldCodec.Decode(data[offset : offset+int(payloadLen)])
		if err != nil {
			return nil, err
		}
		if uint64(len(col)) != totalItems {
			return nil, errs.ErrRowLengthMismatch
		}

		columns[i] = col
		offset += int(payloadLen)
	}

	flatItems := make([]value.Value, totalItems)
	for item := uint64(0); item < totalItems; item++ {
		rec := make(value.Record)
		for f, name := range names {
			v := columns[f][item]
			if v.IsNull() {
				continue
			}
			rec[name] = v
		}

		flatItems[item] = value.OfMap(value.Unflatten(rec))
	}

	pos := 0
	for i, l := range lengths {
		if l == nullRowLength {
			out[i] = value.Null()
			continue
		}

		out[i] = value.OfSeq(flatItems[pos : pos+int(l)])
		pos += int(l)
	}

	return out, nil
}
