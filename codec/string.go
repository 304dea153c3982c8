package codec

import (
	"encoding/binary"

	"github.com/basiliskin/sajc/errs"
	"github.com/basiliskin/sajc/internal/pool"
	"github.com/basiliskin/sajc/value"
)

const (
	stringModeRaw      byte = 0x00
	stringModeStandard byte = 0x01
	stringModeRLE      byte = 0x02

	// rawModeThreshold is the dictionary-fill-ratio at or above which Raw
	// mode is chosen over any dictionary mode.
	rawModeThreshold = 0.7
)

// StringCodec adaptively encodes a string column, choosing between a raw
// length-prefixed layout (when the distinct-value ratio reaches
// rawModeThreshold) and a dictionary layout whose index stream is standard
// or run-length-encoded, whichever of those two is smaller.
type StringCodec struct{}

var _ Codec = StringCodec{}

// NewStringCodec creates an adaptive string codec.
func NewStringCodec() StringCodec { return StringCodec{} }

// stringEntry is the null-aware value held in the insertion-ordered
// dictionary: nulls are dictionary entries like any string.
type stringEntry struct {
	isNull bool
	str    string
}

func appendStringEntry(buf []byte, e stringEntry) []byte {
	if e.isNull {
		return binary.AppendUvarint(buf, 0)
	}

	buf = binary.AppendUvarint(buf, uint64(len(e.str))+1)
	return append(buf, e.str...)
}

func readStringEntry(data []byte) (stringEntry, int, error) {
	n, offset := binary.Uvarint(data)
	if offset <= 0 {
		return stringEntry{}, 0, errs.ErrTruncated
	}

	if n == 0 {
		return stringEntry{isNull: true}, offset, nil
	}

	strLen := int(n) - 1
	if offset+strLen > len(data) {
		return stringEntry{}, 0, errs.ErrTruncated
	}

	return stringEntry{str: string(data[offset : offset+strLen])}, offset + strLen, nil
}

// Encode builds an insertion-ordered dictionary of distinct values
// (including null as a distinct entry), then picks between Raw mode and the
// smaller of the two dictionary index encodings.
func (StringCodec) Encode(values []value.Value) ([]byte, error) {
	entries := make([]stringEntry, len(values))
	for i, v := range values {
		if v.IsNull() {
			entries[i] = stringEntry{isNull: true}
			continue
		}

		if v.Kind != value.KindString {
			return nil, errs.ErrTypeMismatch
		}

		entries[i] = stringEntry{str: v.Str}
	}

	keyOf := func(e stringEntry) string {
		if e.isNull {
			return "\x00null"
		}
		return "\x01" + e.str
	}

	dictIndex := make(map[string]int)
	var dict []stringEntry
	indices := make([]int, len(entries))
	for i, e := range entries {
		k := keyOf(e)
		idx, ok := dictIndex[k]
		if !ok {
			idx = len(dict)
			dictIndex[k] = idx
			dict = append(dict, e)
		}

		indices[i] = idx
	}

	if len(values) > 0 && float64(len(dict)) >= rawModeThreshold*float64(len(values)) {
		return encodeStringRaw(entries), nil
	}

	var dictHeader []byte
	dictHeader = binary.AppendUvarint(dictHeader, uint64(len(dict)))
	for _, e := range dict {
		dictHeader = appendStringEntry(dictHeader, e)
	}

	standard := encodeStandardIndices(indices)
	rle := encodeRLEIndices(indices)

	if len(rle) < len(standard) {
		return pool.BuildColumn(func(bb *pool.ByteBuffer) {
			bb.MustWrite([]byte{stringModeRLE})
			bb.MustWrite(dictHeader)
			bb.MustWrite(rle)
		}), nil
	}

	return pool.BuildColumn(func(bb *pool.ByteBuffer) {
		bb.MustWrite([]byte{stringModeStandard})
		bb.MustWrite(dictHeader)
		bb.MustWrite(standard)
	}), nil
}

func encodeStringRaw(entries []stringEntry) []byte {
	return pool.BuildColumn(func(bb *pool.ByteBuffer) {
		bb.MustWrite([]byte{stringModeRaw})
		for _, e := range entries {
			bb.B = appendStringEntry(bb.B, e)
		}
	})
}

func encodeStandardIndices(indices []int) []byte {
	var out []byte
	for _, idx := range indices {
		out = binary.AppendUvarint(out, uint64(idx))
	}
	return out
}

func encodeRLEIndices(indices []int) []byte {
	var out []byte
	i := 0
	for i < len(indices) {
		j := i + 1
		for j < len(indices) && indices[j] == indices[i] {
			j++
		}

		out = binary.AppendUvarint(out, uint64(indices[i]))
		out = binary.AppendUvarint(out, uint64(j-i))
		i = j
	}
	return out
}

// Decode reads the mode byte and dispatches to the matching decoder.
func (StringCodec) Decode(data []byte) ([]value.Value, error) {
	if len(data) == 0 {
		return nil, nil
	}

	mode := data[0]
	rest := data[1:]

	switch mode {
	case stringModeRaw:
		return decodeStringRaw(rest)
	case stringModeStandard, stringModeRLE:
		return decodeStringDictionary(mode, rest)
	default:
		return nil, errs.NewUnknownMode("string", mode)
	}
}

func decodeStringRaw(data []byte) ([]value.Value, error) {
	var out []value.Value
	offset := 0

	for offset < len(data) {
		e, n, err := readStringEntry(data[offset:])
		if err != nil {
			return nil, err
		}
		offset += n

		out = append(out, stringEntryValue(e))
	}

	return out, nil
}

func decodeStringDictionary(mode byte, data []byte) ([]value.Value, error) {
	count, offset := binary.Uvarint(data)
	if offset <= 0 {
		return nil, errs.ErrTruncated
	}

	dict := make([]stringEntry, count)
	for i := range dict {
		e, n, err := readStringEntry(data[offset:])
		if err != nil {
			return nil, err
		}
		dict[i] = e
		offset += n
	}

	var out []value.Value

	if mode == stringModeStandard {
		for offset < len(data) {
			idx, n := binary.Uvarint(data[offset:])
			if n <= 0 {
				return nil, errs.ErrTruncated
			}
			offset += n

			if idx >= uint64(len(dict)) {
				return nil, errs.ErrDictIndexOutOfRange
			}

			out = append(out, stringEntryValue(dict[idx]))
		}

		return out, nil
	}

	for offset < len(data) {
		idx, n := binary.Uvarint(data[offset:])
		if n <= 0 {
			return nil, errs.ErrTruncated
		}
		offset += n

		runLen, n := binary.Uvarint(data[offset:])
		if n <= 0 {
			return nil, errs.ErrTruncated
		}
		offset += n

		if idx >= uint64(len(dict)) {
			return nil, errs.ErrDictIndexOutOfRange
		}

		v := stringEntryValue(dict[idx])
		for i := uint64(0); i < runLen; i++ {
			out = append(out, v)
		}
	}

	return out, nil
}

func stringEntryValue(e stringEntry) value.Value {
	if e.isNull {
		return value.Null()
	}
	return value.OfString(e.str)
}
