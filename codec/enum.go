package codec

import (
	"encoding/binary"

	"github.com/basiliskin/sajc/errs"
	"github.com/basiliskin/sajc/internal/pool"
	"github.com/basiliskin/sajc/value"
)

const (
	enumNibblePackThreshold = 16
	enumNullMarker          = 255
)

// EnumCodec encodes a low-cardinality string column as a dictionary plus a
// packed index stream. Unlike the adaptive string codec, layout selection
// is driven purely by the dictionary's cardinality rather than a measured
// size trade-off.
type EnumCodec struct{}

var _ Codec = EnumCodec{}

// NewEnumCodec creates an enum codec.
func NewEnumCodec() EnumCodec { return EnumCodec{} }

// Encode builds an insertion-ordered dictionary (null is the 255 marker)
// and packs indices as one byte per value when the dictionary holds more
// than 16 entries, or as 4-bit nibbles (high nibble first) otherwise.
func (EnumCodec) Encode(values []value.Value) ([]byte, error) {
	dictIndex := make(map[string]int)
	var dict []stringEntry
	indices := make([]int, len(values))

	for i, v := range values {
		var e stringEntry
		var key string

		if v.IsNull() {
			e = stringEntry{isNull: true}
			key = "\x00null"
		} else {
			if v.Kind != value.KindString {
				return nil, errs.ErrTypeMismatch
			}
			if len(v.Str) >= 255 {
				return nil, errs.ErrEnumStringTooLong
			}

			e = stringEntry{str: v.Str}
			key = "\x01" + v.Str
		}

		idx, ok := dictIndex[key]
		if !ok {
			idx = len(dict)
			dictIndex[key] = idx
			dict = append(dict, e)
		}

		indices[i] = idx
	}

	return pool.BuildColumn(func(bb *pool.ByteBuffer) {
		var countBuf [4]byte
		binary.LittleEndian.PutUint32(countBuf[:], uint32(len(values))) //nolint:gosec
		bb.MustWrite(countBuf[:])
		bb.MustWrite([]byte{byte(len(dict))}) //nolint:gosec

		for _, e := range dict {
			if e.isNull {
				bb.MustWrite([]byte{enumNullMarker})
				continue
			}

			bb.MustWrite([]byte{byte(len(e.str))}) //nolint:gosec
			bb.MustWrite([]byte(e.str))
		}

		if len(dict) > enumNibblePackThreshold {
			for _, idx := range indices {
				bb.MustWrite([]byte{byte(idx)}) //nolint:gosec
			}

			return
		}

		for i := 0; i < len(indices); i += 2 {
			hi := byte(indices[i]) << 4 //nolint:gosec
			var lo byte
			if i+1 < len(indices) {
				lo = byte(indices[i+1]) //nolint:gosec
			}

			bb.MustWrite([]byte{hi | lo})
		}
	}), nil
}

// Decode reads count, the dictionary, and the index stream, selecting
// nibble- or byte-packed indices by the stored unique count.
func (EnumCodec) Decode(data []byte) ([]value.Value, error) {
	if len(data) < 5 {
		return nil, errs.ErrTruncated
	}

	count := int(binary.LittleEndian.Uint32(data[:4]))
	uniqueCount := int(data[4])
	offset := 5

	dict := make([]stringEntry, uniqueCount)
	for i := 0; i < uniqueCount; i++ {
		if offset >= len(data) {
			return nil, errs.ErrTruncated
		}

		marker := data[offset]
		if marker == enumNullMarker {
			dict[i] = stringEntry{isNull: true}
			offset++
			continue
		}

		strLen := int(marker)
		offset++
		if offset+strLen > len(data) {
			return nil, errs.ErrTruncated
		}

		dict[i] = stringEntry{str: string(data[offset : offset+strLen])}
		offset += strLen
	}

	out := make([]value.Value, count)

	if uniqueCount > enumNibblePackThreshold {
		if offset+count > len(data) {
			return nil, errs.ErrTruncated
		}

		for i := 0; i < count; i++ {
			idx := int(data[offset+i])
			if idx >= uniqueCount {
				return nil, errs.ErrDictIndexOutOfRange
			}

			out[i] = stringEntryValue(dict[idx])
		}

		return out, nil
	}

	packedLen := (count + 1) / 2
	if offset+packedLen > len(data) {
		return nil, errs.ErrTruncated
	}

	for i := 0; i < count; i++ {
		b := data[offset+i/2]
		var idx int
		if i%2 == 0 {
			idx = int(b >> 4)
		} else {
			idx = int(b & 0x0f)
		}

		if idx >= uniqueCount {
			return nil, errs.ErrDictIndexOutOfRange
		}

		out[i] = stringEntryValue(dict[idx])
	}

	return out, nil
}
