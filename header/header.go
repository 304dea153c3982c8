// Package header implements the batch header: the schema section that
// binds a magic/version/field-count prefix to an ordered list of
// FieldSchema entries, one per column, fixing column order on the wire.
//
// The layout is a fixed-prefix header (magic, version, field count)
// followed by one schema entry per field, each carrying a variable-length
// field name alongside its fixed-size type tag.
package header

import (
	"encoding/binary"

	"github.com/basiliskin/sajc/errs"
)

// MagicStandard is the container magic for the standard (non-post-compressed)
// wire format.
var MagicStandard = [4]byte{'S', 'A', 'J', 'C'}

// MagicColumnarPost is the container magic for the columnar post-compressed
// wire format, where every column buffer has been passed through an opaque
// byte compressor.
var MagicColumnarPost = [4]byte{'S', 'J', 'C', 'B'}

// Version is the batch header version this module emits. Decode returns
// the stored version byte as-is and does not reject other values.
const Version uint8 = 1

// FieldSchema describes one column on the wire: its flattened dotted-key
// name, its logical type, and the byte length of its encoded (and, for the
// columnar-post-compressed container, its post-compressed) payload.
type FieldSchema struct {
	Name       string
	Type       FieldType
	ByteLength uint32
}

// Header is the parsed batch header: magic, version, and the ordered field
// schema list that fixes column order for the payload that follows.
type Header struct {
	Magic   [4]byte
	Version uint8
	Fields  []FieldSchema
}

// Encode serializes h into its wire representation:
//
//	magic(4) | version(1) | fieldCount(2, LE) | fieldCount x FieldSchemaEntry
//
// where each FieldSchemaEntry is:
//
//	nameLen(1) | name(nameLen) | typeCode(1) | byteLength(4, LE)
func Encode(h Header) []byte {
	size := 4 + 1 + 2
	for _, f := range h.Fields {
		size += 1 + len(f.Name) + 1 + 4
	}

	buf := make([]byte, 0, size)
	buf = append(buf, h.Magic[:]...)
	buf = append(buf, h.Version)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(h.Fields))) //nolint:gosec

	for _, f := range h.Fields {
		buf = append(buf, byte(len(f.Name))) //nolint:gosec
		buf = append(buf, f.Name...)
		buf = append(buf, byte(f.Type))
		buf = binary.LittleEndian.AppendUint32(buf, f.ByteLength)
	}

	return buf
}

// Decode parses a Header from the start of data and returns it along with
// the number of bytes consumed (so the caller knows where the column
// payload section begins).
//
// Returns errs.ErrInvalidMagic if the leading 4 bytes are neither "SAJC"
// nor "SJCB", and errs.ErrTruncated if data ends before the header is fully
// parsed.
func Decode(data []byte) (Header, int, error) {
	if len(data) < 7 {
		return Header{}, 0, errs.ErrTruncated
	}

	var magic [4]byte
	copy(magic[:], data[:4])

	if magic != MagicStandard && magic != MagicColumnarPost {
		return Header{}, 0, errs.ErrInvalidMagic
	}

	version := data[4]
	fieldCount := binary.LittleEndian.Uint16(data[5:7])
	offset := 7

	fields := make([]FieldSchema, 0, fieldCount)
	for i := uint16(0); i < fieldCount; i++ {
		if offset >= len(data) {
			return Header{}, 0, errs.ErrTruncated
		}

		nameLen := int(data[offset])
		offset++

		if offset+nameLen+1+4 > len(data) {
			return Header{}, 0, errs.ErrTruncated
		}

		name := string(data[offset : offset+nameLen])
		offset += nameLen

		typ := FieldType(data[offset])
		offset++

		byteLength := binary.LittleEndian.Uint32(data[offset : offset+4])
		offset += 4

		fields = append(fields, FieldSchema{Name: name, Type: typ, ByteLength: byteLength})
	}

	return Header{Magic: magic, Version: version, Fields: fields}, offset, nil
}
