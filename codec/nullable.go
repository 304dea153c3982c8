package codec

import (
	"encoding/binary"

	"github.com/basiliskin/sajc/bitmap"
	"github.com/basiliskin/sajc/errs"
	"github.com/basiliskin/sajc/value"
)

// Nullable wraps any Codec to add MISSING-awareness: it is the sole entry
// point the compressor uses per column.
//
// Encoded layout: rowCount(4, LE) | validity bitmap | inner.Encode(nonMissing).
type Nullable struct {
	inner Codec
}

// NewNullable wraps inner in a Nullable codec.
func NewNullable(inner Codec) *Nullable {
	return &Nullable{inner: inner}
}

// Encode strips MISSING values from values, encodes the row count and
// validity bitmap, then delegates the remainder to the inner codec.
func (n *Nullable) Encode(values []value.Value) ([]byte, error) {
	bits, nonMissing := bitmap.Build(values)

	innerPayload, err := n.inner.Encode(nonMissing)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, 4+len(bits)+len(innerPayload))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(values))) //nolint:gosec
	buf = append(buf, bits...)
	buf = append(buf, innerPayload...)

	return buf, nil
}

// Decode reads the row count and validity bitmap, decodes the remainder
// with the inner codec, and re-interleaves MISSING values per the bitmap.
//
// Returns errs.ErrBitmapMismatch if the inner codec decodes a count
// different from the bitmap's popcount.
func (n *Nullable) Decode(data []byte) ([]value.Value, error) {
	if len(data) < 4 {
		return nil, errs.ErrTruncated
	}

	rowCount := int(binary.LittleEndian.Uint32(data[:4]))
	bitmapSize := bitmap.Size(rowCount)

	if len(data) < 4+bitmapSize {
		return nil, errs.ErrTruncated
	}

	bits := data[4 : 4+bitmapSize]
	innerPayload := data[4+bitmapSize:]

	nonMissing, err := n.inner.Decode(innerPayload)
	if err != nil {
		return nil, err
	}

	expected := bitmap.Popcount(bits, rowCount)
	if len(nonMissing) != expected {
		return nil, errs.ErrBitmapMismatch
	}

	return bitmap.Interleave(bits, nonMissing, rowCount), nil
}
