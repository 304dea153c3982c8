// Package varint implements LEB128 unsigned and ZigZag-LEB128 signed
// variable-length integer encoding.
//
// Unsigned values use a continuation bit in the MSB of each byte with 7
// payload bits, little-endian chunk order. Signed values are first mapped
// to unsigned via zigzag (n<<1) ^ (n>>63) and then encoded the same way.
// This keeps small magnitude signed deltas (the common case for timestamp
// and number codecs) cheap regardless of sign.
package varint

import (
	"encoding/binary"

	"github.com/basiliskin/sajc/errs"
)

// MaxUvarintBytes is the maximum number of bytes a 32-bit-range unsigned
// varint may occupy before ReadUvarint considers it overflowed.
// Five 7-bit groups cover the full 32-bit unsigned range (35 bits of payload).
const MaxUvarintBytes = 5

// AppendUvarint appends the LEB128 encoding of v to buf and returns the
// extended slice. v must fit in the 32-bit unsigned range.
func AppendUvarint(buf []byte, v uint32) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], uint64(v))
	return append(buf, tmp[:n]...)
}

// ReadUvarint decodes an unsigned LEB128 varint from the start of buf.
// It returns the decoded value and the number of bytes consumed.
//
// Returns errs.ErrVarintOverflow if more than MaxUvarintBytes are consumed
// without a terminating byte, or errs.ErrTruncated if buf ends mid-integer.
func ReadUvarint(buf []byte) (uint32, int, error) {
	var result uint64
	var shift uint

	for i := 0; i < len(buf); i++ {
		if i >= MaxUvarintBytes {
			return 0, 0, errs.ErrVarintOverflow
		}

		b := buf[i]
		result |= uint64(b&0x7f) << shift

		if b < 0x80 {
			return uint32(result), i + 1, nil //nolint:gosec
		}

		shift += 7
	}

	return 0, 0, errs.ErrTruncated
}

// AppendZigzag appends the zigzag-mapped, LEB128-encoded form of a signed
// 64-bit integer to buf and returns the extended slice. The domain is wide
// enough to hold millisecond timestamp deltas and arbitrary int64 deltas.
func AppendZigzag(buf []byte, v int64) []byte {
	zz := uint64(v<<1) ^ uint64(v>>63) //nolint:gosec
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], zz)
	return append(buf, tmp[:n]...)
}

// ReadZigzag decodes a zigzag-mapped LEB128 varint from the start of buf,
// returning the signed value and the number of bytes consumed.
//
// Unlike ReadUvarint, there is no fixed byte-count cap beyond the
// terminating byte.
func ReadZigzag(buf []byte) (int64, int, error) {
	zz, n := binary.Uvarint(buf)
	if n == 0 {
		return 0, 0, errs.ErrTruncated
	}
	if n < 0 {
		return 0, 0, errs.ErrVarintOverflow
	}

	v := int64(zz>>1) ^ -(int64(zz & 1)) //nolint:gosec

	return v, n, nil
}
