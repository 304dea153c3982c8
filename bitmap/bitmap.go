// Package bitmap builds the validity bitmap used by the nullable codec
// wrapper: a compact bit vector marking which positions in a column are
// present (non-MISSING) versus absent.
package bitmap

import "github.com/basiliskin/sajc/value"

// Build computes the validity bitmap over values and the compacted list of
// non-MISSING values in original order.
//
// The bitmap has ceil(len(values)/8) bytes; bit i lives in byte i/8, offset
// i%8, LSB-first within the byte, and is set iff values[i] is not MISSING.
func Build(values []value.Value) (bits []byte, nonMissing []value.Value) {
	n := len(values)
	bits = make([]byte, (n+7)/8)
	nonMissing = make([]value.Value, 0, n)

	for i, v := range values {
		if v.IsMissing() {
			continue
		}

		bits[i/8] |= 1 << uint(i%8)
		nonMissing = append(nonMissing, v)
	}

	return bits, nonMissing
}

// Size returns the number of bytes a validity bitmap for n positions occupies.
func Size(n int) int {
	return (n + 7) / 8
}

// Get reports whether position i is marked present in bits.
func Get(bits []byte, i int) bool {
	byteIdx := i / 8
	if byteIdx >= len(bits) {
		return false
	}

	return bits[byteIdx]&(1<<uint(i%8)) != 0
}

// Popcount returns the number of set bits across bits, truncated to the
// first n logical positions (the trailing padding bits in the final byte,
// if any, are excluded).
func Popcount(bits []byte, n int) int {
	count := 0
	for i := 0; i < n; i++ {
		if Get(bits, i) {
			count++
		}
	}

	return count
}

// Interleave re-inserts MISSING values into nonMissing according to bits,
// producing a slice of length n.
func Interleave(bits []byte, nonMissing []value.Value, n int) []value.Value {
	out := make([]value.Value, n)
	idx := 0

	for i := 0; i < n; i++ {
		if Get(bits, i) {
			out[i] = nonMissing[idx]
			idx++
		} else {
			out[i] = value.Missing()
		}
	}

	return out
}
