package codec

import (
	"encoding/binary"
	"math"

	"github.com/basiliskin/sajc/errs"
	"github.com/basiliskin/sajc/internal/pool"
	"github.com/basiliskin/sajc/value"
)

const (
	numberModeFloat   byte = 0x00
	numberModeInteger byte = 0x01
	numberModeDecimal byte = 0x02

	// decimalMaxScale is the largest scale exponent tried when searching
	// for a fixed-point representation.
	decimalMaxScale  = 6
	decimalTolerance = 1e-9
)

// nullFloatBits is the reserved quiet-NaN bit pattern meaning "this entry
// is null" in Float mode. A finite JSON number can never produce this
// pattern.
const nullFloatBits uint64 = 0x7FF8000000000000

// NumberCodec adaptively encodes a numeric column in one of three modes,
// selecting the smallest representation that is exact (Integer), exact
// within tolerance at a fixed decimal scale (Decimal), or falls back to
// raw IEEE-754 doubles (Float).
type NumberCodec struct{}

var _ Codec = NumberCodec{}

// NewNumberCodec creates a number codec.
func NewNumberCodec() NumberCodec { return NumberCodec{} }

func isNullOrNumber(v value.Value) bool {
	return v.IsNull() || v.Kind == value.KindNumber
}

// Encode selects Integer mode iff every value is a finite integer (and
// none are null); otherwise Decimal mode iff a scale in 1..6 makes every
// value exact within 1e-9; otherwise Float mode. Null entries always force
// Float mode and are stored as a reserved NaN bit pattern.
func (NumberCodec) Encode(values []value.Value) ([]byte, error) {
	for _, v := range values {
		if !isNullOrNumber(v) {
			return nil, errs.ErrTypeMismatch
		}
	}

	if mode, scale, ok := detectMode(values); ok {
		switch mode {
		case numberModeInteger:
			return encodeInteger(values), nil
		case numberModeDecimal:
			return encodeDecimal(values, scale), nil
		}
	}

	return encodeFloat(values), nil
}

// detectMode returns (numberModeInteger, 0, true) or
// (numberModeDecimal, scale, true) when applicable; otherwise
// (numberModeFloat, 0, false), meaning the caller should use Float mode.
func detectMode(values []value.Value) (byte, int, bool) {
	allInteger := true
	for _, v := range values {
		if v.IsNull() || v.Number != math.Trunc(v.Number) {
			allInteger = false
			break
		}
	}
	if allInteger {
		return numberModeInteger, 0, true
	}

	if hasNull(values) {
		return numberModeFloat, 0, false
	}

	nums, cleanup := pool.GetFloat64Slice(len(values))
	defer cleanup()
	for i, v := range values {
		nums[i] = v.Number
	}

	for scale := 1; scale <= decimalMaxScale; scale++ {
		factor := math.Pow(10, float64(scale))
		exact := true
		for _, n := range nums {
			scaled := n * factor
			if math.Abs(scaled-math.Round(scaled)) >= decimalTolerance {
				exact = false
				break
			}
		}

		if exact {
			return numberModeDecimal, scale, true
		}
	}

	return numberModeFloat, 0, false
}

func hasNull(values []value.Value) bool {
	for _, v := range values {
		if v.IsNull() {
			return true
		}
	}

	return false
}

// encodeInteger gathers every value's integer form into a pooled scratch
// slice before emitting varints, a gather-then-emit pass over a typed
// buffer rather than touching value.Value fields twice.
func encodeInteger(values []value.Value) []byte {
	ints, cleanup := pool.GetInt64Slice(len(values))
	defer cleanup()

	for i, v := range values {
		ints[i] = int64(v.Number)
	}

	return pool.BuildColumn(func(bb *pool.ByteBuffer) {
		bb.MustWrite([]byte{numberModeInteger})

		var tmp [binary.MaxVarintLen64]byte
		for _, n := range ints {
			written := binary.PutVarint(tmp[:], n)
			bb.MustWrite(tmp[:written])
		}
	})
}

func encodeDecimal(values []value.Value, scale int) []byte {
	factor := math.Pow(10, float64(scale))

	return pool.BuildColumn(func(bb *pool.ByteBuffer) {
		bb.MustWrite([]byte{numberModeDecimal, byte(scale)}) //nolint:gosec

		var tmp [binary.MaxVarintLen64]byte
		for _, v := range values {
			scaled := int64(math.Round(v.Number * factor))
			n := binary.PutVarint(tmp[:], scaled)
			bb.MustWrite(tmp[:n])
		}
	})
}

func encodeFloat(values []value.Value) []byte {
	total := 1 + 8*len(values)

	return pool.BuildColumn(func(bb *pool.ByteBuffer) {
		bb.ExtendOrGrow(total)
		out := bb.Bytes()
		out[0] = numberModeFloat

		for i, v := range values {
			bits := nullFloatBits
			if !v.IsNull() {
				bits = math.Float64bits(v.Number)
			}

			binary.LittleEndian.PutUint64(out[1+i*8:1+(i+1)*8], bits)
		}
	})
}

// Decode reads the mode byte and dispatches to the matching decoder.
func (NumberCodec) Decode(data []byte) ([]value.Value, error) {
	if len(data) == 0 {
		return nil, nil
	}

	switch data[0] {
	case numberModeInteger:
		return decodeInteger(data[1:])
	case numberModeDecimal:
		return decodeDecimal(data[1:])
	case numberModeFloat:
		return decodeFloat(data[1:])
	default:
		return nil, errs.NewUnknownMode("number", data[0])
	}
}

func decodeInteger(data []byte) ([]value.Value, error) {
	var out []value.Value
	offset := 0

	for offset < len(data) {
		v, n := binary.Varint(data[offset:])
		if n <= 0 {
			return nil, errs.ErrTruncated
		}
		offset += n

		out = append(out, value.OfNumber(float64(v)))
	}

	return out, nil
}

func decodeDecimal(data []byte) ([]value.Value, error) {
	if len(data) < 1 {
		return nil, errs.ErrTruncated
	}

	scale := int(data[0])
	factor := math.Pow(10, float64(scale))
	offset := 1

	var out []value.Value
	for offset < len(data) {
		v, n := binary.Varint(data[offset:])
		if n <= 0 {
			return nil, errs.ErrTruncated
		}
		offset += n

		out = append(out, value.OfNumber(float64(v)/factor))
	}

	return out, nil
}

func decodeFloat(data []byte) ([]value.Value, error) {
	if len(data)%8 != 0 {
		return nil, errs.ErrTruncated
	}

	n := len(data) / 8
	out := make([]value.Value, n)
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint64(data[i*8 : (i+1)*8])
		if bits == nullFloatBits {
			out[i] = value.Null()
			continue
		}

		out[i] = value.OfNumber(math.Float64frombits(bits))
	}

	return out, nil
}
