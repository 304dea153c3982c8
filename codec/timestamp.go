package codec

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/basiliskin/sajc/errs"
	"github.com/basiliskin/sajc/value"
)

// nullTimestampMs is the reserved millisecond-epoch sentinel meaning "this
// entry is null". It sits far outside any realistic calendar range.
const nullTimestampMs = int64(math.MinInt64)

// timestampLayouts are the ISO-8601 shapes this codec accepts, most
// precise first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestampMs(s string) (int64, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), true
		}
	}

	return 0, false
}

// TimestampCodec encodes ISO-8601 timestamp strings as a base value plus
// one zigzag-varint-encoded delta from that base per value. Parsing is a lossy narrowing to
// millisecond precision: sub-millisecond digits and timezone information
// beyond UTC normalization are discarded.
type TimestampCodec struct{}

var _ Codec = TimestampCodec{}

// NewTimestampCodec creates a timestamp codec.
func NewTimestampCodec() TimestampCodec { return TimestampCodec{} }

// Encode converts each ISO-8601 string value to milliseconds since epoch,
// emits the first timestamp as an 8-byte little-endian signed integer, then
// emits ZigZagVarint(t-base) for every timestamp including the first
// (which therefore encodes as a single zero byte).
func (TimestampCodec) Encode(values []value.Value) ([]byte, error) {
	if len(values) == 0 {
		return nil, nil
	}

	ms := make([]int64, len(values))
	for i, v := range values {
		if v.IsNull() {
			ms[i] = nullTimestampMs
			continue
		}

		if v.Kind != value.KindString {
			return nil, errs.ErrNotTimestamp
		}

		t, ok := parseTimestampMs(v.Str)
		if !ok {
			return nil, errs.ErrNotTimestamp
		}

		ms[i] = t
	}

	base := ms[0]

	buf := make([]byte, 8, 8+len(ms)*2)
	binary.LittleEndian.PutUint64(buf, uint64(base)) //nolint:gosec

	var tmp [binary.MaxVarintLen64]byte
	for _, t := range ms {
		delta := t - base
		zz := uint64(delta<<1) ^ uint64(delta>>63) //nolint:gosec
		n := binary.PutUvarint(tmp[:], zz)
		buf = append(buf, tmp[:n]...)
	}

	return buf, nil
}

// Decode inverts Encode, reconstructing each timestamp as an ISO-8601
// string in UTC with millisecond precision (or Null for the reserved
// sentinel).
func (TimestampCodec) Decode(data []byte) ([]value.Value, error) {
	if len(data) == 0 {
		return nil, nil
	}

	if len(data) < 8 {
		return nil, errs.ErrTruncated
	}

	base := int64(binary.LittleEndian.Uint64(data[:8])) //nolint:gosec
	offset := 8

	out := make([]value.Value, 0)
	for offset < len(data) {
		zz, n := binary.Uvarint(data[offset:])
		if n <= 0 {
			return nil, errs.ErrTruncated
		}
		offset += n

		delta := int64(zz>>1) ^ -(int64(zz & 1)) //nolint:gosec
		ms := base + delta

		if ms == nullTimestampMs {
			out = append(out, value.Null())
			continue
		}

		out = append(out, value.OfString(time.UnixMilli(ms).UTC().Format("2006-01-02T15:04:05.000Z")))
	}

	return out, nil
}
