package codec

import (
	"encoding/binary"

	"github.com/basiliskin/sajc/errs"
	"github.com/basiliskin/sajc/internal/pool"
	"github.com/basiliskin/sajc/value"
)

// BooleanCodec bit-packs boolean values, LSB-first within each byte. An
// explicit null is indistinguishable from false: the layout has no spare
// bits to mark it.
type BooleanCodec struct{}

var _ Codec = BooleanCodec{}

// NewBooleanCodec creates a boolean codec.
func NewBooleanCodec() BooleanCodec { return BooleanCodec{} }

// Encode emits Varint(count) followed by ceil(count/8) packed bytes.
func (BooleanCodec) Encode(values []value.Value) ([]byte, error) {
	packed := make([]byte, (len(values)+7)/8)
	for i, v := range values {
		if v.Kind == value.KindBool && v.Bool {
			packed[i/8] |= 1 << uint(i%8)
		} else if v.Kind != value.KindBool && !v.IsNull() {
			return nil, errs.ErrTypeMismatch
		}
	}

	return pool.BuildColumn(func(bb *pool.ByteBuffer) {
		var tmp [binary.MaxVarintLen64]byte
		n := binary.PutUvarint(tmp[:], uint64(len(values)))
		bb.MustWrite(tmp[:n])
		bb.MustWrite(packed)
	}), nil
}

// Decode reads Varint(count) then ceil(count/8) packed bytes, ignoring any
// trailing padding bits beyond count.
func (BooleanCodec) Decode(data []byte) ([]value.Value, error) {
	count, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, errs.ErrTruncated
	}

	offset := n
	packedLen := (int(count) + 7) / 8
	if offset+packedLen > len(data) {
		return nil, errs.ErrTruncated
	}

	packed := data[offset : offset+packedLen]
	out := make([]value.Value, count)
	for i := 0; i < int(count); i++ {
		bit := packed[i/8]&(1<<uint(i%8)) != 0
		out[i] = value.OfBool(bit)
	}

	return out, nil
}
