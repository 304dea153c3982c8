package codec

import (
	"encoding/hex"
	"strings"

	"github.com/basiliskin/sajc/errs"
	"github.com/basiliskin/sajc/internal/pool"
	"github.com/basiliskin/sajc/value"
)

// nullUUIDBytes is the reserved 16-byte pattern meaning "this entry is
// null". The only canonical UUID string that hex-decodes to the same
// all-0xff pattern is "ffffffff-ffff-ffff-ffff-ffffffffffff", which
// therefore decodes as null.
var nullUUIDBytes = [16]byte{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
}

// UUIDCodec encodes canonical 36-character hyphenated UUID strings as 16
// raw bytes each, with no per-value length prefix.
type UUIDCodec struct{}

var _ Codec = UUIDCodec{}

// NewUUIDCodec creates a UUID codec.
func NewUUIDCodec() UUIDCodec { return UUIDCodec{} }

// Encode strips hyphens from each canonical UUID string and decodes the 32
// hex characters into 16 bytes, concatenating the results. Output length is
// always exactly 16*len(values).
func (UUIDCodec) Encode(values []value.Value) ([]byte, error) {
	var encErr error

	out := pool.BuildColumn(func(bb *pool.ByteBuffer) {
		for _, v := range values {
			if v.IsNull() {
				bb.MustWrite(nullUUIDBytes[:])
				continue
			}

			if v.Kind != value.KindString || len(v.Str) != 36 {
				encErr = errs.ErrNotUUID
				return
			}

			hexStr := strings.ReplaceAll(v.Str, "-", "")
			b, err := hex.DecodeString(hexStr)
			if err != nil || len(b) != 16 {
				encErr = errs.ErrNotUUID
				return
			}

			bb.MustWrite(b)
		}
	})

	if encErr != nil {
		return nil, encErr
	}

	return out, nil
}

// Decode reads 16 bytes per value and re-inserts hyphens at offsets
// 8, 12, 16, 20 to reconstruct the canonical string form.
func (UUIDCodec) Decode(data []byte) ([]value.Value, error) {
	if len(data)%16 != 0 {
		return nil, errs.ErrTruncated
	}

	n := len(data) / 16
	out := make([]value.Value, n)

	for i := 0; i < n; i++ {
		b := data[i*16 : (i+1)*16]
		if [16]byte(b) == nullUUIDBytes {
			out[i] = value.Null()
			continue
		}

		hexStr := hex.EncodeToString(b)
		canonical := hexStr[0:8] + "-" + hexStr[8:12] + "-" + hexStr[12:16] + "-" + hexStr[16:20] + "-" + hexStr[20:32]
		out[i] = value.OfString(canonical)
	}

	return out, nil
}
