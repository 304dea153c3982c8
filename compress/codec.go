package compress

import "fmt"

// Type identifies a general-purpose byte compression algorithm.
type Type uint8

const (
	None Type = iota
	Zstd
	S2
	LZ4
)

// String implements fmt.Stringer for Type.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case S2:
		return "s2"
	case LZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// Compressor compresses a byte slice produced by a column codec.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines Compressor and Decompressor. Implementations must be
// total: a failure is reported as an error, never a panic or a block.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec builds a Codec for the requested algorithm.
func CreateCodec(t Type) (Codec, error) {
	switch t {
	case None:
		return NewNoOpCodec(), nil
	case Zstd:
		return NewZstdCodec(), nil
	case S2:
		return NewS2Codec(), nil
	case LZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("sajc/compress: invalid compression type: %s", t)
	}
}

var builtinCodecs = map[Type]Codec{
	None: NewNoOpCodec(),
	Zstd: NewZstdCodec(),
	S2:   NewS2Codec(),
	LZ4:  NewLZ4Codec(),
}

// GetCodec retrieves the shared built-in Codec instance for t.
func GetCodec(t Type) (Codec, error) {
	if c, ok := builtinCodecs[t]; ok {
		return c, nil
	}

	return nil, fmt.Errorf("sajc/compress: unsupported compression type: %s", t)
}
