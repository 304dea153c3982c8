// Package compress provides the byte-level compression codecs used by the
// container format's columnar post-compressed variant (magic "SJCB").
//
// # Overview
//
// The core's own per-column codecs (codec package) already exploit
// structure (dictionary, delta, bit-packing). This package supplies a
// second, optional stage: a general-purpose byte compressor applied to
// each column's already-encoded buffer independently, selected per call.
//
//   - None: no compression, zero overhead
//   - Zstd: best ratio, moderate speed
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// CreateCodec and GetCodec both resolve a Type to a Codec; GetCodec returns
// a shared instance from a small built-in table, CreateCodec always
// constructs (or, for the stateless codecs here, also returns the shared
// instance).
//
// # Thread Safety
//
// All codec implementations are safe for concurrent use; Zstd and LZ4 pool
// their underlying encoder/decoder state internally with sync.Pool.
package compress
