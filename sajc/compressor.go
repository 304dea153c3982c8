// Package sajc implements the semantic compressor orchestrator: a
// prepare/serialize/deserialize pipeline wiring the profiler, column
// pivot, codec registry, nullable wrapper, and header packages into the
// public compress/decompress operations.
package sajc

import (
	"sort"

	"github.com/basiliskin/sajc/codec"
	"github.com/basiliskin/sajc/column"
	"github.com/basiliskin/sajc/compress"
	"github.com/basiliskin/sajc/errs"
	"github.com/basiliskin/sajc/header"
	"github.com/basiliskin/sajc/internal/hash"
	"github.com/basiliskin/sajc/internal/options"
	"github.com/basiliskin/sajc/internal/pool"
	"github.com/basiliskin/sajc/profile"
	"github.com/basiliskin/sajc/value"
)

// Compressor turns batches of records into self-describing binary buffers
// and back.
type Compressor struct {
	registry           *codec.Registry
	byteCodec          compress.Codec
	skipRoundTripCheck bool
}

// CompressorOption configures a Compressor at construction time.
type CompressorOption = options.Option[*Compressor]

// WithRegistry overrides the default codec registry, e.g. to register a
// custom codec for a logical type before any compression happens.
func WithRegistry(r *codec.Registry) CompressorOption {
	return options.NoError(func(c *Compressor) { c.registry = r })
}

// WithByteCodec sets the opaque byte compressor used by CompressColumnarPost.
// The default is compress.NewZstdCodec().
func WithByteCodec(bc compress.Codec) CompressorOption {
	return options.NoError(func(c *Compressor) { c.byteCodec = bc })
}

// WithSkipRoundTripCheck disables the per-column encode-then-decode
// self-check Compress otherwise performs before trusting an encoded
// column. Useful only when the caller has independently validated the
// registry (e.g. in a tight benchmarking loop); decompress results are
// unaffected either way.
func WithSkipRoundTripCheck() CompressorOption {
	return options.NoError(func(c *Compressor) { c.skipRoundTripCheck = true })
}

// NewCompressor builds a Compressor with the default registry
// (codec.NewDefaultRegistry) and a Zstd byte codec, both overridable via
// opts.
func NewCompressor(opts ...CompressorOption) (*Compressor, error) {
	c := &Compressor{
		registry:  codec.NewDefaultRegistry(),
		byteCodec: compress.NewZstdCodec(),
	}

	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// Stats reports per-call byte accounting for a completed compress
// operation, for callers that want to monitor compression effectiveness.
type Stats struct {
	RowCount       int
	FieldCount     int
	InputDigest    uint64
	OutputBytes    int
	FieldByteSizes map[string]uint32
}

type preparedColumn struct {
	name       string
	fieldType  header.FieldType
	encoded    []byte
	compressed []byte
}

// prepare runs the shared prepare phase common to both serialize modes:
// union keys, backfill MISSING, flatten, pivot, profile, and per-column
// encode with the round-trip self-check.
func (c *Compressor) prepare(records []value.Record) ([]preparedColumn, int, error) {
	if len(records) == 0 {
		return nil, 0, errs.ErrEmptyBatch
	}

	names, columns := column.Pivot(records)

	prepared := make([]preparedColumn, len(names))
	for i, name := range names {
		col := columns[i]
		fieldType := profile.Column(col)

		fieldCodec, err := c.registry.Get(fieldType)
		if err != nil {
			return nil, 0, err
		}

		nullable := codec.NewNullable(fieldCodec)

		encoded, err := nullable.Encode(col)
		if err != nil {
			return nil, 0, err
		}

		if !c.skipRoundTripCheck {
			decoded, err := nullable.Decode(encoded)
			if err != nil {
				return nil, 0, errs.NewRoundTripFailed(name, fieldType.String())
			}
			if !sameValues(col, decoded) {
				return nil, 0, errs.NewRoundTripFailed(name, fieldType.String())
			}
		}

		prepared[i] = preparedColumn{name: name, fieldType: fieldType, encoded: encoded}
	}

	return prepared, len(records), nil
}

func sameValues(a, b []value.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Compress implements the standard serialize phase: header with magic
// "SAJC" followed by the concatenation of per-column encoded buffers.
func (c *Compressor) Compress(records []value.Record) ([]byte, error) {
	out, _, err := c.compress(records)
	return out, err
}

// CompressWithStats behaves like Compress but also returns byte accounting
// for the call, for callers that want to monitor compression effectiveness.
func (c *Compressor) CompressWithStats(records []value.Record) ([]byte, Stats, error) {
	return c.compress(records)
}

func (c *Compressor) compress(records []value.Record) ([]byte, Stats, error) {
	prepared, rowCount, err := c.prepare(records)
	if err != nil {
		return nil, Stats{}, err
	}

	fields := make([]header.FieldSchema, len(prepared))
	sizes := make(map[string]uint32, len(prepared))
	for i, p := range prepared {
		fields[i] = header.FieldSchema{Name: p.name, Type: p.fieldType, ByteLength: uint32(len(p.encoded))} //nolint:gosec
		sizes[p.name] = fields[i].ByteLength
	}

	out := pool.BuildContainer(func(bb *pool.ByteBuffer) {
		bb.MustWrite(header.Encode(header.Header{Magic: header.MagicStandard, Version: header.Version, Fields: fields}))
		for _, p := range prepared {
			bb.MustWrite(p.encoded)
		}
	})

	stats := Stats{
		RowCount:       rowCount,
		FieldCount:     len(prepared),
		InputDigest:    Digest(records),
		OutputBytes:    len(out),
		FieldByteSizes: sizes,
	}

	return out, stats, nil
}

// CompressColumnarPost implements the columnar post-compressed serialize
// phase: each column's encoded buffer is independently passed through the
// opaque byte compressor before being written, and the magic is overwritten
// to "SJCB".
func (c *Compressor) CompressColumnarPost(records []value.Record) ([]byte, error) {
	prepared, _, err := c.prepare(records)
	if err != nil {
		return nil, err
	}

	fields := make([]header.FieldSchema, len(prepared))
	for i, p := range prepared {
		compressed, err := c.byteCodec.Compress(p.encoded)
		if err != nil {
			return nil, err
		}

		prepared[i].compressed = compressed
		fields[i] = header.FieldSchema{Name: p.name, Type: p.fieldType, ByteLength: uint32(len(compressed))} //nolint:gosec
	}

	out := pool.BuildContainer(func(bb *pool.ByteBuffer) {
		bb.MustWrite(header.Encode(header.Header{Magic: header.MagicColumnarPost, Version: header.Version, Fields: fields}))
		for _, p := range prepared {
			bb.MustWrite(p.compressed)
		}
	})

	return out, nil
}

// Decompress runs the deserialize phase: it reads the header, decodes
// (and, for "SJCB", byte-decompresses) each column, then reconstructs one
// record per row in input order.
func (c *Compressor) Decompress(data []byte) ([]value.Record, error) {
	h, offset, err := header.Decode(data)
	if err != nil {
		return nil, err
	}

	columnarPost := h.Magic == header.MagicColumnarPost

	names := make([]string, len(h.Fields))
	columns := make([][]value.Value, len(h.Fields))
	rowCount := 0

	for i, f := range h.Fields {
		if offset+int(f.ByteLength) > len(data) {
			return nil, errs.ErrTruncated
		}

		payload := data[offset : offset+int(f.ByteLength)]
		offset += int(f.ByteLength)

		if columnarPost {
			payload, err = c.byteCodec.Decompress(payload)
			if err != nil {
				return nil, err
			}
		}

		fieldCodec, err := c.registry.Get(f.Type)
		if err != nil {
			return nil, err
		}

		col, err := codec.NewNullable(fieldCodec).Decode(payload)
		if err != nil {
			return nil, err
		}

		names[i] = f.Name
		columns[i] = col
		rowCount = len(col)
	}

	return column.Assemble(names, columns, rowCount), nil
}

// Digest returns a fast structural pre-check hash of a batch's sorted
// top-level keys, useful for callers that want to cheaply detect schema
// drift between batches before paying for a full compress.
func Digest(records []value.Record) uint64 {
	seen := make(map[string]struct{})
	for _, r := range records {
		for k := range r {
			seen[k] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	joined := make([]byte, 0, 64)
	for _, k := range keys {
		joined = append(joined, k...)
		joined = append(joined, 0)
	}

	return hash.ID(string(joined))
}
