// Package codec implements the per-logical-type field codecs: one codec
// per FieldType, a registry mapping type to codec instance, and the
// nullable wrapper all columns are actually encoded through.
//
// The codec abstraction is a small closed interface, with instances
// looked up from a registry by tag, rather than an open inheritance
// hierarchy.
package codec

import (
	"github.com/basiliskin/sajc/header"
	"github.com/basiliskin/sajc/value"
)

// Codec encodes and decodes the non-MISSING values of a single column for
// one logical field type. Implementations never see MISSING values
// directly — the Nullable wrapper strips them before Encode and
// re-interleaves them after Decode.
type Codec interface {
	// Encode serializes values (which may contain explicit nulls, but never
	// MISSING) into a self-contained byte payload.
	Encode(values []value.Value) ([]byte, error)

	// Decode parses a payload produced by Encode back into values, in the
	// same order.
	Decode(data []byte) ([]value.Value, error)
}

// Registry maps a logical field type to the single Codec instance that
// handles it. Array codecs hold a reference to the Registry they were
// created with and resolve their element codec lazily at encode/decode
// time, not at registration time, so registration order never matters
// except that a primitive codec must exist in the registry before an array
// value of that element type is actually encoded.
type Registry struct {
	codecs map[header.FieldType]Codec
}

// NewRegistry creates an empty registry. Use NewDefaultRegistry for the
// registry containing all eight built-in codecs.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[header.FieldType]Codec)}
}

// Register installs codec as the handler for typ, silently overwriting any
// existing registration (the caller is expected to know when they are
// replacing a codec; this package does not log).
func (r *Registry) Register(typ header.FieldType, c Codec) {
	r.codecs[typ] = c
}

// Get returns the codec registered for typ, or errs.NoCodecError if none
// is registered.
func (r *Registry) Get(typ header.FieldType) (Codec, error) {
	c, ok := r.codecs[typ]
	if !ok {
		return nil, newNoCodec(typ)
	}

	return c, nil
}

// Supports reports whether a codec is registered for typ.
func (r *Registry) Supports(typ header.FieldType) bool {
	_, ok := r.codecs[typ]
	return ok
}

// NewDefaultRegistry builds the registry used by the top-level compressor
// by default: every FieldType except OBJECT (which never appears in a
// column schema, since object fields are flattened away before profiling)
// has a registered codec, including ENUM — the enum layout is always
// preferred when the profiler tags a column ENUM.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(header.STRING, NewStringCodec())
	r.Register(header.NUMBER, NewNumberCodec())
	r.Register(header.BOOLEAN, NewBooleanCodec())
	r.Register(header.TIMESTAMP, NewTimestampCodec())
	r.Register(header.UUID, NewUUIDCodec())
	r.Register(header.ENUM, NewEnumCodec())
	r.Register(header.ARRAY_PRIMITIVE, NewArrayPrimitiveCodec(r))
	r.Register(header.ARRAY, NewArrayObjectCodec(r))

	return r
}
