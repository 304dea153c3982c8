package value

import "strings"

// Record is a single structured record: a mapping from top-level key to
// value. Nested objects are themselves Records wrapped in KindMap Values.
type Record map[string]Value

// Flatten walks record depth-first: for each key whose value is a plain
// object (KindMap, not null, not MISSING), it prepends "parentPath." and
// recurses; otherwise it emits fullPath -> value directly. Arrays (KindSeq)
// are opaque leaves here — they are never flattened; array codecs handle
// their own recursion over their elements.
func Flatten(record Record) Record {
	out := make(Record, len(record))
	flattenInto(out, "", record)

	return out
}

func flattenInto(out Record, prefix string, record Record) {
	for key, v := range record {
		fullPath := key
		if prefix != "" {
			fullPath = prefix + "." + key
		}

		if v.Kind == KindMap {
			flattenInto(out, fullPath, Record(v.Map))
			continue
		}

		out[fullPath] = v
	}
}

// Unflatten rebuilds a nested Record from a flat dotted-key Record. Keys
// whose value is MISSING are dropped entirely: a missing leaf produces no
// key in the reconstructed object, distinguishing it from an explicit null
// which is preserved as a KindNull entry.
func Unflatten(flat Record) Record {
	out := make(Record)

	for path, v := range flat {
		if v.IsMissing() {
			continue
		}

		parts := strings.Split(path, ".")
		insertPath(out, parts, v)
	}

	return out
}

func insertPath(root Record, parts []string, v Value) {
	cur := root
	for i, part := range parts {
		if i == len(parts)-1 {
			cur[part] = v
			return
		}

		existing, ok := cur[part]
		if !ok || existing.Kind != KindMap {
			existing = Value{Kind: KindMap, Map: make(map[string]Value)}
			cur[part] = existing
		}

		cur = Record(existing.Map)
	}
}
