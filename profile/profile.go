// Package profile implements the field profiler: it inspects a column's
// non-null values and infers a single logical field type for the whole
// column, following a fixed priority order.
//
// These heuristics (the UUID regex, the accepted timestamp layouts, the
// 8-value enum cutoff, the priority order itself) are product decisions
// rather than universal truths; they are fixed in this package (the enum
// cutoff as the EnumMaxDistinct constant) so wire output stays
// reproducible across encoders that implement the same heuristic.
package profile

import (
	"regexp"
	"time"

	"github.com/basiliskin/sajc/header"
	"github.com/basiliskin/sajc/value"
)

// EnumMaxDistinct is the maximum distinct-value count for a string column to
// be tagged ENUM rather than STRING.
const EnumMaxDistinct = 8

var uuidRegexp = regexp.MustCompile(`^(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// isUUIDString reports whether s is a canonical RFC-4122 hyphenated UUID.
func isUUIDString(s string) bool {
	return uuidRegexp.MatchString(s)
}

// isTimestampString reports whether s parses as an ISO-8601 timestamp.
func isTimestampString(s string) bool {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}

	return false
}

// Column infers the logical field type for values by inspecting its
// non-null, non-MISSING entries in priority order:
//
//  1. all strings matching a canonical UUID shape -> UUID
//  2. all strings parseable as ISO-8601 -> TIMESTAMP
//  3. all strings with <= EnumMaxDistinct distinct values -> ENUM
//  4. all booleans -> BOOLEAN
//  5. all numbers -> NUMBER
//  6. all sequences of plain objects -> ARRAY
//  7. all sequences of non-object items -> ARRAY_PRIMITIVE
//  8. otherwise -> STRING
//
// Empty or all-null/all-MISSING columns default to STRING. The ARRAY and
// ARRAY_PRIMITIVE checks look at the items inside each non-null sequence;
// null items inside a sequence are ignored when deciding ARRAY, since a
// sub-array's own nulls are meaningful to its element profiler, not to
// this one.
func Column(values []value.Value) header.FieldType {
	typed := make([]value.Value, 0, len(values))
	for _, v := range values {
		if v.IsNullOrMissing() {
			continue
		}

		typed = append(typed, v)
	}

	if len(typed) == 0 {
		return header.STRING
	}

	if allStrings(typed) {
		if all(typed, func(v value.Value) bool { return isUUIDString(v.Str) }) {
			return header.UUID
		}

		if all(typed, func(v value.Value) bool { return isTimestampString(v.Str) }) {
			return header.TIMESTAMP
		}

		if distinctCount(typed) <= EnumMaxDistinct {
			return header.ENUM
		}

		return header.STRING
	}

	if all(typed, func(v value.Value) bool { return v.Kind == value.KindBool }) {
		return header.BOOLEAN
	}

	if all(typed, func(v value.Value) bool { return v.Kind == value.KindNumber }) {
		return header.NUMBER
	}

	if all(typed, func(v value.Value) bool { return v.Kind == value.KindSeq }) {
		if all(typed, func(v value.Value) bool { return allObjects(v.Seq) }) {
			return header.ARRAY
		}

		return header.ARRAY_PRIMITIVE
	}

	return header.STRING
}

func allStrings(values []value.Value) bool {
	return all(values, func(v value.Value) bool { return v.Kind == value.KindString })
}

func allObjects(seq []value.Value) bool {
	for _, item := range seq {
		if item.IsNullOrMissing() {
			continue
		}
		if item.Kind != value.KindMap {
			return false
		}
	}

	return true
}

func all(values []value.Value, pred func(value.Value) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}

	return true
}

func distinctCount(values []value.Value) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v.Str] = struct{}{}
	}

	return len(seen)
}
