// Package value defines the dynamic value model shared by the profiler,
// column builder, codecs, and flattener.
//
// The engine is inherently value-polymorphic: a record field can be a
// boolean, a finite number, a string, a nested object, a nested array, an
// explicit null, or simply absent. Modeling Missing as part of the same sum
// type as Null (rather than a separate sideband flag) keeps the flattener
// and the nullable wrapper uniform: both only ever deal in []Value.
package value

import "fmt"

// Kind identifies which alternative of Value is populated.
type Kind uint8

const (
	KindNull Kind = iota
	KindMissing
	KindBool
	KindNumber
	KindString
	KindSeq
	KindMap
)

// Value is a dynamically typed record field. Exactly one of Bool, Number,
// Str, Seq, or Map is meaningful, selected by Kind; for KindNull and
// KindMissing none of them are.
//
// Missing is semantically distinct from Null: Null is a recorded value,
// Missing means the key was not present in that record.
type Value struct {
	Kind   Kind
	Bool   bool
	Number float64
	Str    string
	Seq    []Value
	Map    map[string]Value
}

// Null returns the null Value.
func Null() Value { return Value{Kind: KindNull} }

// Missing returns the MISSING sentinel Value.
func Missing() Value { return Value{Kind: KindMissing} }

// OfBool wraps a bool as a Value.
func OfBool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// OfNumber wraps a float64 as a Value.
func OfNumber(n float64) Value { return Value{Kind: KindNumber, Number: n} }

// OfString wraps a string as a Value.
func OfString(s string) Value { return Value{Kind: KindString, Str: s} }

// OfSeq wraps a slice of Values as a Value.
func OfSeq(seq []Value) Value { return Value{Kind: KindSeq, Seq: seq} }

// OfMap wraps a string-keyed map of Values as a Value.
func OfMap(m map[string]Value) Value { return Value{Kind: KindMap, Map: m} }

// IsNull reports whether v is the recorded null value.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// IsMissing reports whether v is the MISSING sentinel.
func (v Value) IsMissing() bool { return v.Kind == KindMissing }

// IsNullOrMissing reports whether v is either null or MISSING; the profiler
// treats both as "no type information" when scanning a column.
func (v Value) IsNullOrMissing() bool { return v.Kind == KindNull || v.Kind == KindMissing }

// Equal reports whether v and other are structurally equal, treating
// MISSING and Null as distinct from each other and from any typed value.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}

	switch v.Kind {
	case KindNull, KindMissing:
		return true
	case KindBool:
		return v.Bool == other.Bool
	case KindNumber:
		return v.Number == other.Number
	case KindString:
		return v.Str == other.Str
	case KindSeq:
		if len(v.Seq) != len(other.Seq) {
			return false
		}
		for i := range v.Seq {
			if !v.Seq[i].Equal(other.Seq[i]) {
				return false
			}
		}

		return true
	case KindMap:
		if len(v.Map) != len(other.Map) {
			return false
		}
		for k, a := range v.Map {
			b, ok := other.Map[k]
			if !ok || !a.Equal(b) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// String implements fmt.Stringer for debugging; it is not used on any
// encode/decode path.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindMissing:
		return "<missing>"
	case KindBool:
		return fmt.Sprintf("%v", v.Bool)
	case KindNumber:
		return fmt.Sprintf("%v", v.Number)
	case KindString:
		return fmt.Sprintf("%q", v.Str)
	case KindSeq:
		return fmt.Sprintf("%v", v.Seq)
	case KindMap:
		return fmt.Sprintf("%v", v.Map)
	default:
		return "<invalid>"
	}
}
