package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlatten_NestedObject(t *testing.T) {
	record := Record{
		"a": OfNumber(1),
		"b": OfMap(map[string]Value{
			"c": OfNumber(2),
			"d": OfMap(map[string]Value{
				"e": OfString("x"),
			}),
		}),
	}

	flat := Flatten(record)

	require.Equal(t, OfNumber(1), flat["a"])
	require.Equal(t, OfNumber(2), flat["b.c"])
	require.Equal(t, OfString("x"), flat["b.d.e"])
	require.Len(t, flat, 3)
}

func TestFlatten_ArraysAreOpaqueLeaves(t *testing.T) {
	record := Record{
		"xs": OfSeq([]Value{OfNumber(1), OfNumber(2)}),
	}

	flat := Flatten(record)

	require.Len(t, flat, 1)
	require.Equal(t, KindSeq, flat["xs"].Kind)
}

func TestUnflatten_RoundTrip(t *testing.T) {
	flat := Record{
		"a":     OfNumber(1),
		"b.c":   OfNumber(2),
		"b.d.e": OfString("x"),
	}

	nested := Unflatten(flat)

	b, ok := nested["b"]
	require.True(t, ok)
	require.Equal(t, KindMap, b.Kind)
	require.Equal(t, OfNumber(2), b.Map["c"])

	d := b.Map["d"]
	require.Equal(t, OfString("x"), d.Map["e"])
}

func TestUnflatten_MissingKeyDropped(t *testing.T) {
	flat := Record{
		"a": OfNumber(1),
		"b": Missing(),
	}

	nested := Unflatten(flat)

	_, ok := nested["b"]
	require.False(t, ok)
	require.Equal(t, OfNumber(1), nested["a"])
}

func TestUnflatten_NullPreserved(t *testing.T) {
	flat := Record{
		"a": Null(),
	}

	nested := Unflatten(flat)

	v, ok := nested["a"]
	require.True(t, ok)
	require.True(t, v.IsNull())
}

func TestFlattenUnflatten_RoundTrip(t *testing.T) {
	record := Record{
		"a": OfNumber(1),
		"b": OfMap(map[string]Value{
			"c": Null(),
		}),
	}

	got := Unflatten(Flatten(record))

	require.Equal(t, OfNumber(1), got["a"])
	require.True(t, got["b"].Map["c"].IsNull())
}
