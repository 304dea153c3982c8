package column

import (
	"testing"

	"github.com/basiliskin/sajc/value"
	"github.com/stretchr/testify/require"
)

func TestPivot_BackfillsMissing(t *testing.T) {
	records := []value.Record{
		{"a": value.OfNumber(1), "b": value.Null()},
		{"a": value.OfNumber(2)},
	}

	names, columns := Pivot(records)

	require.Equal(t, []string{"a", "b"}, names)
	require.Equal(t, []value.Value{value.OfNumber(1), value.OfNumber(2)}, columns[0])
	require.Equal(t, []value.Value{value.Null(), value.Missing()}, columns[1])
}

func TestPivot_FlattensNested(t *testing.T) {
	records := []value.Record{
		{"a": value.OfMap(map[string]value.Value{"b": value.OfNumber(1)})},
		{"a": value.OfMap(map[string]value.Value{"b": value.OfNumber(2)})},
	}

	names, columns := Pivot(records)

	require.Equal(t, []string{"a.b"}, names)
	require.Equal(t, []value.Value{value.OfNumber(1), value.OfNumber(2)}, columns[0])
}

func TestPivotAssemble_RoundTrip(t *testing.T) {
	records := []value.Record{
		{"a": value.OfNumber(1), "b": value.Null()},
		{"a": value.OfNumber(2)},
	}

	names, columns := Pivot(records)
	got := Assemble(names, columns, len(records))

	require.Len(t, got, 2)
	require.Equal(t, value.OfNumber(1), got[0]["a"])
	require.True(t, got[0]["b"].IsNull())
	require.Equal(t, value.OfNumber(2), got[1]["a"])
	_, hasB := got[1]["b"]
	require.False(t, hasB)
}
