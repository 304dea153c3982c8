package bitmap

import (
	"testing"

	"github.com/basiliskin/sajc/value"
	"github.com/stretchr/testify/require"
)

func TestBuild_MixedMissing(t *testing.T) {
	values := []value.Value{
		value.OfNumber(1),
		value.Missing(),
		value.OfNumber(2),
		value.Missing(),
		value.OfNumber(3),
	}

	bits, nonMissing := Build(values)

	require.Len(t, bits, 1)
	require.Len(t, nonMissing, 3)
	require.True(t, Get(bits, 0))
	require.False(t, Get(bits, 1))
	require.True(t, Get(bits, 2))
	require.False(t, Get(bits, 3))
	require.True(t, Get(bits, 4))
}

func TestPopcount(t *testing.T) {
	values := []value.Value{
		value.OfNumber(1), value.Missing(), value.OfNumber(2),
	}
	bits, _ := Build(values)

	require.Equal(t, 2, Popcount(bits, len(values)))
}

func TestInterleave_RoundTrip(t *testing.T) {
	values := []value.Value{
		value.OfNumber(1), value.Missing(), value.OfNumber(2),
	}
	bits, nonMissing := Build(values)

	out := Interleave(bits, nonMissing, len(values))

	require.Len(t, out, len(values))
	for i := range values {
		require.True(t, values[i].Equal(out[i]))
	}
}

func TestSize(t *testing.T) {
	require.Equal(t, 0, Size(0))
	require.Equal(t, 1, Size(1))
	require.Equal(t, 1, Size(8))
	require.Equal(t, 2, Size(9))
}
