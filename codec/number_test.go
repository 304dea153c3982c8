package codec_test

import (
	"testing"

	"github.com/basiliskin/sajc/codec"
	"github.com/basiliskin/sajc/value"
	"github.com/stretchr/testify/require"
)

func TestNumberCodec_Encode_IntegerMode(t *testing.T) {
	c := codec.NewNumberCodec()
	values := []value.Value{value.OfNumber(1), value.OfNumber(2), value.OfNumber(3)}

	encoded, err := c.Encode(values)
	require.NoError(t, err)
	require.Equal(t, byte(0x01), encoded[0])

	decoded, err := c.Decode(encoded)
	require.NoError(t, err)
	for i := range values {
		require.InDelta(t, values[i].Number, decoded[i].Number, 1e-9)
	}
}

func TestNumberCodec_Encode_DecimalMode(t *testing.T) {
	c := codec.NewNumberCodec()
	values := []value.Value{value.OfNumber(1.5), value.OfNumber(2.25), value.OfNumber(3.0)}

	encoded, err := c.Encode(values)
	require.NoError(t, err)
	require.Equal(t, byte(0x02), encoded[0])
	require.Equal(t, byte(0x02), encoded[1])

	decoded, err := c.Decode(encoded)
	require.NoError(t, err)
	for i := range values {
		require.InDelta(t, values[i].Number, decoded[i].Number, 1e-9)
	}
}

func TestNumberCodec_Encode_FloatMode(t *testing.T) {
	c := codec.NewNumberCodec()
	values := []value.Value{value.OfNumber(1.0), value.OfNumber(2.0), value.OfNumber(3.141592653589793)}

	encoded, err := c.Encode(values)
	require.NoError(t, err)
	require.Equal(t, byte(0x00), encoded[0])

	decoded, err := c.Decode(encoded)
	require.NoError(t, err)
	for i := range values {
		require.InDelta(t, values[i].Number, decoded[i].Number, 1e-12)
	}
}

func TestNumberCodec_Encode_NullForcesFloatMode(t *testing.T) {
	c := codec.NewNumberCodec()
	values := []value.Value{value.OfNumber(1), value.Null(), value.OfNumber(3)}

	encoded, err := c.Encode(values)
	require.NoError(t, err)
	require.Equal(t, byte(0x00), encoded[0])

	decoded, err := c.Decode(encoded)
	require.NoError(t, err)
	require.False(t, decoded[0].IsNull())
	require.True(t, decoded[1].IsNull())
	require.False(t, decoded[2].IsNull())
}

func TestNumberCodec_Encode_TypeMismatch(t *testing.T) {
	c := codec.NewNumberCodec()
	_, err := c.Encode([]value.Value{value.OfString("1")})
	require.Error(t, err)
}
