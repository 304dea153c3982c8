package codec_test

import (
	"testing"

	"github.com/basiliskin/sajc/codec"
	"github.com/basiliskin/sajc/value"
	"github.com/stretchr/testify/require"
)

func TestTimestampCodec_Encode_ScenarioF(t *testing.T) {
	c := codec.NewTimestampCodec()
	values := []value.Value{
		value.OfString("2024-01-01T00:00:00.000Z"),
		value.OfString("2024-01-01T00:00:00.001Z"),
	}

	encoded, err := c.Encode(values)
	require.NoError(t, err)
	require.Len(t, encoded, 8+1+1)
	require.Equal(t, byte(0x00), encoded[8])
	require.Equal(t, byte(0x02), encoded[9])
}

func TestTimestampCodec_EncodeDecode_RoundTrip(t *testing.T) {
	c := codec.NewTimestampCodec()
	values := []value.Value{
		value.OfString("2024-01-01T00:00:00.000Z"),
		value.OfString("2024-06-15T12:30:45.500Z"),
		value.OfString("2023-12-31T23:59:59.999Z"),
	}

	encoded, err := c.Encode(values)
	require.NoError(t, err)

	decoded, err := c.Decode(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	for i := range values {
		require.Equal(t, values[i].Str, decoded[i].Str)
	}
}

func TestTimestampCodec_Encode_NullSentinel(t *testing.T) {
	c := codec.NewTimestampCodec()
	values := []value.Value{
		value.OfString("2024-01-01T00:00:00.000Z"),
		value.Null(),
	}

	encoded, err := c.Encode(values)
	require.NoError(t, err)

	decoded, err := c.Decode(encoded)
	require.NoError(t, err)
	require.False(t, decoded[0].IsNull())
	require.True(t, decoded[1].IsNull())
}

func TestTimestampCodec_Encode_NotParseable(t *testing.T) {
	c := codec.NewTimestampCodec()
	_, err := c.Encode([]value.Value{value.OfString("not a date")})
	require.Error(t, err)
}

func TestTimestampCodec_Decode_EmptyInput(t *testing.T) {
	c := codec.NewTimestampCodec()
	decoded, err := c.Decode(nil)
	require.NoError(t, err)
	require.Empty(t, decoded)
}
