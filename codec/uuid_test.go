package codec_test

import (
	"testing"

	"github.com/basiliskin/sajc/codec"
	"github.com/basiliskin/sajc/value"
	"github.com/stretchr/testify/require"
)

func TestUUIDCodec_EncodeDecode_RoundTrip(t *testing.T) {
	c := codec.NewUUIDCodec()
	values := []value.Value{
		value.OfString("550e8400-e29b-41d4-a716-446655440000"),
		value.OfString("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
	}

	encoded, err := c.Encode(values)
	require.NoError(t, err)
	require.Len(t, encoded, 32)

	decoded, err := c.Decode(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	for i := range values {
		require.True(t, values[i].Equal(decoded[i]))
	}
}

func TestUUIDCodec_Encode_NullSentinel(t *testing.T) {
	c := codec.NewUUIDCodec()
	values := []value.Value{
		value.OfString("550e8400-e29b-41d4-a716-446655440000"),
		value.Null(),
	}

	encoded, err := c.Encode(values)
	require.NoError(t, err)

	decoded, err := c.Decode(encoded)
	require.NoError(t, err)
	require.True(t, decoded[0].Equal(values[0]))
	require.True(t, decoded[1].IsNull())
}

func TestUUIDCodec_Encode_MalformedString(t *testing.T) {
	c := codec.NewUUIDCodec()
	_, err := c.Encode([]value.Value{value.OfString("not-a-uuid")})
	require.Error(t, err)
}

func TestUUIDCodec_Decode_Truncated(t *testing.T) {
	c := codec.NewUUIDCodec()
	_, err := c.Decode(make([]byte, 15))
	require.Error(t, err)
}
