package codec_test

import (
	"testing"

	"github.com/basiliskin/sajc/codec"
	"github.com/basiliskin/sajc/value"
	"github.com/stretchr/testify/require"
)

func TestEnumCodec_EncodeDecode_NibblePacked(t *testing.T) {
	c := codec.NewEnumCodec()
	values := []value.Value{
		value.OfString("red"), value.OfString("green"), value.OfString("blue"),
		value.OfString("red"), value.Null(), value.OfString("green"),
	}

	encoded, err := c.Encode(values)
	require.NoError(t, err)

	decoded, err := c.Decode(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(values))
	for i := range values {
		require.True(t, values[i].Equal(decoded[i]))
	}
}

func TestEnumCodec_EncodeDecode_BytePacked(t *testing.T) {
	c := codec.NewEnumCodec()
	values := make([]value.Value, 0, 20)
	for i := 0; i < 20; i++ {
		values = append(values, value.OfString(string(rune('a'+i))))
	}

	encoded, err := c.Encode(values)
	require.NoError(t, err)

	decoded, err := c.Decode(encoded)
	require.NoError(t, err)
	for i := range values {
		require.True(t, values[i].Equal(decoded[i]))
	}
}

func TestEnumCodec_Encode_TypeMismatch(t *testing.T) {
	c := codec.NewEnumCodec()
	_, err := c.Encode([]value.Value{value.OfBool(true)})
	require.Error(t, err)
}

func TestEnumCodec_Decode_IndexOutOfRange(t *testing.T) {
	c := codec.NewEnumCodec()
	encoded, err := c.Encode([]value.Value{value.OfString("a"), value.OfString("b")})
	require.NoError(t, err)

	encoded[len(encoded)-1] = 0x0f

	_, err = c.Decode(encoded)
	require.Error(t, err)
}
