package sajc_test

import (
	"testing"

	"github.com/basiliskin/sajc"
	"github.com/basiliskin/sajc/errs"
	"github.com/basiliskin/sajc/header"
	"github.com/basiliskin/sajc/value"
	"github.com/stretchr/testify/require"
)

func num(f float64) value.Value { return value.OfNumber(f) }
func str(s string) value.Value  { return value.OfString(s) }

func TestCompressor_Compress_EmptyBatch(t *testing.T) {
	c, err := sajc.NewCompressor()
	require.NoError(t, err)

	_, err = c.Compress(nil)
	require.ErrorIs(t, err, errs.ErrEmptyBatch)
}

func TestCompressor_RoundTrip_Standard(t *testing.T) {
	c, err := sajc.NewCompressor()
	require.NoError(t, err)

	records := []value.Record{
		{"name": str("alice"), "age": num(30)},
		{"name": str("bob"), "age": num(25)},
	}

	data, err := c.Compress(records)
	require.NoError(t, err)
	require.Equal(t, header.MagicStandard, [4]byte(data[:4]))

	out, err := c.Decompress(data)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.True(t, out[0]["name"].Equal(str("alice")))
	require.True(t, out[0]["age"].Equal(num(30)))
	require.True(t, out[1]["name"].Equal(str("bob")))
}

func TestCompressor_RoundTrip_ColumnarPost(t *testing.T) {
	c, err := sajc.NewCompressor()
	require.NoError(t, err)

	records := []value.Record{
		{"id": str("550e8400-e29b-41d4-a716-446655440000"), "active": value.OfBool(true)},
		{"id": str("550e8400-e29b-41d4-a716-446655440001"), "active": value.OfBool(false)},
	}

	data, err := c.CompressColumnarPost(records)
	require.NoError(t, err)
	require.Equal(t, header.MagicColumnarPost, [4]byte(data[:4]))

	out, err := c.Decompress(data)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.True(t, out[0]["id"].Equal(str("550e8400-e29b-41d4-a716-446655440000")))
	require.True(t, out[1]["active"].Equal(value.OfBool(false)))
}

// TestCompressor_RoundTrip_NullVsMissing checks that an explicit null and
// an absent key round-trip as distinct states rather than collapsing to
// the same thing.
func TestCompressor_RoundTrip_NullVsMissing(t *testing.T) {
	c, err := sajc.NewCompressor()
	require.NoError(t, err)

	records := []value.Record{
		{"a": num(1), "b": value.Null()},
		{"a": num(2)},
	}

	data, err := c.Compress(records)
	require.NoError(t, err)

	out, err := c.Decompress(data)
	require.NoError(t, err)
	require.Len(t, out, 2)

	require.Contains(t, out[0], "b")
	require.True(t, out[0]["b"].IsNull())
	require.NotContains(t, out[1], "b")
}

// TestCompressor_RoundTrip_NestedArrayOfObjects checks a column whose
// values are arrays of nested objects round-trips through the
// array-of-objects codec.
func TestCompressor_RoundTrip_NestedArrayOfObjects(t *testing.T) {
	c, err := sajc.NewCompressor()
	require.NoError(t, err)

	records := []value.Record{
		{"xs": value.OfSeq([]value.Value{
			value.OfMap(value.Record{"k": num(1)}),
			value.OfMap(value.Record{"k": num(2)}),
		})},
		{"xs": value.OfSeq([]value.Value{
			value.OfMap(value.Record{"k": num(3)}),
		})},
	}

	data, err := c.Compress(records)
	require.NoError(t, err)

	out, err := c.Decompress(data)
	require.NoError(t, err)
	require.Len(t, out, 2)

	xs0 := out[0]["xs"].Seq
	require.Len(t, xs0, 2)
	require.True(t, xs0[0].Map["k"].Equal(num(1)))
	require.True(t, xs0[1].Map["k"].Equal(num(2)))

	xs1 := out[1]["xs"].Seq
	require.Len(t, xs1, 1)
	require.True(t, xs1[0].Map["k"].Equal(num(3)))
}

func TestCompressor_RoundTrip_NestedDottedKeys(t *testing.T) {
	c, err := sajc.NewCompressor()
	require.NoError(t, err)

	records := []value.Record{
		{"user": value.OfMap(value.Record{"name": str("alice"), "age": num(30)})},
		{"user": value.OfMap(value.Record{"name": str("bob"), "age": num(25)})},
	}

	data, err := c.Compress(records)
	require.NoError(t, err)

	out, err := c.Decompress(data)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.True(t, out[0]["user"].Map["name"].Equal(str("alice")))
	require.True(t, out[1]["user"].Map["age"].Equal(num(25)))
}

func TestCompressor_CompressWithStats(t *testing.T) {
	c, err := sajc.NewCompressor()
	require.NoError(t, err)

	records := []value.Record{
		{"a": num(1)},
		{"a": num(2)},
		{"a": num(3)},
	}

	data, stats, err := c.CompressWithStats(records)
	require.NoError(t, err)
	require.Equal(t, 3, stats.RowCount)
	require.Equal(t, 1, stats.FieldCount)
	require.Equal(t, len(data), stats.OutputBytes)
	require.Contains(t, stats.FieldByteSizes, "a")
}

func TestCompressor_WithSkipRoundTripCheck(t *testing.T) {
	c, err := sajc.NewCompressor(sajc.WithSkipRoundTripCheck())
	require.NoError(t, err)

	records := []value.Record{{"a": num(1)}, {"a": num(2)}}

	data, err := c.Compress(records)
	require.NoError(t, err)

	out, err := c.Decompress(data)
	require.NoError(t, err)
	require.Len(t, out, 2)
}

func TestDigest_StableUnderRowReorder(t *testing.T) {
	a := []value.Record{{"x": num(1), "y": num(2)}, {"x": num(3)}}
	b := []value.Record{{"x": num(3)}, {"y": num(2), "x": num(1)}}

	require.Equal(t, sajc.Digest(a), sajc.Digest(b))
}

func TestDigest_DiffersOnSchemaChange(t *testing.T) {
	a := []value.Record{{"x": num(1)}}
	b := []value.Record{{"x": num(1), "z": num(2)}}

	require.NotEqual(t, sajc.Digest(a), sajc.Digest(b))
}

func TestCompressor_Decompress_InvalidMagic(t *testing.T) {
	c, err := sajc.NewCompressor()
	require.NoError(t, err)

	_, err = c.Decompress([]byte("not-a-container-at-all"))
	require.ErrorIs(t, err, errs.ErrInvalidMagic)
}
