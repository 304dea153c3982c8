package profile

import (
	"testing"

	"github.com/basiliskin/sajc/header"
	"github.com/basiliskin/sajc/value"
	"github.com/stretchr/testify/require"
)

func TestColumn_UUID(t *testing.T) {
	values := []value.Value{
		value.OfString("550e8400-e29b-41d4-a716-446655440000"),
		value.OfString("550E8400-E29B-41D4-A716-446655440001"),
	}
	require.Equal(t, header.UUID, Column(values))
}

func TestColumn_Timestamp(t *testing.T) {
	values := []value.Value{
		value.OfString("2025-01-01T00:00:00.000Z"),
		value.OfString("2025-01-02T00:00:00.000Z"),
	}
	require.Equal(t, header.TIMESTAMP, Column(values))
}

func TestColumn_Enum(t *testing.T) {
	values := []value.Value{
		value.OfString("A"), value.OfString("B"), value.OfString("A"), value.OfString("C"),
	}
	require.Equal(t, header.ENUM, Column(values))
}

func TestColumn_StringWhenTooManyDistinct(t *testing.T) {
	values := make([]value.Value, 0, 9)
	for i := 0; i < 9; i++ {
		values = append(values, value.OfString(string(rune('a'+i))))
	}
	require.Equal(t, header.STRING, Column(values))
}

func TestColumn_Boolean(t *testing.T) {
	values := []value.Value{value.OfBool(true), value.OfBool(false)}
	require.Equal(t, header.BOOLEAN, Column(values))
}

func TestColumn_Number(t *testing.T) {
	values := []value.Value{value.OfNumber(1), value.OfNumber(2.5)}
	require.Equal(t, header.NUMBER, Column(values))
}

func TestColumn_ArrayOfObjects(t *testing.T) {
	values := []value.Value{
		value.OfSeq([]value.Value{value.OfMap(map[string]value.Value{"k": value.OfNumber(1)})}),
	}
	require.Equal(t, header.ARRAY, Column(values))
}

func TestColumn_ArrayOfPrimitives(t *testing.T) {
	values := []value.Value{
		value.OfSeq([]value.Value{value.OfNumber(1), value.OfNumber(2)}),
	}
	require.Equal(t, header.ARRAY_PRIMITIVE, Column(values))
}

func TestColumn_EmptyDefaultsToString(t *testing.T) {
	require.Equal(t, header.STRING, Column(nil))
}

func TestColumn_AllNullDefaultsToString(t *testing.T) {
	values := []value.Value{value.Null(), value.Missing()}
	require.Equal(t, header.STRING, Column(values))
}

func TestColumn_PriorityOrderUUIDBeatsEnum(t *testing.T) {
	// Two distinct UUID strings: would also satisfy ENUM's <=8 distinct rule,
	// but UUID has priority.
	values := []value.Value{
		value.OfString("550e8400-e29b-41d4-a716-446655440000"),
		value.OfString("550e8400-e29b-41d4-a716-446655440001"),
	}
	require.Equal(t, header.UUID, Column(values))
}
