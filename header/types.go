package header

// FieldType is the logical field type tag, drawn from a fixed closed set
// with fixed wire codes. OBJECT is present in the tag set but never appears
// in a column schema: top-level objects are flattened away before pivoting
// into columns, and reconstructed structurally rather than stored as a type.
type FieldType uint8

const (
	STRING          FieldType = 0
	NUMBER          FieldType = 1
	BOOLEAN         FieldType = 2
	TIMESTAMP       FieldType = 3
	UUID            FieldType = 4
	ENUM            FieldType = 5
	OBJECT          FieldType = 6
	ARRAY           FieldType = 7
	ARRAY_PRIMITIVE FieldType = 8
)

// String implements fmt.Stringer for FieldType, returning the same token
// used for the type tag in diagnostics and debug output.
func (t FieldType) String() string {
	switch t {
	case STRING:
		return "STRING"
	case NUMBER:
		return "NUMBER"
	case BOOLEAN:
		return "BOOLEAN"
	case TIMESTAMP:
		return "TIMESTAMP"
	case UUID:
		return "UUID"
	case ENUM:
		return "ENUM"
	case OBJECT:
		return "OBJECT"
	case ARRAY:
		return "ARRAY"
	case ARRAY_PRIMITIVE:
		return "ARRAY_PRIMITIVE"
	default:
		return "UNKNOWN"
	}
}
