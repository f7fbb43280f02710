package resp

import "fmt"

// Type is the one-byte prefix that identifies a wire value on the stream.
type Type byte

const (
	TypeSimpleString Type = '+'
	TypeError        Type = '-'
	TypeInteger      Type = ':'
	TypeBulkString   Type = '$'
	TypeArray        Type = '*'
)

func (t Type) String() string {
	switch t {
	case TypeSimpleString:
		return "simple-string"
	case TypeError:
		return "error"
	case TypeInteger:
		return "integer"
	case TypeBulkString:
		return "bulk-string"
	case TypeArray:
		return "array"
	default:
		return fmt.Sprintf("type(%q)", byte(t))
	}
}

// Value is a single RESP value. Which fields are meaningful depends on Type:
// Str for simple strings, errors and bulk payloads, Int for integers and
// Elems for arrays. Null marks the null bulk string and the null array.
type Value struct {
	Type  Type
	Str   string
	Int   int64
	Null  bool
	Elems []Value
}

// SimpleString returns a status reply such as +OK.
func SimpleString(s string) Value {
	return Value{Type: TypeSimpleString, Str: s}
}

// Error returns an error reply carrying msg verbatim.
func Error(msg string) Value {
	return Value{Type: TypeError, Str: msg}
}

// Errorf formats an error reply.
func Errorf(format string, args ...any) Value {
	return Error(fmt.Sprintf(format, args...))
}

// Integer returns an integer reply.
func Integer(n int64) Value {
	return Value{Type: TypeInteger, Int: n}
}

// Bulk returns a bulk string holding s. The payload is binary safe.
func Bulk(s string) Value {
	return Value{Type: TypeBulkString, Str: s}
}

// NullBulk returns the null bulk string ($-1).
func NullBulk() Value {
	return Value{Type: TypeBulkString, Null: true}
}

// Array returns an array of the given elements.
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{Type: TypeArray, Elems: elems}
}

// NullArray returns the null array (*-1).
func NullArray() Value {
	return Value{Type: TypeArray, Null: true}
}

// BulkString reports the payload of a present bulk string.
func (v Value) BulkString() (string, bool) {
	if v.Type != TypeBulkString || v.Null {
		return "", false
	}
	return v.Str, true
}

// IsError reports whether v is an error reply.
func (v Value) IsError() bool {
	return v.Type == TypeError
}
