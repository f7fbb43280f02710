package resp

import (
	"strconv"
	"strings"
)

// Encode serializes v into a new buffer.
func Encode(v Value) []byte {
	return AppendValue(nil, v)
}

// AppendValue appends the encoding of v to dst and returns the extended
// buffer. CR and LF inside simple strings and errors are replaced by spaces
// so the frame stays well formed. A zero Value encodes as the null bulk
// string.
func AppendValue(dst []byte, v Value) []byte {
	switch v.Type {
	case TypeSimpleString, TypeError:
		dst = append(dst, byte(v.Type))
		dst = append(dst, sanitize(v.Str)...)
		return append(dst, crlf...)

	case TypeInteger:
		dst = append(dst, byte(TypeInteger))
		dst = strconv.AppendInt(dst, v.Int, 10)
		return append(dst, crlf...)

	case TypeArray:
		if v.Null {
			return append(dst, "*-1\r\n"...)
		}
		dst = append(dst, byte(TypeArray))
		dst = strconv.AppendInt(dst, int64(len(v.Elems)), 10)
		dst = append(dst, crlf...)
		for _, elem := range v.Elems {
			dst = AppendValue(dst, elem)
		}
		return dst

	default:
		if v.Type != TypeBulkString || v.Null {
			return append(dst, "$-1\r\n"...)
		}
		dst = append(dst, byte(TypeBulkString))
		dst = strconv.AppendInt(dst, int64(len(v.Str)), 10)
		dst = append(dst, crlf...)
		dst = append(dst, v.Str...)
		return append(dst, crlf...)
	}
}

// Command encodes args as an array of bulk strings, the form clients use to
// send a command.
func Command(args ...string) []byte {
	elems := make([]Value, len(args))
	for i, arg := range args {
		elems[i] = Bulk(arg)
	}
	return Encode(Array(elems...))
}

func sanitize(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return ' '
		}
		return r
	}, s)
}
