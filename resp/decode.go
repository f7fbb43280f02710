// Package resp implements the RESP wire format used between clients and the
// server: a stateless decoder that works on accumulated byte buffers and an
// encoder producing CRLF-terminated frames.
//
// Spaces, tabs, CR and LF before a value are skipped, so stray line endings
// between pipelined frames are tolerated.
package resp

import (
	"bytes"
	"fmt"
	"strconv"
)

// Protocol limits. Anything larger is rejected as a protocol error rather
// than buffered.
const (
	// MaxBulkLen bounds a single bulk string payload (512MB).
	MaxBulkLen = 512 * 1024 * 1024

	// MaxArrayLen bounds the element count of one array.
	MaxArrayLen = 1024 * 1024

	// MaxLineLen bounds a header or simple string line, CRLF excluded.
	MaxLineLen = 64 * 1024

	// MaxDepth bounds array nesting.
	MaxDepth = 32
)

// Whitespace is the set of bytes skipped before a value.
const Whitespace = " \t\r\n"

var crlf = []byte("\r\n")

// Decode parses the first value in buf. On success it returns the value and
// the number of bytes consumed, leading whitespace included. If buf holds only
// a prefix of a value the error is ErrIncomplete; malformed input yields an
// error wrapping ErrProtocol.
func Decode(buf []byte) (Value, int, error) {
	v, n, err := decode(buf, 0, 0)
	if err != nil {
		return Value{}, 0, err
	}
	return v, n, nil
}

func decode(buf []byte, pos, depth int) (Value, int, error) {
	for pos < len(buf) && isSpace(buf[pos]) {
		pos++
	}
	if pos >= len(buf) {
		return Value{}, 0, ErrIncomplete
	}

	prefix := Type(buf[pos])
	switch prefix {
	case TypeSimpleString, TypeError, TypeInteger, TypeBulkString, TypeArray:
	default:
		return Value{}, 0, fmt.Errorf("%w: unexpected byte %q", ErrProtocol, buf[pos])
	}

	line, next, err := readLine(buf, pos+1)
	if err != nil {
		return Value{}, 0, err
	}

	switch prefix {
	case TypeSimpleString:
		if err := checkText(line); err != nil {
			return Value{}, 0, err
		}
		return SimpleString(string(line)), next, nil

	case TypeError:
		if err := checkText(line); err != nil {
			return Value{}, 0, err
		}
		return Error(string(line)), next, nil

	case TypeInteger:
		n, err := strconv.ParseInt(string(line), 10, 64)
		if err != nil {
			return Value{}, 0, fmt.Errorf("%w: invalid integer %q", ErrProtocol, line)
		}
		return Integer(n), next, nil

	case TypeBulkString:
		n, err := parseLength(line, MaxBulkLen, "bulk")
		if err != nil {
			return Value{}, 0, err
		}
		if n < 0 {
			return NullBulk(), next, nil
		}
		end := next + n
		if len(buf) < end+len(crlf) {
			return Value{}, 0, ErrIncomplete
		}
		if !bytes.Equal(buf[end:end+len(crlf)], crlf) {
			return Value{}, 0, fmt.Errorf("%w: invalid bulk terminator", ErrProtocol)
		}
		return Bulk(string(buf[next:end])), end + len(crlf), nil

	default: // TypeArray
		n, err := parseLength(line, MaxArrayLen, "array")
		if err != nil {
			return Value{}, 0, err
		}
		if n < 0 {
			return NullArray(), next, nil
		}
		if depth >= MaxDepth {
			return Value{}, 0, fmt.Errorf("%w: nesting exceeds depth %d", ErrProtocol, MaxDepth)
		}
		elems := make([]Value, 0, min(n, 1024))
		pos = next
		for i := 0; i < n; i++ {
			var elem Value
			elem, pos, err = decode(buf, pos, depth+1)
			if err != nil {
				return Value{}, 0, err
			}
			elems = append(elems, elem)
		}
		return Value{Type: TypeArray, Elems: elems}, pos, nil
	}
}

// readLine returns the bytes between start and the next CRLF and the
// position just past it.
func readLine(buf []byte, start int) ([]byte, int, error) {
	idx := bytes.Index(buf[start:], crlf)
	if idx < 0 {
		if len(buf)-start > MaxLineLen {
			return nil, 0, fmt.Errorf("%w: line length exceeds limit %d", ErrProtocol, MaxLineLen)
		}
		return nil, 0, ErrIncomplete
	}
	if idx > MaxLineLen {
		return nil, 0, fmt.Errorf("%w: line length exceeds limit %d", ErrProtocol, MaxLineLen)
	}
	return buf[start : start+idx], start + idx + len(crlf), nil
}

func parseLength(line []byte, max int, kind string) (int, error) {
	n, err := strconv.Atoi(string(line))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s length %q", ErrProtocol, kind, line)
	}
	if n < -1 {
		return 0, fmt.Errorf("%w: invalid %s length %d", ErrProtocol, kind, n)
	}
	if n > max {
		return 0, fmt.Errorf("%w: %s length %d exceeds limit %d", ErrProtocol, kind, n, max)
	}
	return n, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func checkText(line []byte) error {
	if bytes.ContainsAny(line, "\r\n") {
		return fmt.Errorf("%w: line contains CR or LF", ErrProtocol)
	}
	return nil
}
