package resp

import (
	"errors"
	"fmt"
)

// Scanner finds where the first complete value in a growing buffer ends,
// checking framing only. Progress through nested arrays is kept between
// calls, so a large frame arriving in many reads is walked once.
//
// The buffer passed to successive Scan calls must keep the same prefix:
// bytes may be appended but not removed until Scan reports a complete value.
type Scanner struct {
	pos int
	// remaining element counts of the arrays currently open, innermost last
	open []int
}

// Scan returns the length of the first complete value in buf, leading
// whitespace included, and resets for the next value. It returns
// ErrIncomplete while more bytes are needed and an error wrapping
// ErrProtocol for input that can never frame.
func (s *Scanner) Scan(buf []byte) (int, error) {
	for {
		pos := s.pos
		for pos < len(buf) && isSpace(buf[pos]) {
			pos++
		}
		if pos >= len(buf) {
			return 0, s.incomplete()
		}

		prefix := Type(buf[pos])
		switch prefix {
		case TypeSimpleString, TypeError, TypeInteger, TypeBulkString, TypeArray:
		default:
			s.Reset()
			return 0, fmt.Errorf("%w: unexpected byte %q", ErrProtocol, buf[pos])
		}

		line, next, err := readLine(buf, pos+1)
		if err != nil {
			return 0, s.fail(err)
		}

		switch prefix {
		case TypeBulkString:
			n, err := parseLength(line, MaxBulkLen, "bulk")
			if err != nil {
				return 0, s.fail(err)
			}
			if n >= 0 {
				end := next + n
				if len(buf) < end+len(crlf) {
					return 0, s.incomplete()
				}
				if buf[end] != '\r' || buf[end+1] != '\n' {
					s.Reset()
					return 0, fmt.Errorf("%w: invalid bulk terminator", ErrProtocol)
				}
				next = end + len(crlf)
			}

		case TypeArray:
			n, err := parseLength(line, MaxArrayLen, "array")
			if err != nil {
				return 0, s.fail(err)
			}
			if n > 0 {
				if len(s.open) >= MaxDepth {
					s.Reset()
					return 0, fmt.Errorf("%w: nesting exceeds depth %d", ErrProtocol, MaxDepth)
				}
				s.open = append(s.open, n)
				s.pos = next
				continue
			}
		}

		s.pos = next
		if s.closeValue() {
			end := s.pos
			s.Reset()
			return end, nil
		}
	}
}

// Reset discards any progress.
func (s *Scanner) Reset() {
	s.pos = 0
	s.open = s.open[:0]
}

// InProgress reports whether part of a frame has already been walked.
func (s *Scanner) InProgress() bool {
	return len(s.open) > 0
}

// closeValue accounts for one finished value and reports whether it
// completed the top-level frame.
func (s *Scanner) closeValue() bool {
	for len(s.open) > 0 {
		top := len(s.open) - 1
		s.open[top]--
		if s.open[top] > 0 {
			return false
		}
		s.open = s.open[:top]
	}
	return true
}

// incomplete keeps array progress; outside an array there is nothing worth
// keeping and the next call starts from the beginning.
func (s *Scanner) incomplete() error {
	if len(s.open) == 0 {
		s.pos = 0
	}
	return ErrIncomplete
}

func (s *Scanner) fail(err error) error {
	if errors.Is(err, ErrIncomplete) {
		return s.incomplete()
	}
	s.Reset()
	return err
}
