package resp

import "errors"

var (
	// ErrIncomplete is returned by Decode when the buffer ends before a
	// complete value. Callers keep the bytes and retry once more arrive.
	ErrIncomplete = errors.New("resp: incomplete value")

	// ErrProtocol is returned for input that can never become a valid value.
	ErrProtocol = errors.New("resp: protocol error")
)
