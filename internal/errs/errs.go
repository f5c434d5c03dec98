// Package errs classifies the latched parse/write errors a Reader or
// Writer can raise. The Kind lets callers test error categories the way
// they would with errors.Is, while the message text stays byte-for-byte
// identical to the original ujson C library's diagnostics.
package errs

import "fmt"

// Kind categorizes a latched error.
type Kind int

const (
	// Grammar covers "expected X but saw Y" mismatches: missing ',', ':',
	// or a closing bracket, a malformed literal, an unrecognized value start.
	Grammar Kind = iota
	// Unterminated covers a string, id, or the whole input ending mid-token.
	Unterminated
	// InvalidEscape covers an unrecognized backslash escape.
	InvalidEscape
	// InvalidChar covers a raw control character (< 0x20) inside a string.
	InvalidChar
	// LeadingZero covers a numeric literal with a disallowed leading zero.
	LeadingZero
	// BufferTooShort covers a caller buffer (string scratch or id) that
	// cannot hold the decoded value.
	BufferTooShort
	// TooDeep covers recursion exceeding the configured max depth.
	TooDeep
	// ExpectedDigit covers a numeric literal missing a required digit run.
	ExpectedDigit
)

// Error is a latched parse or write error: a Kind plus the exact message
// text reported to the caller.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// New builds an Error with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
