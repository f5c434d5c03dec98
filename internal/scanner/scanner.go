// Package scanner provides byte-level cursor primitives over an in-memory
// JSON source. It has no notion of JSON grammar: it only knows how to peek,
// consume, and match bytes at a cursor position in a byte slice.
package scanner

// Scanner walks a byte slice left to right and never reads past the end of
// the slice. It only moves backward when a caller restores an earlier
// offset with SetPos.
type Scanner struct {
	src []byte
	pos int
}

// New wraps src for scanning. src is borrowed, not copied; it must outlive
// the Scanner.
func New(src []byte) *Scanner {
	return &Scanner{src: src}
}

// Len returns the total length of the source.
func (s *Scanner) Len() int { return len(s.src) }

// Slice returns the raw input bytes in [start, end). The returned slice
// aliases the source and must not be retained past the source's lifetime.
func (s *Scanner) Slice(start, end int) []byte { return s.src[start:end] }

// Pos returns the current cursor offset.
func (s *Scanner) Pos() int { return s.pos }

// SetPos moves the cursor to a previously observed offset, used to rewind
// a lookahead that did not match; it never moves the cursor past len(src).
func (s *Scanner) SetPos(pos int) {
	if pos > len(s.src) {
		pos = len(s.src)
	}
	s.pos = pos
}

// AtEnd reports whether the cursor has reached the end of input.
func (s *Scanner) AtEnd() bool { return s.pos >= len(s.src) }

// Peek returns the byte at pos+k without advancing, or 0 if out of range.
func (s *Scanner) Peek(k int) byte {
	i := s.pos + k
	if i < 0 || i >= len(s.src) {
		return 0
	}
	return s.src[i]
}

// Cur is shorthand for Peek(0).
func (s *Scanner) Cur() byte { return s.Peek(0) }

// Consume returns the current byte and advances the cursor by one, or
// returns 0 without advancing at end of input.
func (s *Scanner) Consume() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	b := s.src[s.pos]
	s.pos++
	return b
}

// Accept consumes exactly one byte if it equals c.
func (s *Scanner) Accept(c byte) bool {
	if s.Cur() != c {
		return false
	}
	s.pos++
	return true
}

// AcceptEither consumes one byte if it equals a or b.
func (s *Scanner) AcceptEither(a, b byte) bool {
	return s.Accept(a) || s.Accept(b)
}

// AcceptLiteral consumes the exact byte sequence lit and fails without
// rewinding on a mismatch. Callers must already know the first byte matches
// (e.g. via a switch on Cur()) so a failed match only consumes a few bytes,
// which is harmless because the reader poisons on failure.
func (s *Scanner) AcceptLiteral(lit string) bool {
	for i := 0; i < len(lit); i++ {
		if s.Consume() != lit[i] {
			return false
		}
	}
	return true
}

// EatWS advances the cursor past a run of JSON whitespace (space, tab, CR,
// LF) and reports whether it reached end of input.
func (s *Scanner) EatWS() bool {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		default:
			return false
		}
	}
	return true
}

// IsDigit reports whether b is an ASCII decimal digit.
func IsDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// HexVal returns 0-15 for a hex digit, or -1 if b is not one.
func HexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	default:
		return -1
	}
}
