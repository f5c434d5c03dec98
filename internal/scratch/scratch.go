// Package scratch implements the bounded, caller-owned byte buffer that
// string decoding writes into. Unlike a general-purpose growable buffer,
// Scratch never reallocates: it reports ErrTooShort once the caller's
// buffer cannot hold another byte or code point, the same way the C
// ujson_val.buf/buf_size pair behaves.
package scratch

import (
	"errors"
	"unicode/utf8"
)

// ErrTooShort is returned by Add/AddRune when the backing buffer has no
// room left for the next byte or code point.
var ErrTooShort = errors.New("String buffer too short!")

// Scratch wraps a caller-supplied byte slice and tracks how much of it has
// been written. It never grows the slice.
type Scratch struct {
	Data []byte
	fill int
}

// Wrap returns a Scratch backed directly by buf. buf is borrowed; the
// Scratch never allocates a replacement for it.
func Wrap(buf []byte) *Scratch {
	return &Scratch{Data: buf}
}

// Reset empties the scratch buffer without touching its backing array.
func (s *Scratch) Reset() { s.fill = 0 }

// Bytes returns the written contents of the scratch buffer. The returned
// slice aliases Data and is only valid until the next Reset/Add/AddRune.
func (s *Scratch) Bytes() []byte { return s.Data[:s.fill] }

// Len reports how many bytes have been written so far.
func (s *Scratch) Len() int { return s.fill }

// Add appends a single byte, reporting ErrTooShort instead of growing the
// buffer when it is full.
func (s *Scratch) Add(c byte) error {
	if s.fill >= len(s.Data) {
		return ErrTooShort
	}
	s.Data[s.fill] = c
	s.fill++
	return nil
}

// AddRune encodes r as UTF-8 and appends it, reporting ErrTooShort instead
// of growing the buffer when there isn't enough room for the full encoding.
func (s *Scratch) AddRune(r rune) error {
	n := utf8.RuneLen(r)
	if n < 0 {
		n = utf8.UTFMax
	}
	if s.fill+n > len(s.Data) {
		return ErrTooShort
	}
	written := utf8.EncodeRune(s.Data[s.fill:], r)
	s.fill += written
	return nil
}
