// Package ujson implements a pull-style, allocation-light JSON reader and a
// companion structured writer. The reader walks an in-memory byte slice
// without materializing a DOM: callers drive it with first/next/skip
// primitives over objects and arrays. It is a Go rewrite of the C library
// ujson (Cyril Hrubis, metan-ucw/ujson, LGPL-2.1-or-later).
package ujson

import (
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/go-ujson/ujson/internal/errs"
	"github.com/go-ujson/ujson/internal/scanner"
	"github.com/go-ujson/ujson/internal/scratch"
)

// parseFloat converts a validated numeric literal span to a float64 using
// the standard library's decimal-to-double conversion.
func parseFloat(span []byte) (float64, error) {
	return strconv.ParseFloat(string(span), 64)
}

// Size limits named directly in the spec this library implements.
const (
	// MaxErrMsg is the maximum length, in bytes, of a latched error message.
	MaxErrMsg = 128
	// DefaultMaxDepth is the recursion/nesting ceiling applied unless
	// SetMaxDepth overrides it.
	DefaultMaxDepth = 128

	defaultScratchSize = 4096
)

// Reader walks an immutable byte slice, exposing object/array
// first/next/skip primitives. A Reader is single-owner and
// single-threaded: no operation blocks or shares state across goroutines.
//
// Once a Reader is poisoned (IsErr returns true) every subsequent
// operation is a no-op that yields a Void value; the poisoned state is
// permanent for the Reader's lifetime.
type Reader struct {
	sc       *scanner.Scanner
	subOff   int
	depth    int
	maxDepth int

	scratch *scratch.Scratch

	errSet bool
	errLen int
	errBuf [MaxErrMsg]byte
	errKind errs.Kind
}

// NewReader wraps src for reading. src is borrowed for the Reader's
// lifetime and never copied or mutated.
func NewReader(src []byte) *Reader {
	r := &Reader{
		sc:       scanner.New(src),
		maxDepth: DefaultMaxDepth,
	}
	r.scratch = scratch.Wrap(make([]byte, defaultScratchSize))
	return r
}

// SetMaxDepth overrides the nesting ceiling (default DefaultMaxDepth).
// Must be called before any traversal begins.
func (r *Reader) SetMaxDepth(n int) { r.maxDepth = n }

// SetScratchBuffer installs buf as the decode buffer that string values are
// written into. buf is borrowed; the Reader reuses it across every string
// decoded for the remainder of its lifetime, so its lifetime must outlive
// any Value produced from it.
func (r *Reader) SetScratchBuffer(buf []byte) { r.scratch = scratch.Wrap(buf) }

// IsErr reports whether the reader has been poisoned by a previous error.
func (r *Reader) IsErr() bool { return r.errSet }

// Err returns the latched error, or nil if the reader is clean.
func (r *Reader) Err() error {
	if !r.errSet {
		return nil
	}
	return &errs.Error{Kind: r.errKind, Msg: string(r.errBuf[:r.errLen])}
}

// poison latches the first error encountered; subsequent poison calls
// (which should not normally happen, since every operation short-circuits
// once errSet is true) are ignored so the first diagnostic always wins.
func (r *Reader) poison(kind errs.Kind, format string, args ...interface{}) {
	if r.errSet {
		return
	}
	e := errs.New(kind, format, args...)
	r.errKind = kind
	r.errLen = copy(r.errBuf[:], e.Msg)
	r.errSet = true
}

// NextType classifies the next value in the input without consuming it.
func (r *Reader) NextType() Kind {
	if r.errSet {
		return Void
	}
	return r.peekType()
}

func (r *Reader) peekType() Kind {
	if r.sc.EatWS() {
		r.poison(errs.Unterminated, "Unexpected end")
		return Void
	}

	switch b := r.sc.Cur(); {
	case b == '{':
		return Object
	case b == '[':
		return Array
	case b == '"':
		return String
	case b == '-' || scanner.IsDigit(b):
		return r.classifyNumber()
	case b == 't' || b == 'f':
		return Boolean
	case b == 'n':
		return Null
	default:
		r.poison(errs.Grammar, "Expected object, array, number or string")
		return Void
	}
}

// classifyNumber looks ahead, without consuming, for the first of '.', 'e',
// 'E' (float) versus ',', ']', '}', whitespace, or end of input (integer).
// Any other byte does not end the scan.
func (r *Reader) classifyNumber() Kind {
	for k := 0; ; k++ {
		b := r.sc.Peek(k)
		switch b {
		case '.', 'e', 'E':
			return Float
		case ',', ' ', '\t', '\r', '\n', ']', '}':
			return Integer
		case 0:
			return Integer
		}
	}
}

// Start accepts only a top-level object or array, poisoning otherwise.
func (r *Reader) Start() Kind {
	switch t := r.NextType(); t {
	case Array, Object, Void:
		return t
	default:
		r.poison(errs.Grammar, "JSON can start only with array or object")
		return Void
	}
}

// anyFirst consumes the opening bracket b, entering a new depth level.
func (r *Reader) anyFirst(b byte) bool {
	if r.sc.EatWS() {
		r.poison(errs.Unterminated, "Unexpected end")
		return false
	}
	if !r.sc.Accept(b) {
		r.poison(errs.Grammar, "Expected '%c'", b)
		return false
	}

	r.depth++
	if r.depth > r.maxDepth {
		r.poison(errs.TooDeep, "Recursion too deep")
		return false
	}

	return true
}

// checkEnd looks for the closing bracket b; on success it records Void,
// decrements depth, and (only once the outermost container ends) swallows
// a trailing whitespace run plus a single trailing NUL byte, for
// compatibility with null-terminated C-style buffers.
func (r *Reader) checkEnd(v *Value, b byte) bool {
	if r.sc.EatWS() {
		r.poison(errs.Unterminated, "Unexpected end")
		return true
	}

	if r.sc.Accept(b) {
		v.reset()
		r.depth--
		if r.depth == 0 {
			r.sc.EatWS()
			r.sc.Accept(0)
		}
		return true
	}

	return false
}

// preNext consumes the separating ',' and the whitespace that follows it.
func (r *Reader) preNext(v *Value) bool {
	if !r.sc.Accept(',') {
		r.poison(errs.Grammar, "Expected ','")
		v.reset()
		return true
	}
	if r.sc.EatWS() {
		r.poison(errs.Unterminated, "Unexpected end")
		v.reset()
		return true
	}
	return false
}

// getValue decodes whatever value kind comes next into v. For objects and
// arrays it only records the opening offset (subOff) and returns — it is
// the caller's job to drive iteration into the nested container or skip
// it.
func (r *Reader) getValue(v *Value) bool {
	v.Kind = r.peekType()

	switch v.Kind {
	case String:
		s, ok := r.decodeString()
		if !ok {
			v.Kind = Void
			return false
		}
		v.Str = s
		return true
	case Integer:
		return r.getInt(v)
	case Float:
		return r.getFloat(v)
	case Boolean:
		return r.getBool(v)
	case Null:
		return r.getNull(v)
	case Void:
		return false
	case Object, Array:
		r.subOff = r.sc.Pos()
		return true
	default:
		return false
	}
}

// SubOffset returns the byte offset at which the most recently entered
// (or most recently observed-but-not-entered) container began. It is
// informational only, never a rewind primitive.
func (r *Reader) SubOffset() int { return r.subOff }

func isDigitByte(b byte) bool { return scanner.IsDigit(b) }

func (r *Reader) getInt(v *Value) bool {
	sign := int64(1)
	if r.sc.Accept('-') {
		sign = -1
		if !isDigitByte(r.sc.Cur()) {
			r.poison(errs.ExpectedDigit, "Expected digit(s)")
			return false
		}
	}

	if r.sc.Cur() == '0' && isDigitByte(r.sc.Peek(1)) {
		r.poison(errs.LeadingZero, "Leading zero in number!")
		return false
	}

	var val int64
	for isDigitByte(r.sc.Cur()) {
		val = val*10 + int64(r.sc.Consume()-'0')
		// TODO: overflow is not detected; see design notes.
	}

	val *= sign
	v.Int = val
	v.Float = float64(val)
	return true
}

func (r *Reader) eatDigits() bool {
	if !isDigitByte(r.sc.Cur()) {
		r.poison(errs.ExpectedDigit, "Expected digit(s)")
		return false
	}
	for isDigitByte(r.sc.Cur()) {
		r.sc.Consume()
	}
	return true
}

func (r *Reader) getFloat(v *Value) bool {
	start := r.sc.Pos()

	r.sc.Accept('-')

	if r.sc.Cur() == '0' && isDigitByte(r.sc.Peek(1)) {
		r.poison(errs.LeadingZero, "Leading zero in number!")
		return false
	}

	if !r.eatDigits() {
		return false
	}

	if r.sc.Accept('.') {
		if !r.eatDigits() {
			return false
		}
	}

	if r.sc.AcceptEither('e', 'E') {
		r.sc.AcceptEither('+', '-')
		if !r.eatDigits() {
			return false
		}
	}

	end := r.sc.Pos()
	f, err := parseFloat(r.rawSlice(start, end))
	if err != nil {
		r.poison(errs.Grammar, "Invalid number")
		return false
	}

	v.Float = f
	return true
}

func (r *Reader) getBool(v *Value) bool {
	switch r.sc.Cur() {
	case 'f':
		if !r.sc.AcceptLiteral("false") {
			r.poison(errs.Grammar, "Expected 'false'")
			return false
		}
		v.Bool = false
	case 't':
		if !r.sc.AcceptLiteral("true") {
			r.poison(errs.Grammar, "Expected 'true'")
			return false
		}
		v.Bool = true
	}
	return true
}

func (r *Reader) getNull(v *Value) bool {
	if !r.sc.AcceptLiteral("null") {
		r.poison(errs.Grammar, "Expected 'null'")
		return false
	}
	return true
}

// decodeString consumes the opening '"', decodes escapes through the
// closing '"', and returns the decoded UTF-8 bytes (aliasing the Reader's
// scratch buffer).
func (r *Reader) decodeString() ([]byte, bool) {
	if !r.sc.Accept('"') {
		r.poison(errs.Grammar, "Expected '\"'")
		return nil, false
	}

	r.scratch.Reset()

	for {
		if r.sc.AtEnd() {
			r.poison(errs.Unterminated, "Unterminated string")
			return nil, false
		}

		b := r.sc.Consume()

		if b == '"' {
			return r.scratch.Bytes(), true
		}

		if b < 0x20 {
			if r.sc.AtEnd() {
				r.poison(errs.Unterminated, "Unterminated string")
			} else {
				r.poison(errs.InvalidChar, "Invalid string character 0x%02x", b)
			}
			return nil, false
		}

		if b != '\\' {
			if err := r.scratch.Add(b); err != nil {
				r.poison(errs.BufferTooShort, "%s", err.Error())
				return nil, false
			}
			continue
		}

		if r.sc.AtEnd() {
			r.poison(errs.Unterminated, "Unterminated string")
			return nil, false
		}

		esc := r.sc.Consume()
		switch esc {
		case '"', '\\', '/':
			if err := r.scratch.Add(esc); err != nil {
				r.poison(errs.BufferTooShort, "%s", err.Error())
				return nil, false
			}
		case 'b', 'f', 'n', 'r', 't':
			if err := r.scratch.Add(controlFor(esc)); err != nil {
				r.poison(errs.BufferTooShort, "%s", err.Error())
				return nil, false
			}
		case 'u':
			if !r.decodeUnicodeEscape() {
				return nil, false
			}
		default:
			r.poison(errs.InvalidEscape, "Invalid escape \\%c", esc)
			return nil, false
		}
	}
}

// controlFor maps a single-letter JSON escape to the control byte it
// represents.
func controlFor(esc byte) byte {
	switch esc {
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	default:
		return esc
	}
}

// decodeUnicodeEscape reads a \uXXXX escape (already past the 'u'),
// combining a following high/low UTF-16 surrogate pair into a single rune
// before encoding to UTF-8.
func (r *Reader) decodeUnicodeEscape() bool {
	first, ok := r.readHex4()
	if !ok {
		r.poison(errs.Grammar, "Invalid unicode escape")
		return false
	}

	ru := rune(first)

	if utf16.IsSurrogate(ru) {
		if r.sc.Cur() == '\\' && r.sc.Peek(1) == 'u' {
			save := r.sc.Pos()
			r.sc.Consume()
			r.sc.Consume()
			second, ok := r.readHex4()
			if ok {
				combined := utf16.DecodeRune(ru, rune(second))
				if combined != utf8.RuneError {
					if err := r.scratch.AddRune(combined); err != nil {
						r.poison(errs.BufferTooShort, "%s", err.Error())
						return false
					}
					return true
				}
			}
			r.sc.SetPos(save)
		}
		// Unpaired surrogate: emit the replacement character rather than
		// invalid UTF-8.
		if err := r.scratch.AddRune(utf8.RuneError); err != nil {
			r.poison(errs.BufferTooShort, "%s", err.Error())
			return false
		}
		return true
	}

	if err := r.scratch.AddRune(ru); err != nil {
		r.poison(errs.BufferTooShort, "%s", err.Error())
		return false
	}
	return true
}

func (r *Reader) readHex4() (uint32, bool) {
	var v uint32
	for i := 0; i < 4; i++ {
		h := scanner.HexVal(r.sc.Consume())
		if h < 0 {
			return 0, false
		}
		v = v<<4 | uint32(h)
	}
	return v, true
}

// rawSlice returns the raw input bytes in [start, end).
func (r *Reader) rawSlice(start, end int) []byte {
	return r.sc.Slice(start, end)
}

// decodeIDKey reads an object key into dst's id buffer. Per the observed
// contract of the original library, key bytes are copied raw: backslash
// escapes and \u sequences are NOT decoded in keys.
func (r *Reader) decodeIDKey(v *Value) bool {
	if !r.sc.Accept('"') {
		r.poison(errs.Grammar, "Expected ID string")
		return false
	}

	start := r.sc.Pos()
	for {
		if r.sc.AtEnd() {
			r.poison(errs.Unterminated, "Unterminated ID string")
			return false
		}
		if r.sc.Cur() == '"' {
			break
		}
		r.sc.Consume()
	}
	end := r.sc.Pos()
	r.sc.Consume() // closing quote

	if !v.setID(r.rawSlice(start, end)) {
		r.poison(errs.BufferTooShort, "ID string too long")
		return false
	}

	if r.sc.EatWS() {
		r.poison(errs.Unterminated, "Unexpected end")
		return false
	}
	if !r.sc.Accept(':') {
		r.poison(errs.Grammar, "Expected ':' after ID string")
		return false
	}
	r.sc.EatWS()

	return true
}

// objNext reads one "key": value member, assuming the cursor is already
// positioned at the opening quote of the key.
func (r *Reader) objNext(v *Value) bool {
	if !r.decodeIDKey(v) {
		v.Kind = Void
		return false
	}
	return r.getValue(v)
}

// skipValue decodes and discards the next value, recursing into
// containers via Skip.
func (r *Reader) skipValue() bool {
	var dummy Value
	if !r.getValue(&dummy) {
		return false
	}
	switch dummy.Kind {
	case Object:
		return r.ObjSkip() == nil
	case Array:
		return r.ArrSkip() == nil
	default:
		return true
	}
}

func (r *Reader) objPreNext(v *Value) bool {
	if r.checkEnd(v, '}') {
		return true
	}
	return r.preNext(v)
}

func (r *Reader) objNextFiltered(v *Value, f *Filter) bool {
	for {
		if !r.decodeIDKey(v) {
			v.Kind = Void
			return false
		}

		if f.keep(v.ID()) {
			return r.getValue(v)
		}

		if !r.skipValue() {
			v.Kind = Void
			return false
		}

		if r.objPreNext(v) {
			return Valid(v)
		}
	}
}

// ObjFirst opens an object (expecting '{') and reads its first member into
// v, or sets v to Void for an empty object.
func (r *Reader) ObjFirst(v *Value) bool {
	if r.checkErr(v) {
		return false
	}
	if !r.anyFirst('{') {
		v.Kind = Void
		return false
	}
	if r.checkEnd(v, '}') {
		return Valid(v)
	}
	ok := r.objNext(v)
	return ok
}

// ObjNext reads the next "key": value member of the object currently being
// iterated, or sets v to Void at the closing '}'.
func (r *Reader) ObjNext(v *Value) bool {
	if r.checkErr(v) {
		return false
	}
	if r.objPreNext(v) {
		return Valid(v)
	}
	return r.objNext(v)
}

// ObjFirstFiltered is ObjFirst with a key Filter applied to every member.
func (r *Reader) ObjFirstFiltered(v *Value, f *Filter) bool {
	if r.checkErr(v) {
		return false
	}
	if !r.anyFirst('{') {
		v.Kind = Void
		return false
	}
	if r.checkEnd(v, '}') {
		return Valid(v)
	}
	return r.objNextFiltered(v, f)
}

// ObjNextFiltered is ObjNext with a key Filter applied to every member.
func (r *Reader) ObjNextFiltered(v *Value, f *Filter) bool {
	if r.checkErr(v) {
		return false
	}
	if r.objPreNext(v) {
		return Valid(v)
	}
	return r.objNextFiltered(v, f)
}

func (r *Reader) arrNext(v *Value) bool {
	return r.getValue(v)
}

// ArrFirst opens an array (expecting '[') and reads its first element into
// v, or sets v to Void for an empty array.
func (r *Reader) ArrFirst(v *Value) bool {
	if r.checkErr(v) {
		return false
	}
	if !r.anyFirst('[') {
		v.Kind = Void
		return false
	}
	if r.checkEnd(v, ']') {
		return Valid(v)
	}
	return r.arrNext(v)
}

// ArrNext reads the next element of the array currently being iterated, or
// sets v to Void at the closing ']'.
func (r *Reader) ArrNext(v *Value) bool {
	if r.checkErr(v) {
		return false
	}
	if r.checkEnd(v, ']') {
		return Valid(v)
	}
	if r.preNext(v) {
		return Valid(v)
	}
	return r.arrNext(v)
}

func (r *Reader) checkErr(v *Value) bool {
	if r.errSet {
		v.Kind = Void
		return true
	}
	return false
}

// ObjSkip recursively consumes the whole object that starts at the cursor
// (one reported by Start or as a member value but not yet entered),
// discarding its contents. It opens the object itself with ObjFirst.
func (r *Reader) ObjSkip() error {
	var v Value
	for r.ObjFirst(&v); Valid(&v); r.ObjNext(&v) {
		switch v.Kind {
		case Object:
			if err := r.ObjSkip(); err != nil {
				return err
			}
		case Array:
			if err := r.ArrSkip(); err != nil {
				return err
			}
		}
	}
	return r.Err()
}

// ArrSkip recursively consumes the whole array that starts at the cursor
// (one reported by Start or as an element value but not yet entered),
// discarding its contents. It opens the array itself with ArrFirst.
func (r *Reader) ArrSkip() error {
	var v Value
	for r.ArrFirst(&v); Valid(&v); r.ArrNext(&v) {
		switch v.Kind {
		case Object:
			if err := r.ObjSkip(); err != nil {
				return err
			}
		case Array:
			if err := r.ArrSkip(); err != nil {
				return err
			}
		}
	}
	return r.Err()
}
