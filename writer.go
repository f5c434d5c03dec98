package ujson

import (
	"fmt"
	"strconv"

	"github.com/go-ujson/ujson/internal/errs"
)

// maxWriterDepth bounds the writer's two per-depth bitmaps, mirroring the
// reader's DefaultMaxDepth.
const maxWriterDepth = DefaultMaxDepth

// Sink is anything a Writer can emit bytes into. io.Writer satisfies it
// directly.
type Sink interface {
	Write(p []byte) (int, error)
}

// Writer emits well-formed JSON into a caller-supplied Sink. It tracks, per
// nesting depth, whether the open container is an array or an object and
// whether the next element is the first (so no preceding comma is
// emitted). Once poisoned, every subsequent operation is a no-op that
// returns a non-nil error.
type Writer struct {
	sink Sink

	depth      int
	isObject   [maxWriterDepth]bool
	firstAtLvl [maxWriterDepth]bool

	errSet bool
	err    error

	warn func(line string)
}

// NewWriter creates a Writer that emits onto sink.
func NewWriter(sink Sink) *Writer {
	return &Writer{sink: sink}
}

// SetWarnHandler installs a callback used to report non-fatal diagnostics,
// e.g. from Finish. The default handler discards warnings.
func (w *Writer) SetWarnHandler(fn func(line string)) { w.warn = fn }

// IsErr reports whether the writer has been poisoned.
func (w *Writer) IsErr() bool { return w.errSet }

func (w *Writer) poison(kind errs.Kind, format string, args ...interface{}) bool {
	if w.errSet {
		return false
	}
	w.err = errs.New(kind, format, args...)
	w.errSet = true
	return false
}

func (w *Writer) write(s string) bool {
	if _, err := w.sink.Write([]byte(s)); err != nil {
		w.poison(errs.Grammar, "write failed: %s", err.Error())
		return false
	}
	return true
}

// preValue emits the comma and (for an object) the quoted key expected
// before any value or container-open, and flips firstAtLvl false.
func (w *Writer) preValue(id string) bool {
	if w.depth > 0 {
		if !w.firstAtLvl[w.depth-1] {
			if !w.write(",") {
				return false
			}
		}
		w.firstAtLvl[w.depth-1] = false

		if w.isObject[w.depth-1] {
			if !w.writeString(id) {
				return false
			}
			if !w.write(":") {
				return false
			}
		}
	}
	return true
}

func (w *Writer) open(b byte, isObject bool, id string) bool {
	if w.errSet {
		return false
	}
	if !w.preValue(id) {
		return false
	}
	if w.depth >= maxWriterDepth {
		return w.poison(errs.TooDeep, "Recursion too deep")
	}
	if !w.write(string(b)) {
		return false
	}
	w.isObject[w.depth] = isObject
	w.firstAtLvl[w.depth] = true
	w.depth++
	return true
}

func (w *Writer) close(b byte, isObject bool) bool {
	if w.errSet {
		return false
	}
	if w.depth == 0 || w.isObject[w.depth-1] != isObject {
		return w.poison(errs.Grammar, "Expected '%c'", b)
	}
	w.depth--
	return w.write(string(b))
}

// ObjStart opens a JSON object, keyed by id if the writer is currently
// inside an object (id is ignored when inside an array or at the top
// level).
func (w *Writer) ObjStart(id string) error {
	w.open('{', true, id)
	return w.Err()
}

// ObjFinish closes the most recently opened object.
func (w *Writer) ObjFinish() error {
	w.close('}', true)
	return w.Err()
}

// ArrStart opens a JSON array, keyed by id if the writer is currently
// inside an object.
func (w *Writer) ArrStart(id string) error {
	w.open('[', false, id)
	return w.Err()
}

// ArrFinish closes the most recently opened array.
func (w *Writer) ArrFinish() error {
	w.close(']', false)
	return w.Err()
}

func (w *Writer) addValue(id string, lit string) error {
	if w.errSet {
		return w.Err()
	}
	if !w.preValue(id) {
		return w.Err()
	}
	w.write(lit)
	return w.Err()
}

// IntAdd adds an integer value, keyed by id inside an object.
func (w *Writer) IntAdd(id string, val int64) error {
	return w.addValue(id, strconv.FormatInt(val, 10))
}

// FloatAdd adds a floating point value, keyed by id inside an object.
func (w *Writer) FloatAdd(id string, val float64) error {
	return w.addValue(id, strconv.FormatFloat(val, 'g', -1, 64))
}

// BoolAdd adds a boolean value, keyed by id inside an object.
func (w *Writer) BoolAdd(id string, val bool) error {
	if val {
		return w.addValue(id, "true")
	}
	return w.addValue(id, "false")
}

// NullAdd adds a null value, keyed by id inside an object.
func (w *Writer) NullAdd(id string) error {
	return w.addValue(id, "null")
}

// StrAdd adds a string value, keyed by id inside an object.
func (w *Writer) StrAdd(id string, s string) error {
	if w.errSet {
		return w.Err()
	}
	if !w.preValue(id) {
		return w.Err()
	}
	w.writeString(s)
	return w.Err()
}

// writeString emits s as a quoted, escaped JSON string literal, mirroring
// the reverse of the reader's escape table.
func (w *Writer) writeString(s string) bool {
	if !w.write(`"`) {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			if !w.write(`\"`) {
				return false
			}
		case '\\':
			if !w.write(`\\`) {
				return false
			}
		case '\b':
			if !w.write(`\b`) {
				return false
			}
		case '\f':
			if !w.write(`\f`) {
				return false
			}
		case '\n':
			if !w.write(`\n`) {
				return false
			}
		case '\r':
			if !w.write(`\r`) {
				return false
			}
		case '\t':
			if !w.write(`\t`) {
				return false
			}
		default:
			if c < 0x20 {
				if !w.write(fmt.Sprintf(`\u%04x`, c)) {
					return false
				}
				continue
			}
			if _, err := w.sink.Write([]byte{c}); err != nil {
				w.poison(errs.Grammar, "write failed: %s", err.Error())
				return false
			}
		}
	}
	return w.write(`"`)
}

// Err returns the latched error, or nil if the writer is clean.
func (w *Writer) Err() error {
	if !w.errSet {
		return nil
	}
	return w.err
}

// Finish reports any latched error through the writer's warning handler
// and returns the cumulative status.
func (w *Writer) Finish() error {
	if w.depth != 0 && !w.errSet {
		w.poison(errs.Grammar, "Unbalanced container at close")
	}
	if w.errSet && w.warn != nil {
		w.warn(fmt.Sprintf("Warning: %s", w.err.Error()))
	}
	return w.Err()
}
