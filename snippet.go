package ujson

import (
	"fmt"
	"io"
)

// errLines is the number of preceding source lines kept in the ring buffer
// used to print a diagnostic snippet, matching the original library's
// ERR_LINES.
const errLines = 10

// WriteError writes a multi-line diagnostic snippet for the reader's
// latched error to w: up to the last errLines lines of source up to and
// including the error line, each prefixed with a 3-digit line number, a
// caret line pointing at the failing column, and the latched message.
func (r *Reader) WriteError(w io.Writer) error {
	if !r.errSet {
		return nil
	}
	r.writeSnippet(w, "Parse error")
	_, err := fmt.Fprintf(w, "%s\n", string(r.errBuf[:r.errLen]))
	return err
}

// Warn writes a non-fatal snippet at the reader's current position with a
// custom message, without poisoning the reader.
func (r *Reader) Warn(w io.Writer, format string, args ...interface{}) error {
	r.writeSnippet(w, "Warning")
	_, err := fmt.Fprintf(w, format+"\n", args...)
	return err
}

// writeSnippet walks the input from offset 0, tracking the start of each
// line in a ring buffer of the last errLines lines, stopping once it
// reaches the reader's current cursor offset.
func (r *Reader) writeSnippet(w io.Writer, kind string) {
	src := r.sc.Slice(0, r.sc.Len())
	cursor := r.sc.Pos()
	if cursor > len(src) {
		cursor = len(src)
	}

	var lineStarts [errLines]int
	lineCount := 0
	off := 0
	lastCol := cursor

	for {
		lineStarts[lineCount%errLines] = off
		lineCount++

		lineStart := off
		for off < len(src) && src[off] != '\n' {
			off++
		}

		if off >= cursor {
			lastCol = cursor - lineStart
			break
		}

		off++ // past the newline
	}

	fmt.Fprintf(w, "%s at line %d\n\n", kind, lineCount)

	n := lineCount
	if n > errLines {
		n = errLines
	}

	var lastLineStart int
	for i := n; i > 0; i-- {
		idx := (lineCount - i) % errLines
		lastLineStart = lineStarts[idx]
		fmt.Fprintf(w, "%03d: %s\n", lineCount-i+1, lineText(src, lastLineStart))
	}

	fmt.Fprint(w, "     ")
	writeCaretPadding(w, src, lastLineStart, lastCol)
	fmt.Fprint(w, "^\n")
}

// lineText returns the text of the line starting at start, up to (not
// including) the next newline or end of input.
func lineText(src []byte, start int) string {
	end := start
	for end < len(src) && src[end] != '\n' {
		end++
	}
	return string(src[start:end])
}

// writeCaretPadding writes leading whitespace that mirrors tabs in the
// error line so the caret lands on the exact column.
func writeCaretPadding(w io.Writer, src []byte, lineStart, col int) {
	for i := 0; i < col; i++ {
		if lineStart+i < len(src) && src[lineStart+i] == '\t' {
			fmt.Fprint(w, "\t")
		} else {
			fmt.Fprint(w, " ")
		}
	}
}
