// Package linenum adds line numbers to markdown source, either as a pure
// text transform applied before parsing or as a streaming formatter
// interleaved with rendered output.
package linenum

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Separator is the glyph between a line number and the line content.
const Separator = "│"

// Annotate prefixes every line of text with its 1-based line number,
// right-aligned to the decimal width of the total line count, followed by the
// separator glyph and a space.
//
// An empty document yields an empty result. The column width has a floor of
// one digit, which only matters for the degenerate zero-line case where no
// prefix is emitted anyway.
func Annotate(text string) string {
	lines := splitLines(text)
	if len(lines) == 0 {
		return ""
	}

	width := numberWidth(len(lines))

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = fmt.Sprintf("%*d %s %s", width, i+1, Separator, line)
	}
	return strings.Join(out, "\n")
}

// Formatter emits line-number prefixes interleaved with rendering output.
//
// The cursor starts at zero and advances on every WriteLineNumber call. A
// Formatter serves exactly one document render and is never reset.
type Formatter struct {
	currentLine     int
	showLineNumbers bool
	lineNumberWidth int
}

// NewFormatter creates a formatter for a document with the given total line
// count. When show is false the formatter emits nothing but newlines.
func NewFormatter(show bool, totalLines int) *Formatter {
	width := 0
	if show {
		width = numberWidth(totalLines)
	}
	return &Formatter{
		showLineNumbers: show,
		lineNumberWidth: width,
	}
}

// WriteLineNumber advances the cursor and, if line numbers are enabled,
// writes the right-aligned number, separator, and a space.
func (f *Formatter) WriteLineNumber(w io.Writer) error {
	if !f.showLineNumbers {
		return nil
	}
	f.currentLine++
	_, err := fmt.Fprintf(w, "%*d %s ", f.lineNumberWidth, f.currentLine, Separator)
	return err
}

// WriteNewline terminates the current line.
func (f *Formatter) WriteNewline(w io.Writer) error {
	_, err := io.WriteString(w, "\n")
	return err
}

// CurrentLine reports how many line numbers have been written.
func (f *Formatter) CurrentLine() int {
	return f.currentLine
}

// numberWidth is the decimal digit width of n, with a floor of one.
func numberWidth(n int) int {
	if n < 1 {
		return 1
	}
	return len(strconv.Itoa(n))
}

// splitLines splits text into lines the way the line counter does: a
// trailing newline does not produce an extra empty line, and a trailing
// carriage return is stripped from each line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
