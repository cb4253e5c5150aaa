// Package source holds the original source lines of a decode-bin program
// and knows how to render the underline markers and multi-line ranges used
// by the diagnostic subsystem (spec §6's "Diagnostic rendering format").
package source

import (
	"fmt"
	"strings"

	"github.com/Earthcomputer/decode-bin/lang/token"
)

// Buffer holds the original source split into lines, trailing newlines
// stripped, the way the tokenizer consumes it (spec §4.1: "ordered sequence
// of source lines").
type Buffer struct {
	Name  string
	Lines []string
}

// NewBuffer splits text into lines, stripping trailing '\r' so that files
// with CRLF line endings render cleanly.
func NewBuffer(name, text string) *Buffer {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return &Buffer{Name: name, Lines: lines}
}

// Line returns the 1-based line, or "" if out of range.
func (b *Buffer) Line(n uint32) string {
	i := int(n) - 1
	if i < 0 || i >= len(b.Lines) {
		return ""
	}
	return b.Lines[i]
}

// Range renders the source range spanned by [begin, end] (inclusive on both
// ends) as one or more lines of source followed by a caret-underline line,
// per spec §6:
//
//	for the failing node, one line containing the source line, one line
//	containing carets under the node's range; for a multi-line range, the
//	first line with carets to end, an "... N line(s) omitted" marker, and
//	the last line with carets to the end-column.
func (b *Buffer) Range(begin, end token.Token) string {
	var sb strings.Builder
	if begin.Line == end.Line {
		line := b.Line(begin.Line)
		sb.WriteString(line)
		sb.WriteByte('\n')
		writeCarets(&sb, line, int(begin.Col), int(end.EndCol()))
		return sb.String()
	}

	firstLine := b.Line(begin.Line)
	sb.WriteString(firstLine)
	sb.WriteByte('\n')
	writeCarets(&sb, firstLine, int(begin.Col), len([]rune(firstLine)))

	if omitted := end.Line - begin.Line - 1; omitted > 0 {
		fmt.Fprintf(&sb, "... %d line(s) omitted\n", omitted)
	}

	lastLine := b.Line(end.Line)
	sb.WriteString(lastLine)
	sb.WriteByte('\n')
	writeCarets(&sb, lastLine, 0, int(end.EndCol()))
	return sb.String()
}

// writeCarets appends a line of spaces up to from, carets from from to to
// (exclusive), then a newline.
func writeCarets(sb *strings.Builder, line string, from, to int) {
	runes := []rune(line)
	width := to
	if width > len(runes) {
		width = len(runes)
	}
	for i := 0; i < from; i++ {
		sb.WriteByte(' ')
	}
	for i := from; i < width; i++ {
		sb.WriteByte('^')
	}
	if to > width {
		// range extends past the end of the rendered line (e.g. synthetic EOF).
		for i := width; i < to; i++ {
			sb.WriteByte('^')
		}
	}
	sb.WriteByte('\n')
}
