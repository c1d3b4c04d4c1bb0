// errors.go: user-facing error wrapping and caret-snippet rendering
//
// Turns a *ParseError into a readable snippet with a caret pointing at the
// offending column:
//
//	PARSE ERROR at 2:6: unterminated string starting at offset 12
//
//	   1 | (global x 5)
//	   2 | (abc "de
//	     |      ^
//
// The snippet shows up to one line of context before and after the error.
// Errors of any other type are returned unchanged. This utility is
// independent of the VM and can be used anywhere parse errors are surfaced.
package nlisp

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// WrapErrorWithSource returns err augmented with a caret-annotated snippet of
// src when err is a *ParseError; any other error is returned as-is.
func WrapErrorWithSource(err error, src string) error {
	pe, ok := err.(*ParseError)
	if !ok {
		return err
	}
	line, col := lineCol(src, pe.Pos)
	return fmt.Errorf("%s", prettyErrorString(src, "PARSE ERROR", line, col, pe.Error()))
}

// lineCol converts a byte offset into 1-based line and rune-column numbers,
// clamping the offset to the source bounds.
func lineCol(src string, pos int) (int, int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(src) {
		pos = len(src)
	}

	line := 1
	lineStart := 0
	for i := 0; i < pos; i++ {
		if src[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	col := utf8.RuneCountInString(src[lineStart:pos]) + 1
	return line, col
}

func prettyErrorString(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
