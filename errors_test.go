package nlisp

import (
	"errors"
	"strings"
	"testing"
)

func Test_WrapErrorWithSource_CaretSnippet(t *testing.T) {
	src := "(global x 5)\nabc \x01"
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("want parse error")
	}

	wrapped := WrapErrorWithSource(err, src)
	msg := wrapped.Error()

	if !strings.HasPrefix(msg, "PARSE ERROR at 2:5:") {
		t.Fatalf("unexpected header: %q", msg)
	}
	if !strings.Contains(msg, "   1 | (global x 5)") {
		t.Fatalf("missing context line: %q", msg)
	}
	if !strings.Contains(msg, "     |     ^") {
		t.Fatalf("caret misplaced: %q", msg)
	}
}

func Test_WrapErrorWithSource_UnterminatedList(t *testing.T) {
	src := "(+ 1\n   2"
	_, err := Parse(src)
	wrapped := WrapErrorWithSource(err, src)
	// The open paren is where the unterminated list starts.
	if !strings.HasPrefix(wrapped.Error(), "PARSE ERROR at 1:1:") {
		t.Fatalf("unexpected header: %q", wrapped.Error())
	}
}

func Test_WrapErrorWithSource_FirstLine(t *testing.T) {
	src := "\x01"
	_, err := Parse(src)
	wrapped := WrapErrorWithSource(err, src)
	if !strings.HasPrefix(wrapped.Error(), "PARSE ERROR at 1:1:") {
		t.Fatalf("unexpected header: %q", wrapped.Error())
	}
}

func Test_WrapErrorWithSource_PassesOtherErrorsThrough(t *testing.T) {
	sentinel := errors.New("unrelated")
	if got := WrapErrorWithSource(sentinel, "src"); got != sentinel {
		t.Fatalf("non-parse errors must pass through unchanged")
	}
	if got := WrapErrorWithSource(ErrNotAFunction, "src"); got != error(ErrNotAFunction) {
		t.Fatalf("vm errors must pass through unchanged")
	}
}

func Test_LineCol_Clamping(t *testing.T) {
	line, col := lineCol("ab\ncd", 4)
	if line != 2 || col != 2 {
		t.Fatalf("want 2:2, got %d:%d", line, col)
	}
	line, col = lineCol("ab", 99)
	if line != 1 || col != 3 {
		t.Fatalf("want 1:3, got %d:%d", line, col)
	}
	line, col = lineCol("ab", -1)
	if line != 1 || col != 1 {
		t.Fatalf("want 1:1, got %d:%d", line, col)
	}
}
