package nlisp

import (
	"bytes"
	"strings"
	"testing"
)

func Test_Print_WritesResolvedValues(t *testing.T) {
	vm := NewVM()
	var buf bytes.Buffer
	vm.SetOutput(&buf)

	res := evalLast(t, vm, `(print (+ 1 2) "hi" pi)`)
	wantNil(t, res)

	got := buf.String()
	if got != "3 \"hi\" 3.1415927\n" {
		t.Fatalf("unexpected print output: %q", got)
	}
}

func Test_Printd_WritesRawParams(t *testing.T) {
	vm := NewVM()
	var buf bytes.Buffer
	vm.SetOutput(&buf)

	res := evalLast(t, vm, "(printd x (+ 1 2))")
	wantNil(t, res)

	if got := buf.String(); got != "x (+ 1 2)\n" {
		t.Fatalf("unexpected printd output: %q", got)
	}
}

func Test_Printd_ShowsUpvalueRefs(t *testing.T) {
	vm := NewVM()
	var buf bytes.Buffer
	vm.SetOutput(&buf)

	mustEval(t, vm, `
		(global show (lambda (a) (printd a)))
		(show 1)
	`)
	if got := buf.String(); !strings.Contains(got, "a@0") {
		t.Fatalf("printd should show the raw upvalue ref, got %q", got)
	}
}

func Test_Map_AppliesClosure(t *testing.T) {
	vm := NewVM()
	mustEval(t, vm, "(global twice (lambda (x) (+ x x)))")

	got := evalLast(t, vm, "(map twice (quote 1 2 3))")
	want := Lst(Num(2), Num(4), Num(6))
	if !got.Equal(want) {
		t.Fatalf("want %s, got %s", FormatAtom(want), FormatAtom(got))
	}
}

func Test_Map_AppliesNative(t *testing.T) {
	vm := NewVM()
	got := evalLast(t, vm, "(map neg (quote 1 2))")
	want := Lst(Num(-1), Num(-2))
	if !got.Equal(want) {
		t.Fatalf("want %s, got %s", FormatAtom(want), FormatAtom(got))
	}
}

func Test_Map_ListArgMayBeExpression(t *testing.T) {
	vm := NewVM()
	got := evalLast(t, vm, "(map neg (eval (+ 1 1) (+ 2 2)))")
	want := Lst(Num(-2), Num(-4))
	if !got.Equal(want) {
		t.Fatalf("want %s, got %s", FormatAtom(want), FormatAtom(got))
	}
}

func Test_Map_ReifiesPerElementErrors(t *testing.T) {
	vm := NewVM()
	mustEval(t, vm, "(global boom (lambda (x) (nosuch)))")
	got := evalLast(t, vm, "(map boom (quote 1))")
	want := Lst(ErrAtom(ErrNotAFunction))
	if !got.Equal(want) {
		t.Fatalf("want %s, got %s", FormatAtom(want), FormatAtom(got))
	}
}

func Test_Map_InvalidUsage(t *testing.T) {
	vm := NewVM()
	for _, src := range []string{
		"(map)",
		"(map neg)",
		"(map neg 1)",
		"(map 1 (quote 1))",
	} {
		_, err := vm.EvalSource(src)
		wantVmError(t, err, ErrInvalidUsage)
	}
}
