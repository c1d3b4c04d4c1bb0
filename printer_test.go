package nlisp

import (
	"strings"
	"testing"
)

func Test_FormatAtom_Scalars(t *testing.T) {
	cases := []struct {
		a    Atom
		want string
	}{
		{Nil, "nil"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Num(3), "3"},
		{Num(-4.5), "-4.5"},
		{Sym("lambda"), "lambda"},
		{Str("hi"), `"hi"`},
		{Upval(1, "n"), "n@1"},
		{ErrAtom(ErrNotAFunction), "#<error NotAFunction>"},
		{NativeVal(sumFn), "#<native>"},
	}
	for _, c := range cases {
		if got := FormatAtom(c.a); got != c.want {
			t.Fatalf("want %q, got %q", c.want, got)
		}
	}
}

func Test_FormatAtom_Lists(t *testing.T) {
	a := Lst(Sym("+"), Num(1), Lst(Sym("neg"), Num(2)))
	if got := FormatAtom(a); got != "(+ 1 (neg 2))" {
		t.Fatalf("unexpected list rendering: %q", got)
	}
	if got := FormatAtom(Lst()); got != "()" {
		t.Fatalf("unexpected empty list rendering: %q", got)
	}
}

func Test_FormatAtom_Closures(t *testing.T) {
	thin := ClosureVal(CompileThin(List{Sym("x")}))
	if got := FormatAtom(thin); got != "#<closure/0>" {
		t.Fatalf("unexpected thin closure rendering: %q", got)
	}
	c := ClosureVal(Compile(List{Sym("x")}, []string{"x", "y"}))
	if got := FormatAtom(c); got != "#<closure/2>" {
		t.Fatalf("unexpected closure rendering: %q", got)
	}
}

func Test_FormatAtom_StringEscapes(t *testing.T) {
	got := FormatAtom(Str("a\"b\nc\\"))
	if got != `"a\"b\nc\\"` {
		t.Fatalf("unexpected escaping: %q", got)
	}
}

func Test_FormatAtoms_SpaceSeparated(t *testing.T) {
	got := FormatAtoms(List{Num(1), Sym("a"), Str("s")})
	if got != `1 a "s"` {
		t.Fatalf("unexpected rendering: %q", got)
	}
	if FormatAtoms(nil) != "" {
		t.Fatalf("empty sequence should render empty")
	}
}

func Test_FormatAtom_RoundTripsThroughParse(t *testing.T) {
	src := `(a (b 1 2.5) "s" nil)`
	forms := mustParse(t, src)
	rendered := FormatAtom(forms[0])
	again := mustParse(t, rendered)
	if !forms[0].Equal(again[0]) {
		t.Fatalf("render/parse round trip changed the tree: %q vs %q",
			src, rendered)
	}
	if !strings.Contains(rendered, `"s"`) {
		t.Fatalf("string literal lost in rendering: %q", rendered)
	}
}
