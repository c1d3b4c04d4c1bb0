package nlisp

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAtom renders an atom back to s-expression text. Strings are quoted
// and escaped for readability even though the parser itself performs no
// escape processing.
func FormatAtom(a Atom) string {
	switch a.Tag {
	case ATNil:
		return "nil"
	case ATBool:
		if a.Data.(bool) {
			return "true"
		}
		return "false"
	case ATNumber:
		return strconv.FormatFloat(float64(a.Data.(float32)), 'g', -1, 32)
	case ATString:
		return quoteString(a.Data.(string))
	case ATSymbol:
		return a.Data.(string)
	case ATUpvalue:
		ref := a.Data.(UpvalueRef)
		return fmt.Sprintf("%s@%d", ref.Name, ref.Index)
	case ATList:
		return "(" + FormatAtoms(a.Data.(List)) + ")"
	case ATError:
		return fmt.Sprintf("#<error %s>", a.Data.(VmError).Name())
	case ATClosure:
		c := a.Data.(*Closure)
		return fmt.Sprintf("#<closure/%d>", len(c.Upvalues))
	case ATNative:
		return "#<native>"
	default:
		return "#<unknown>"
	}
}

// FormatAtoms renders a sequence space-separated, the way print emits it.
func FormatAtoms(list List) string {
	parts := make([]string, len(list))
	for i, a := range list {
		parts[i] = FormatAtom(a)
	}
	return strings.Join(parts, " ")
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
