// atom.go
//
// The runtime value model. A single tagged struct represents both syntax and
// runtime values: the parser produces Atom trees, the evaluator consumes and
// returns them. The Tag determines which Go type Data holds (see AtomTag).
package nlisp

// AtomTag enumerates all kinds an Atom may hold.
// The tag determines which type of Atom.Data is valid.
type AtomTag int

const (
	ATNil     AtomTag = iota // no payload
	ATSymbol                 // string (symbol name)
	ATNumber                 // float32
	ATString                 // string
	ATList                   // List
	ATBool                   // bool
	ATError                  // VmError
	ATUpvalue                // UpvalueRef
	ATClosure                // *Closure
	ATNative                 // NativeFun
)

// Atom is the universal value carrier. Lists are immutable once built; the
// evaluator never rewrites an Atom in place.
type Atom struct {
	Tag  AtomTag
	Data interface{}
}

// List is an ordered sequence of atoms. The same shape serves as source tree,
// call expression, closure body and runtime value.
type List = []Atom

// Nil is the singleton nil Atom.
var Nil = Atom{Tag: ATNil}

// Constructors.
func Sym(name string) Atom   { return Atom{Tag: ATSymbol, Data: name} }
func Num(n float32) Atom     { return Atom{Tag: ATNumber, Data: n} }
func Str(s string) Atom      { return Atom{Tag: ATString, Data: s} }
func Lst(items ...Atom) Atom { return Atom{Tag: ATList, Data: List(items)} }
func Bool(b bool) Atom       { return Atom{Tag: ATBool, Data: b} }
func ErrAtom(e VmError) Atom { return Atom{Tag: ATError, Data: e} }

func Upval(i int, name string) Atom {
	return Atom{Tag: ATUpvalue, Data: UpvalueRef{Index: i, Name: name}}
}

func ClosureVal(c *Closure) Atom { return Atom{Tag: ATClosure, Data: c} }
func NativeVal(f NativeFun) Atom { return Atom{Tag: ATNative, Data: f} }

// Equal reports structural equality between two atoms.
//
// Equality is per-variant: symbols and strings compare by text, numbers by
// value, lists elementwise, closures by upvalue slots and code. Two Native
// atoms are ALWAYS equal regardless of which builtin they refer to; this
// coarse contract is deliberate and relied upon by `=`.
func (a Atom) Equal(b Atom) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case ATSymbol, ATString:
		return a.Data.(string) == b.Data.(string)
	case ATNumber:
		return a.Data.(float32) == b.Data.(float32)
	case ATBool:
		return a.Data.(bool) == b.Data.(bool)
	case ATError:
		return a.Data.(VmError) == b.Data.(VmError)
	case ATUpvalue:
		return a.Data.(UpvalueRef) == b.Data.(UpvalueRef)
	case ATList:
		return equalLists(a.Data.(List), b.Data.(List))
	case ATClosure:
		ca, cb := a.Data.(*Closure), b.Data.(*Closure)
		return equalLists(ca.Upvalues, cb.Upvalues) && equalLists(ca.Code, cb.Code)
	case ATNative:
		return true
	default: // ATNil
		return true
	}
}

func equalLists(a, b List) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// TypeName returns the user-visible type string for an atom, as reported by
// the `type` primitive. Error atoms carry their kind in the name.
func (a Atom) TypeName() string {
	switch a.Tag {
	case ATSymbol:
		return "Symbol"
	case ATNumber:
		return "Number"
	case ATString:
		return "String"
	case ATList:
		return "List"
	case ATBool:
		return "Bool"
	case ATNil:
		return "Nil"
	case ATUpvalue:
		return "Upvalue"
	case ATClosure:
		return "Closure"
	case ATNative:
		return "NativeFunction"
	case ATError:
		return "Error:" + a.Data.(VmError).Name()
	default:
		return "Unknown"
	}
}

// String renders the atom as s-expression text (see printer.go).
func (a Atom) String() string { return FormatAtom(a) }
