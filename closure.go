// closure.go
//
// Closures capture lexical parameters as indexed upvalues instead of an
// environment chain. Compile rewrites every symbol in the code body that
// matches a declared parameter name into an UpvalueRef carrying the slot
// index; at call time the evaluator binds arguments into a fresh per-call
// frame, so a stored closure is never mutated and may be reused freely.
package nlisp

// UpvalueRef identifies a slot in the owning closure's upvalue array. The
// name is kept for diagnostics only; resolution is purely positional.
type UpvalueRef struct {
	Index int
	Name  string
}

// Closure pairs an upvalue array with a code body. A nil Upvalues slice marks
// a "thin" closure (no parameters, no rewriting pass).
type Closure struct {
	Upvalues List
	Code     List
}

// CompileThin wraps code in a closure with no upvalues.
func CompileThin(code List) *Closure {
	return &Closure{Code: code}
}

// Compile builds a closure over code with the given parameter names. Slots
// initially hold placeholder symbols named after the parameters; every symbol
// in code matching a name is rewritten to an UpvalueRef. The rewrite descends
// into nested lists uniformly, including data a later quote would treat as
// literal.
func Compile(code List, names []string) *Closure {
	if len(names) == 0 {
		return CompileThin(code)
	}

	slots := make(List, len(names))
	for i, name := range names {
		slots[i] = Sym(name)
	}

	return &Closure{
		Upvalues: slots,
		Code:     rewriteSymbols(code, names),
	}
}

func rewriteSymbols(code List, names []string) List {
	out := make(List, len(code))
	for i, a := range code {
		switch a.Tag {
		case ATSymbol:
			out[i] = a
			for idx, name := range names {
				if name == a.Data.(string) {
					out[i] = Upval(idx, name)
					break
				}
			}
		case ATList:
			out[i] = Atom{Tag: ATList, Data: rewriteSymbols(a.Data.(List), names)}
		default:
			out[i] = a
		}
	}
	return out
}

// Resolve substitutes an upvalue reference with the current slot value and
// passes every other atom through unchanged.
func (c *Closure) Resolve(a Atom) Atom {
	if a.Tag == ATUpvalue {
		return c.ResolveRef(a.Data.(UpvalueRef))
	}
	return a
}

// ResolveRef returns the slot value for ref, or Nil when the closure has no
// upvalue array or the index is out of range. The permissive fallback is part
// of the language contract.
func (c *Closure) ResolveRef(ref UpvalueRef) Atom {
	if c.Upvalues == nil || ref.Index < 0 || ref.Index >= len(c.Upvalues) {
		return Nil
	}
	return c.Upvalues[ref.Index]
}

// bind allocates the per-call frame: a copy of the closure whose upvalue
// slots are seeded from the stored slots and overwritten positionally with
// the given arguments. Arguments beyond the slot count are ignored; missing
// arguments leave the placeholder in the slot. Thin closures have no slots to
// bind and are returned as-is.
func (c *Closure) bind(args List) *Closure {
	if c.Upvalues == nil {
		return c
	}

	slots := make(List, len(c.Upvalues))
	copy(slots, c.Upvalues)
	for i := range slots {
		if i < len(args) {
			slots[i] = args[i]
		}
	}

	return &Closure{Upvalues: slots, Code: c.Code}
}
