// vm.go
//
// The evaluator. A VM owns the global symbol table (the only persistent
// state) and evaluates call lists by resolving the head to a callable and
// dispatching. Arguments are passed to callees RAW — unevaluated — and every
// primitive applies its own resolution policy; this is how if/quote/lambda
// get special-form semantics without a macro system.
//
// The VM is single-threaded: evaluation is synchronous and recursive, and no
// concurrent access to a VM instance is supported. Recursion is bounded by an
// explicit call-depth counter rather than the host stack.
package nlisp

import (
	"io"
	"os"
)

// Version of the nlisp runtime.
const Version = "0.1.0"

// VmError enumerates evaluation failures. The first error raised while
// processing sibling expressions aborts the enclosing call; the eval
// primitive is the one recovery boundary, reifying these as Error atoms.
type VmError int

const (
	ErrNonEvaluable VmError = iota
	ErrNotAFunction
	ErrInvalidUsage
	ErrNotASymbol
	ErrDepthExceeded
)

func (e VmError) Error() string {
	switch e {
	case ErrNonEvaluable:
		return "empty call is not evaluable"
	case ErrNotAFunction:
		return "head does not resolve to a function"
	case ErrInvalidUsage:
		return "invalid usage of primitive"
	case ErrNotASymbol:
		return "expected a symbol"
	case ErrDepthExceeded:
		return "call depth exceeded"
	default:
		return "unknown evaluation error"
	}
}

// Name returns the bare kind name used in type strings (Error:<Name>).
func (e VmError) Name() string {
	switch e {
	case ErrNonEvaluable:
		return "NonEvaluable"
	case ErrNotAFunction:
		return "NotAFunction"
	case ErrInvalidUsage:
		return "InvalidUsage"
	case ErrNotASymbol:
		return "NotASymbol"
	case ErrDepthExceeded:
		return "DepthExceeded"
	default:
		return "Unknown"
	}
}

// NativeFun is a builtin callable. It receives the VM, the calling closure
// context, and the RAW parameter atoms; argument resolution and evaluation
// are entirely its own responsibility.
type NativeFun func(vm *VM, ctx *Closure, params List) (Atom, error)

// DefaultMaxDepth bounds nested Evaluate calls before ErrDepthExceeded.
const DefaultMaxDepth = 4096

// VM holds the global symbol table for one interpretation session.
type VM struct {
	globals  map[string]Atom
	out      io.Writer
	depth    int
	maxDepth int
}

// NewVM builds a VM with the constants and native primitives installed.
func NewVM() *VM {
	vm := &VM{
		globals:  make(map[string]Atom),
		out:      os.Stdout,
		maxDepth: DefaultMaxDepth,
	}

	vm.AddGlobal("pi", Num(3.14159265))
	vm.AddGlobal("true", Bool(true))
	vm.AddGlobal("false", Bool(false))
	vm.AddGlobal("nil", Nil)

	vm.AddGlobal("print", NativeVal(printFn))
	vm.AddGlobal("printd", NativeVal(printdFn))
	vm.AddGlobal("if", NativeVal(ifFn))
	vm.AddGlobal("lambda", NativeVal(lambdaFn))
	vm.AddGlobal("quote", NativeVal(quoteFn))
	vm.AddGlobal("type", NativeVal(typeFn))
	vm.AddGlobal("global", NativeVal(globalFn))
	vm.AddGlobal("resolve", NativeVal(resolveFn))
	vm.AddGlobal("eval", NativeVal(evalFn))
	vm.AddGlobal("map", NativeVal(mapFn))

	vm.AddGlobal("+", NativeVal(sumFn))
	vm.AddGlobal("*", NativeVal(productFn))
	vm.AddGlobal("=", NativeVal(eqFn))
	vm.AddGlobal("neg", NativeVal(negFn))

	return vm
}

// AddGlobal binds name to value in the global table, replacing any previous
// binding.
func (vm *VM) AddGlobal(name string, value Atom) {
	vm.globals[name] = value
}

// Lookup returns the global bound to name, if any.
func (vm *VM) Lookup(name string) (Atom, bool) {
	a, ok := vm.globals[name]
	return a, ok
}

// SetOutput redirects the writer used by print/printd (default os.Stdout).
func (vm *VM) SetOutput(w io.Writer) { vm.out = w }

// SetMaxDepth adjusts the call-depth limit.
func (vm *VM) SetMaxDepth(n int) { vm.maxDepth = n }

// Evaluate evaluates a call list in the given closure context.
//
// The head is resolved against the global table when it is a symbol; an
// unresolved symbol is not an error here, only at dispatch. A closure head
// gets a fresh binding frame with the raw parameters bound positionally and
// its body evaluated in that frame; a native head is invoked with the raw
// parameters; anything else is ErrNotAFunction.
func (vm *VM) Evaluate(ctx *Closure, list List) (Atom, error) {
	if len(list) == 0 {
		return Nil, ErrNonEvaluable
	}
	if vm.depth >= vm.maxDepth {
		return Nil, ErrDepthExceeded
	}
	vm.depth++
	defer func() { vm.depth-- }()

	head, params := list[0], list[1:]
	if head.Tag == ATSymbol {
		if resolved, ok := vm.Lookup(head.Data.(string)); ok {
			head = resolved
		}
	}

	switch head.Tag {
	case ATClosure:
		frame := head.Data.(*Closure).bind(params)
		return vm.Evaluate(frame, frame.Code)
	case ATNative:
		return head.Data.(NativeFun)(vm, ctx, params)
	default:
		return Nil, ErrNotAFunction
	}
}

// EvalSource parses src and evaluates each top-level List form against a thin
// root closure, returning one result atom per form. Non-List top-level atoms
// pass through unevaluated. The first error aborts the session and is
// returned alongside the results produced so far.
func (vm *VM) EvalSource(src string) ([]Atom, error) {
	forms, err := Parse(src)
	if err != nil {
		return nil, err
	}

	root := CompileThin(nil)
	results := make([]Atom, 0, len(forms))

	for _, form := range forms {
		if form.Tag != ATList {
			results = append(results, form)
			continue
		}
		res, err := vm.Evaluate(root, form.Data.(List))
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	return results, nil
}
