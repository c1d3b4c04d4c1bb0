// builtin_io.go
//
// Side-effecting primitives and list application. print/printd write to the
// VM's output writer so hosts and tests can capture them.
package nlisp

import "fmt"

// (print val1 ... valN)
//
// Resolves and evaluates the parameters, writes them space-separated on one
// line, and returns Nil.
func printFn(vm *VM, ctx *Closure, params List) (Atom, error) {
	fmt.Fprintln(vm.out, FormatAtoms(resolveParams(vm, ctx, params, true)))
	return Nil, nil
}

// (printd val1 ... valN)
//
// Writes the RAW parameters without any resolution; upvalue references and
// unresolved symbols print as-is. Debugging aid.
func printdFn(vm *VM, _ *Closure, params List) (Atom, error) {
	fmt.Fprintln(vm.out, FormatAtoms(params))
	return Nil, nil
}

// (map f list)
//
// Resolves and evaluates both parameters, then applies f (a closure or a
// native) to each element of list, collecting the results in a List. A
// per-element error is reified as an Error atom, the same recovery contract
// eval follows.
func mapFn(vm *VM, ctx *Closure, params List) (Atom, error) {
	p := resolveParams(vm, ctx, params, true)
	if len(p) < 2 || p[1].Tag != ATList {
		return Nil, ErrInvalidUsage
	}
	fn := p[0]
	if fn.Tag != ATClosure && fn.Tag != ATNative {
		return Nil, ErrInvalidUsage
	}

	elems := p[1].Data.(List)
	out := make(List, len(elems))
	for i, elem := range elems {
		res, err := vm.Evaluate(ctx, List{fn, elem})
		if err != nil {
			res = ErrAtom(toVmError(err))
		}
		out[i] = res
	}
	return Atom{Tag: ATList, Data: out}, nil
}
