// builtin_core.go
//
// Control flow and environment primitives, plus the argument-resolution
// helpers shared by the whole primitive library. Each primitive decides for
// itself how far to take its raw parameters:
//
//   - resolveParams substitutes upvalues from the calling context and symbols
//     from the global table; with evaluateEach set it additionally evaluates
//     nested lists (reifying their errors as Error atoms).
//   - evalParam goes one step further for a single atom: lists are evaluated
//     as calls, symbols and upvalues are resolved, everything else passes
//     through.
package nlisp

// resolveUpvalues substitutes upvalue references against ctx, descending into
// nested lists when recursive is set. Symbols are left alone; this is the
// capture pass lambda runs over a body so nested closures see the outer
// closure's bound values.
func resolveUpvalues(ctx *Closure, list List, recursive bool) List {
	out := make(List, len(list))
	for i, a := range list {
		if a.Tag == ATList && recursive {
			out[i] = Atom{Tag: ATList, Data: resolveUpvalues(ctx, a.Data.(List), true)}
			continue
		}
		out[i] = ctx.Resolve(a)
	}
	return out
}

// resolveParams resolves each parameter atom: upvalues via the calling
// context, symbols via the global table (unresolved symbols stay symbols).
// When evaluateEach is set, nested lists are resolved recursively and then
// evaluated as calls, with evaluation errors reified as Error atoms.
func resolveParams(vm *VM, ctx *Closure, params List, evaluateEach bool) List {
	out := make(List, len(params))
	for i, a := range params {
		switch {
		case a.Tag == ATList && evaluateEach:
			sub := resolveParams(vm, ctx, a.Data.(List), true)
			res, err := vm.Evaluate(ctx, sub)
			if err != nil {
				res = ErrAtom(toVmError(err))
			}
			out[i] = res

		case a.Tag == ATUpvalue:
			out[i] = ctx.ResolveRef(a.Data.(UpvalueRef))

		case a.Tag == ATSymbol:
			if g, ok := vm.Lookup(a.Data.(string)); ok {
				out[i] = g
			} else {
				out[i] = a
			}

		default:
			out[i] = a
		}
	}
	return out
}

// evalParam resolves or evaluates a single atom depending on its kind:
// lists are evaluated as calls, symbols and upvalues are resolved, anything
// else is returned as-is.
func evalParam(vm *VM, ctx *Closure, a Atom) (Atom, error) {
	switch a.Tag {
	case ATList:
		resolved := resolveParams(vm, ctx, a.Data.(List), false)
		return vm.Evaluate(ctx, resolved)
	case ATSymbol:
		if g, ok := vm.Lookup(a.Data.(string)); ok {
			return g, nil
		}
		return a, nil
	case ATUpvalue:
		return ctx.ResolveRef(a.Data.(UpvalueRef)), nil
	default:
		return a, nil
	}
}

func toVmError(err error) VmError {
	if ve, ok := err.(VmError); ok {
		return ve
	}
	return ErrInvalidUsage
}

// (if cond then else?)
//
// Evaluates only the condition and the selected branch. Bool(false) and Nil
// are falsy, everything else is truthy. A missing branch yields Nil.
func ifFn(vm *VM, ctx *Closure, params List) (Atom, error) {
	if len(params) == 0 {
		return Nil, ErrInvalidUsage
	}

	cond, err := evalParam(vm, ctx, params[0])
	if err != nil {
		return Nil, err
	}

	truthy := true
	if cond.Tag == ATNil || (cond.Tag == ATBool && !cond.Data.(bool)) {
		truthy = false
	}

	idx := 1
	if !truthy {
		idx = 2
	}
	if idx >= len(params) {
		return Nil, nil
	}
	return evalParam(vm, ctx, params[idx])
}

// (lambda (name...) (body...))
//
// Builds a closure. The first parameter must resolve to a List of symbols
// (the upvalue names), the second to a List (the body). The body is first
// resolved against the CURRENT context so nested closures capture the outer
// closure's bound upvalues, then compiled over the declared names.
func lambdaFn(vm *VM, ctx *Closure, params List) (Atom, error) {
	p := resolveParams(vm, ctx, params, false)
	if len(p) < 2 || p[0].Tag != ATList || p[1].Tag != ATList {
		return Nil, ErrInvalidUsage
	}

	decls := p[0].Data.(List)
	names := make([]string, len(decls))
	for i, d := range decls {
		if d.Tag != ATSymbol {
			return Nil, ErrInvalidUsage
		}
		names[i] = d.Data.(string)
	}

	body := resolveUpvalues(ctx, p[1].Data.(List), true)
	return ClosureVal(Compile(body, names)), nil
}

// (quote ...)
//
// Returns the raw parameters as a List, with no resolution or evaluation.
func quoteFn(_ *VM, _ *Closure, params List) (Atom, error) {
	out := make(List, len(params))
	copy(out, params)
	return Atom{Tag: ATList, Data: out}, nil
}

// (global symbol value)
//
// Binds the evaluated value into the global table. The first parameter must
// be a symbol, directly or through an upvalue reference.
func globalFn(vm *VM, ctx *Closure, params List) (Atom, error) {
	var name string
	switch {
	case len(params) > 0 && params[0].Tag == ATSymbol:
		name = params[0].Data.(string)
	case len(params) > 0 && params[0].Tag == ATUpvalue:
		resolved := ctx.ResolveRef(params[0].Data.(UpvalueRef))
		if resolved.Tag != ATSymbol {
			return Nil, ErrNotASymbol
		}
		name = resolved.Data.(string)
	default:
		return Nil, ErrNotASymbol
	}

	if len(params) < 2 {
		return Nil, ErrInvalidUsage
	}

	value, err := evalParam(vm, ctx, params[1])
	if err != nil {
		return Nil, err
	}

	vm.AddGlobal(name, value)
	return Nil, nil
}

// (eval (expr1) (expr2) ... (exprN))
//
// Evaluates each parameter as a call and returns the results as a List.
// Every parameter must already be a List. A per-element error is reified as
// an Error atom in the result instead of aborting the whole call; eval is
// the language's one recovery boundary.
func evalFn(vm *VM, ctx *Closure, params List) (Atom, error) {
	for _, a := range params {
		if a.Tag != ATList {
			return Nil, ErrInvalidUsage
		}
	}

	out := make(List, len(params))
	for i, a := range params {
		res, err := vm.Evaluate(ctx, a.Data.(List))
		if err != nil {
			res = ErrAtom(toVmError(err))
		}
		out[i] = res
	}
	return Atom{Tag: ATList, Data: out}, nil
}

// (type val1 ... valN)
//
// Resolves (without evaluating) each parameter and returns a List of type
// name Strings.
func typeFn(vm *VM, ctx *Closure, params List) (Atom, error) {
	resolved := resolveParams(vm, ctx, params, false)
	out := make(List, len(resolved))
	for i, a := range resolved {
		out[i] = Str(a.TypeName())
	}
	return Atom{Tag: ATList, Data: out}, nil
}

// (resolve val1 ... valN)
//
// Returns the parameters with upvalues and symbols resolved, as a List.
func resolveFn(vm *VM, ctx *Closure, params List) (Atom, error) {
	return Atom{Tag: ATList, Data: resolveParams(vm, ctx, params, false)}, nil
}
