package hir

// VisibleSymbolsFromSymbol enumerates, in priority order (first = preferred), the
// declaration candidates visible from start's position: every hoisted
// symbol of each enclosing scope, then each scope's non-hoisted symbols
// that textually precede start, nearest declaration first, then ascends to
// the parent symbol's parent scope. The module root scope terminates
// traversal. Enumeration stops as soon as yield returns false, so a caller
// resolving a single name never needs a materialized candidate list.
//
// "Textually precede" is implemented as handle order: symbols are inserted
// into their arena in depth-first, left-to-right CST order, so a smaller
// SymbolHandle always denotes an earlier source position.
func VisibleSymbolsFromSymbol(m *Module, start SymbolHandle, yield func(SymbolHandle) bool) {
	scope := m.symbol(start).ParentScope
	bound := start

	for scope.IsValid() {
		sc := m.scope(scope)

		stop := false
		sc.Hoisted.Each(func(h SymbolHandle) bool {
			if !yield(h) {
				stop = true
				return false
			}
			return true
		})
		if stop {
			return
		}

		syms := sc.Symbols.Slice()
		for i := len(syms) - 1; i >= 0; i-- {
			h := syms[i]
			if h >= bound {
				continue
			}
			if !yield(h) {
				return
			}
		}

		parentSym := sc.ParentSymbol
		if !parentSym.IsValid() {
			return
		}
		bound = parentSym
		scope = m.symbol(parentSym).ParentScope
	}
}

// declName returns the name of a Decl or Fn symbol, or "" for any other
// kind (an empty name never matches a reference, per spec).
func declName(sym *Symbol) (string, bool) {
	switch k := sym.Kind.(type) {
	case *DeclSymbol:
		return k.Name, true
	case *FnSymbol:
		return k.Name, true
	default:
		return "", false
	}
}
