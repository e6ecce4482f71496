package hir

// ResolveReferences runs name resolution over m, binding every Reference
// symbol to the first Decl or Fn declaration sharing its name in
// VisibleSymbolsFromSymbol's priority order (within each scope, hoisted
// symbols before the preceding non-hoisted ones), or leaving it unresolved.
// It is idempotent: running it twice yields the same targets, since visibility is recomputed from scratch and only ever reads
// arena state that resolution itself does not mutate (ParentScope,
// Symbols/Hoisted membership, and declaration names are all fixed by the
// builder).
func ResolveReferences(m *Module) {
	m.Symbols.Each(func(h uint32, _ Symbol) bool {
		ref, ok := m.Symbols.Ptr(h).Kind.(*ReferenceSymbol)
		if !ok {
			return true
		}
		resolveOne(m, SymbolHandle(h), ref)
		return true
	})
}

func resolveOne(m *Module, refHandle SymbolHandle, ref *ReferenceSymbol) {
	ref.Target = nil
	if ref.Name == "" {
		return
	}

	var target SymbolHandle
	VisibleSymbolsFromSymbol(m, refHandle, func(cand SymbolHandle) bool {
		name, ok := declName(m.symbol(cand))
		if !ok || name != ref.Name {
			return true
		}
		target = cand
		return false
	})
	if !target.IsValid() {
		return
	}

	switch k := m.symbol(target).Kind.(type) {
	case *DeclSymbol:
		k.References.Add(refHandle)
	case *FnSymbol:
		k.References.Add(refHandle)
	}
	ref.Target = SymbolReferenceTarget{Symbol: target}
}
