package hir

// Module is a fully lowered HIR: one set of symbol/scope/type arenas rooted
// at Root. Handles are only valid within the Module that produced them.
type Module struct {
	Name string

	Symbols Arena[Symbol]
	Scopes  Arena[Scope]
	Types   Arena[Type]

	Root ScopeHandle
}

func newModule(name string) *Module {
	return &Module{Name: name}
}

// insertScope inserts s and returns its handle.
func (m *Module) insertScope(s *Scope) ScopeHandle {
	return ScopeHandle(m.Scopes.Insert(*s))
}

// scope returns a pointer to the scope at h, for in-place mutation (e.g.
// retro-assigning ParentSymbol, or appending to Symbols/Hoisted).
func (m *Module) scope(h ScopeHandle) *Scope {
	return m.Scopes.Ptr(uint32(h))
}

// symbol returns a pointer to the symbol at h.
func (m *Module) symbol(h SymbolHandle) *Symbol {
	return m.Symbols.Ptr(uint32(h))
}

// insertType inserts t and returns its handle.
func (m *Module) insertType(t Type) TypeHandle {
	return TypeHandle(m.Types.Insert(t))
}

// Symbol returns a pointer to the symbol at h, for query collaborators
// (hover, completion, go-to-definition, the CLI's dump subcommands, tests).
func (m *Module) Symbol(h SymbolHandle) *Symbol { return m.symbol(h) }

// Scope returns a pointer to the scope at h.
func (m *Module) Scope(h ScopeHandle) *Scope { return m.scope(h) }

// Type returns a pointer to the type at h.
func (m *Module) Type(h TypeHandle) *Type { return m.Types.Ptr(uint32(h)) }

// Resolve runs name resolution over m. It is a thin convenience wrapper
// around ResolveReferences, which does no logging.
func (m *Module) Resolve() { ResolveReferences(m) }
