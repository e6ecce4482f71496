package hir

// SymbolHandle is a stable, 1-based index into a Module's symbol arena. The
// zero value means "unset"; it never designates a real symbol.
type SymbolHandle uint32

// IsValid reports whether h designates a real symbol.
func (h SymbolHandle) IsValid() bool { return h != 0 }

// ScopeHandle is a stable, 1-based index into a Module's scope arena. The
// zero value means "unset".
type ScopeHandle uint32

// IsValid reports whether h designates a real scope.
func (h ScopeHandle) IsValid() bool { return h != 0 }

// TypeHandle is a stable, 1-based index into a Module's type arena. The zero
// value means "unset" (Unknown is still an explicit entry, not the zero
// handle, so missing annotations are distinguishable from the Unknown type).
type TypeHandle uint32

// IsValid reports whether h designates a real type.
func (h TypeHandle) IsValid() bool { return h != 0 }
