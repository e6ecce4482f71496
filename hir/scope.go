package hir

import "github.com/tamasfe/rhai-hir-go/lang/token"

// Scope is a lexical region owning a set of symbols and, except for the
// module root and a transient let/const initializer scope at creation time,
// the symbol that created it.
type Scope struct {
	// ParentSymbol is the symbol whose construct introduced this scope (the
	// block, function, loop, if-branch, ...). Unset for the module root, and
	// transiently unset for a let/const initializer scope until the owning
	// Decl symbol is inserted (see builder.addLetOrConst).
	ParentSymbol SymbolHandle

	// Syntax is the span of the CST node that motivated the scope, if any.
	Syntax token.Span

	// Symbols are declared/positioned in this scope, in source order.
	// Visible only after their textual position (see VisibleSymbolsFromSymbol).
	Symbols *OrderedSet[SymbolHandle]

	// Hoisted are visible throughout the entire scope regardless of textual
	// position: functions, imports, switch expressions.
	Hoisted *OrderedSet[SymbolHandle]
}

func newScope(syntax token.Span) *Scope {
	return &Scope{
		Syntax:  syntax,
		Symbols: NewOrderedSet[SymbolHandle](4),
		Hoisted: NewOrderedSet[SymbolHandle](1),
	}
}
