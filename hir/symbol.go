package hir

import (
	"github.com/tamasfe/rhai-hir-go/lang/syntax"
	"github.com/tamasfe/rhai-hir-go/lang/token"
)

// Symbol is a typed, positioned HIR node: a declaration, reference, or
// expression/statement-level construct.
type Symbol struct {
	ParentScope     ScopeHandle
	Syntax          token.Span // span of the whole construct
	SelectionSyntax token.Span // span of the name token, for go-to-definition
	Kind            SymbolKind
}

// SymbolKind is the closed tagged union of symbol payloads. Adding a new
// construct requires a new concrete type here and a new case everywhere a
// builder/resolver/printer switches on SymbolKind.
type SymbolKind interface {
	symbolKind()
}

func (*ReferenceSymbol) symbolKind() {}
func (*PathSymbol) symbolKind()      {}
func (*LitSymbol) symbolKind()       {}
func (*DeclSymbol) symbolKind()      {}
func (*FnSymbol) symbolKind()        {}
func (*BlockSymbol) symbolKind()     {}
func (*UnarySymbol) symbolKind()     {}
func (*BinarySymbol) symbolKind()    {}
func (*ArraySymbol) symbolKind()     {}
func (*IndexSymbol) symbolKind()     {}
func (*ObjectSymbol) symbolKind()    {}
func (*CallSymbol) symbolKind()      {}
func (*ClosureSymbol) symbolKind()   {}
func (*IfSymbol) symbolKind()        {}
func (*LoopSymbol) symbolKind()      {}
func (*ForSymbol) symbolKind()       {}
func (*WhileSymbol) symbolKind()     {}
func (*BreakSymbol) symbolKind()     {}
func (*ContinueSymbol) symbolKind()  {}
func (*ReturnSymbol) symbolKind()    {}
func (*SwitchSymbol) symbolKind()    {}
func (*DiscardSymbol) symbolKind()   {}
func (*ImportSymbol) symbolKind()    {}

// ReferenceTarget is the thing a ReferenceSymbol resolves to. Currently a
// single variant (a symbol), modeled as an interface so a future target kind
// (module, type) does not require changing every call site that type-asserts
// on SymbolReferenceTarget.
type ReferenceTarget interface {
	referenceTarget()
}

// SymbolReferenceTarget is a reference resolved to a declaration symbol
// (kind Decl or Fn).
type SymbolReferenceTarget struct {
	Symbol SymbolHandle
}

func (SymbolReferenceTarget) referenceTarget() {}

// ReferenceSymbol names an identifier that should resolve to a declaration.
type ReferenceSymbol struct {
	Name       string
	PartOfPath bool
	Target     ReferenceTarget // nil until/unless resolved
}

// PathSymbol is a dotted/qualified identifier chain; each segment is its own
// ReferenceSymbol, attached individually to the enclosing scope.
type PathSymbol struct {
	Segments []SymbolHandle
}

// LitSymbol is a literal value: int, float, string, char or bool.
type LitSymbol struct {
	Kind syntax.LitKind
	Raw  string
}

// DeclSymbol is a named declaration: a let/const binding, a function or
// closure parameter, or a for-loop pattern binding.
type DeclSymbol struct {
	Name       string
	Docs       []string
	IsConst    bool
	IsParam    bool
	IsPat      bool
	Value      ScopeHandle // let/const initializer scope (created even without an initializer); unset for parameters, patterns and import aliases
	References *OrderedSet[SymbolHandle]
}

// FnSymbol is a named function declaration.
type FnSymbol struct {
	Name       string
	Docs       []string
	Scope      ScopeHandle // body scope
	References *OrderedSet[SymbolHandle]
}

// BlockSymbol is a brace-delimited statement sequence.
type BlockSymbol struct {
	Scope ScopeHandle
}

// UnarySymbol is a prefix-operator expression. Rhs is unset if the operand
// could not be lowered.
type UnarySymbol struct {
	Op  syntax.UnaryOp
	Rhs SymbolHandle
}

// BinarySymbol is an infix-operator expression. Lhs/Rhs are unset if the
// corresponding operand could not be lowered.
type BinarySymbol struct {
	Op  syntax.BinaryOp
	Lhs SymbolHandle
	Rhs SymbolHandle
}

// ArraySymbol is an array literal; elements that failed to lower are
// omitted, not represented as holes.
type ArraySymbol struct {
	Values []SymbolHandle
}

// IndexSymbol is an indexing expression: base[index], or a dotted field
// access where Index names the field.
type IndexSymbol struct {
	Base  SymbolHandle
	Index SymbolHandle
}

// ObjectField is one "name: value" entry of an ObjectSymbol.
type ObjectField struct {
	PropertyName    string
	PropertySyntax  token.Span
	FieldSyntax     token.Span
	Value           SymbolHandle
}

// ObjectSymbol is an object/map literal. Fields missing either a name or a
// value are dropped during lowering.
type ObjectSymbol struct {
	Fields *OrderedMap[string, *ObjectField]
}

// CallSymbol is a function/method call.
type CallSymbol struct {
	Lhs       SymbolHandle
	Arguments []SymbolHandle
}

// ClosureSymbol is an anonymous function literal. Scope is the *outer*
// (capturing) scope, not the body scope; the body scope is reached via
// parent_symbol from the closure's handle.
type ClosureSymbol struct {
	Scope ScopeHandle
	Expr  SymbolHandle // body expression's symbol
}

// IfBranch is one "(condition, then-scope)" pair of a flattened if/else-if
// chain. Condition is unset for the terminal else branch, if any.
type IfBranch struct {
	Condition SymbolHandle
	ThenScope ScopeHandle
}

// IfSymbol is an if/else-if/else chain, flattened from the CST's
// right-recursive nesting into an ordered list of branches in textual order
// (see builder.addIf).
type IfSymbol struct {
	Branches []IfBranch
}

// LoopSymbol is an unconditional loop: loop { ... }.
type LoopSymbol struct {
	Scope ScopeHandle // body
}

// ForSymbol is a for-in loop. Scope is, by observed/preserved design (see
// spec open questions), the *enclosing* scope, not the body scope; the body
// scope is reached via parent_symbol from the For symbol's handle.
type ForSymbol struct {
	Iterable SymbolHandle
	Scope    ScopeHandle
}

// WhileSymbol is a conditional loop: while cond { ... }.
type WhileSymbol struct {
	Condition SymbolHandle
	Scope     ScopeHandle // body
}

// BreakSymbol is a break statement, with an optional carried value.
type BreakSymbol struct {
	Value SymbolHandle // unset if none
}

// ContinueSymbol is a continue statement.
type ContinueSymbol struct{}

// ReturnSymbol is a return statement, with an optional carried value.
type ReturnSymbol struct {
	Value SymbolHandle // unset if none
}

// SwitchArm is one "left => right" arm of a SwitchSymbol. Left is either a
// pattern expression's symbol or a DiscardSymbol ("_").
type SwitchArm struct {
	Left  SymbolHandle
	Right SymbolHandle
}

// SwitchSymbol is a switch expression. Attached to its enclosing scope as
// hoisted (see spec open questions: rationale for hoisting switch is
// unclear, preserved verbatim).
type SwitchSymbol struct {
	Target SymbolHandle
	Arms   []SwitchArm
}

// DiscardSymbol is the "_" wildcard marker.
type DiscardSymbol struct{}

// ImportSymbol is a module import. Alias is unset if the import has no "as"
// clause. Attached to its enclosing scope as hoisted.
type ImportSymbol struct {
	Alias SymbolHandle // Decl, unset if none
	Expr  SymbolHandle // module path expression
}
