package hir

import (
	log "github.com/sirupsen/logrus"

	"github.com/tamasfe/rhai-hir-go/lang/syntax"
	"github.com/tamasfe/rhai-hir-go/lang/token"
)

// Build lowers a parsed module into a fully populated Module, using the
// package-level standard logger for trace events. It returns nil if root is
// nil (the Go analogue of the root cast failing).
func Build(name string, root *syntax.Rhai) *Module {
	return BuildWithLogger(name, root, log.StandardLogger())
}

// BuildWithLogger is Build with an explicit logger, for callers that want
// the builder's trace events routed somewhere other than the standard
// logger (tests, an LSP server's own logger, ...).
func BuildWithLogger(name string, root *syntax.Rhai, logger *log.Logger) *Module {
	if root == nil {
		return nil
	}
	m := newModule(name)
	b := &builder{m: m, log: logger}

	rootScope := b.newScope(spanOf(root))
	m.Root = rootScope

	for _, stmt := range root.Stmts {
		b.addStatement(rootScope, stmt)
	}
	return m
}

type builder struct {
	m   *Module
	log *log.Logger
}

func spanOf(n syntax.Node) token.Span {
	start, end := n.Span()
	return token.Span{Start: start, End: end}
}

// newScope creates and inserts a scope, logging the "create_scope" trace
// event from the original's #[tracing::instrument] annotation.
func (b *builder) newScope(syntax token.Span) ScopeHandle {
	h := b.m.insertScope(newScope(syntax))
	b.log.WithFields(log.Fields{"scope": h}).Debug("create_scope")
	return h
}

// adopt retro-assigns a scope's ParentSymbol, the "set_as_parent_symbol"
// trace point. A scope's ParentSymbol is mutated exactly once, from unset to
// sym (a let/const initializer scope is created before its owning Decl
// exists, see addLetOrConst).
func (b *builder) adopt(scope ScopeHandle, sym SymbolHandle) {
	b.m.scope(scope).ParentSymbol = sym
	b.log.WithFields(log.Fields{"scope": scope, "symbol": sym}).Debug("set_as_parent_symbol")
}

// insertSymbol inserts sym, attaches it to scope (hoisted or not), and
// returns its handle. This implements add_to_scope's pre/postconditions:
// since a freshly-inserted symbol's ParentScope is always the zero value,
// the "not already attached" precondition holds by construction.
func (b *builder) insertSymbol(scope ScopeHandle, syn, sel token.Span, kind SymbolKind, hoist bool) SymbolHandle {
	h := SymbolHandle(b.m.Symbols.Insert(Symbol{Syntax: syn, SelectionSyntax: sel, Kind: kind}))
	b.addToScope(scope, h, hoist)
	return h
}

func (b *builder) addToScope(scope ScopeHandle, sym SymbolHandle, hoist bool) {
	sc := b.m.scope(scope)
	set := sc.Symbols
	if hoist {
		set = sc.Hoisted
	}
	set.Add(sym)
	b.m.symbol(sym).ParentScope = scope
	b.log.WithFields(log.Fields{"scope": scope, "symbol": sym, "hoist": hoist}).Debug("add_to_scope")
}

// addStatement lowers stmt's expression and, for a Fn or Decl result,
// assigns its docs from the statement's doc comments.
func (b *builder) addStatement(scope ScopeHandle, stmt *syntax.Stmt) SymbolHandle {
	b.log.WithFields(log.Fields{"scope": scope}).Debug("add_statement")
	h := b.addExpression(scope, stmt.X)
	if !h.IsValid() {
		return h
	}
	switch k := b.m.symbol(h).Kind.(type) {
	case *FnSymbol:
		k.Docs = stmt.Docs
	case *DeclSymbol:
		k.Docs = stmt.Docs
	}
	return h
}

// addExpression lowers expr into scope and returns its symbol handle, or the
// zero handle if expr is nil (a missing operand/sub-expression). Exactly one
// symbol is produced per expression except for the documented pass-through
// (ParenExpr) and Path (which also inserts one symbol per segment).
func (b *builder) addExpression(scope ScopeHandle, expr syntax.Expr) SymbolHandle {
	if expr == nil {
		return 0
	}
	b.log.WithFields(log.Fields{"scope": scope}).Debug("add_expression")

	switch n := expr.(type) {
	case *syntax.IdentExpr:
		return b.addIdent(scope, n, false)
	case *syntax.PathExpr:
		return b.addPath(scope, n)
	case *syntax.LitExpr:
		return b.addLit(scope, n)
	case *syntax.LetExpr:
		return b.addLetOrConst(scope, spanOf(n), n.Name, n.Value, false)
	case *syntax.ConstExpr:
		return b.addLetOrConst(scope, spanOf(n), n.Name, n.Value, true)
	case *syntax.BlockExpr:
		return b.addBlock(scope, n)
	case *syntax.UnaryExpr:
		return b.addUnary(scope, n)
	case *syntax.BinaryExpr:
		return b.addBinary(scope, n)
	case *syntax.ParenExpr:
		return b.addExpression(scope, n.X) // pass-through: no wrapper symbol
	case *syntax.ArrayExpr:
		return b.addArray(scope, n)
	case *syntax.IndexExpr:
		return b.addIndex(scope, n)
	case *syntax.FieldExpr:
		return b.addField(scope, n)
	case *syntax.ObjectExpr:
		return b.addObject(scope, n)
	case *syntax.CallExpr:
		return b.addCall(scope, n)
	case *syntax.ClosureExpr:
		return b.addClosure(scope, n)
	case *syntax.IfExpr:
		return b.addIf(scope, n)
	case *syntax.LoopExpr:
		return b.addLoop(scope, n)
	case *syntax.ForExpr:
		return b.addFor(scope, n)
	case *syntax.WhileExpr:
		return b.addWhile(scope, n)
	case *syntax.BreakExpr:
		return b.addBreak(scope, n)
	case *syntax.ContinueExpr:
		return b.addContinue(scope, n)
	case *syntax.ReturnExpr:
		return b.addReturn(scope, n)
	case *syntax.SwitchExpr:
		return b.addSwitch(scope, n)
	case *syntax.FnExpr:
		return b.addFn(scope, n)
	case *syntax.ImportExpr:
		return b.addImport(scope, n)
	default:
		return 0
	}
}

func (b *builder) addIdent(scope ScopeHandle, n *syntax.IdentExpr, partOfPath bool) SymbolHandle {
	sel := spanOf(n)
	return b.insertSymbol(scope, sel, sel, &ReferenceSymbol{Name: n.Name, PartOfPath: partOfPath}, false)
}

func (b *builder) addPath(scope ScopeHandle, n *syntax.PathExpr) SymbolHandle {
	if len(n.Segments) == 0 {
		return 0 // missing path segments: no Path symbol emitted
	}
	segs := make([]SymbolHandle, 0, len(n.Segments))
	for _, seg := range n.Segments {
		segs = append(segs, b.addIdent(scope, seg, true))
	}
	return b.insertSymbol(scope, spanOf(n), spanOf(n), &PathSymbol{Segments: segs}, false)
}

func (b *builder) addLit(scope ScopeHandle, n *syntax.LitExpr) SymbolHandle {
	return b.insertSymbol(scope, spanOf(n), spanOf(n), &LitSymbol{Kind: n.Kind, Raw: n.Raw}, false)
}

// addLetOrConst lowers the initializer (if any) inside a fresh transient
// scope created with no ParentSymbol, inserts the Decl, then retro-assigns
// the transient scope's ParentSymbol to the new Decl's handle.
func (b *builder) addLetOrConst(scope ScopeHandle, syn token.Span, name *syntax.IdentExpr, value syntax.Expr, isConst bool) SymbolHandle {
	valueScope := b.newScope(syn)
	b.addExpression(valueScope, value)

	sel := spanOf(name)
	declHandle := b.insertSymbol(scope, syn, sel, &DeclSymbol{
		Name:       name.Name,
		IsConst:    isConst,
		Value:      valueScope,
		References: NewOrderedSet[SymbolHandle](0),
	}, false)
	b.adopt(valueScope, declHandle)
	return declHandle
}

func (b *builder) addBlock(scope ScopeHandle, n *syntax.BlockExpr) SymbolHandle {
	bodyScope := b.newScope(spanOf(n))
	h := b.insertSymbol(scope, spanOf(n), spanOf(n), &BlockSymbol{Scope: bodyScope}, false)
	b.adopt(bodyScope, h)
	b.lowerStmts(bodyScope, n.Stmts)
	return h
}

func (b *builder) lowerStmts(scope ScopeHandle, stmts []*syntax.Stmt) {
	for _, s := range stmts {
		b.addStatement(scope, s)
	}
}

func (b *builder) addUnary(scope ScopeHandle, n *syntax.UnaryExpr) SymbolHandle {
	rhs := b.addExpression(scope, n.X)
	return b.insertSymbol(scope, spanOf(n), spanOf(n), &UnarySymbol{Op: n.Op, Rhs: rhs}, false)
}

func (b *builder) addBinary(scope ScopeHandle, n *syntax.BinaryExpr) SymbolHandle {
	lhs := b.addExpression(scope, n.X)
	rhs := b.addExpression(scope, n.Y)
	return b.insertSymbol(scope, spanOf(n), spanOf(n), &BinarySymbol{Op: n.Op, Lhs: lhs, Rhs: rhs}, false)
}

func (b *builder) addArray(scope ScopeHandle, n *syntax.ArrayExpr) SymbolHandle {
	var values []SymbolHandle
	for _, e := range n.Elems {
		if h := b.addExpression(scope, e); h.IsValid() {
			values = append(values, h)
		}
	}
	return b.insertSymbol(scope, spanOf(n), spanOf(n), &ArraySymbol{Values: values}, false)
}

func (b *builder) addIndex(scope ScopeHandle, n *syntax.IndexExpr) SymbolHandle {
	base := b.addExpression(scope, n.X)
	index := b.addExpression(scope, n.Index)
	return b.insertSymbol(scope, spanOf(n), spanOf(n), &IndexSymbol{Base: base, Index: index}, false)
}

// addField lowers a dot field/method access (x.name) as an Index whose
// index operand is a plain (non-path) reference to the field name: field
// lookup by name behaves like any other name lookup for hover/definition
// purposes, it just never appears in the CST as a bracketed expression.
func (b *builder) addField(scope ScopeHandle, n *syntax.FieldExpr) SymbolHandle {
	base := b.addExpression(scope, n.X)
	index := b.addIdent(scope, n.Name, false)
	return b.insertSymbol(scope, spanOf(n), spanOf(n.Name), &IndexSymbol{Base: base, Index: index}, false)
}

func (b *builder) addObject(scope ScopeHandle, n *syntax.ObjectExpr) SymbolHandle {
	fields := NewOrderedMap[string, *ObjectField](len(n.Fields))
	for _, f := range n.Fields {
		if f.Name == nil || f.Value == nil {
			continue
		}
		value := b.addExpression(scope, f.Value)
		fields.Set(f.Name.Name, &ObjectField{
			PropertyName:   f.Name.Name,
			PropertySyntax: spanOf(f.Name),
			FieldSyntax:    token.Span{Start: spanOf(f.Name).Start, End: spanOf(f.Value).End},
			Value:          value,
		})
	}
	return b.insertSymbol(scope, spanOf(n), spanOf(n), &ObjectSymbol{Fields: fields}, false)
}

func (b *builder) addCall(scope ScopeHandle, n *syntax.CallExpr) SymbolHandle {
	lhs := b.addExpression(scope, n.Callee)
	var args []SymbolHandle
	for _, a := range n.Args {
		if h := b.addExpression(scope, a); h.IsValid() {
			args = append(args, h)
		}
	}
	return b.insertSymbol(scope, spanOf(n), spanOf(n), &CallSymbol{Lhs: lhs, Arguments: args}, false)
}

func (b *builder) addClosure(scope ScopeHandle, n *syntax.ClosureExpr) SymbolHandle {
	bodyScope := b.newScope(spanOf(n))
	for _, p := range n.Params {
		sel := spanOf(p)
		b.insertSymbol(bodyScope, sel, sel, &DeclSymbol{
			Name:       p.Name,
			IsParam:    true,
			References: NewOrderedSet[SymbolHandle](0),
		}, false)
	}
	bodyExpr := b.addExpression(bodyScope, n.Body)

	h := b.insertSymbol(scope, spanOf(n), spanOf(n), &ClosureSymbol{Scope: scope, Expr: bodyExpr}, false)
	b.adopt(bodyScope, h)
	return h
}

// addIf flattens the CST's right-recursive else-if chain into a single
// IfSymbol whose Branches list holds every (condition, then-scope) pair in
// textual order, terminated by a (unset, else-scope) pair if there is a
// trailing else. Every branch scope is adopted by the one IfSymbol: the
// parent-symbol edge is one-to-many.
func (b *builder) addIf(scope ScopeHandle, n *syntax.IfExpr) SymbolHandle {
	var branches []IfBranch
	var scopes []ScopeHandle

	cur := n
	for {
		cond := b.addExpression(scope, cur.Cond)
		thenScope := b.newScope(spanOf(cur.Then))
		b.lowerStmts(thenScope, cur.Then.Stmts)
		branches = append(branches, IfBranch{Condition: cond, ThenScope: thenScope})
		scopes = append(scopes, thenScope)

		switch e := cur.Else.(type) {
		case nil:
			goto built
		case *syntax.IfExpr:
			cur = e
		case *syntax.BlockExpr:
			elseScope := b.newScope(spanOf(e))
			b.lowerStmts(elseScope, e.Stmts)
			branches = append(branches, IfBranch{ThenScope: elseScope})
			scopes = append(scopes, elseScope)
			goto built
		}
	}
built:
	h := b.insertSymbol(scope, spanOf(n), spanOf(n), &IfSymbol{Branches: branches}, false)
	for _, sc := range scopes {
		b.adopt(sc, h)
	}
	return h
}

func (b *builder) addLoop(scope ScopeHandle, n *syntax.LoopExpr) SymbolHandle {
	bodyScope := b.newScope(spanOf(n.Body))
	b.lowerStmts(bodyScope, n.Body.Stmts)
	h := b.insertSymbol(scope, spanOf(n), spanOf(n), &LoopSymbol{Scope: bodyScope}, false)
	b.adopt(bodyScope, h)
	return h
}

// addFor lowers the pattern identifier as an is_pat Decl visible throughout
// the body scope, then the iterable into the enclosing scope. Scope is set
// to the *enclosing* scope, not the body scope, matching the observed
// (preserved, not "fixed") upstream behavior: the body scope is reached via
// parent_symbol from the For symbol's handle.
func (b *builder) addFor(scope ScopeHandle, n *syntax.ForExpr) SymbolHandle {
	bodyScope := b.newScope(spanOf(n.Body))
	sel := spanOf(n.Var)
	b.insertSymbol(bodyScope, sel, sel, &DeclSymbol{
		Name:       n.Var.Name,
		IsPat:      true,
		References: NewOrderedSet[SymbolHandle](0),
	}, false)

	iterable := b.addExpression(scope, n.Iter)
	b.lowerStmts(bodyScope, n.Body.Stmts)

	h := b.insertSymbol(scope, spanOf(n), spanOf(n), &ForSymbol{Iterable: iterable, Scope: scope}, false)
	b.adopt(bodyScope, h)
	return h
}

func (b *builder) addWhile(scope ScopeHandle, n *syntax.WhileExpr) SymbolHandle {
	cond := b.addExpression(scope, n.Cond)
	bodyScope := b.newScope(spanOf(n.Body))
	b.lowerStmts(bodyScope, n.Body.Stmts)
	h := b.insertSymbol(scope, spanOf(n), spanOf(n), &WhileSymbol{Condition: cond, Scope: bodyScope}, false)
	b.adopt(bodyScope, h)
	return h
}

func (b *builder) addBreak(scope ScopeHandle, n *syntax.BreakExpr) SymbolHandle {
	val := b.addExpression(scope, n.Value)
	return b.insertSymbol(scope, spanOf(n), spanOf(n), &BreakSymbol{Value: val}, false)
}

func (b *builder) addContinue(scope ScopeHandle, n *syntax.ContinueExpr) SymbolHandle {
	return b.insertSymbol(scope, spanOf(n), spanOf(n), &ContinueSymbol{}, false)
}

func (b *builder) addReturn(scope ScopeHandle, n *syntax.ReturnExpr) SymbolHandle {
	val := b.addExpression(scope, n.Value)
	return b.insertSymbol(scope, spanOf(n), spanOf(n), &ReturnSymbol{Value: val}, false)
}

// addSwitch lowers target and every arm into the enclosing scope (no new
// scope per arm) and attaches the resulting symbol hoisted, per the
// preserved (rationale-unclear) upstream behavior.
func (b *builder) addSwitch(scope ScopeHandle, n *syntax.SwitchExpr) SymbolHandle {
	target := b.addExpression(scope, n.Value)
	var arms []SwitchArm
	for _, a := range n.Arms {
		var left SymbolHandle
		if a.Pattern == nil {
			sel := token.Span{Start: a.Arrow, End: a.Arrow}
			left = b.insertSymbol(scope, sel, sel, &DiscardSymbol{}, false)
		} else {
			left = b.addExpression(scope, a.Pattern)
		}
		right := b.addExpression(scope, a.Value)
		arms = append(arms, SwitchArm{Left: left, Right: right})
	}
	return b.insertSymbol(scope, spanOf(n), spanOf(n), &SwitchSymbol{Target: target, Arms: arms}, true)
}

// addFn lowers one Decl{is_param} per parameter into the function's own
// body scope, but — matching the observed upstream behavior, not "fixed" —
// lowers the body's statements into the *enclosing* scope, not the body
// scope. The body scope therefore only ever holds the parameter Decls.
func (b *builder) addFn(scope ScopeHandle, n *syntax.FnExpr) SymbolHandle {
	bodyScope := b.newScope(spanOf(n.Body))
	for _, p := range n.Params {
		sel := spanOf(p)
		b.insertSymbol(bodyScope, sel, sel, &DeclSymbol{
			Name:       p.Name,
			IsParam:    true,
			References: NewOrderedSet[SymbolHandle](0),
		}, false)
	}
	b.lowerStmts(scope, n.Body.Stmts)

	h := b.insertSymbol(scope, spanOf(n), spanOf(n.Name), &FnSymbol{
		Name:       n.Name.Name,
		Scope:      bodyScope,
		References: NewOrderedSet[SymbolHandle](0),
	}, true)
	b.adopt(bodyScope, h)
	return h
}

func (b *builder) addImport(scope ScopeHandle, n *syntax.ImportExpr) SymbolHandle {
	expr := b.addExpression(scope, n.Path)
	var alias SymbolHandle
	if n.As != nil {
		sel := spanOf(n.As)
		alias = b.insertSymbol(scope, sel, sel, &DeclSymbol{
			Name:       n.As.Name,
			References: NewOrderedSet[SymbolHandle](0),
		}, false)
	}
	return b.insertSymbol(scope, spanOf(n), spanOf(n), &ImportSymbol{Alias: alias, Expr: expr}, true)
}
