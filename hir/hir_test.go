package hir_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tamasfe/rhai-hir-go/hir"
	"github.com/tamasfe/rhai-hir-go/lang/parser"
	"github.com/tamasfe/rhai-hir-go/lang/token"
)

func build(t *testing.T, src string) *hir.Module {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseSource(fset, "test.rhai", []byte(src))
	require.NoError(t, err)
	m := hir.Build("test", f)
	require.NotNil(t, m)
	return m
}

func TestLetThenReferenceResolves(t *testing.T) {
	m := build(t, "let x = 1; x;")
	m.Resolve()

	root := m.Scope(m.Root)
	require.Equal(t, 2, root.Symbols.Len())

	syms := root.Symbols.Slice()
	decl, ok := m.Symbol(syms[0]).Kind.(*hir.DeclSymbol)
	require.True(t, ok)
	require.Equal(t, "x", decl.Name)

	ref, ok := m.Symbol(syms[1]).Kind.(*hir.ReferenceSymbol)
	require.True(t, ok)
	require.Equal(t, "x", ref.Name)
	target, ok := ref.Target.(hir.SymbolReferenceTarget)
	require.True(t, ok)
	require.Equal(t, syms[0], target.Symbol)
	require.True(t, decl.References.Has(syms[1]))
}

func TestFnIsHoistedAndCallResolves(t *testing.T) {
	m := build(t, "fn f() {} f();")
	m.Resolve()

	root := m.Scope(m.Root)
	require.Equal(t, 1, root.Hoisted.Len())

	var fnHandle hir.SymbolHandle
	root.Hoisted.Each(func(h hir.SymbolHandle) bool { fnHandle = h; return true })

	// the call's callee reference is somewhere in root.Symbols
	var calleeRef *hir.ReferenceSymbol
	root.Symbols.Each(func(h hir.SymbolHandle) bool {
		if call, ok := m.Symbol(h).Kind.(*hir.CallSymbol); ok {
			calleeRef = m.Symbol(call.Lhs).Kind.(*hir.ReferenceSymbol)
			return false
		}
		return true
	})
	require.NotNil(t, calleeRef)
	target, ok := calleeRef.Target.(hir.SymbolReferenceTarget)
	require.True(t, ok)
	require.Equal(t, fnHandle, target.Symbol)
}

func TestFnCallBeforeDeclResolves(t *testing.T) {
	m := build(t, "f(); fn f() {}")
	m.Resolve()

	root := m.Scope(m.Root)
	var calleeRef *hir.ReferenceSymbol
	root.Symbols.Each(func(h hir.SymbolHandle) bool {
		if call, ok := m.Symbol(h).Kind.(*hir.CallSymbol); ok {
			calleeRef = m.Symbol(call.Lhs).Kind.(*hir.ReferenceSymbol)
			return false
		}
		return true
	})
	require.NotNil(t, calleeRef)
	_, ok := calleeRef.Target.(hir.SymbolReferenceTarget)
	require.True(t, ok, "a hoisted fn declared after its use site must still resolve")
}

func TestLetUsedBeforeDeclarationDoesNotResolve(t *testing.T) {
	m := build(t, "x; let x = 1;")
	m.Resolve()

	root := m.Scope(m.Root)
	syms := root.Symbols.Slice()
	ref := m.Symbol(syms[0]).Kind.(*hir.ReferenceSymbol)
	require.Nil(t, ref.Target, "non-hoisted let must not be visible before its position")
}

func TestIfElseIfChainFlattened(t *testing.T) {
	m := build(t, `if a { b } else if c { d } else { e }`)

	// the conditions a and c are lowered into the enclosing scope before the
	// If symbol itself is inserted.
	root := m.Scope(m.Root)
	syms := root.Symbols.Slice()
	require.Len(t, syms, 3)

	ifSym, ok := m.Symbol(syms[2]).Kind.(*hir.IfSymbol)
	require.True(t, ok)
	require.Len(t, ifSym.Branches, 3)
	require.True(t, ifSym.Branches[0].Condition.IsValid())
	require.True(t, ifSym.Branches[1].Condition.IsValid())
	require.False(t, ifSym.Branches[2].Condition.IsValid())

	for _, br := range ifSym.Branches {
		require.Equal(t, syms[2], m.Scope(br.ThenScope).ParentSymbol)
	}
}

func TestForLoopPatternScoping(t *testing.T) {
	m := build(t, `for i in xs { i; }`)
	m.Resolve()

	root := m.Scope(m.Root)
	syms := root.Symbols.Slice()
	var forHandle hir.SymbolHandle
	for _, h := range syms {
		if _, ok := m.Symbol(h).Kind.(*hir.ForSymbol); ok {
			forHandle = h
		}
	}
	require.True(t, forHandle.IsValid())
	forSym := m.Symbol(forHandle).Kind.(*hir.ForSymbol)
	require.Equal(t, m.Root, forSym.Scope, "For.Scope is the enclosing scope, not the body scope")

	// the body scope is reached via parent_symbol, not For.Scope.
	var bodyScope *hir.Scope
	for i := 1; i <= m.Scopes.Len(); i++ {
		sc := m.Scope(hir.ScopeHandle(i))
		if sc.ParentSymbol == forHandle {
			bodyScope = sc
		}
	}
	require.NotNil(t, bodyScope)
	require.Equal(t, 2, bodyScope.Symbols.Len()) // pattern decl + reference

	declHandle := bodyScope.Symbols.Slice()[0]
	decl := m.Symbol(declHandle).Kind.(*hir.DeclSymbol)
	require.True(t, decl.IsPat)
	require.Equal(t, "i", decl.Name)
	require.True(t, decl.References.Has(bodyScope.Symbols.Slice()[1]))
}

func TestClosureParamsResolveInBody(t *testing.T) {
	m := build(t, `|a, b| a + b;`)
	m.Resolve()

	root := m.Scope(m.Root)
	closureHandle := root.Symbols.Slice()[0]
	closure := m.Symbol(closureHandle).Kind.(*hir.ClosureSymbol)

	bin := m.Symbol(closure.Expr).Kind.(*hir.BinarySymbol)
	lhsRef := m.Symbol(bin.Lhs).Kind.(*hir.ReferenceSymbol)
	rhsRef := m.Symbol(bin.Rhs).Kind.(*hir.ReferenceSymbol)

	lhsTarget, ok := lhsRef.Target.(hir.SymbolReferenceTarget)
	require.True(t, ok)
	rhsTarget, ok := rhsRef.Target.(hir.SymbolReferenceTarget)
	require.True(t, ok)

	lhsDecl := m.Symbol(lhsTarget.Symbol).Kind.(*hir.DeclSymbol)
	rhsDecl := m.Symbol(rhsTarget.Symbol).Kind.(*hir.DeclSymbol)
	require.Equal(t, "a", lhsDecl.Name)
	require.Equal(t, "b", rhsDecl.Name)
	require.True(t, lhsDecl.IsParam)
	require.True(t, rhsDecl.IsParam)
}

func TestNestedLetScopeIsolation(t *testing.T) {
	m := build(t, `let x = { let y = 1; y }; x;`)
	m.Resolve()

	root := m.Scope(m.Root)
	syms := root.Symbols.Slice()
	require.Len(t, syms, 2)

	xDecl := m.Symbol(syms[0]).Kind.(*hir.DeclSymbol)
	require.Equal(t, "x", xDecl.Name)
	xRef := m.Symbol(syms[1]).Kind.(*hir.ReferenceSymbol)
	xTarget := xRef.Target.(hir.SymbolReferenceTarget)
	require.Equal(t, syms[0], xTarget.Symbol)

	// inner y reference resolves to the inner decl, not visible to the outer x ref
	valueScope := m.Scope(xDecl.Value)
	require.Equal(t, 1, valueScope.Symbols.Len()) // the Block symbol

	blockHandle := valueScope.Symbols.Slice()[0]
	block := m.Symbol(blockHandle).Kind.(*hir.BlockSymbol)
	innerScope := m.Scope(block.Scope)
	require.Equal(t, 2, innerScope.Symbols.Len())

	yDecl := m.Symbol(innerScope.Symbols.Slice()[0]).Kind.(*hir.DeclSymbol)
	yRef := m.Symbol(innerScope.Symbols.Slice()[1]).Kind.(*hir.ReferenceSymbol)
	yTarget, ok := yRef.Target.(hir.SymbolReferenceTarget)
	require.True(t, ok)
	require.Equal(t, innerScope.Symbols.Slice()[0], yTarget.Symbol)
	require.True(t, yDecl.References.Has(innerScope.Symbols.Slice()[1]))
}

func TestParenPassThroughEmitsNoWrapper(t *testing.T) {
	plain := build(t, "x;")
	paren := build(t, "(x);")
	require.Equal(t, plain.Symbols.Len(), paren.Symbols.Len())

	_, ok := paren.Symbol(hir.SymbolHandle(1)).Kind.(*hir.ReferenceSymbol)
	require.True(t, ok)
}

func TestResolveIsIdempotent(t *testing.T) {
	m := build(t, "let x = 1; x;")
	m.Resolve()
	root := m.Scope(m.Root)
	syms := root.Symbols.Slice()
	first := m.Symbol(syms[1]).Kind.(*hir.ReferenceSymbol).Target

	m.Resolve()
	second := m.Symbol(syms[1]).Kind.(*hir.ReferenceSymbol).Target
	require.Equal(t, first, second)
}

func TestBuildNilRootReturnsNil(t *testing.T) {
	require.Nil(t, hir.Build("empty", nil))
}

func TestDiscardWildcardSwitchArm(t *testing.T) {
	m := build(t, `switch v { 1 => "one", _ => "other" }`)
	root := m.Scope(m.Root)
	var sw *hir.SwitchSymbol
	root.Hoisted.Each(func(h hir.SymbolHandle) bool {
		if s, ok := m.Symbol(h).Kind.(*hir.SwitchSymbol); ok {
			sw = s
			return false
		}
		return true
	})
	require.NotNil(t, sw)
	require.Len(t, sw.Arms, 2)
	_, ok := m.Symbol(sw.Arms[1].Left).Kind.(*hir.DiscardSymbol)
	require.True(t, ok)
}

func TestTypeFormatter(t *testing.T) {
	m := build(t, "let x = 1;")
	f := &hir.TypeFormatter{Types: &m.Types}

	intH := hir.TypeHandle(m.Types.Insert(hir.Type{Kind: hir.IntType{}}))
	arrH := hir.TypeHandle(m.Types.Insert(hir.Type{Kind: hir.ArrayType{Item: intH}}))
	require.Equal(t, "int", f.Format(intH))
	require.Equal(t, "[int]", f.Format(arrH))
	require.Equal(t, "?", f.Format(hir.TypeHandle(0)))
}
