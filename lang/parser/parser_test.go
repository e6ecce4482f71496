package parser_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tamasfe/rhai-hir-go/lang/parser"
	"github.com/tamasfe/rhai-hir-go/lang/syntax"
	"github.com/tamasfe/rhai-hir-go/lang/token"
)

func parseOne(t *testing.T, src string) (*token.FileSet, *syntax.Rhai) {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseSource(fset, "test.rhai", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, f)
	return fset, f
}

func TestParseLetAndIdent(t *testing.T) {
	_, f := parseOne(t, "let x = 1; x;")
	require.Len(t, f.Stmts, 2)

	let, ok := f.Stmts[0].X.(*syntax.LetExpr)
	require.True(t, ok)
	require.Equal(t, "x", let.Name.Name)
	lit, ok := let.Value.(*syntax.LitExpr)
	require.True(t, ok)
	require.Equal(t, int64(1), lit.Int)

	ident, ok := f.Stmts[1].X.(*syntax.IdentExpr)
	require.True(t, ok)
	require.Equal(t, "x", ident.Name)
}

func TestParseBinaryPrecedence(t *testing.T) {
	_, f := parseOne(t, "1 + 2 * 3;")
	require.Len(t, f.Stmts, 1)
	bin, ok := f.Stmts[0].X.(*syntax.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, syntax.BinAdd, bin.Op)
	_, ok = bin.X.(*syntax.LitExpr)
	require.True(t, ok)
	rhs, ok := bin.Y.(*syntax.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, syntax.BinMul, rhs.Op)
}

func TestParseAssignRightAssociative(t *testing.T) {
	_, f := parseOne(t, "x = y = 1;")
	bin, ok := f.Stmts[0].X.(*syntax.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, syntax.BinAssign, bin.Op)
	_, ok = bin.Y.(*syntax.BinaryExpr)
	require.True(t, ok)
}

func TestParseIfElseIfChainNotFlattened(t *testing.T) {
	_, f := parseOne(t, `if a { 1 } else if b { 2 } else { 3 }`)
	top, ok := f.Stmts[0].X.(*syntax.IfExpr)
	require.True(t, ok)
	mid, ok := top.Else.(*syntax.IfExpr)
	require.True(t, ok)
	_, ok = mid.Else.(*syntax.BlockExpr)
	require.True(t, ok)
}

func TestParseFieldAndCall(t *testing.T) {
	_, f := parseOne(t, `obj.method(1, 2);`)
	call, ok := f.Stmts[0].X.(*syntax.CallExpr)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
	field, ok := call.Callee.(*syntax.FieldExpr)
	require.True(t, ok)
	require.Equal(t, "method", field.Name.Name)
}

func TestParseClosureAndFn(t *testing.T) {
	_, f := parseOne(t, "let f = |a, b| a + b; fn g(x) { return x; }")
	let := f.Stmts[0].X.(*syntax.LetExpr)
	clo, ok := let.Value.(*syntax.ClosureExpr)
	require.True(t, ok)
	require.Len(t, clo.Params, 2)

	fn, ok := f.Stmts[1].X.(*syntax.FnExpr)
	require.True(t, ok)
	require.Equal(t, "g", fn.Name.Name)
	require.Len(t, fn.Params, 1)
}

func TestParseForWhileLoop(t *testing.T) {
	_, f := parseOne(t, `for x in arr { print(x); } while true { break; } loop { continue; }`)
	_, ok := f.Stmts[0].X.(*syntax.ForExpr)
	require.True(t, ok)
	_, ok = f.Stmts[1].X.(*syntax.WhileExpr)
	require.True(t, ok)
	_, ok = f.Stmts[2].X.(*syntax.LoopExpr)
	require.True(t, ok)
}

func TestParseSwitch(t *testing.T) {
	_, f := parseOne(t, `switch x { 1 => "one", _ => "other" }`)
	sw, ok := f.Stmts[0].X.(*syntax.SwitchExpr)
	require.True(t, ok)
	require.Len(t, sw.Arms, 2)
	require.Nil(t, sw.Arms[1].Pattern)
}

func TestParseImport(t *testing.T) {
	_, f := parseOne(t, `import "math" as m;`)
	imp, ok := f.Stmts[0].X.(*syntax.ImportExpr)
	require.True(t, ok)
	require.Equal(t, "math", imp.Path.Str)
	require.Equal(t, "m", imp.As.Name)
}

func TestParseDocComments(t *testing.T) {
	_, f := parseOne(t, "/// does a thing\n/// more detail\nfn f() {}")
	require.Len(t, f.Stmts, 1)
	require.Equal(t, []string{" does a thing", " more detail"}, f.Stmts[0].Docs)
}

func TestParseErrorRecoveryContinues(t *testing.T) {
	fset := token.NewFileSet()
	f, err := parser.ParseSource(fset, "test.rhai", []byte("let = ; let y = 2;"))
	require.Error(t, err)
	require.NotNil(t, f)
}

func TestPrinterOutputsIndentedTree(t *testing.T) {
	fset, f := parseOne(t, "let x = 1;")
	var buf bytes.Buffer
	p := &syntax.Printer{Output: &buf, Pos: token.PosNone, File: fset.File(f.Stmts[0].X.(*syntax.LetExpr).Let)}
	require.NoError(t, p.Print(f))
	require.Contains(t, buf.String(), "let x")
}
