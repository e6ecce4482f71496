package maincmd

import (
	"fmt"
	"io"

	"github.com/tamasfe/rhai-hir-go/hir"
	"github.com/tamasfe/rhai-hir-go/lang/token"
)

// dumpModule writes a flat, scope-by-scope listing of m's symbol and scope
// arenas to w. If fset/posMode is non-trivial, each symbol line is prefixed
// with its source span.
func dumpModule(w io.Writer, fset *token.FileSet, m *hir.Module, posMode token.PosMode) {
	fmt.Fprintf(w, "module %s (%d scopes, %d symbols, %d types)\n", m.Name, m.Scopes.Len(), m.Symbols.Len(), m.Types.Len())

	for i := 1; i <= m.Scopes.Len(); i++ {
		h := hir.ScopeHandle(i)
		sc := m.Scope(h)
		fmt.Fprintf(w, "scope %d (parent_symbol=%s)\n", i, handleStr(sc.ParentSymbol))

		sc.Hoisted.Each(func(sh hir.SymbolHandle) bool {
			printSymbolLine(w, fset, m, posMode, sh, "hoisted")
			return true
		})
		sc.Symbols.Each(func(sh hir.SymbolHandle) bool {
			printSymbolLine(w, fset, m, posMode, sh, "symbol")
			return true
		})
	}
}

func printSymbolLine(w io.Writer, fset *token.FileSet, m *hir.Module, posMode token.PosMode, h hir.SymbolHandle, section string) {
	sym := m.Symbol(h)
	posStr := ""
	if posMode != token.PosNone && fset != nil {
		start, end := sym.Syntax.Start, sym.Syntax.End
		posStr = fmt.Sprintf("[%s:%s] ", token.FormatPos(posMode, fset.File(start), start, true), token.FormatPos(posMode, fset.File(start), end, false))
	}
	fmt.Fprintf(w, "  %s %s%d: %s\n", section, posStr, uint32(h), describeSymbol(m, sym.Kind))
}

// describeSymbol renders a short, single-line label for k, mirroring
// lang/syntax's describe() for CST nodes.
func describeSymbol(m *hir.Module, k hir.SymbolKind) string {
	switch k := k.(type) {
	case *hir.ReferenceSymbol:
		target := "unresolved"
		if t, ok := k.Target.(hir.SymbolReferenceTarget); ok {
			target = fmt.Sprintf("-> %d", uint32(t.Symbol))
		}
		return fmt.Sprintf("reference %s (%s)", k.Name, target)
	case *hir.PathSymbol:
		return fmt.Sprintf("path (%d segments)", len(k.Segments))
	case *hir.LitSymbol:
		return "lit " + k.Raw
	case *hir.DeclSymbol:
		return fmt.Sprintf("decl %s (const=%v param=%v pat=%v)", k.Name, k.IsConst, k.IsParam, k.IsPat)
	case *hir.FnSymbol:
		return "fn " + k.Name
	case *hir.BlockSymbol:
		return "block"
	case *hir.UnarySymbol:
		return "unary"
	case *hir.BinarySymbol:
		return "binary"
	case *hir.ArraySymbol:
		return fmt.Sprintf("array (%d elements)", len(k.Values))
	case *hir.IndexSymbol:
		return "index"
	case *hir.ObjectSymbol:
		return fmt.Sprintf("object (%d fields)", k.Fields.Len())
	case *hir.CallSymbol:
		return fmt.Sprintf("call (%d args)", len(k.Arguments))
	case *hir.ClosureSymbol:
		return "closure"
	case *hir.IfSymbol:
		return fmt.Sprintf("if (%d branches)", len(k.Branches))
	case *hir.LoopSymbol:
		return "loop"
	case *hir.ForSymbol:
		return "for"
	case *hir.WhileSymbol:
		return "while"
	case *hir.BreakSymbol:
		return "break"
	case *hir.ContinueSymbol:
		return "continue"
	case *hir.ReturnSymbol:
		return "return"
	case *hir.SwitchSymbol:
		return fmt.Sprintf("switch (%d arms)", len(k.Arms))
	case *hir.DiscardSymbol:
		return "discard"
	case *hir.ImportSymbol:
		return "import"
	default:
		return fmt.Sprintf("%T", k)
	}
}

func handleStr(h hir.SymbolHandle) string {
	if !h.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d", uint32(h))
}
