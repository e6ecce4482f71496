package maincmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mna/mainer"
	"github.com/tamasfe/rhai-hir-go/hir"
	"github.com/tamasfe/rhai-hir-go/lang/parser"
	"github.com/tamasfe/rhai-hir-go/lang/scanner"
)

func (c *Cmd) Visible(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return VisibleFiles(ctx, stdio, args...)
}

// VisibleFiles builds the HIR for each of files and, for every reference
// symbol in the module, prints the ordered list of declaration names
// visible from it (in resolution order), exercising VisibleSymbolsFromSymbol
// directly rather than through reference resolution.
func VisibleFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	_, chunks, perr := parser.ParseFiles(ctx, files...)
	if perr != nil {
		scanner.PrintError(stdio.Stderr, perr)
		return perr
	}

	for i, ch := range chunks {
		name := filepath.Base(files[i])
		m := hir.Build(name, ch)
		if m == nil {
			continue
		}

		fmt.Fprintf(stdio.Stdout, "module %s\n", m.Name)
		m.Symbols.Each(func(h uint32, sym hir.Symbol) bool {
			ref, ok := sym.Kind.(*hir.ReferenceSymbol)
			if !ok {
				return true
			}
			fmt.Fprintf(stdio.Stdout, "reference %d (%s): ", h, ref.Name)
			first := true
			hir.VisibleSymbolsFromSymbol(m, hir.SymbolHandle(h), func(cand hir.SymbolHandle) bool {
				var name string
				switch k := m.Symbol(cand).Kind.(type) {
				case *hir.DeclSymbol:
					name = k.Name
				case *hir.FnSymbol:
					name = k.Name
				default:
					return true
				}
				if !first {
					fmt.Fprint(stdio.Stdout, ", ")
				}
				first = false
				fmt.Fprint(stdio.Stdout, name)
				return true
			})
			fmt.Fprintln(stdio.Stdout)
			return true
		})
	}
	return nil
}
