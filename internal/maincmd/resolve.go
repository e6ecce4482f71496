package maincmd

import (
	"context"
	"path/filepath"

	"github.com/mna/mainer"
	"github.com/tamasfe/rhai-hir-go/hir"
	"github.com/tamasfe/rhai-hir-go/lang/parser"
	"github.com/tamasfe/rhai-hir-go/lang/scanner"
	"github.com/tamasfe/rhai-hir-go/lang/token"
)

func (c *Cmd) Resolve(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ResolveFiles(ctx, stdio, c.posMode(), args...)
}

// ResolveFiles builds and resolves the HIR for each of files, printing the
// symbol and scope arenas with every reference's resolved target inlined
// (see describeSymbol).
func ResolveFiles(ctx context.Context, stdio mainer.Stdio, posMode token.PosMode, files ...string) error {
	fset, chunks, perr := parser.ParseFiles(ctx, files...)
	if perr != nil {
		// cannot resolve HIR if parsing has errors
		scanner.PrintError(stdio.Stderr, perr)
		return perr
	}

	for i, ch := range chunks {
		name := filepath.Base(files[i])
		m := hir.Build(name, ch)
		if m == nil {
			continue
		}
		m.Resolve()
		dumpModule(stdio.Stdout, fset, m, posMode)
	}
	return nil
}
