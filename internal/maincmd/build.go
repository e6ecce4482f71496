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

func (c *Cmd) Build(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return BuildFiles(ctx, stdio, c.posMode(), args...)
}

// BuildFiles parses and lowers each of files to HIR independently, printing
// the resulting symbol and scope arenas. One module is built per file, named
// after its base filename.
func BuildFiles(ctx context.Context, stdio mainer.Stdio, posMode token.PosMode, files ...string) error {
	fset, chunks, perr := parser.ParseFiles(ctx, files...)
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
		dumpModule(stdio.Stdout, fset, m, posMode)
	}
	return nil
}
