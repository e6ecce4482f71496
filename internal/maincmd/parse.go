package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/tamasfe/rhai-hir-go/lang/parser"
	"github.com/tamasfe/rhai-hir-go/lang/scanner"
	"github.com/tamasfe/rhai-hir-go/lang/syntax"
	"github.com/tamasfe/rhai-hir-go/lang/token"
)

func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(ctx, stdio, c.posMode(), args...)
}

func ParseFiles(ctx context.Context, stdio mainer.Stdio, posMode token.PosMode, files ...string) error {
	fs, chunks, err := parser.ParseFiles(ctx, files...)
	for _, ch := range chunks {
		start, _ := ch.Span()
		printer := syntax.Printer{Output: stdio.Stdout, Pos: posMode, File: fs.File(start)}
		if perr := printer.Print(ch); perr != nil {
			fmt.Fprintln(stdio.Stderr, perr)
			return perr
		}
	}
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
	}
	return err
}
