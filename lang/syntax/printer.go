package syntax

import (
	"fmt"
	"io"

	"github.com/tamasfe/rhai-hir-go/lang/token"
)

// Printer pretty-prints a syntax tree as an indented, one-node-per-line
// listing, primarily for the "parse" CLI subcommand and for tests.
type Printer struct {
	Output io.Writer
	Pos    token.PosMode
	File   *token.File
}

// Print writes a debug dump of n (and its descendants) to p.Output.
func (p *Printer) Print(n Node) error {
	pp := &printer{w: p.Output, pos: p.Pos, file: p.File}
	Walk(pp, n)
	return pp.err
}

type printer struct {
	w     io.Writer
	pos   token.PosMode
	file  *token.File
	depth int
	err   error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}
	p.print(n, p.depth)
	p.depth++
	return p
}

func (p *printer) print(n Node, indent int) {
	if p.err != nil {
		return
	}
	prefix := ""
	for i := 0; i < indent; i++ {
		prefix += ". "
	}
	posStr := ""
	if p.pos != token.PosNone {
		start, end := n.Span()
		posStr = fmt.Sprintf("[%s:%s] ",
			token.FormatPos(p.pos, p.file, start, true),
			token.FormatPos(p.pos, p.file, end, false))
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s%s\n", prefix, posStr, describe(n))
}

// describe renders a short, single-line label for n, used by Printer.
func describe(n Node) string {
	switch n := n.(type) {
	case *Rhai:
		return "rhai"
	case *Stmt:
		return "stmt"
	case *IdentExpr:
		return "ident " + n.Name
	case *PathExpr:
		return "path"
	case *LitExpr:
		return "lit " + n.Raw
	case *LetExpr:
		return "let " + n.Name.Name
	case *ConstExpr:
		return "const " + n.Name.Name
	case *BlockExpr:
		return "block"
	case *UnaryExpr:
		return "unary"
	case *BinaryExpr:
		return "binary"
	case *ParenExpr:
		return "paren"
	case *ArrayExpr:
		return "array"
	case *IndexExpr:
		return "index"
	case *FieldExpr:
		return "field " + n.Name.Name
	case *ObjectExpr:
		return "object"
	case *CallExpr:
		return "call"
	case *ClosureExpr:
		return "closure"
	case *IfExpr:
		return "if"
	case *LoopExpr:
		return "loop"
	case *ForExpr:
		return "for " + n.Var.Name
	case *WhileExpr:
		return "while"
	case *BreakExpr:
		return "break"
	case *ContinueExpr:
		return "continue"
	case *ReturnExpr:
		return "return"
	case *SwitchExpr:
		return "switch"
	case *FnExpr:
		return "fn " + n.Name.Name
	case *ImportExpr:
		if n.As != nil {
			return "import as " + n.As.Name
		}
		return "import"
	default:
		return fmt.Sprintf("%T", n)
	}
}
