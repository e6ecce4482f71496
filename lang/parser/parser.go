// Package parser implements the recursive-descent, precedence-climbing
// parser that transforms a token stream into a lang/syntax concrete syntax
// tree.
package parser

import (
	"context"
	"errors"
	gotoken "go/token"
	"os"
	"strings"

	"github.com/tamasfe/rhai-hir-go/lang/scanner"
	"github.com/tamasfe/rhai-hir-go/lang/syntax"
	"github.com/tamasfe/rhai-hir-go/lang/token"
)

// ParseFiles parses the given source files and returns the FileSet needed to
// decode positions, one *syntax.Rhai per file, and any error encountered.
// The error, if non-nil, is guaranteed to be a scanner.ErrorList.
func ParseFiles(ctx context.Context, files ...string) (*token.FileSet, []*syntax.Rhai, error) {
	if len(files) == 0 {
		return nil, nil, nil
	}

	var p parser
	fs := token.NewFileSet()
	res := make([]*syntax.Rhai, 0, len(files))

	for _, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			p.errors.Add(gotoken.Position{Filename: file}, err.Error())
			continue
		}
		p.init(fs, file, b)
		res = append(res, p.parseRhai(file))
	}
	p.errors.Sort()
	return fs, res, p.errors.Err()
}

// ParseSource parses a single in-memory source under the given name and adds
// it to fset. The error, if non-nil, is guaranteed to be a scanner.ErrorList.
func ParseSource(fset *token.FileSet, filename string, src []byte) (*syntax.Rhai, error) {
	var p parser
	p.init(fset, filename, src)
	return p.parseRhai(filename), p.errors.Err()
}

type parser struct {
	scanner scanner.Scanner
	errors  scanner.ErrorList
	file    *token.File

	tok  token.Token
	val  token.Value
	docs []string // "///" doc comments skipped just before tok
}

func (p *parser) init(fset *token.FileSet, filename string, src []byte) {
	p.file = fset.AddFile(filename, len(src))
	p.scanner.Init(p.file, src, func(pos token.Position, msg string) { p.errors.Add(gotoken.Position(pos), msg) })
	p.advance()
}

// advance scans the next non-comment token. The decoded text of any "///"
// doc comments skipped on the way is kept for collectDocs instead of being
// silently dropped.
func (p *parser) advance() {
	p.docs = nil
	p.tok = p.scanner.Scan(&p.val)
	for p.tok == token.COMMENT {
		if strings.HasPrefix(p.val.Raw, "///") {
			p.docs = append(p.docs, strings.TrimPrefix(p.val.String, "/"))
		}
		p.tok = p.scanner.Scan(&p.val)
	}
}

// collectDocs returns the decoded text, in source order, of the "///" doc
// comments that immediately precede the current token.
func (p *parser) collectDocs() []string {
	docs := p.docs
	p.docs = nil
	return docs
}

var errPanicMode = errors.New("panic mode")

func (p *parser) error(pos token.Pos, msg string) {
	p.errors.Add(gotoken.Position(p.file.Position(pos)), msg)
}

func (p *parser) errorExpected(pos token.Pos, what string) {
	msg := "expected " + what
	if pos == p.val.Pos {
		if lit := p.tok.Literal(p.val); lit != "" {
			msg += ", found " + lit
		} else {
			msg += ", found " + p.tok.GoString()
		}
	}
	p.error(pos, msg)
}

// expect consumes the current token if it matches tok, else records an error
// and panics with errPanicMode (recovered at the statement level).
func (p *parser) expect(tok token.Token) token.Pos {
	pos := p.val.Pos
	if p.tok != tok {
		p.errorExpected(pos, tok.GoString())
		panic(errPanicMode)
	}
	p.advance()
	return pos
}

// parseRhai parses a whole source file.
func (p *parser) parseRhai(name string) *syntax.Rhai {
	r := &syntax.Rhai{Name: name}
	for p.tok != token.EOF {
		if s := p.parseStmtRecovering(); s != nil {
			r.Stmts = append(r.Stmts, s)
		}
	}
	r.EOF = p.val.Pos
	return r
}

func (p *parser) parseStmtRecovering() (s *syntax.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanicMode {
				panic(r)
			}
			p.syncToStmtBoundary()
			s = nil
		}
	}()
	return p.parseStmt()
}

// syncToStmtBoundary advances past tokens until a likely statement boundary,
// to let parsing continue after an error without cascading failures.
func (p *parser) syncToStmtBoundary() {
	for p.tok != token.EOF && p.tok != token.SEMI && p.tok != token.RBRACE {
		p.advance()
	}
	if p.tok == token.SEMI {
		p.advance()
	}
}

func (p *parser) parseStmt() *syntax.Stmt {
	docs := p.collectDocs()
	x := p.parseExpr()

	var semi token.Pos
	if p.tok == token.SEMI {
		semi = p.val.Pos
		p.advance()
	}
	return &syntax.Stmt{Docs: docs, X: x, Semi: semi}
}

func (p *parser) parseBlock() *syntax.BlockExpr {
	lbrace := p.expect(token.LBRACE)
	var stmts []*syntax.Stmt
	for p.tok != token.RBRACE && p.tok != token.EOF {
		if s := p.parseStmtRecovering(); s != nil {
			stmts = append(stmts, s)
		}
	}
	rbrace := p.expect(token.RBRACE)
	return &syntax.BlockExpr{Lbrace: lbrace, Stmts: stmts, Rbrace: rbrace}
}

func (p *parser) parseIdent() *syntax.IdentExpr {
	pos := p.val.Pos
	name := p.val.Raw
	p.expect(token.IDENT)
	return &syntax.IdentExpr{Name: name, Pos: pos}
}
