// Package syntax defines the concrete syntax tree (CST) produced by
// lang/parser from a token stream: one node type per surface-grammar
// production, each reporting its own source Span and accepting a Visitor.
//
// The tree is quasi-lossless: it keeps every expression and statement that
// was written, including the un-flattened "if/else if/else" chain and
// right-associated structure that lang/parser builds directly off the
// grammar. Any normalization (such as flattening an if/else-if chain into a
// single list of arms) is the hir builder's job, not the parser's.
package syntax

import "github.com/tamasfe/rhai-hir-go/lang/token"

// Node is any node of the concrete syntax tree.
type Node interface {
	// Span reports the start and end position of the node.
	Span() (start, end token.Pos)

	// Walk enters each child node, in source order, to implement the visitor
	// pattern over the tree.
	Walk(v Visitor)
}

// Expr is an expression node. In this grammar almost every construct,
// including control flow, is an expression.
type Expr interface {
	Node
	exprNode()
}

// Rhai is the root of a parsed source file.
type Rhai struct {
	Name  string // file name, may be empty
	Stmts []*Stmt
	EOF   token.Pos
}

func (n *Rhai) Span() (start, end token.Pos) {
	if len(n.Stmts) > 0 {
		start, _ = n.Stmts[0].Span()
	} else {
		start = n.EOF
	}
	return start, n.EOF
}

func (n *Rhai) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}

// Stmt wraps a single top-level or block-level expression together with the
// doc comments (consecutive "///" lines) that immediately precede it.
type Stmt struct {
	Docs []string // decoded text of each "///" line, in source order
	X    Expr
	Semi token.Pos // position of the trailing ';', or token.NoPos if elided
}

func (n *Stmt) Span() (start, end token.Pos) {
	start, end = n.X.Span()
	if n.Semi.IsValid() {
		end = n.Semi + 1
	}
	return start, end
}

func (n *Stmt) Walk(v Visitor) {
	Walk(v, n.X)
}
