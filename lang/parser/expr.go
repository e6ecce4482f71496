package parser

import (
	"github.com/tamasfe/rhai-hir-go/lang/syntax"
	"github.com/tamasfe/rhai-hir-go/lang/token"
)

// binPrec maps a binary operator token to its precedence; higher binds
// tighter. Assignment is right-associative and binds loosest.
var binPrec = map[token.Token]int{
	token.EQ:        1,
	token.OROR:      2,
	token.ANDAND:    3,
	token.PIPE:      4,
	token.CARET:     5,
	token.AMPERSAND: 6,
	token.EQEQ:      7,
	token.NEQ:       7,
	token.LT:        7,
	token.GT:        7,
	token.LE:        7,
	token.GE:        7,
	token.LTLT:      8,
	token.GTGT:      8,
	token.PLUS:      9,
	token.MINUS:     9,
	token.STAR:      10,
	token.SLASH:     10,
	token.PERCENT:   10,
}

var binOpKind = map[token.Token]syntax.BinaryOp{
	token.PLUS:      syntax.BinAdd,
	token.MINUS:     syntax.BinSub,
	token.STAR:      syntax.BinMul,
	token.SLASH:     syntax.BinDiv,
	token.PERCENT:   syntax.BinMod,
	token.EQEQ:      syntax.BinEq,
	token.NEQ:       syntax.BinNeq,
	token.LT:        syntax.BinLt,
	token.GT:        syntax.BinGt,
	token.LE:        syntax.BinLe,
	token.GE:        syntax.BinGe,
	token.ANDAND:    syntax.BinAnd,
	token.OROR:      syntax.BinOr,
	token.AMPERSAND: syntax.BinBitAnd,
	token.PIPE:      syntax.BinBitOr,
	token.CARET:     syntax.BinBitXor,
	token.LTLT:      syntax.BinShl,
	token.GTGT:      syntax.BinShr,
	token.EQ:        syntax.BinAssign,
}

func (p *parser) parseExpr() syntax.Expr {
	return p.parseBinary(1)
}

// parseBinary implements precedence climbing: parse a unary expression, then
// repeatedly consume infix operators whose precedence is >= minPrec.
func (p *parser) parseBinary(minPrec int) syntax.Expr {
	x := p.parseUnary()
	for {
		prec, ok := binPrec[p.tok]
		if !ok || prec < minPrec {
			return x
		}
		opTok := p.tok
		opPos := p.val.Pos
		p.advance()

		nextMin := prec + 1
		if opTok == token.EQ { // right-associative
			nextMin = prec
		}
		y := p.parseBinary(nextMin)
		x = &syntax.BinaryExpr{X: x, OpPos: opPos, Op: binOpKind[opTok], Y: y}
	}
}

var unaryOpKind = map[token.Token]syntax.UnaryOp{
	token.MINUS: syntax.UnaryNeg,
	token.BANG:  syntax.UnaryNot,
	token.TILDE: syntax.UnaryBitNot,
}

func (p *parser) parseUnary() syntax.Expr {
	if op, ok := unaryOpKind[p.tok]; ok {
		pos := p.val.Pos
		p.advance()
		return &syntax.UnaryExpr{OpPos: pos, Op: op, X: p.parseUnary()}
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() syntax.Expr {
	x := p.parsePrimary()
	for {
		switch p.tok {
		case token.DOT:
			dot := p.val.Pos
			p.advance()
			name := p.parseIdent()
			x = &syntax.FieldExpr{X: x, Dot: dot, Name: name}
		case token.LBRACK:
			lbrack := p.val.Pos
			p.advance()
			idx := p.parseExpr()
			rbrack := p.expect(token.RBRACK)
			x = &syntax.IndexExpr{X: x, Lbrack: lbrack, Index: idx, Rbrack: rbrack}
		case token.LPAREN:
			x = p.parseCallArgs(x)
		default:
			return x
		}
	}
}

func (p *parser) parseCallArgs(callee syntax.Expr) syntax.Expr {
	call := &syntax.CallExpr{Callee: callee}
	call.Lparen = p.expect(token.LPAREN)
	for p.tok != token.RPAREN && p.tok != token.EOF {
		call.Args = append(call.Args, p.parseExpr())
		if p.tok != token.COMMA {
			break
		}
		p.advance()
	}
	call.Rparen = p.expect(token.RPAREN)
	return call
}

func (p *parser) parsePrimary() syntax.Expr {
	switch p.tok {
	case token.IDENT:
		id := p.parseIdent()
		if p.tok != token.COLONCOLON {
			return id
		}
		segs := []*syntax.IdentExpr{id}
		for p.tok == token.COLONCOLON {
			p.advance()
			segs = append(segs, p.parseIdent())
		}
		return &syntax.PathExpr{Segments: segs}

	case token.INT:
		pos, raw, v := p.val.Pos, p.val.Raw, p.val.Int
		p.advance()
		return &syntax.LitExpr{Kind: syntax.LitInt, Raw: raw, Start: pos, Int: v}

	case token.FLOAT:
		pos, raw, v := p.val.Pos, p.val.Raw, p.val.Float
		p.advance()
		return &syntax.LitExpr{Kind: syntax.LitFloat, Raw: raw, Start: pos, Float: v}

	case token.STRING:
		pos, raw, v := p.val.Pos, p.val.Raw, p.val.String
		p.advance()
		return &syntax.LitExpr{Kind: syntax.LitString, Raw: raw, Start: pos, Str: v}

	case token.CHAR:
		pos, raw, v := p.val.Pos, p.val.Raw, p.val.String
		p.advance()
		return &syntax.LitExpr{Kind: syntax.LitChar, Raw: raw, Start: pos, Str: v}

	case token.TRUE, token.FALSE:
		pos, raw, v := p.val.Pos, p.val.Raw, p.tok == token.TRUE
		p.advance()
		return &syntax.LitExpr{Kind: syntax.LitBool, Raw: raw, Start: pos, Bool: v}

	case token.LPAREN:
		lparen := p.val.Pos
		p.advance()
		x := p.parseExpr()
		rparen := p.expect(token.RPAREN)
		return &syntax.ParenExpr{Lparen: lparen, X: x, Rparen: rparen}

	case token.LBRACK:
		return p.parseArray()

	case token.HASHBRACE:
		return p.parseObject()

	case token.PIPE, token.OROR:
		return p.parseClosure()

	case token.LBRACE:
		return p.parseBlock()

	case token.LET:
		return p.parseLet()

	case token.CONST:
		return p.parseConst()

	case token.IF:
		return p.parseIf()

	case token.LOOP:
		return p.parseLoop()

	case token.FOR:
		return p.parseFor()

	case token.WHILE:
		return p.parseWhile()

	case token.BREAK:
		pos := p.val.Pos
		p.advance()
		var val syntax.Expr
		if p.tok != token.SEMI && p.tok != token.RBRACE && p.tok != token.EOF {
			val = p.parseExpr()
		}
		return &syntax.BreakExpr{Break: pos, Value: val}

	case token.CONTINUE:
		pos := p.val.Pos
		p.advance()
		return &syntax.ContinueExpr{Continue: pos}

	case token.RETURN:
		pos := p.val.Pos
		p.advance()
		var val syntax.Expr
		if p.tok != token.SEMI && p.tok != token.RBRACE && p.tok != token.EOF {
			val = p.parseExpr()
		}
		return &syntax.ReturnExpr{Return: pos, Value: val}

	case token.SWITCH:
		return p.parseSwitch()

	case token.FN:
		return p.parseFn()

	case token.IMPORT:
		return p.parseImport()

	default:
		pos := p.val.Pos
		p.errorExpected(pos, "expression")
		panic(errPanicMode)
	}
}

func (p *parser) parseArray() syntax.Expr {
	lbrack := p.expect(token.LBRACK)
	var elems []syntax.Expr
	for p.tok != token.RBRACK && p.tok != token.EOF {
		elems = append(elems, p.parseExpr())
		if p.tok != token.COMMA {
			break
		}
		p.advance()
	}
	rbrack := p.expect(token.RBRACK)
	return &syntax.ArrayExpr{Lbrack: lbrack, Elems: elems, Rbrack: rbrack}
}

func (p *parser) parseObject() syntax.Expr {
	hash := p.val.Pos
	p.expect(token.HASHBRACE)
	var fields []*syntax.ObjectField
	for p.tok != token.RBRACE && p.tok != token.EOF {
		name := p.parseIdent()
		colon := p.expect(token.COLON)
		val := p.parseExpr()
		fields = append(fields, &syntax.ObjectField{Name: name, Colon: colon, Value: val})
		if p.tok != token.COMMA {
			break
		}
		p.advance()
	}
	rbrace := p.expect(token.RBRACE)
	return &syntax.ObjectExpr{Hash: hash, Fields: fields, Rbrace: rbrace}
}

func (p *parser) parseClosure() syntax.Expr {
	lpipe := p.val.Pos
	var params []*syntax.IdentExpr
	if p.tok == token.OROR {
		p.advance() // empty parameter list spelled as "||"
	} else {
		p.expect(token.PIPE)
		for p.tok != token.PIPE && p.tok != token.EOF {
			params = append(params, p.parseIdent())
			if p.tok != token.COMMA {
				break
			}
			p.advance()
		}
		p.expect(token.PIPE)
	}
	body := p.parseExpr()
	return &syntax.ClosureExpr{Lpipe: lpipe, Params: params, Body: body}
}

func (p *parser) parseLet() syntax.Expr {
	letPos := p.expect(token.LET)
	name := p.parseIdent()
	var val syntax.Expr
	if p.tok == token.EQ {
		p.advance()
		val = p.parseExpr()
	}
	return &syntax.LetExpr{Let: letPos, Name: name, Value: val}
}

func (p *parser) parseConst() syntax.Expr {
	constPos := p.expect(token.CONST)
	name := p.parseIdent()
	p.expect(token.EQ)
	val := p.parseExpr()
	return &syntax.ConstExpr{Const: constPos, Name: name, Value: val}
}

func (p *parser) parseIf() *syntax.IfExpr {
	ifPos := p.expect(token.IF)
	cond := p.parseExpr()
	then := p.parseBlock()
	n := &syntax.IfExpr{If: ifPos, Cond: cond, Then: then}
	if p.tok == token.ELSE {
		p.advance()
		if p.tok == token.IF {
			n.Else = p.parseIf()
		} else {
			n.Else = p.parseBlock()
		}
	}
	return n
}

func (p *parser) parseLoop() syntax.Expr {
	pos := p.expect(token.LOOP)
	return &syntax.LoopExpr{Loop: pos, Body: p.parseBlock()}
}

func (p *parser) parseFor() syntax.Expr {
	pos := p.expect(token.FOR)
	v := p.parseIdent()
	p.expect(token.IN)
	iter := p.parseExpr()
	return &syntax.ForExpr{For: pos, Var: v, Iter: iter, Body: p.parseBlock()}
}

func (p *parser) parseWhile() syntax.Expr {
	pos := p.expect(token.WHILE)
	cond := p.parseExpr()
	return &syntax.WhileExpr{While: pos, Cond: cond, Body: p.parseBlock()}
}

func (p *parser) parseSwitch() syntax.Expr {
	pos := p.expect(token.SWITCH)
	val := p.parseExpr()
	p.expect(token.LBRACE)
	var arms []*syntax.SwitchArm
	for p.tok != token.RBRACE && p.tok != token.EOF {
		var pattern syntax.Expr
		if p.tok == token.UNDERSCORE {
			p.advance()
		} else {
			pattern = p.parseExpr()
		}
		arrow := p.expect(token.ARROW)
		value := p.parseExpr()
		arms = append(arms, &syntax.SwitchArm{Pattern: pattern, Arrow: arrow, Value: value})
		if p.tok != token.COMMA {
			break
		}
		p.advance()
	}
	rbrace := p.expect(token.RBRACE)
	return &syntax.SwitchExpr{Switch: pos, Value: val, Arms: arms, Rbrace: rbrace}
}

func (p *parser) parseFn() syntax.Expr {
	pos := p.expect(token.FN)
	name := p.parseIdent()
	lparen := p.expect(token.LPAREN)
	var params []*syntax.IdentExpr
	for p.tok != token.RPAREN && p.tok != token.EOF {
		params = append(params, p.parseIdent())
		if p.tok != token.COMMA {
			break
		}
		p.advance()
	}
	rparen := p.expect(token.RPAREN)
	body := p.parseBlock()
	return &syntax.FnExpr{Fn: pos, Name: name, Lparen: lparen, Params: params, Rparen: rparen, Body: body}
}

func (p *parser) parseImport() syntax.Expr {
	pos := p.expect(token.IMPORT)
	strPos, raw, val := p.val.Pos, p.val.Raw, p.val.String
	p.expect(token.STRING)
	path := &syntax.LitExpr{Kind: syntax.LitString, Raw: raw, Start: strPos, Str: val}
	var name *syntax.IdentExpr
	if p.tok == token.AS {
		p.advance()
		name = p.parseIdent()
	}
	return &syntax.ImportExpr{Import: pos, Path: path, As: name}
}
