// The overall structure of this scanner (rune-at-a-time Scanner with an
// advance/peek pair and a pluggable error handler) is adapted from the Go
// source code:
// https://cs.opensource.google/go/go/+/refs/tags/go1.22.1:src/go/scanner/scanner.go
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package scanner

import (
	"bytes"
	"context"
	"fmt"
	"go/scanner"
	gotoken "go/token"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tamasfe/rhai-hir-go/lang/token"
)

type (
	Error     = scanner.Error
	ErrorList = scanner.ErrorList
)

var PrintError = scanner.PrintError

// TokenAndValue combines the token type with the token value in the same
// struct, as produced by Scan.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanFiles tokenizes the given source files and returns the resulting
// FileSet (needed to decode the Pos values in the returned tokens) together
// with one token slice per file. The returned error, if non-nil, is ctx.Err()
// when ctx is cancelled, or else an ErrorList that collects every lexical
// error found across all files; scanning does not stop at the first error.
func ScanFiles(ctx context.Context, files ...string) (*token.FileSet, [][]TokenAndValue, error) {
	if len(files) == 0 {
		return nil, nil, nil
	}

	var (
		s      Scanner
		tokVal token.Value
		el     ErrorList
	)

	fs := token.NewFileSet()
	tokensByFile := make([][]TokenAndValue, len(files))
	for i, file := range files {
		if ctx.Err() != nil {
			return fs, tokensByFile, ctx.Err()
		}

		b, err := os.ReadFile(file)
		if err != nil {
			el.Add(gotoken.Position{Filename: file}, err.Error())
			continue
		}

		f := fs.AddFile(file, len(b))
		s.Init(f, b, func(pos token.Position, msg string) { el.Add(gotoken.Position(pos), msg) })
		for {
			tok := s.Scan(&tokVal)
			tokensByFile[i] = append(tokensByFile[i], TokenAndValue{Token: tok, Value: tokVal})
			if tok == token.EOF {
				break
			}
		}
	}
	el.Sort()
	return fs, tokensByFile, el.Err()
}

// Scanner tokenizes a single source file for the parser to consume.
type Scanner struct {
	// immutable state after Init
	file *token.File
	src  []byte
	err  func(pos token.Position, msg string)

	// mutable scanning state
	sb               strings.Builder
	pendingSurrogate rune // first half of a pending UTF-16 surrogate pair in a string literal
	cur              rune // current character, -1 at EOF
	off              int  // byte offset of cur
	roff             int  // byte offset just past cur
}

var bom = [3]byte{0xEF, 0xBB, 0xBF}

// Init initializes the scanner to tokenize a new file. It panics if the
// file's recorded size does not match len(src).
func (s *Scanner) Init(file *token.File, src []byte, errHandler func(token.Position, string)) {
	if file.Size() != len(src) {
		panic("token.File size does not match src length")
	}

	s.file = file
	s.src = src
	s.err = errHandler

	s.sb.Reset()
	s.pendingSurrogate = 0
	s.cur = ' '
	s.off = 0
	s.roff = 0

	if len(src) >= len(bom) && bytes.Equal(src[:len(bom)], bom[:]) {
		s.off += len(bom)
		s.roff += len(bom)
	}
	s.advance()
}

func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

func (s *Scanner) advance() {
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		if s.cur == '\n' {
			s.file.AddLine(s.off)
		}
		s.cur = -1
		return
	}

	s.off = s.roff
	if s.cur == '\n' {
		s.file.AddLine(s.off)
	}

	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.off, "illegal UTF-8 encoding")
		}
	}
	s.roff += w
	s.cur = r
}

func (s *Scanner) error(off int, msg string) {
	if s.err != nil {
		s.err(s.file.Position(s.file.Pos(off)), msg)
	}
}

func (s *Scanner) errorf(off int, format string, args ...any) {
	s.error(off, fmt.Sprintf(format, args...))
}

func (s *Scanner) advanceIf(matches ...byte) bool {
	if bytes.ContainsRune(matches, s.cur) {
		s.advance()
		return true
	}
	return false
}

// Scan returns the next token in the source file, filling tokVal with its
// value. At end of file it repeatedly returns token.EOF.
func (s *Scanner) Scan(tokVal *token.Value) (tok token.Token) {
	s.skipWhitespace()

	pos := s.file.Pos(s.off)
	start := s.off

	switch cur := s.cur; {
	case isLetter(cur):
		lit := s.ident()
		tok = token.LookupKw(lit)
		*tokVal = token.Value{Raw: lit, Pos: pos}

	case isDecimal(cur) || (cur == '.' && isDecimal(rune(s.peek()))):
		var base int
		var lit string
		tok, base, lit = s.number()
		*tokVal = token.Value{Raw: lit, Pos: pos}
		if tok == token.INT {
			v, err := numberToInt(lit, base)
			if err != nil {
				s.error(start, "integer literal value out of range")
			}
			tokVal.Int = v
		} else if tok == token.FLOAT {
			v, err := numberToFloat(lit)
			if err != nil {
				s.error(start, "float literal value out of range")
			}
			tokVal.Float = v
		}

	default:
		s.advance() // always make progress
		switch cur {
		case '=':
			tok = token.EQ
			if s.advanceIf('=') {
				tok = token.EQEQ
			} else if s.advanceIf('>') {
				tok = token.ARROW
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '"':
			tok = token.STRING
			lit, val := s.shortString('"')
			*tokVal = token.Value{Raw: lit, Pos: pos, String: val}

		case '\'':
			tok = token.CHAR
			lit, val := s.shortString('\'')
			*tokVal = token.Value{Raw: lit, Pos: pos, String: val}

		case '#':
			tok = token.LookupPunct("#")
			if s.advanceIf('{') {
				tok = token.HASHBRACE
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '(', ')', ',', '{', '}', '[', ']', ';', '~', '?':
			tok = token.LookupPunct(string(cur))
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '+', '%', '^':
			if s.advanceIf('=') {
				tok = token.LookupPunct(string(s.src[start:s.off]))
			} else {
				tok = token.LookupPunct(string(cur))
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '&':
			tok = token.AMPERSAND
			if s.advanceIf('&') {
				tok = token.ANDAND
			} else if s.advanceIf('=') {
				tok = token.AMP_EQ
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '|':
			tok = token.PIPE
			if s.advanceIf('|') {
				tok = token.OROR
			} else if s.advanceIf('=') {
				tok = token.PIPE_EQ
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '!':
			tok = token.BANG
			if s.advanceIf('=') {
				tok = token.NEQ
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '-':
			tok = token.MINUS
			if s.advanceIf('=') {
				tok = token.MINUS_EQ
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '/':
			switch {
			case s.advanceIf('/'):
				tok = token.COMMENT
				lit, val := s.lineComment()
				*tokVal = token.Value{Raw: lit, Pos: pos, String: val}
			case s.advanceIf('*'):
				tok = token.COMMENT
				lit, val := s.blockComment()
				*tokVal = token.Value{Raw: lit, Pos: pos, String: val}
			case s.advanceIf('='):
				tok = token.SLASH_EQ
				*tokVal = token.Value{Raw: tok.String(), Pos: pos}
			default:
				tok = token.SLASH
				*tokVal = token.Value{Raw: tok.String(), Pos: pos}
			}

		case '<':
			tok = token.LT
			if s.advanceIf('<') {
				tok = token.LTLT
				if s.advanceIf('=') {
					tok = token.LTLT_EQ
				}
			} else if s.advanceIf('=') {
				tok = token.LE
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '>':
			tok = token.GT
			if s.advanceIf('>') {
				tok = token.GTGT
				if s.advanceIf('=') {
					tok = token.GTGT_EQ
				}
			} else if s.advanceIf('=') {
				tok = token.GE
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case ':':
			tok = token.COLON
			if s.advanceIf(':') {
				tok = token.COLONCOLON
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '.':
			tok = token.DOT
			if s.advanceIf('.') {
				tok = token.DOTDOT
				if s.advanceIf('=') {
					tok = token.DOTDOTEQ
				}
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '*':
			tok = token.STAR
			if s.advanceIf('*') {
				tok = token.STARSTAR
			} else if s.advanceIf('=') {
				tok = token.STAR_EQ
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case -1:
			tok = token.EOF
			*tokVal = token.Value{Raw: "", Pos: pos}

		default:
			s.errorf(start, "illegal character %#U", cur)
			tok = token.ILLEGAL
			*tokVal = token.Value{Raw: string(cur), Pos: pos}
		}
	}
	return tok
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.cur) {
		s.advance()
	}
}

func (s *Scanner) lineComment() (lit, val string) {
	start := s.off - 2 // back up over the consumed "//"
	for s.cur != '\n' && s.cur != -1 {
		s.advance()
	}
	return string(s.src[start:s.off]), string(s.src[start+2 : s.off])
}

func (s *Scanner) blockComment() (lit, val string) {
	start := s.off - 2 // back up over the consumed "/*"
	for {
		if s.cur == -1 {
			s.error(start, "block comment not terminated")
			break
		}
		if s.cur == '*' && s.peek() == '/' {
			s.advance()
			s.advance()
			break
		}
		s.advance()
	}
	raw := string(s.src[start:s.off])
	val = strings.TrimSuffix(strings.TrimPrefix(raw, "/*"), "*/")
	return raw, val
}

func (s *Scanner) shortString(opening rune) (lit, decoded string) {
	startOff := s.off - 1 // opening quote already consumed
	s.sb.Reset()
	s.pendingSurrogate = 0

	for {
		cur := s.cur
		if cur == '\n' || cur < 0 {
			s.error(startOff, "string literal not terminated")
			break
		}
		s.advance()
		if cur == opening {
			break
		}
		if cur == '\\' {
			s.escape()
		} else {
			s.writeStringLitRune(cur)
		}
	}
	if s.pendingSurrogate != 0 {
		s.sb.WriteRune(utf8.RuneError)
	}
	return string(s.src[startOff:s.off]), s.sb.String()
}

var simpleEscapes = map[rune]rune{
	'a': '\a', 'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t', 'v': '\v',
	'\\': '\\', '\'': '\'', '"': '"',
}

func (s *Scanner) escape() {
	startOff := s.off - 1 // leading backslash already consumed

	if repl, ok := simpleEscapes[s.cur]; ok {
		s.advance()
		s.writeStringLitRune(repl)
		return
	}

	switch s.cur {
	case 'x':
		s.advance()
		var rn uint32
		for i := 0; i < 2; i++ {
			if !isHexadecimal(s.cur) {
				s.error(startOff, "escape sequence has too few hexadecimal digits")
				return
			}
			rn = rn*16 + uint32(digitVal(s.cur))
			s.advance()
		}
		s.writeStringLitRune(rune(rn))

	case 'u':
		s.advance()
		var rn uint32
		for i := 0; i < 4; i++ {
			if !isHexadecimal(s.cur) {
				s.error(startOff, "escape sequence has too few hexadecimal digits")
				return
			}
			rn = rn*16 + uint32(digitVal(s.cur))
			s.advance()
		}
		if utf16.IsSurrogate(rune(rn)) {
			s.writeStringLitSurrogate(rune(rn))
			return
		}
		s.writeStringLitRune(rune(rn))

	case '\n':
		s.advance() // line continuation: backslash-newline is elided

	default:
		msg := "unknown escape sequence"
		if s.cur < 0 {
			msg = "escape sequence not terminated"
		}
		s.error(startOff, msg)
	}
}

func (s *Scanner) writeStringLitRune(rn rune) {
	if s.pendingSurrogate != 0 {
		s.sb.WriteRune(utf8.RuneError)
		s.pendingSurrogate = 0
	}
	s.sb.WriteRune(rn)
}

func (s *Scanner) writeStringLitSurrogate(rn rune) {
	if s.pendingSurrogate == 0 {
		s.pendingSurrogate = rn
	} else {
		s.sb.WriteRune(utf16.DecodeRune(s.pendingSurrogate, rn))
		s.pendingSurrogate = 0
	}
}

func digitVal(rn rune) int {
	switch {
	case '0' <= rn && rn <= '9':
		return int(rn - '0')
	case 'a' <= rn && rn <= 'f':
		return int(rn - 'a' + 10)
	case 'A' <= rn && rn <= 'F':
		return int(rn - 'A' + 10)
	}
	return 16
}

func isWhitespace(rn rune) bool {
	return rn == ' ' || rn == '\t' || rn == '\n' || rn == '\r'
}

func isLetter(rn rune) bool {
	return 'a' <= rn && rn <= 'z' ||
		'A' <= rn && rn <= 'Z' ||
		rn == '_' ||
		rn >= utf8.RuneSelf && unicode.IsLetter(rn)
}

func isDigit(rn rune) bool {
	return '0' <= rn && rn <= '9' ||
		rn >= utf8.RuneSelf && unicode.IsDigit(rn)
}

func isDecimal(rn rune) bool { return '0' <= rn && rn <= '9' }

func isHexadecimal(rn rune) bool {
	return isDecimal(rn) || 'a' <= rn && rn <= 'f' || 'A' <= rn && rn <= 'F'
}

func numberToInt(lit string, base int) (int64, error) {
	clean := strings.ReplaceAll(lit, "_", "")
	if base != 10 {
		clean = clean[2:]
	}
	return strconv.ParseInt(clean, base, 64)
}

func numberToFloat(lit string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(lit, "_", ""), 64)
}
