package scanner

import (
	"testing"

	"github.com/tamasfe/rhai-hir-go/lang/token"
)

func scanAll(t *testing.T, src string) ([]token.Token, []token.Value, []string) {
	t.Helper()

	var (
		s       Scanner
		val     token.Value
		toks    []token.Token
		vals    []token.Value
		errMsgs []string
	)
	fs := token.NewFileSet()
	f := fs.AddFile("test.rhai", len(src))
	s.Init(f, []byte(src), func(pos token.Position, msg string) {
		errMsgs = append(errMsgs, msg)
	})
	for {
		tok := s.Scan(&val)
		toks = append(toks, tok)
		vals = append(vals, val)
		if tok == token.EOF {
			break
		}
	}
	return toks, vals, errMsgs
}

func TestScanKeywordsAndIdents(t *testing.T) {
	toks, vals, errs := scanAll(t, "let x = foo_bar;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []token.Token{token.LET, token.IDENT, token.EQ, token.IDENT, token.SEMI, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, tok := range want {
		if toks[i] != tok {
			t.Errorf("token %d: got %s, want %s", i, toks[i], tok)
		}
	}
	if vals[1].Raw != "x" || vals[3].Raw != "foo_bar" {
		t.Errorf("unexpected identifier values: %+v", vals)
	}
}

func TestScanNumbers(t *testing.T) {
	cases := []struct {
		src      string
		tok      token.Token
		intVal   int64
		floatVal float64
	}{
		{"123", token.INT, 123, 0},
		{"0x1F", token.INT, 31, 0},
		{"0o17", token.INT, 15, 0},
		{"0b101", token.INT, 5, 0},
		{"1_000", token.INT, 1000, 0},
		{"1.5", token.FLOAT, 0, 1.5},
		{"1.5e2", token.FLOAT, 0, 150},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			toks, vals, errs := scanAll(t, c.src)
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if toks[0] != c.tok {
				t.Fatalf("got %s, want %s", toks[0], c.tok)
			}
			if c.tok == token.INT && vals[0].Int != c.intVal {
				t.Errorf("got int %d, want %d", vals[0].Int, c.intVal)
			}
			if c.tok == token.FLOAT && vals[0].Float != c.floatVal {
				t.Errorf("got float %v, want %v", vals[0].Float, c.floatVal)
			}
		})
	}
}

func TestScanStringsAndChars(t *testing.T) {
	toks, vals, errs := scanAll(t, `"hello\nworld" 'a'`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0] != token.STRING || vals[0].String != "hello\nworld" {
		t.Errorf("string literal: got %v", vals[0])
	}
	if toks[1] != token.CHAR || vals[1].String != "a" {
		t.Errorf("char literal: got %v", vals[1])
	}
}

func TestScanUnterminatedString(t *testing.T) {
	_, _, errs := scanAll(t, `"no closing quote`)
	if len(errs) == 0 {
		t.Fatalf("expected an error for unterminated string")
	}
}

func TestScanComments(t *testing.T) {
	toks, vals, errs := scanAll(t, "// line comment\n/// doc comment\n/* block */let")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0] != token.COMMENT || vals[0].String != " line comment" {
		t.Errorf("line comment: got %q", vals[0].String)
	}
	if toks[1] != token.COMMENT || vals[1].Raw != "/// doc comment" {
		t.Errorf("doc comment: got %q", vals[1].Raw)
	}
	if toks[2] != token.COMMENT {
		t.Errorf("block comment: got %s", toks[2])
	}
	if toks[3] != token.LET {
		t.Errorf("expected LET after comments, got %s", toks[3])
	}
}

func TestScanOperators(t *testing.T) {
	toks, _, errs := scanAll(t, "&& || == != <= >= << >> ** => :: ..= #{")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []token.Token{
		token.ANDAND, token.OROR, token.EQEQ, token.NEQ, token.LE, token.GE,
		token.LTLT, token.GTGT, token.STARSTAR, token.ARROW, token.COLONCOLON,
		token.DOTDOTEQ, token.HASHBRACE, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, tok := range want {
		if toks[i] != tok {
			t.Errorf("token %d: got %s, want %s", i, toks[i], tok)
		}
	}
}

func TestScanIllegalCharacter(t *testing.T) {
	toks, _, errs := scanAll(t, "@")
	if len(errs) == 0 {
		t.Fatalf("expected an error for illegal character")
	}
	if toks[0] != token.ILLEGAL {
		t.Errorf("got %s, want ILLEGAL", toks[0])
	}
}
