package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		if tok.String() == "" {
			t.Errorf("missing string representation of token %d", tok)
		}
	}
}

func TestLookupKw(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		expect := tok > kwStart && tok < kwEnd
		val := LookupKw(tok.GoString())
		if expect {
			require.Equal(t, tok, val)
		} else if tok != UNDERSCORE {
			require.Equal(t, IDENT, val)
		}
	}
}

func TestLookupPunct(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		expect := tok > punctStart && tok < punctEnd
		val := LookupPunct(tok.String())
		if expect {
			require.Equal(t, tok, val)
		}
	}
}

func TestIsAugBinop(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		expect := tok > augopStart && tok < augopEnd
		require.Equal(t, expect, tok.IsAugBinop())
	}
}

func TestLiteral(t *testing.T) {
	val := Value{
		Raw:    "ident",
		String: "string",
		Int:    1,
		Float:  2,
	}

	require.Equal(t, val.Raw, IDENT.Literal(val))
	require.Equal(t, `"string"`, STRING.Literal(val))
	require.Equal(t, `'string'`, CHAR.Literal(val))
	require.Equal(t, val.String, COMMENT.Literal(val))
	require.Equal(t, "ident", INT.Literal(val))
	require.Equal(t, "", ILLEGAL.Literal(val))
}
