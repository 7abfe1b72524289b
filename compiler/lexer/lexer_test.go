package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/hlc/compiler/token"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestTokenizeBasics(t *testing.T) {
	toks, diags := Tokenize([]byte(`int x = 1 + 2; # comment
print(x);`))
	require.Empty(t, diags)

	assert.Equal(t, []token.Kind{
		token.KwInt, token.Ident, token.Assign, token.IntLit, token.Plus, token.IntLit, token.Semicolon,
		token.Print, token.LParen, token.Ident, token.RParen, token.Semicolon,
		token.EOF,
	}, kinds(toks))
}

func TestTokenizeKeywordsAndLiterals(t *testing.T) {
	toks, diags := Tokenize([]byte(`fx endloop next elif true false "hi" 3.5`))
	require.Empty(t, diags)

	got := kinds(toks)
	want := []token.Kind{
		token.Fx, token.Endloop, token.Next, token.Elif,
		token.BoolLit, token.BoolLit, token.StringLit, token.FloatLit, token.EOF,
	}
	assert.Equal(t, want, got)
}

func TestBangIsNotSynonym(t *testing.T) {
	toks, diags := Tokenize([]byte(`!x != y`))
	require.Empty(t, diags)
	assert.Equal(t, []token.Kind{token.Not, token.Ident, token.NotEq, token.Ident, token.EOF}, kinds(toks))
}

func TestUnterminatedString(t *testing.T) {
	_, diags := Tokenize([]byte(`"unterminated`))
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Unterminated string")
}

func TestUnknownCharacter(t *testing.T) {
	_, diags := Tokenize([]byte(`@`))
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Unexpected character")
}

func TestBlockComment(t *testing.T) {
	toks, diags := Tokenize([]byte("int /* a block\ncomment */ x;"))
	require.Empty(t, diags)
	assert.Equal(t, []token.Kind{token.KwInt, token.Ident, token.Semicolon, token.EOF}, kinds(toks))
}
