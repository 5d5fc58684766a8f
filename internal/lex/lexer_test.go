// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerArithmeticExpression(t *testing.T) {
	input := "1 + 2 * 3"
	expected := []struct {
		kind  Kind
		value string
	}{
		{TokenInt, "1"},
		{TokenSymbols, "+"},
		{TokenInt, "2"},
		{TokenSymbols, "*"},
		{TokenInt, "3"},
		{TokenEOF, ""},
	}
	tokens, err := Tokenize("<input>", []byte(input))
	require.NoError(t, err)
	require.Len(t, tokens, len(expected))
	for i, tc := range expected {
		assert.Equal(t, tc.kind, tokens[i].Kind, "token %d kind", i)
		assert.Equal(t, tc.value, tokens[i].Literal, "token %d literal", i)
	}
}

func TestLexerMultiCharSymbolRun(t *testing.T) {
	tokens, err := Tokenize("<input>", []byte("2 ** 3"))
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, TokenSymbols, tokens[1].Kind)
	assert.Equal(t, "**", tokens[1].Literal)
}

func TestLexerWordAndBool(t *testing.T) {
	tokens, err := Tokenize("<input>", []byte("isReady := true"))
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, TokenWord, tokens[0].Kind)
	assert.Equal(t, "isReady", tokens[0].Literal)
	assert.Equal(t, TokenSymbols, tokens[1].Kind)
	assert.Equal(t, ":=", tokens[1].Literal)
	assert.Equal(t, TokenBool, tokens[2].Kind)
}

func TestLexerFloatVsInt(t *testing.T) {
	tokens, err := Tokenize("<input>", []byte("1 1.0"))
	require.NoError(t, err)
	assert.Equal(t, TokenInt, tokens[0].Kind)
	assert.Equal(t, TokenFloat, tokens[1].Kind)
	assert.Equal(t, "1.0", tokens[1].Literal)
}

func TestLexerString(t *testing.T) {
	tokens, err := Tokenize("<input>", []byte(`"hello\nworld"`))
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenString, tokens[0].Kind)
	assert.Equal(t, "hello\nworld", tokens[0].Literal)
}

func TestLexerBracesAndParensAreStandaloneSymbols(t *testing.T) {
	tokens, err := Tokenize("<input>", []byte("{ (1) }"))
	require.NoError(t, err)
	require.Len(t, tokens, 6) // 5 content tokens + EOF
	for i, want := range []string{"{", "(", "1", ")", "}"} {
		assert.Equal(t, want, tokens[i].Literal, "token %d", i)
	}
}

func TestLexerSkipsLineComment(t *testing.T) {
	tokens, err := Tokenize("<input>", []byte("1 // trailing comment\n+ 2"))
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, TokenInt, tokens[0].Kind)
	assert.Equal(t, TokenSymbols, tokens[1].Kind)
}

func TestLexerPositionTracksLineAndColumn(t *testing.T) {
	tokens, err := Tokenize("prelude.fungus", []byte("1\n22"))
	require.NoError(t, err)
	assert.Equal(t, 1, tokens[0].Pos.Line)
	assert.Equal(t, 2, tokens[1].Pos.Line)
	assert.Equal(t, "prelude.fungus", tokens[0].Pos.File)
}
