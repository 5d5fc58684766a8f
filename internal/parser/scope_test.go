// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fungus-lang/fungus/internal/lex"
)

func scanFor(t *testing.T, src string) []lex.Token {
	t.Helper()
	toks, err := lex.Tokenize("t.fungus", []byte(src))
	require.NoError(t, err)
	return toks
}

func TestBuildScopeTreeNestsBraces(t *testing.T) {
	root, err := buildScopeTree(scanFor(t, "1 { 2 3 } 4"))
	require.NoError(t, err)
	require.Len(t, root.Children, 3)
	require.Equal(t, rawToken, root.Children[0].Kind)
	require.Equal(t, rawScope, root.Children[1].Kind)
	require.Len(t, root.Children[1].Children, 2)
	require.Equal(t, rawToken, root.Children[2].Kind)
}

func TestBuildScopeTreeUnmatchedClosingErrors(t *testing.T) {
	_, err := buildScopeTree(scanFor(t, "1 } 2"))
	require.Error(t, err)
}

func TestBuildScopeTreeUnterminatedErrors(t *testing.T) {
	_, err := buildScopeTree(scanFor(t, "{ 1 2"))
	require.Error(t, err)
}

func TestBuildScopeTreeNested(t *testing.T) {
	root, err := buildScopeTree(scanFor(t, "{ { 1 } }"))
	require.NoError(t, err)
	require.Len(t, root.Children, 1)
	outer := root.Children[0]
	require.Equal(t, rawScope, outer.Kind)
	require.Len(t, outer.Children, 1)
	inner := outer.Children[0]
	require.Equal(t, rawScope, inner.Kind)
	require.Len(t, inner.Children, 1)
}
