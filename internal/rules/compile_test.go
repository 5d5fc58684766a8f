// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fungus-lang/fungus/internal/types"
)

func TestCompileLiteralSlotTypes(t *testing.T) {
	g, _, intT, _ := buildTypes(t)
	pat, err := Compile(g, "a: int `+ b: int -> int")
	require.NoError(t, err)
	require.Len(t, pat.Atoms, 3)
	assert.Equal(t, AtomExpr, pat.Atoms[0].Kind)
	assert.True(t, types.Equals(pat.Atoms[0].TypeExpr, types.Expr(intT)))
	assert.Equal(t, AtomLexeme, pat.Atoms[1].Kind)
	assert.True(t, pat.Atoms[1].Lexeme.EqString("+"))
	require.Len(t, pat.Where, 1)
	assert.ElementsMatch(t, []int{0, 2}, pat.Where[0].Slots)
}

func TestCompileSumTypeExpr(t *testing.T) {
	g, _, intT, floatT := buildTypes(t)
	pat, err := Compile(g, "a: (int | float) `neg -> (int | float)")
	require.NoError(t, err)
	require.Len(t, pat.Atoms, 2)
	assert.Equal(t, types.ExprSum, pat.Atoms[0].TypeExpr.Kind)
	assert.True(t, g.MatchesExpr(types.Expr(intT), pat.Atoms[0].TypeExpr))
	assert.True(t, g.MatchesExpr(types.Expr(floatT), pat.Atoms[0].TypeExpr))
}

func TestCompileUndefinedTypeWithoutTopFails(t *testing.T) {
	g := types.NewGraph()
	_, err := g.Define("int", types.Concrete)
	require.NoError(t, err)
	_, err = Compile(g, "a: T `+ b: T -> T")
	assert.Error(t, err)
}

func TestCompileVariableGroupingByTypeSpelling(t *testing.T) {
	g, _, _, _ := buildTypes(t)
	pat, err := Compile(g, "a: T `+ b: T -> T")
	require.NoError(t, err)
	require.Len(t, pat.Where, 1)
	assert.ElementsMatch(t, []int{0, 2}, pat.Where[0].Slots)
	assert.True(t, pat.Where[0].BindsReturn)
}

func TestCompileBareLexemeEscapeErrors(t *testing.T) {
	g, _, _, _ := buildTypes(t)
	_, err := Compile(g, "a: int ` -> int")
	assert.Error(t, err)
}

func TestCompileMissingArrowErrors(t *testing.T) {
	g, _, _, _ := buildTypes(t)
	_, err := Compile(g, "a: int `+ b: int")
	assert.Error(t, err)
}
