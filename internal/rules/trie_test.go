// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fungus-lang/fungus/internal/arena"
	"github.com/fungus-lang/fungus/internal/prec"
	"github.com/fungus-lang/fungus/internal/types"
)

func buildTypes(t *testing.T) (*types.Graph, types.Type, types.Type, types.Type) {
	g := types.NewGraph()
	anyT, err := g.Define("any", types.Abstract)
	require.NoError(t, err)
	intT, err := g.Define("int", types.Concrete, anyT)
	require.NoError(t, err)
	floatT, err := g.Define("float", types.Concrete, anyT)
	require.NoError(t, err)
	return g, anyT, intT, floatT
}

func TestTreeDefineAndMatchSimple(t *testing.T) {
	g, _, intT, _ := buildTypes(t)
	pg := prec.NewGraph()
	add, err := pg.Define("add", prec.Left, nil, nil)
	require.NoError(t, err)

	tree := NewTree()
	pat, err := Compile(g, "a: int `+ b: int -> int")
	require.NoError(t, err)
	rule, err := tree.Define("Add", pat, add, prec.Left, types.Type{})
	require.NoError(t, err)

	input := []Elem{
		{EvalType: types.Expr(intT)},
		{IsLexeme: true, Lexeme: arena.NewWord("+")},
		{EvalType: types.Expr(intT)},
	}
	cands := tree.Match(g, input)
	require.Len(t, cands, 1)
	assert.Equal(t, rule, cands[0].Rule)
	assert.Equal(t, 3, cands[0].Len)

	slots, ok := Align(pat, input, cands[0].Len, g)
	require.True(t, ok)
	assert.True(t, slots[0].Present)
	assert.True(t, slots[2].Present)

	ret, ok := ResolveWhere(pat, slots, g)
	require.True(t, ok)
	assert.True(t, types.Equals(ret, types.Expr(intT)))
}

func TestWhereClauseRejectsTypeMismatch(t *testing.T) {
	g, _, intT, floatT := buildTypes(t)
	pg := prec.NewGraph()
	add, err := pg.Define("add", prec.Left, nil, nil)
	require.NoError(t, err)

	tree := NewTree()
	pat, err := Compile(g, "a: T `+ b: T -> T")
	require.NoError(t, err)
	require.Len(t, pat.Where, 1)
	_, err = tree.Define("Add", pat, add, prec.Left, types.Type{})
	require.NoError(t, err)

	input := []Elem{
		{EvalType: types.Expr(intT)},
		{IsLexeme: true, Lexeme: arena.NewWord("+")},
		{EvalType: types.Expr(floatT)},
	}
	cands := tree.Match(g, input)
	require.Len(t, cands, 1, "the unresolved variable T widens both slots to accept any value; only the where-clause rejects the mix")

	slots, ok := Align(pat, input, cands[0].Len, g)
	require.True(t, ok)
	_, ok = ResolveWhere(pat, slots, g)
	assert.False(t, ok)
}

func TestOptionalAtomProducesPlaceholderSlot(t *testing.T) {
	g, _, intT, _ := buildTypes(t)
	tree := NewTree()
	pat, err := Compile(g, "a: int b: int? -> int")
	require.NoError(t, err)
	_, err = tree.Define("Maybe", pat, prec.Prec{}, prec.Left, types.Type{})
	require.NoError(t, err)

	input := []Elem{{EvalType: types.Expr(intT)}}
	cands := tree.Match(g, input)
	require.Len(t, cands, 1)
	assert.Equal(t, 1, cands[0].Len)

	slots, ok := Align(pat, input, 1, g)
	require.True(t, ok)
	assert.True(t, slots[0].Present)
	assert.False(t, slots[1].Present)
}

func TestRepeatingAtomCollapsesRun(t *testing.T) {
	g, _, intT, _ := buildTypes(t)
	tree := NewTree()
	pat, err := Compile(g, "a: int `, items: int * -> int")
	require.NoError(t, err)
	_, err = tree.Define("List", pat, prec.Prec{}, prec.Left, types.Type{})
	require.NoError(t, err)

	input := []Elem{
		{EvalType: types.Expr(intT)},
		{IsLexeme: true, Lexeme: arena.NewWord(",")},
		{EvalType: types.Expr(intT)},
		{EvalType: types.Expr(intT)},
		{EvalType: types.Expr(intT)},
	}
	cands := tree.Match(g, input)
	require.Len(t, cands, 1)
	assert.Equal(t, 5, cands[0].Len)

	slots, ok := Align(pat, input, 5, g)
	require.True(t, ok)
	assert.Equal(t, 3, slots[2].Count)
}

func TestDuplicatePatternRejected(t *testing.T) {
	g, _, intT, _ := buildTypes(t)
	_ = intT
	tree := NewTree()
	pat1, err := Compile(g, "a: int `+ b: int -> int")
	require.NoError(t, err)
	_, err = tree.Define("Add", pat1, prec.Prec{}, prec.Left, types.Type{})
	require.NoError(t, err)

	pat2, err := Compile(g, "a: int `+ b: int -> int")
	require.NoError(t, err)
	_, err = tree.Define("Add2", pat2, prec.Prec{}, prec.Left, types.Type{})
	assert.Error(t, err)
}

func TestDuplicateNameRejected(t *testing.T) {
	g, _, intT, _ := buildTypes(t)
	_ = intT
	tree := NewTree()
	pat, err := Compile(g, "a: int `+ b: int -> int")
	require.NoError(t, err)
	_, err = tree.Define("Add", pat, prec.Prec{}, prec.Left, types.Type{})
	require.NoError(t, err)

	pat2, err := Compile(g, "a: int `- b: int -> int")
	require.NoError(t, err)
	_, err = tree.Define("Add", pat2, prec.Prec{}, prec.Left, types.Type{})
	assert.Error(t, err)
}
