// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package prec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrecCmpReflexiveAndAntisymmetric(t *testing.T) {
	g := NewGraph()
	add, err := g.Define("add", Left, nil, nil)
	require.NoError(t, err)
	mul, err := g.Define("mul", Left, []Prec{add}, nil)
	require.NoError(t, err)

	assert.Equal(t, EQ, g.Cmp(add, add))
	assert.Equal(t, GT, g.Cmp(mul, add))
	assert.Equal(t, LT, g.Cmp(add, mul))
}

func TestPrecUnrelatedIsEQ(t *testing.T) {
	g := NewGraph()
	a, err := g.Define("a", Left, nil, nil)
	require.NoError(t, err)
	b, err := g.Define("b", Left, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, EQ, g.Cmp(a, b))
	assert.Equal(t, EQ, g.Cmp(b, a))
}

func TestPrecBelowSugarMatchesAbove(t *testing.T) {
	g := NewGraph()
	add, err := g.Define("add", Left, nil, nil)
	require.NoError(t, err)
	// mul defined "below" add: add should end up above mul exactly as if
	// add had named mul in its own `above` set.
	mul, err := g.Define("mul", Left, nil, []Prec{add})
	require.NoError(t, err)

	assert.Equal(t, GT, g.Cmp(add, mul))
}

func TestPrecDuplicateNameRejected(t *testing.T) {
	g := NewGraph()
	_, err := g.Define("add", Left, nil, nil)
	require.NoError(t, err)
	_, err = g.Define("add", Right, nil, nil)
	assert.Error(t, err)
}

func TestPrecCycleRejected(t *testing.T) {
	g := NewGraph()
	a, err := g.Define("a", Left, nil, nil)
	require.NoError(t, err)
	// defining c as both above a and below a would close the cycle
	// a < c < a, so it must fail.
	_, err = g.Define("c", Left, []Prec{a}, []Prec{a})
	assert.Error(t, err)
}

func TestPrecAssoc(t *testing.T) {
	g := NewGraph()
	r, err := g.Define("pow", Right, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Right, g.AssocOf(r))
}
