// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package fungus

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/fungus-lang/fungus/internal/ast"
	"github.com/fungus-lang/fungus/internal/lex"
	"github.com/fungus-lang/fungus/internal/parser"
	"github.com/fungus-lang/fungus/internal/types"
)

// shape is a plain, go-cmp-friendly projection of an ast.Expression:
// every types.Type is resolved to its declared name so the comparison
// never has to reach into Type's unexported id field.
type shape struct {
	Literal  string
	RuleName string
	EvalType string
	Children []shape
}

func shapeOf(g *types.Graph, e *ast.Expression) shape {
	if e == nil {
		return shape{}
	}
	s := shape{EvalType: evalTypeName(g, e.EvalType)}
	if e.Kind == ast.Atom {
		s.Literal = e.Token.Literal
		return s
	}
	s.RuleName = e.RuleName
	for _, c := range e.Children {
		s.Children = append(s.Children, shapeOf(g, c))
	}
	return s
}

func evalTypeName(g *types.Graph, te types.TypeExpr) string {
	switch te.Kind {
	case types.ExprAtom:
		if te.Atom.IsZero() {
			return ""
		}
		return g.Name(te.Atom)
	case 0:
		// a raw lexeme leaf carries the zero TypeExpr (see
		// internal/parser/translate.go's lexemeWork).
		return ""
	default:
		return "<non-atom>"
	}
}

func mustParse(t *testing.T, base *Base, src string) *ast.Expression {
	t.Helper()
	toks, err := lex.Tokenize("t.fungus", []byte(src))
	require.NoError(t, err)
	e, err := parser.Parse(base.Lang, toks)
	require.NoError(t, err)
	return e
}

func TestBaseAdditionBindsLooserThanMultiplication(t *testing.T) {
	base, err := New()
	require.NoError(t, err)

	got := shapeOf(base.Lang.Types, mustParse(t, base, "1 + 2 * 3"))
	want := shape{
		RuleName: "Add",
		EvalType: "int",
		Children: []shape{
			{Literal: "1", EvalType: "int"},
			{Literal: "+"},
			{
				RuleName: "Multiply",
				EvalType: "int",
				Children: []shape{
					{Literal: "2", EvalType: "int"},
					{Literal: "*"},
					{Literal: "3", EvalType: "int"},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AST shape mismatch (-want +got):\n%s", diff)
	}
}

func TestBasePowerIsRightAssociative(t *testing.T) {
	base, err := New()
	require.NoError(t, err)

	got := shapeOf(base.Lang.Types, mustParse(t, base, "2 ** 3 ** 4"))
	want := shape{
		RuleName: "Power",
		EvalType: "int",
		Children: []shape{
			{Literal: "2", EvalType: "int"},
			{Literal: "**"},
			{
				RuleName: "Power",
				EvalType: "int",
				Children: []shape{
					{Literal: "3", EvalType: "int"},
					{Literal: "**"},
					{Literal: "4", EvalType: "int"},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AST shape mismatch (-want +got):\n%s", diff)
	}
}

func TestBaseParensBlockRotation(t *testing.T) {
	base, err := New()
	require.NoError(t, err)

	got := shapeOf(base.Lang.Types, mustParse(t, base, "(1 + 2) * 3"))
	want := shape{
		RuleName: "Multiply",
		EvalType: "int",
		Children: []shape{
			{
				RuleName: "Parens",
				EvalType: "int",
				Children: []shape{
					{Literal: "("},
					{
						RuleName: "Add",
						EvalType: "int",
						Children: []shape{
							{Literal: "1", EvalType: "int"},
							{Literal: "+"},
							{Literal: "2", EvalType: "int"},
						},
					},
					{Literal: ")"},
				},
			},
			{Literal: "*"},
			{Literal: "3", EvalType: "int"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AST shape mismatch (-want +got):\n%s", diff)
	}
}

func TestBaseScopeWithSeparatorProducesScopeComposite(t *testing.T) {
	base, err := New()
	require.NoError(t, err)

	got := shapeOf(base.Lang.Types, mustParse(t, base, "{ 1 + 2 ; 3 }"))
	want := shape{
		RuleName: "Scope",
		EvalType: "int",
		Children: []shape{
			{
				RuleName: "Add",
				EvalType: "int",
				Children: []shape{
					{Literal: "1", EvalType: "int"},
					{Literal: "+"},
					{Literal: "2", EvalType: "int"},
				},
			},
			{Literal: "3", EvalType: "int"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AST shape mismatch (-want +got):\n%s", diff)
	}
}

func TestBaseMixedIntFloatIsRejected(t *testing.T) {
	base, err := New()
	require.NoError(t, err)

	toks, err := lex.Tokenize("t.fungus", []byte("1 + 2.0"))
	require.NoError(t, err)
	_, err = parser.Parse(base.Lang, toks)
	require.Error(t, err)
}

// TestBaseRoundTripSerialization checks the round-trip property: render a
// parsed AST back to source via its rules' Patterns, re-parse that
// source, and require the same shape.
func TestBaseRoundTripSerialization(t *testing.T) {
	base, err := New()
	require.NoError(t, err)

	for _, src := range []string{
		"1 + 2 * 3",
		"2 ** 3 ** 4",
		"(1 + 2) * 3",
		"1 + 2 - 3 / 4 % 5",
		"{ 1 + 2 ; 3 }",
	} {
		t.Run(src, func(t *testing.T) {
			want := shapeOf(base.Lang.Types, mustParse(t, base, src))

			rendered, err := base.Lang.Serialize(mustParse(t, base, src))
			require.NoError(t, err)

			got := shapeOf(base.Lang.Types, mustParse(t, base, rendered))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round-trip shape mismatch for %q, rendered %q (-want +got):\n%s", src, rendered, diff)
			}
		})
	}
}

// TestBaseParseIsDeterministic parses the same source twice and requires
// byte-identical AST shapes: ordering of rule matches
// and rotation must be stable across implementations."
func TestBaseParseIsDeterministic(t *testing.T) {
	base, err := New()
	require.NoError(t, err)

	const src = "1 + 2 * 3 - 4 / (5 + 6)"
	first := shapeOf(base.Lang.Types, mustParse(t, base, src))
	second := shapeOf(base.Lang.Types, mustParse(t, base, src))
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("non-deterministic parse (-first +second):\n%s", diff)
	}
}
