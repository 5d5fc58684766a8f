// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package rules implements the rule trie: the grammar of a Lang. A
// Pattern is a sequence of MatchAtoms; the Tree stores each Pattern as a
// chain of trie nodes keyed on atom equality, with the terminal node
// carrying the Rule that fired.
package rules

import (
	"github.com/fungus-lang/fungus/internal/arena"
	"github.com/fungus-lang/fungus/internal/types"
)

// AtomKind distinguishes the two shapes a MatchAtom can take.
type AtomKind uint8

const (
	AtomLexeme AtomKind = iota + 1
	AtomExpr
)

// MatchAtom is one element of a Pattern: either a literal lexeme or a
// typed expression slot, optionally optional or repeating.
type MatchAtom struct {
	Kind     AtomKind
	Lexeme   arena.Word     // valid when Kind == AtomLexeme
	TypeExpr types.TypeExpr // valid when Kind == AtomExpr

	Optional  bool
	Repeating bool
}

// Equal is the trie's child-equality test: Lexeme atoms compare by Word,
// Expr atoms compare by structural TypeExpr equality, and both compare
// their optional/repeating flags.
func (m MatchAtom) Equal(o MatchAtom) bool {
	if m.Kind != o.Kind || m.Optional != o.Optional || m.Repeating != o.Repeating {
		return false
	}
	if m.Kind == AtomLexeme {
		return m.Lexeme.Eq(o.Lexeme)
	}
	return types.Equals(m.TypeExpr, o.TypeExpr)
}

// Elem is one element of the matcher's input: either a raw lexeme token
// or an already-reduced sub-expression carrying an evaluated type. The
// parser builds these from its Expression slice; rules stays decoupled
// from the ast package so the trie can be tested in isolation.
type Elem struct {
	IsLexeme bool
	Lexeme   arena.Word
	EvalType types.TypeExpr
}

// atomMatches decides whether atom accepts elem: Lexeme atoms only match
// raw lexeme tokens with equal bytes; Expr atoms only match non-lexeme
// elements whose evaluated type satisfies the atom's type expression —
// mirroring the reference implementation's try_match, which never tests
// an Expr slot against a raw token.
func atomMatches(atom MatchAtom, elem Elem, g *types.Graph) bool {
	if atom.Kind == AtomLexeme {
		return elem.IsLexeme && atom.Lexeme.Eq(elem.Lexeme)
	}
	return !elem.IsLexeme && g.MatchesExpr(elem.EvalType, atom.TypeExpr)
}
