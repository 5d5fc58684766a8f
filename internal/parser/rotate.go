// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package parser

import (
	"github.com/fungus-lang/fungus/internal/ast"
	"github.com/fungus-lang/fungus/internal/prec"
)

type rotDir uint8

const (
	dirRight rotDir = iota + 1
	dirLeft
)

// ruleOf returns the Prec/Assoc of the rule that produced e, if e is a
// plain rule-reduction composite (not a literal leaf, not a synthetic
// List/Scope wrapper, which carry no precedence of their own).
func (lang *Lang) ruleOf(e *ast.Expression) (prec.Prec, prec.Assoc, bool) {
	if e == nil || e.Kind != ast.Composite || e.IsList {
		return prec.Prec{}, 0, false
	}
	r, ok := lang.Rules.Lookup(e.RuleName)
	if !ok {
		return prec.Prec{}, 0, false
	}
	entry := lang.Rules.Get(r)
	return entry.Prec, entry.Assoc, true
}

// precedes implements precedes(E, P, D): P should rotate
// above E exactly when E binds tighter than P, or they're equal and E's
// own associativity matches the rotation direction.
func precedes(g *prec.Graph, dir rotDir, ePrec prec.Prec, pPrec prec.Prec, eAssoc prec.Assoc) bool {
	switch g.Cmp(ePrec, pPrec) {
	case prec.GT:
		return true
	case prec.EQ:
		if dir == dirRight {
			return eAssoc == prec.Right
		}
		return eAssoc == prec.Left
	default:
		return false
	}
}

func fromSide(dir rotDir, n *ast.Expression) int {
	if dir == dirRight {
		return 0
	}
	return len(n.Children) - 1
}

func toSide(dir rotDir, n *ast.Expression) int {
	if dir == dirRight {
		return len(n.Children) - 1
	}
	return 0
}

// tryRotate immediately after building composite e: looks at e's first
// (dirRight) or last (dirLeft) child P, and — if P binds looser than e —
// walks down P's opposite-side chain to the deepest descendant that P's
// own rotation would still misorder, then swaps e into that descendant's
// place. Returns the new subtree root and whether a rotation fired.
func tryRotate(lang *Lang, e *ast.Expression, dir rotDir) (*ast.Expression, bool) {
	ePrec, eAssoc, ok := lang.ruleOf(e)
	if !ok {
		return e, false
	}
	pivotIdx := fromSide(dir, e)
	pivot := e.Children[pivotIdx]
	pPrec, _, ok := lang.ruleOf(pivot)
	if !ok || !precedes(lang.Precs, dir, ePrec, pPrec, eAssoc) {
		return e, false
	}

	swapParent := pivot
	swapIdx := toSide(dir, pivot)
	swap := swapParent.Children[swapIdx]
	for swap != nil && swap.Kind == ast.Composite && !swap.IsList {
		sPrec, _, ok := lang.ruleOf(swap)
		if !ok || !precedes(lang.Precs, dir, ePrec, sPrec, eAssoc) {
			break
		}
		swapParent = swap
		swapIdx = toSide(dir, swap)
		swap = swapParent.Children[swapIdx]
	}
	// a raw (unreduced) lexeme leaf marks a structural boundary (e.g. the
	// closing paren of a Parens rule) that must never be displaced.
	if swap != nil && swap.Kind == ast.Atom && swap.EvalType.Kind == 0 {
		return e, false
	}

	mid := swap
	swapParent.Children[swapIdx] = e
	e.Children[pivotIdx] = mid
	return pivot, true
}

// correctPrecedence tries the right rotation first, then left; at most
// one fires per composite creation.
func correctPrecedence(lang *Lang, e *ast.Expression) *ast.Expression {
	if corrected, ok := tryRotate(lang, e, dirRight); ok {
		return corrected
	}
	if corrected, ok := tryRotate(lang, e, dirLeft); ok {
		return corrected
	}
	return e
}
