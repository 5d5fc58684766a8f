// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package parser

import (
	"github.com/fungus-lang/fungus/internal/ast"
	"github.com/fungus-lang/fungus/internal/rules"
)

// workItem pairs one element of a scope's in-progress token/expression
// slice with the rules.Elem view of it the trie matches against. A fresh
// token starts out as a lexeme or a typed leaf; a completed rule match
// replaces a run of items with one composite workItem built from the
// rule's return type.
type workItem struct {
	expr *ast.Expression
	elem rules.Elem
}

func elemsFrom(work []workItem) []rules.Elem {
	elems := make([]rules.Elem, len(work))
	for i, w := range work {
		elems[i] = w.elem
	}
	return elems
}

// isLexeme reports whether w is still an unreduced literal lexeme (as
// opposed to an ident, literal, or already-reduced composite).
func (w workItem) isLexeme() bool { return w.elem.IsLexeme }

// literalText returns the lexeme's spelling, for separator matching and
// diagnostics. Only meaningful when isLexeme() is true.
func (w workItem) literalText() string {
	if w.expr == nil {
		return ""
	}
	return w.expr.Token.Literal
}
