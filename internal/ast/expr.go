// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package ast defines Expression, the single tree shape every successful
// parse produces: either an atom (one lexeme, carrying its literal type)
// or a composite (the result of a rule reduction, carrying the rule's
// name and one child per pattern slot).
package ast

import (
	"github.com/fungus-lang/fungus/internal/lex"
	"github.com/fungus-lang/fungus/internal/types"
)

// Kind distinguishes a leaf lexeme from a rule-reduction composite.
type Kind uint8

const (
	Atom Kind = iota + 1
	Composite
)

// Expression is one node of a parsed Fungus program.
//
// Children is always exactly len(pattern.Atoms) long for a Composite node
// built from a matched Pattern: a skipped optional atom leaves a nil
// entry (a fixed-arity placeholder) and a repeating atom's whole run is
// collapsed into a single synthetic list node (IsList) occupying its one
// slot.
type Expression struct {
	Kind     Kind
	EvalType types.TypeExpr

	// valid when Kind == Atom
	Token lex.Token

	// valid when Kind == Composite
	RuleName string
	IsList   bool // synthetic wrapper standing in for a repeating atom's matches
	Children []*Expression
}

// NewAtom wraps a single lexeme token as a leaf expression.
func NewAtom(tok lex.Token, evalType types.TypeExpr) *Expression {
	return &Expression{Kind: Atom, Token: tok, EvalType: evalType}
}

// NewComposite wraps a rule reduction's slot values. children[i] is nil
// for a slot whose pattern atom was optional and absent.
func NewComposite(ruleName string, evalType types.TypeExpr, children []*Expression) *Expression {
	return &Expression{Kind: Composite, RuleName: ruleName, EvalType: evalType, Children: children}
}

// NewList wraps the matches of a repeating atom as one slot value.
func NewList(items []*Expression, evalType types.TypeExpr) *Expression {
	return &Expression{Kind: Composite, IsList: true, EvalType: evalType, Children: items}
}

// IsZero reports whether e is the nil/placeholder expression.
func (e *Expression) IsZero() bool { return e == nil }
