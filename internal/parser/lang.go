// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package parser turns a token stream into an ast.Expression tree, given
// a Lang: scope-tree construction, per-scope translation, and rule
// reduction with precedence-driven rotation. Adapted from
// original_source/src/parse.c, whose own comment still applies: parsing
// works in two stages, and splitting `{`/`}` into a scope tree is the
// only rule truly hardcoded into Fungus.
package parser

import (
	"sort"

	"github.com/fungus-lang/fungus/internal/prec"
	"github.com/fungus-lang/fungus/internal/rules"
	"github.com/fungus-lang/fungus/internal/types"
)

// Lang bundles everything one parse needs: the rule trie, the precedence
// graph, the type lattice, and the vocabulary (reserved words, known
// symbols, literal type assignments) that stage 2 translation consults.
type Lang struct {
	Rules *rules.Tree
	Precs *prec.Graph
	Types *types.Graph

	// Keywords are words that lex as a literal Lexeme rather than an
	// Ident, e.g. a reserved operator spelled with letters.
	Keywords map[string]bool

	// symbols, longest first, for the greedy punctuation splitter.
	symbols []string

	// StatementSep is the symbol that separates statements inside a
	// scope (the "{ 1 + 2 ; 3 }" form); "" disables multi-statement
	// scopes entirely.
	StatementSep string

	IdentType  types.Type
	BoolType   types.Type
	IntType    types.Type
	FloatType  types.Type
	StringType types.Type
	ScopeType  types.Type
}

// NewLang builds a Lang from its pieces, precomputing the symbol list in
// longest-first order so the stage-2 splitter's greedy longest match is a
// simple linear scan.
func NewLang(rtree *rules.Tree, precs *prec.Graph, g *types.Graph, keywords, symbols []string) *Lang {
	kw := make(map[string]bool, len(keywords))
	for _, w := range keywords {
		kw[w] = true
	}
	syms := append([]string(nil), symbols...)
	sort.Slice(syms, func(i, j int) bool { return len(syms[i]) > len(syms[j]) })
	return &Lang{Rules: rtree, Precs: precs, Types: g, Keywords: kw, symbols: syms}
}
