// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package parser

import (
	"strings"

	"github.com/fungus-lang/fungus/internal/arena"
	"github.com/fungus-lang/fungus/internal/ast"
	"github.com/fungus-lang/fungus/internal/diag"
	"github.com/fungus-lang/fungus/internal/lex"
	"github.com/fungus-lang/fungus/internal/rules"
	"github.com/fungus-lang/fungus/internal/types"
)

// translateToken is stage 2 for a single leaf token: symbols are split
// and fully matched against the Lang's known punctuation, words are
// classified as Lexeme (reserved) or Ident, and literals get their
// builtin type attached.
func (lang *Lang) translateToken(tok lex.Token) ([]workItem, error) {
	switch tok.Kind {
	case lex.TokenWord:
		if lang.Keywords[tok.Literal] {
			return []workItem{lang.lexemeWork(tok)}, nil
		}
		return []workItem{lang.leafWork(tok, lang.IdentType)}, nil
	case lex.TokenBool:
		return []workItem{lang.leafWork(tok, lang.BoolType)}, nil
	case lex.TokenInt:
		return []workItem{lang.leafWork(tok, lang.IntType)}, nil
	case lex.TokenFloat:
		return []workItem{lang.leafWork(tok, lang.FloatType)}, nil
	case lex.TokenString:
		return []workItem{lang.leafWork(tok, lang.StringType)}, nil
	case lex.TokenSymbols:
		return lang.splitSymbols(tok)
	default:
		return nil, diag.New(spanOf(tok), "unexpected %s token at top level", tok.Kind)
	}
}

func (lang *Lang) lexemeWork(tok lex.Token) workItem {
	return workItem{
		expr: ast.NewAtom(tok, types.TypeExpr{}),
		elem: rules.Elem{IsLexeme: true, Lexeme: arena.NewWord(tok.Literal)},
	}
}

func (lang *Lang) leafWork(tok lex.Token, t types.Type) workItem {
	te := types.Expr(t)
	return workItem{
		expr: ast.NewAtom(tok, te),
		elem: rules.Elem{EvalType: te},
	}
}

// splitSymbols greedily splits a maximal punctuation run into the
// longest known symbols at each position. An
// unmatched remainder is a structural error.
func (lang *Lang) splitSymbols(tok lex.Token) ([]workItem, error) {
	text := tok.Literal
	col := tok.Pos.Column
	var out []workItem
	for len(text) > 0 {
		matchLen := 0
		for _, s := range lang.symbols {
			if len(s) <= len(text) && strings.HasPrefix(text, s) {
				matchLen = len(s)
				break
			}
		}
		if matchLen == 0 {
			return nil, diag.New(diag.Span{File: tok.Pos.File, Line: tok.Pos.Line, Column: col, Len: 1},
				"unknown symbol %q", text)
		}
		piece := text[:matchLen]
		sub := lex.Token{Kind: lex.TokenSymbols, Literal: piece, Pos: lex.Position{File: tok.Pos.File, Line: tok.Pos.Line, Column: col}}
		out = append(out, lang.lexemeWork(sub))
		text = text[matchLen:]
		col += matchLen
	}
	return out, nil
}
