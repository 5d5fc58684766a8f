// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package parser

import (
	"github.com/fungus-lang/fungus/internal/diag"
	"github.com/fungus-lang/fungus/internal/lex"
)

// rawKind distinguishes a leaf token from a nested scope in the stage-1
// tree, before any rule-aware translation has happened.
type rawKind uint8

const (
	rawToken rawKind = iota + 1
	rawScope
)

// rawNode is one node of the stage-1 scope tree: either a single token or
// a `{ ... }` scope holding its own children in source order.
type rawNode struct {
	Kind     rawKind
	Tok      lex.Token
	Children []*rawNode
}

// buildScopeTree splits tokens on "{"/"}" into a tree whose internal
// nodes are scopes and whose leaves are un-reduced tokens. A trailing
// TokenEOF, if present, is dropped. Unmatched braces are hard errors.
func buildScopeTree(tokens []lex.Token) (*rawNode, error) {
	if n := len(tokens); n > 0 && tokens[n-1].Kind == lex.TokenEOF {
		tokens = tokens[:n-1]
	}

	root := &rawNode{Kind: rawScope}
	stack := []*rawNode{root}

	for _, tok := range tokens {
		if tok.Kind == lex.TokenSymbols && tok.Literal == "{" {
			child := &rawNode{Kind: rawScope}
			top := stack[len(stack)-1]
			top.Children = append(top.Children, child)
			stack = append(stack, child)
			continue
		}
		if tok.Kind == lex.TokenSymbols && tok.Literal == "}" {
			if len(stack) == 1 {
				return nil, diag.New(spanOf(tok), "unmatched closing brace")
			}
			stack = stack[:len(stack)-1]
			continue
		}
		top := stack[len(stack)-1]
		top.Children = append(top.Children, &rawNode{Kind: rawToken, Tok: tok})
	}

	if len(stack) != 1 {
		return nil, diag.New(spanOf(lastTokenOrZero(tokens)), "unfinished scope at end of input")
	}
	return root, nil
}

func lastTokenOrZero(tokens []lex.Token) lex.Token {
	if len(tokens) == 0 {
		return lex.Token{}
	}
	return tokens[len(tokens)-1]
}

// spanOf converts a token's position into a diag.Span covering its literal.
func spanOf(tok lex.Token) diag.Span {
	n := len([]rune(tok.Literal))
	if n == 0 {
		n = 1
	}
	return diag.Span{File: tok.Pos.File, Line: tok.Pos.Line, Column: tok.Pos.Column, Len: n}
}
