// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package parser

import (
	"github.com/sirupsen/logrus"

	"github.com/fungus-lang/fungus/internal/ast"
	"github.com/fungus-lang/fungus/internal/diag"
	"github.com/fungus-lang/fungus/internal/lex"
	"github.com/fungus-lang/fungus/internal/rules"
)

// Parse runs both stages over tokens under lang: stage 1 builds the
// scope tree, stage 2+3 translate and reduce each scope bottom-up. The
// whole file is itself the outermost scope.
func Parse(lang *Lang, tokens []lex.Token) (*ast.Expression, error) {
	root, err := buildScopeTree(tokens)
	if err != nil {
		return nil, err
	}
	return lang.reduceScope(root)
}

// reduceScope runs stage 2 and stage 3 over one scope's direct children,
// first recursing into any nested scope so it's available to its parent
// as a single already-reduced element.
func (lang *Lang) reduceScope(scope *rawNode) (*ast.Expression, error) {
	var work []workItem
	for _, child := range scope.Children {
		if child.Kind == rawScope {
			inner, err := lang.reduceScope(child)
			if err != nil {
				return nil, err
			}
			work = append(work, workItem{expr: inner, elem: rules.Elem{EvalType: inner.EvalType}})
			continue
		}
		ws, err := lang.translateToken(child.Tok)
		if err != nil {
			return nil, err
		}
		work = append(work, ws...)
	}

	work, err := lang.collapse(work)
	if err != nil {
		return nil, err
	}

	logrus.WithField("items", len(work)).Trace("parser: scope collapsed")

	return lang.finishScope(work)
}

// finishScope splits the fully-reduced work list on the Lang's statement
// separator. A single statement is returned transparently (so a bare
// top-level expression isn't wrapped); more than one is packaged as a
// builtin "Scope" composite whose eval_type is its last statement's.
func (lang *Lang) finishScope(work []workItem) (*ast.Expression, error) {
	var groups [][]workItem
	var cur []workItem
	for _, w := range work {
		if lang.StatementSep != "" && w.isLexeme() && w.literalText() == lang.StatementSep {
			groups = append(groups, cur)
			cur = nil
			continue
		}
		cur = append(cur, w)
	}
	groups = append(groups, cur)

	var stmts []*ast.Expression
	for _, g := range groups {
		if len(g) != 1 || g[0].isLexeme() {
			return nil, diag.New(groupSpan(g), "scope did not reduce to a single expression")
		}
		stmts = append(stmts, g[0].expr)
	}

	if len(stmts) == 1 {
		return stmts[0], nil
	}
	last := stmts[len(stmts)-1]
	return ast.NewComposite(rules.ReservedScopeRuleName, last.EvalType, stmts), nil
}

// groupSpan finds a reasonable span to blame for a group that failed to
// collapse to one expression: the first item's leftmost token if any,
// else the zero span.
func groupSpan(g []workItem) diag.Span {
	if len(g) == 0 {
		return diag.Span{}
	}
	return spanOf(firstLeaf(g[0].expr).Token)
}

// firstLeaf descends e's first child chain to the leaf token that opens
// it, mirroring original_source/src/parse.c's RExpr_tok_start.
func firstLeaf(e *ast.Expression) *ast.Expression {
	for e != nil && e.Kind == ast.Composite && len(e.Children) > 0 {
		e = e.Children[0]
	}
	if e == nil {
		return &ast.Expression{}
	}
	return e
}
