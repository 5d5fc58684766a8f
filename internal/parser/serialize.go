// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package parser

import (
	"fmt"
	"strings"

	"github.com/fungus-lang/fungus/internal/ast"
	"github.com/fungus-lang/fungus/internal/lex"
	"github.com/fungus-lang/fungus/internal/rules"
)

// Serialize renders e as Fungus source text, driven by each Composite
// node's own rule Pattern: the Pattern's atom order says what belongs at
// each child position (a literal lexeme, a recursively-rendered
// sub-expression, or nothing at all for a skipped optional atom), and
// Serialize just walks e.Children in that order. Re-tokenizing the
// result and parsing it against lang reproduces a structurally equal
// tree: Serialize always separates adjacent pieces with a single space,
// which the lexer discards, so it never reproduces the original
// whitespace — only the token sequence, which is all re-parsing needs.
func (lang *Lang) Serialize(e *ast.Expression) (string, error) {
	var b strings.Builder
	if err := lang.serialize(&b, e); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (lang *Lang) serialize(b *strings.Builder, e *ast.Expression) error {
	if e == nil {
		return fmt.Errorf("serialize: unexpected nil expression")
	}
	switch {
	case e.Kind == ast.Atom:
		if e.Token.Kind == lex.TokenString {
			// the lexer stores string literals unquoted and unescaped;
			// restore the quotes and the escapes it resolves.
			esc := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)
			writeSpaced(b, `"`+esc.Replace(e.Token.Literal)+`"`)
			return nil
		}
		writeSpaced(b, e.Token.Literal)
		return nil
	case e.IsList:
		for _, item := range e.Children {
			if err := lang.serialize(b, item); err != nil {
				return err
			}
		}
		return nil
	case e.RuleName == rules.ReservedScopeRuleName:
		return lang.serializeScope(b, e)
	}

	r, ok := lang.Rules.Lookup(e.RuleName)
	if !ok {
		return fmt.Errorf("serialize: rule %q is not defined in this Lang", e.RuleName)
	}
	entry := lang.Rules.Get(r)
	atoms := entry.Pattern.Atoms
	if len(atoms) != len(e.Children) {
		return fmt.Errorf("serialize: rule %q: pattern has %d atoms but node has %d children", e.RuleName, len(atoms), len(e.Children))
	}

	for i, atom := range atoms {
		child := e.Children[i]
		if atom.Kind == rules.AtomLexeme {
			writeSpaced(b, atom.Lexeme.String())
			continue
		}
		if child == nil {
			continue // skipped optional atom
		}
		if err := lang.serialize(b, child); err != nil {
			return err
		}
	}
	return nil
}

// serializeScope renders the builtin multi-statement "{ ... }" wrapper:
// its Children carry no pattern of their own (finishScope synthesizes
// this node outside the rule trie entirely), so it's rendered directly
// rather than through a looked-up Pattern. Always bracing it, even when
// e is the outermost parse result, is harmless: buildScopeTree accepts a
// brace-delimited scope anywhere a bare statement list is accepted, and
// a braced scope holding a single statement unwraps back to that one
// statement on re-parse, same as the unbraced form would.
func (lang *Lang) serializeScope(b *strings.Builder, e *ast.Expression) error {
	writeSpaced(b, "{")
	for i, stmt := range e.Children {
		if i > 0 && lang.StatementSep != "" {
			writeSpaced(b, lang.StatementSep)
		}
		if err := lang.serialize(b, stmt); err != nil {
			return err
		}
	}
	writeSpaced(b, "}")
	return nil
}

func writeSpaced(b *strings.Builder, s string) {
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(s)
}
