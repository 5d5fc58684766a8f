// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package rules

import (
	"fmt"

	"github.com/fungus-lang/fungus/internal/arena"
	"github.com/fungus-lang/fungus/internal/lex"
	"github.com/fungus-lang/fungus/internal/types"
)

// Compile parses a pattern source template — e.g. "a: T `+ b: T -> T" —
// into a Pattern. `identifier : type-expr` introduces a named slot with a
// required type; a back-tick prefix marks a literal lexeme; `?` marks an
// atom optional and `*` marks it repeating; `-> type-expr` gives the
// return type. Two slots (or a slot and the return) written with the
// identical bare type-expr spelling (canonically "T") share a type
// variable: their resolved types must unify at match time, and if the
// return shares the spelling it binds to whatever the variable resolved
// to.
//
// Pattern source is tokenized with the real internal/lex lexer (the same
// one that tokenizes Fungus programs), then walked by a dedicated,
// hand-written reader — the same shape original_source/src/lang/pattern.c's
// Pattern_from takes: it calls the ordinary lex() and then classifies the
// resulting token buffer itself, never invoking the LALR/rule-table
// machinery used for the language it's describing. A Tree-and-rotation
// based reader doesn't fit here either: pattern grammar has no precedence
// ambiguity to resolve (it's a fixed, unambiguous shape), and rotation's
// whole purpose is resolving exactly that kind of ambiguity, so pressing
// it into service here would just be adding indirection, not capability.
func Compile(g *types.Graph, src string) (Pattern, error) {
	toks, err := lex.Tokenize("pattern", []byte(src))
	if err != nil {
		return Pattern{}, fmt.Errorf("pattern %q: %w", src, err)
	}
	ptoks, err := classify(toks)
	if err != nil {
		return Pattern{}, err
	}
	p := &patParser{toks: ptoks, g: g, varSlots: map[string][]int{}}
	return p.pattern()
}

type patTokKind uint8

const (
	ptIdent patTokKind = iota + 1
	ptColon
	ptArrow
	ptLParen
	ptRParen
	ptPipe
	ptOpt
	ptStar
	ptLexeme
)

type patTok struct {
	kind patTokKind
	text string
}

// classify turns the real lexer's token stream into pattern-grammar
// tokens. A back-tick escape arrives from the lexer in one of two shapes:
// merged with the punctuation it escapes into a single Symbols token (for
// example "`+", since '`' and '+' both belong to the same punctuation run)
// or standing alone as a bare "`" Symbols token immediately followed by
// whatever it escapes (a word, or one of the always-standalone brace/paren
// tokens, since those never join a punctuation run). Either way the
// escaped text becomes one ptLexeme token.
func classify(toks []lex.Token) ([]patTok, error) {
	var out []patTok
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		switch tok.Kind {
		case lex.TokenEOF:
			return out, nil
		case lex.TokenWord, lex.TokenBool, lex.TokenInt, lex.TokenFloat, lex.TokenString:
			out = append(out, patTok{kind: ptIdent, text: tok.Literal})
		case lex.TokenSymbols:
			switch {
			case tok.Literal == "`":
				next, ok := adjacent(toks, i)
				if !ok {
					return nil, fmt.Errorf("pattern %q: empty lexeme escape at %s", joinTokens(toks), tok.Pos)
				}
				out = append(out, patTok{kind: ptLexeme, text: next.Literal})
				i++
			case len(tok.Literal) > 1 && tok.Literal[0] == '`':
				out = append(out, patTok{kind: ptLexeme, text: tok.Literal[1:]})
			case tok.Literal == ":":
				out = append(out, patTok{kind: ptColon})
			case tok.Literal == "->":
				out = append(out, patTok{kind: ptArrow})
			case tok.Literal == "(":
				out = append(out, patTok{kind: ptLParen})
			case tok.Literal == ")":
				out = append(out, patTok{kind: ptRParen})
			case tok.Literal == "|":
				out = append(out, patTok{kind: ptPipe})
			case tok.Literal == "?":
				out = append(out, patTok{kind: ptOpt})
			case tok.Literal == "*":
				out = append(out, patTok{kind: ptStar})
			default:
				return nil, fmt.Errorf("pattern %q: unexpected symbol %q", joinTokens(toks), tok.Literal)
			}
		default:
			return nil, fmt.Errorf("pattern %q: unexpected token kind %s", joinTokens(toks), tok.Kind)
		}
	}
	return out, nil
}

// adjacent reports whether the token after toks[i] starts immediately
// where toks[i] (a lone back-tick) ends, with no whitespace between —
// the lexer discards whitespace, so position arithmetic is the only way
// left to tell "`+" (escaping "+") apart from "` " followed by something
// unrelated several tokens later.
func adjacent(toks []lex.Token, i int) (lex.Token, bool) {
	if i+1 >= len(toks) {
		return lex.Token{}, false
	}
	tick, next := toks[i], toks[i+1]
	if next.Kind == lex.TokenEOF {
		return lex.Token{}, false
	}
	if next.Pos.Line != tick.Pos.Line || next.Pos.Column != tick.Pos.Column+1 {
		return lex.Token{}, false
	}
	return next, true
}

// joinTokens reconstructs a best-effort source string for an error message
// from an already-tokenized stream whose original text wasn't retained.
func joinTokens(toks []lex.Token) string {
	var b []byte
	for _, t := range toks {
		if t.Kind == lex.TokenEOF {
			break
		}
		if len(b) > 0 {
			b = append(b, ' ')
		}
		b = append(b, t.Literal...)
	}
	return string(b)
}

type patParser struct {
	toks []patTok
	pos  int
	g    *types.Graph

	varSlots map[string][]int // variable spelling -> atom indices that use it
	varOrder []string
}

func (p *patParser) peek() patTok {
	if p.pos >= len(p.toks) {
		return patTok{}
	}
	return p.toks[p.pos]
}

func (p *patParser) next() patTok {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

func (p *patParser) pattern() (Pattern, error) {
	var atoms []MatchAtom
	var names []string
	for {
		if p.peek().kind == 0 {
			return Pattern{}, fmt.Errorf("pattern: unexpected end of input, expected '->'")
		}
		if p.peek().kind == ptArrow {
			break
		}
		atom, name, err := p.atom(len(atoms))
		if err != nil {
			return Pattern{}, err
		}
		atoms = append(atoms, atom)
		names = append(names, name)
	}
	p.next() // consume '->'

	retVar, retExpr, err := p.orExpr()
	if err != nil {
		return Pattern{}, fmt.Errorf("pattern: return type: %w", err)
	}
	if p.peek().kind != 0 {
		return Pattern{}, fmt.Errorf("pattern: unexpected trailing token after return type")
	}

	var where []WhereClause
	for _, v := range p.varOrder {
		idxs := p.varSlots[v]
		binds := v == retVar && retVar != ""
		total := len(idxs)
		if binds {
			total++
		}
		if total < 2 {
			continue
		}
		where = append(where, WhereClause{Slots: idxs, BindsReturn: binds, Var: v})
	}

	return Pattern{Atoms: atoms, SlotNames: names, Returns: retExpr, Where: where}, nil
}

// atom parses one pattern element: either a back-tick lexeme or a
// `name : type-expr [?][*]` slot. idx is this atom's position, used to
// record type-variable usage for the return pass.
func (p *patParser) atom(idx int) (MatchAtom, string, error) {
	tok := p.peek()
	if tok.kind == ptLexeme {
		p.next()
		return MatchAtom{Kind: AtomLexeme, Lexeme: arena.NewWord(tok.text)}, "", nil
	}
	if tok.kind != ptIdent {
		return MatchAtom{}, "", fmt.Errorf("pattern: expected slot name or lexeme, got token kind %d", tok.kind)
	}
	slotName := tok.text
	p.next()
	if p.peek().kind != ptColon {
		return MatchAtom{}, "", fmt.Errorf("pattern: slot %q: expected ':'", slotName)
	}
	p.next()

	varName, te, err := p.orExpr()
	if err != nil {
		return MatchAtom{}, "", fmt.Errorf("pattern: slot %q: %w", slotName, err)
	}

	atom := MatchAtom{Kind: AtomExpr, TypeExpr: te}
	for {
		switch p.peek().kind {
		case ptOpt:
			atom.Optional = true
			p.next()
			continue
		case ptStar:
			atom.Repeating = true
			p.next()
			continue
		}
		break
	}

	if varName != "" {
		if _, seen := p.varSlots[varName]; !seen {
			p.varOrder = append(p.varOrder, varName)
		}
		p.varSlots[varName] = append(p.varSlots[varName], idx)
	}

	return atom, slotName, nil
}

// orExpr parses `primary ('|' primary)*`. The variable-spelling string it
// returns is non-empty only when exactly one primary was parsed and that
// primary was a bare identifier: a compound sum expression can never
// itself be a type variable.
func (p *patParser) orExpr() (string, types.TypeExpr, error) {
	name, first, err := p.primary()
	if err != nil {
		return "", types.TypeExpr{}, err
	}
	if p.peek().kind != ptPipe {
		return name, first, nil
	}
	parts := []types.TypeExpr{first}
	for p.peek().kind == ptPipe {
		p.next()
		_, te, err := p.primary()
		if err != nil {
			return "", types.TypeExpr{}, err
		}
		parts = append(parts, te)
	}
	return "", types.Sum(parts...), nil
}

func (p *patParser) primary() (string, types.TypeExpr, error) {
	tok := p.peek()
	switch tok.kind {
	case ptLParen:
		p.next()
		_, te, err := p.orExpr()
		if err != nil {
			return "", types.TypeExpr{}, err
		}
		if p.peek().kind != ptRParen {
			return "", types.TypeExpr{}, fmt.Errorf("type-expr: expected ')'")
		}
		p.next()
		return "", te, nil
	case ptIdent:
		p.next()
		if t, ok := p.g.Lookup(tok.text); ok {
			return tok.text, types.Expr(t), nil
		}
		anyT, ok := p.g.Lookup("any")
		if !ok {
			return "", types.TypeExpr{}, fmt.Errorf("undefined type %q (and no top type \"any\" is registered)", tok.text)
		}
		return tok.text, types.Expr(anyT), nil
	default:
		return "", types.TypeExpr{}, fmt.Errorf("type-expr: expected identifier or '(', got token kind %d", tok.kind)
	}
}
