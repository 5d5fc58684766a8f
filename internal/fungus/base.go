// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package fungus bootstraps the base Fungus language: the builtin type
// lattice, precedence chain, keyword/symbol vocabulary, and arithmetic
// rule table that every other Lang is either this one or an extension
// of. Grounded on original_source/src/lang/fungus.c (Lang, precedence
// chain, rule table) and original_source/src/base_fungus.c (type
// lattice, lexeme/keyword registration).
package fungus

import (
	"fmt"

	"github.com/fungus-lang/fungus/internal/parser"
	"github.com/fungus-lang/fungus/internal/prec"
	"github.com/fungus-lang/fungus/internal/rules"
	"github.com/fungus-lang/fungus/internal/types"
)

// Types names every builtin type Base defines, for callers that need to
// extend the lattice (e.g. a REPL adding a user type) without repeating
// the bootstrap's string literals.
type Types struct {
	Any, AnyValue, AnyExpr types.Type

	// metatypes, used to classify an AST node before any user rule runs
	// (SUPPLEMENTED FEATURES #2): every rule's own return composite is a
	// concrete subtype of Rule.
	Lexeme, Literal, Ident, Scope, Rule types.Type

	Primitive, Number        types.Type
	Bool, String, Int, Float types.Type
}

// Precs names the builtin precedence chain, lowest to highest binding
// power, matching lang/fungus.c's PRECS table plus base_fungus.c's
// separate Exp tier for Power.
type Precs struct {
	Lowest, AddSub, MulDiv, Exp, Highest prec.Prec
}

// Base is the bootstrapped base language: a ready-to-use parser.Lang plus
// the named handles a caller needs to define further types, precedences,
// or rules on top of it.
type Base struct {
	Lang  *parser.Lang
	Types Types
	Precs Precs
}

// New builds the base Fungus language from scratch: type lattice,
// precedence chain, keyword/symbol vocabulary, and the arithmetic +
// grouping rule table the base language's end-to-end scenarios exercise.
func New() (*Base, error) {
	g := types.NewGraph()
	t, err := defineBaseTypes(g)
	if err != nil {
		return nil, fmt.Errorf("fungus: define base types: %w", err)
	}

	pg := prec.NewGraph()
	p, err := defineBasePrecs(pg)
	if err != nil {
		return nil, fmt.Errorf("fungus: define base precedences: %w", err)
	}

	tree := rules.NewTree()
	b := rules.NewBuilder(tree, g)
	if err := defineBaseRules(g, b, t, p); err != nil {
		return nil, fmt.Errorf("fungus: define base rule types: %w", err)
	}
	built, err := b.Finalize()
	if err != nil {
		return nil, fmt.Errorf("fungus: define base rules: %w", err)
	}

	keywords := []string{"let", "type"}
	symbols := []string{"(", ")", "{", "}", "=", "*", "/", "%", "+", "-", ":", "?", "**", "|", ";"}

	lang := parser.NewLang(built, pg, g, keywords, symbols)
	lang.StatementSep = ";"
	lang.IdentType = t.Ident
	lang.BoolType = t.Bool
	lang.IntType = t.Int
	lang.FloatType = t.Float
	lang.StringType = t.String
	lang.ScopeType = t.Scope

	return &Base{Lang: lang, Types: t, Precs: p}, nil
}

// defineBaseTypes builds the lattice described in SUPPLEMENTED FEATURES
// #1-#2: a root Any, the AnyValue/AnyExpr split (runtime values vs AST
// expressions), the parser's own metatypes hanging off AnyExpr, and the
// Primitive/Number/int/float/bool/string runtime hierarchy hanging off
// AnyValue. Grounded on base_fungus.c's Fungus_define_base and
// lang/fungus.h's BASE_TYPES table.
func defineBaseTypes(g *types.Graph) (Types, error) {
	var t Types
	var err error

	define := func(name string, kind types.Kind, supers ...types.Type) (types.Type, bool) {
		if err != nil {
			return types.Type{}, false
		}
		var ty types.Type
		ty, err = g.Define(name, kind, supers...)
		return ty, err == nil
	}

	t.Any, _ = define("any", types.Abstract)
	t.AnyValue, _ = define("AnyValue", types.Abstract, t.Any)
	t.AnyExpr, _ = define("AnyExpr", types.Abstract, t.Any)

	// metatypes: what kind of AST node this is, before any rule-specific
	// concrete type applies.
	t.Lexeme, _ = define("Lexeme", types.Abstract, t.AnyExpr)
	t.Literal, _ = define("Literal", types.Abstract, t.AnyExpr)
	t.Ident, _ = define("Ident", types.Concrete, t.AnyExpr)
	t.Scope, _ = define("Scope", types.Concrete, t.AnyExpr)
	t.Rule, _ = define("Rule", types.Abstract, t.AnyExpr)

	// runtime value hierarchy.
	t.Primitive, _ = define("Primitive", types.Abstract, t.AnyValue)
	t.Number, _ = define("Number", types.Abstract, t.Primitive)
	t.Bool, _ = define("bool", types.Concrete, t.Primitive)
	t.String, _ = define("string", types.Concrete, t.Primitive)
	t.Int, _ = define("int", types.Concrete, t.Number)
	t.Float, _ = define("float", types.Concrete, t.Number)

	if err != nil {
		return Types{}, err
	}
	return t, nil
}

// defineBasePrecs builds the chain Lowest < AddSub < MulDiv < Exp <
// Highest, each tier strictly tighter-binding than the last — Highest is
// reserved for Parens and any other rule that must never be rotated
// around (see rotate.go's raw-lexeme-leaf guard, which already makes
// Parens opaque to rotation without this precedence tier's help; the
// tier exists so a future rule can declare itself "binds as tight as
// grouping" without being a literal-bounded rule itself).
func defineBasePrecs(pg *prec.Graph) (Precs, error) {
	var p Precs

	lowest, e := pg.Define("Lowest", prec.Left, nil, nil)
	if e != nil {
		return Precs{}, e
	}
	p.Lowest = lowest

	addsub, e := pg.Define("AddSub", prec.Left, []prec.Prec{lowest}, nil)
	if e != nil {
		return Precs{}, e
	}
	p.AddSub = addsub

	muldiv, e := pg.Define("MulDiv", prec.Left, []prec.Prec{addsub}, nil)
	if e != nil {
		return Precs{}, e
	}
	p.MulDiv = muldiv

	exp, e := pg.Define("Exp", prec.Right, []prec.Prec{muldiv}, nil)
	if e != nil {
		return Precs{}, e
	}
	p.Exp = exp

	highest, e := pg.Define("Highest", prec.Left, []prec.Prec{exp}, nil)
	if e != nil {
		return Precs{}, e
	}
	p.Highest = highest

	return p, nil
}

// defineBaseRules registers the grouping + arithmetic rule table from
// base_fungus.c's Rule_define calls and lang/fungus.c's RULES table:
// Parens at Highest, Power at Exp (right-assoc), and the five classic
// binary math ops at AddSub/MulDiv. Every slot and return type is spelled
// "Number", and the pattern compiler treats slots sharing a bare type
// spelling as one type variable, so `1 + 2.0` fails to unify int against
// float and is rejected with no type-mismatch-specific code in
// internal/parser at all.
//
// Each rule also gets its own concrete type, a subtype of the abstract
// Rule metatype, registered before the rule itself — SUPPLEMENTED
// FEATURES #2's "every Rule is itself registered as a concrete subtype
// of the abstract Rule meta-type."
func defineBaseRules(g *types.Graph, b *rules.Builder, t Types, p Precs) error {
	ruleType := func(name string) (types.Type, error) { return g.Define(name, types.Concrete, t.Rule) }

	parensType, err := ruleType("Parens")
	if err != nil {
		return err
	}
	b.Add(rules.Def{Name: "Parens", Source: "`( a: Number `) -> Number", Prec: p.Highest, Assoc: prec.Left, RuleType: parensType})

	bin := []struct {
		name, sym string
		pr        prec.Prec
		assoc     prec.Assoc
	}{
		{"Add", "+", p.AddSub, prec.Left},
		{"Subtract", "-", p.AddSub, prec.Left},
		{"Multiply", "*", p.MulDiv, prec.Left},
		{"Divide", "/", p.MulDiv, prec.Left},
		{"Modulo", "%", p.MulDiv, prec.Left},
		{"Power", "**", p.Exp, prec.Right},
	}
	for _, op := range bin {
		opType, err := ruleType(op.name)
		if err != nil {
			return err
		}
		b.Add(rules.Def{
			Name:     op.name,
			Source:   fmt.Sprintf("a: Number `%s b: Number -> Number", op.sym),
			Prec:     op.pr,
			Assoc:    op.assoc,
			RuleType: opType,
		})
	}
	return nil
}
