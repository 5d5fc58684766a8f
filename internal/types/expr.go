// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package types

// ExprKind distinguishes the three shapes a TypeExpr can take.
type ExprKind uint8

const (
	ExprAtom ExprKind = iota + 1
	ExprSum
	ExprProduct
)

// TypeExpr is a tree whose leaves are Types and whose internal nodes are
// sum (T | U) or product (T , U) combinators. Patterns match against
// TypeExprs.
type TypeExpr struct {
	Kind  ExprKind
	Atom  Type       // valid when Kind == ExprAtom
	Parts []TypeExpr // valid when Kind == ExprSum or ExprProduct
}

// Expr constructs an atomic type expression.
func Expr(t Type) TypeExpr { return TypeExpr{Kind: ExprAtom, Atom: t} }

// Sum constructs a sum (union) type expression.
func Sum(parts ...TypeExpr) TypeExpr { return TypeExpr{Kind: ExprSum, Parts: parts} }

// Product constructs a product type expression.
func Product(parts ...TypeExpr) TypeExpr { return TypeExpr{Kind: ExprProduct, Parts: parts} }

// Matches decides whether a value of type t satisfies the target type
// expression te:
//
//	is_a(t, Atom(u))      ⇔ t ≤ u
//	is_a(t, Sum(xs))      ⇔ ∃x∈xs. is_a(t, x)
//	is_a(t, Product(xs))  ⇔ t itself is a product with matching arity
//	                         and pointwise subtyping
//
// Since this engine has no first-class product *values* (only product type
// *expressions*, used to describe tuple-shaped rule returns), a plain Type
// is never a product, so Matches always returns false for a product
// target; a value whose own shape is a product TypeExpr is checked with
// MatchesExpr instead.
func (g *Graph) Matches(t Type, te TypeExpr) bool {
	switch te.Kind {
	case ExprAtom:
		return g.IsA(t, te.Atom)
	case ExprSum:
		for _, x := range te.Parts {
			if g.Matches(t, x) {
				return true
			}
		}
		return false
	case ExprProduct:
		// A bare Type can never satisfy a product target: products are
		// only produced by composite expressions, which carry their own
		// TypeExpr (see MatchesExpr).
		return false
	}
	return false
}

// MatchesExpr decides whether a value whose own shape is described by
// `have` (either an atomic type — the common case — or a product shape
// carried alongside a tuple-valued composite) satisfies the pattern
// TypeExpr `want`.
func (g *Graph) MatchesExpr(have TypeExpr, want TypeExpr) bool {
	switch want.Kind {
	case ExprAtom:
		if have.Kind == ExprAtom {
			return g.IsA(have.Atom, want.Atom)
		}
		return false
	case ExprSum:
		for _, x := range want.Parts {
			if g.MatchesExpr(have, x) {
				return true
			}
		}
		return false
	case ExprProduct:
		if have.Kind != ExprProduct || len(have.Parts) != len(want.Parts) {
			return false
		}
		for i := range want.Parts {
			if !g.MatchesExpr(have.Parts[i], want.Parts[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Equals is structural equality, used as an equivalence key in the rule
// trie. Sum is compared modulo set equality (order-independent); Product
// is compared positionally — arity and order both matter, since product
// semantics are pointwise.
func Equals(a, b TypeExpr) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ExprAtom:
		return a.Atom == b.Atom
	case ExprProduct:
		if len(a.Parts) != len(b.Parts) {
			return false
		}
		for i := range a.Parts {
			if !Equals(a.Parts[i], b.Parts[i]) {
				return false
			}
		}
		return true
	case ExprSum:
		if len(a.Parts) != len(b.Parts) {
			return false
		}
		used := make([]bool, len(b.Parts))
		for _, x := range a.Parts {
			found := false
			for j, y := range b.Parts {
				if !used[j] && Equals(x, y) {
					used[j] = true
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
	return false
}
