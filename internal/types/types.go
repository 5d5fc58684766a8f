// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package types implements the type lattice: a graph of named types
// supporting subtype queries, plus the compound type expressions
// (atom, sum, product) that patterns match against.
package types

import (
	"fmt"
	"sort"

	"github.com/fungus-lang/fungus/internal/arena"
	"golang.org/x/exp/maps"
)

// Kind distinguishes concrete types (instantiable) from abstract types
// (may appear in patterns and as supertypes, never instantiated).
type Kind uint8

const (
	Concrete Kind = iota + 1
	Abstract
)

func (k Kind) String() string {
	if k == Abstract {
		return "abstract"
	}
	return "concrete"
}

// Type is an opaque identifier into a Graph.
type Type struct{ id int }

// IsZero reports whether t is the zero Type (never returned by Define).
func (t Type) IsZero() bool { return t.id == 0 }

type entry struct {
	name      arena.Word
	kind      Kind
	supers    []Type
	ancestors bitset // transitive closure, including self
}

// Graph is a type lattice: a DAG of named types.
type Graph struct {
	pool    *arena.Arena
	entries []*entry // entries[0] is an unused sentinel so the zero Type is invalid
	byName  map[string]Type
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		pool:    arena.New(),
		entries: []*entry{nil},
		byName:  map[string]Type{},
	}
}

// Define adds a new named type with the given supertypes. Every supertype
// must already be defined in g — this is what makes the DAG invariant
// structural rather than something we have to search for after the fact:
// you cannot reference a type that doesn't exist yet, so a cycle can never
// be constructed.
func (g *Graph) Define(name string, kind Kind, supers ...Type) (Type, error) {
	if _, exists := g.byName[name]; exists {
		return Type{}, fmt.Errorf("type %q already defined", name)
	}
	for _, s := range supers {
		if !g.valid(s) {
			return Type{}, fmt.Errorf("type %q: supertype %v is not defined in this graph", name, s)
		}
	}

	id := len(g.entries)
	e := &entry{
		name:   arena.Intern(g.pool, name),
		kind:   kind,
		supers: append([]Type(nil), supers...),
	}

	anc := newBitset(id + 1)
	anc.set(id)
	for _, s := range supers {
		anc = anc.union(g.entries[s.id].ancestors)
	}
	e.ancestors = anc

	g.entries = append(g.entries, e)
	t := Type{id: id}
	g.byName[name] = t
	return t, nil
}

func (g *Graph) valid(t Type) bool {
	return t.id > 0 && t.id < len(g.entries)
}

// Lookup finds a type by name.
func (g *Graph) Lookup(name string) (Type, bool) {
	t, ok := g.byName[name]
	return t, ok
}

// Name returns the declared name of t.
func (g *Graph) Name(t Type) string {
	if !g.valid(t) {
		return "<invalid>"
	}
	return g.entries[t.id].name.String()
}

// Kind returns whether t is concrete or abstract.
func (g *Graph) Kind(t Type) Kind {
	if !g.valid(t) {
		return 0
	}
	return g.entries[t.id].kind
}

// IsA reports whether t is a sub- (or the same) type of u: is_a(t,t) holds
// for all t, and is_a is transitive by construction (ancestor sets are
// built as a closure at Define time).
func (g *Graph) IsA(t, u Type) bool {
	if !g.valid(t) || !g.valid(u) {
		return false
	}
	return g.entries[t.id].ancestors.has(u.id)
}

// Supers returns the direct (not transitive) supertypes of t.
func (g *Graph) Supers(t Type) []Type {
	if !g.valid(t) {
		return nil
	}
	return append([]Type(nil), g.entries[t.id].supers...)
}

// Dump renders the graph in name order, for diagnostics/debugging.
func (g *Graph) Dump() string {
	names := maps.Keys(g.byName)
	sort.Strings(names)
	out := ""
	for _, n := range names {
		t := g.byName[n]
		e := g.entries[t.id]
		out += fmt.Sprintf("%s (%s)", n, e.kind)
		if len(e.supers) > 0 {
			out += " is"
			for _, s := range e.supers {
				out += " " + g.Name(s)
			}
		}
		out += "\n"
	}
	return out
}

// bitset is a small fixed-growth bit vector used for ancestor closures.
type bitset struct {
	words []uint64
}

func newBitset(minBits int) bitset {
	n := (minBits + 63) / 64
	if n == 0 {
		n = 1
	}
	return bitset{words: make([]uint64, n)}
}

func (b bitset) set(i int) {
	w, bit := i/64, uint(i%64)
	b.words[w] |= 1 << bit
}

func (b bitset) has(i int) bool {
	w, bit := i/64, uint(i%64)
	if w >= len(b.words) {
		return false
	}
	return b.words[w]&(1<<bit) != 0
}

func (b bitset) union(o bitset) bitset {
	n := len(b.words)
	if len(o.words) > n {
		n = len(o.words)
	}
	out := make([]uint64, n)
	copy(out, b.words)
	for i, w := range o.words {
		out[i] |= w
	}
	return bitset{words: out}
}
