// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package prec implements the precedence graph: a DAG of named
// precedences with associativity, supporting partial-order comparison.
package prec

import (
	"fmt"

	"github.com/fungus-lang/fungus/internal/arena"
	"golang.org/x/exp/slices"
)

// Assoc is operator associativity.
type Assoc uint8

const (
	Left Assoc = iota + 1
	Right
)

func (a Assoc) String() string {
	if a == Right {
		return "right"
	}
	return "left"
}

// Cmp is the result of comparing two precedences.
type Cmp int

const (
	LT Cmp = -1
	EQ Cmp = 0
	GT Cmp = 1
)

// Prec is an opaque identifier in a Graph.
type Prec struct{ id int }

func (p Prec) IsZero() bool { return p.id == 0 }

type entry struct {
	name  arena.Word
	assoc Assoc
	above []Prec // precedences this entry directly dominates
}

// Graph is a precedence DAG.
type Graph struct {
	pool    *arena.Arena
	entries []*entry // entries[0] is an unused sentinel
	byName  map[string]Prec
}

// NewGraph returns an empty precedence Graph.
func NewGraph() *Graph {
	return &Graph{
		pool:    arena.New(),
		entries: []*entry{nil},
		byName:  map[string]Prec{},
	}
}

func (g *Graph) valid(p Prec) bool { return p.id > 0 && p.id < len(g.entries) }

// Define links a new precedence node above/below existing nodes, rejecting
// any definition that would close a cycle. `below` is sugar: it adds this
// new precedence to the `above` set of each listed precedence instead of
// requiring the caller to declare the edge from the other endpoint — it
// never introduces a distinct graph relation.
func (g *Graph) Define(name string, assoc Assoc, above, below []Prec) (Prec, error) {
	if _, exists := g.byName[name]; exists {
		return Prec{}, fmt.Errorf("precedence %q already defined", name)
	}
	for _, a := range above {
		if !g.valid(a) {
			return Prec{}, fmt.Errorf("precedence %q: above-reference %v is not defined", name, a)
		}
	}
	for _, b := range below {
		if !g.valid(b) {
			return Prec{}, fmt.Errorf("precedence %q: below-reference %v is not defined", name, b)
		}
	}

	id := len(g.entries)
	e := &entry{
		name:  arena.Intern(g.pool, name),
		assoc: assoc,
		above: append([]Prec(nil), above...),
	}
	p := Prec{id: id}

	// A `below` edge makes b dominate p. That closes a cycle exactly when
	// p already (transitively, including directly via `above`) dominates
	// b — check using the tentative entry e before it's registered, since
	// e.id isn't in g.entries yet.
	for _, b := range below {
		if e.dominates(g, b) {
			return Prec{}, fmt.Errorf("circular precedence definition: %s <=> %s", name, g.entries[b.id].name.String())
		}
	}

	g.entries = append(g.entries, e)

	for _, b := range below {
		g.entries[b.id].above = append(g.entries[b.id].above, p)
	}

	g.byName[name] = p
	return p, nil
}

// dominates reports whether e (directly or transitively) dominates object.
func (e *entry) dominates(g *Graph, object Prec) bool {
	for _, a := range e.above {
		if a.id == object.id {
			return true
		}
	}
	for _, a := range e.above {
		if g.entries[a.id].dominates(g, object) {
			return true
		}
	}
	return false
}

// higherThan reports whether e (directly or transitively) dominates object.
func (g *Graph) higherThan(e *entry, object Prec) bool {
	return e.dominates(g, object)
}

// Lookup finds a precedence by name.
func (g *Graph) Lookup(name string) (Prec, bool) {
	p, ok := g.byName[name]
	return p, ok
}

// Name returns the declared name of p.
func (g *Graph) Name(p Prec) string {
	if !g.valid(p) {
		return "<invalid>"
	}
	return g.entries[p.id].name.String()
}

// AssocOf returns the associativity of p.
func (g *Graph) AssocOf(p Prec) Assoc {
	if !g.valid(p) {
		return 0
	}
	return g.entries[p.id].assoc
}

// Cmp compares a and b: GT if a dominates b, LT if b dominates a, EQ
// otherwise (including when a and b are simply unrelated).
func (g *Graph) Cmp(a, b Prec) Cmp {
	if !g.valid(a) || !g.valid(b) {
		return EQ
	}
	if a.id == b.id {
		return EQ
	}
	if g.higherThan(g.entries[a.id], b) {
		return GT
	}
	if g.higherThan(g.entries[b.id], a) {
		return LT
	}
	return EQ
}

// Dump renders the graph in name order for diagnostics/debugging.
func (g *Graph) Dump() string {
	names := make([]string, 0, len(g.byName))
	for n := range g.byName {
		names = append(names, n)
	}
	slices.Sort(names)
	out := ""
	for _, n := range names {
		p := g.byName[n]
		e := g.entries[p.id]
		out += fmt.Sprintf("%s <%s>", n, e.assoc)
		if len(e.above) > 0 {
			out += " >"
			for _, a := range e.above {
				out += " " + g.Name(a)
			}
		}
		out += "\n"
	}
	return out
}
