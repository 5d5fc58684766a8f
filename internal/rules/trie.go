// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package rules

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/fungus-lang/fungus/internal/arena"
	"github.com/fungus-lang/fungus/internal/prec"
	"github.com/fungus-lang/fungus/internal/types"
)

// WhereClause ties a group of pattern slots (and, optionally, the return
// type) to a single shared type variable: every present slot's resolved
// type must unify, first-constrains-wins.
type WhereClause struct {
	Slots       []int
	BindsReturn bool
	Var         string
}

// Pattern is a compiled production: a sequence of MatchAtoms, the type it
// returns when fully matched, and the where-clauses binding any shared
// type variables across its slots.
type Pattern struct {
	Atoms     []MatchAtom
	SlotNames []string // parallel to Atoms, for diagnostics only
	Returns   types.TypeExpr
	Where     []WhereClause
}

// Rule is an opaque handle into a Tree.
type Rule struct{ id int }

func (r Rule) IsZero() bool { return r.id == 0 }

// RuleEntry is everything the engine remembers about one defined rule.
type RuleEntry struct {
	ID      Rule
	Name    arena.Word
	Pattern Pattern
	Returns types.TypeExpr
	Prec    prec.Prec
	Assoc   prec.Assoc
	Type    types.Type // the rule's own meta-type, a subtype of the abstract Rule type
}

type trieNode struct {
	atom        MatchAtom
	children    []*trieNode
	hasTerminal bool
	terminal    Rule
}

// Tree is the rule trie shared by every rule in a Lang: one root, one
// child chain per distinct Pattern prefix.
type Tree struct {
	pool    *arena.Arena
	root    *trieNode
	entries []*RuleEntry // entries[0] is an unused sentinel
	byName  map[string]Rule
}

// NewTree returns an empty rule Tree.
func NewTree() *Tree {
	return &Tree{
		pool:    arena.New(),
		root:    &trieNode{},
		entries: []*RuleEntry{nil},
		byName:  map[string]Rule{},
	}
}

// ReservedScopeRuleName is the RuleName internal/parser's finishScope
// stamps onto the synthetic composite it builds for a multi-statement
// scope. No Lang may Define a rule under this name: parser's rotation
// and precedence lookups key purely off the bare RuleName string, so a
// user rule sharing the name would be indistinguishable from the
// builtin wrapper.
const ReservedScopeRuleName = "Scope"

// Define compiles pat into the trie under name, returning the new Rule.
// Rejects a duplicate name, the reserved ReservedScopeRuleName, and a
// pattern identical to one already defined (same atom sequence, same
// optional/repeating shape).
func (t *Tree) Define(name string, pat Pattern, p prec.Prec, assoc prec.Assoc, ruleType types.Type) (Rule, error) {
	if name == ReservedScopeRuleName {
		return Rule{}, fmt.Errorf("rule name %q is reserved for the builtin multi-statement scope wrapper", name)
	}
	if _, exists := t.byName[name]; exists {
		return Rule{}, fmt.Errorf("rule %q already defined", name)
	}
	if len(pat.Atoms) == 0 {
		return Rule{}, fmt.Errorf("rule %q: pattern must have at least one atom", name)
	}

	id := len(t.entries)
	r := Rule{id: id}
	if err := t.insert(t.root, pat.Atoms, 0, r); err != nil {
		return Rule{}, fmt.Errorf("rule %q: %w", name, err)
	}

	t.entries = append(t.entries, &RuleEntry{
		ID:      r,
		Name:    arena.Intern(t.pool, name),
		Pattern: pat,
		Returns: pat.Returns,
		Prec:    p,
		Assoc:   assoc,
		Type:    ruleType,
	})
	t.byName[name] = r
	return r, nil
}

// insert threads atoms[idx:] into node. An optional atom at idx also gets
// a "skip" edge: the continuation is inserted directly under node too, so
// the trie accepts the pattern both with and without that atom present.
func (t *Tree) insert(node *trieNode, atoms []MatchAtom, idx int, rule Rule) error {
	if idx == len(atoms) {
		if node.hasTerminal {
			return fmt.Errorf("pattern conflicts with rule %q", t.entries[node.terminal.id].Name.String())
		}
		node.hasTerminal = true
		node.terminal = rule
		return nil
	}
	atom := atoms[idx]
	child := t.findOrMakeChild(node, atom)
	if err := t.insert(child, atoms, idx+1, rule); err != nil {
		return err
	}
	if atom.Optional {
		if err := t.insert(node, atoms, idx+1, rule); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) findOrMakeChild(node *trieNode, atom MatchAtom) *trieNode {
	for _, c := range node.children {
		if c.atom.Equal(atom) {
			return c
		}
	}
	c := &trieNode{atom: atom}
	node.children = append(node.children, c)
	return c
}

// Candidate is one terminal reached during a single greedy trie walk.
type Candidate struct {
	Rule Rule
	Len  int
}

// Match walks input from the root, choosing at each node the first child
// whose atom accepts the current element (ties broken by trie insertion
// order — the walk never backtracks, matching the reference
// implementation's try_match). A Repeating atom's child, once chosen,
// greedily reconsumes further elements against the same atom before the
// walk advances to its children. Every terminal passed along the way is
// recorded; the result is sorted longest-first so a caller can fall back
// to a shorter match when a longer one fails its where-clauses.
func (t *Tree) Match(g *types.Graph, input []Elem) []Candidate {
	var cands []Candidate
	node := t.root
	for i := 0; i < len(input); {
		child := t.bestChild(node, input[i], g)
		if child == nil {
			break
		}
		consumed := 1
		if child.atom.Repeating {
			for i+consumed < len(input) && atomMatches(child.atom, input[i+consumed], g) {
				consumed++
			}
		}
		i += consumed
		node = child
		if node.hasTerminal {
			cands = append(cands, Candidate{Rule: node.terminal, Len: i})
		}
	}
	for l, r := 0, len(cands)-1; l < r; l, r = l+1, r-1 {
		cands[l], cands[r] = cands[r], cands[l]
	}
	return cands
}

func (t *Tree) bestChild(node *trieNode, elem Elem, g *types.Graph) *trieNode {
	for _, c := range node.children {
		if atomMatches(c.atom, elem, g) {
			return c
		}
	}
	return nil
}

// Get returns the RuleEntry for r.
func (t *Tree) Get(r Rule) *RuleEntry { return t.entries[r.id] }

// Lookup finds a rule by name.
func (t *Tree) Lookup(name string) (Rule, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// Dump lists every defined rule's name and atom count, in name order, for
// diagnostics/debugging.
func (t *Tree) Dump() string {
	names := make([]string, 0, len(t.byName))
	for n := range t.byName {
		names = append(names, n)
	}
	slices.Sort(names)
	out := ""
	for _, n := range names {
		e := t.entries[t.byName[n].id]
		out += fmt.Sprintf("%s (%d atoms)\n", n, len(e.Pattern.Atoms))
	}
	return out
}
