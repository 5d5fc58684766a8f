// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package rules

import "github.com/fungus-lang/fungus/internal/types"

// Slot is one pattern atom's outcome after a successful match: either it
// consumed one or more input elements (Present, Start/Count into the
// matched slice, EvalType of the first consumed element) or — for an
// optional atom that wasn't present — it is a fixed-arity placeholder:
// optional atoms always occupy a slot; repeating atoms collapse their
// whole run into one slot.
type Slot struct {
	Atom     MatchAtom
	Present  bool
	Start    int
	Count    int
	EvalType types.TypeExpr
}

// Align replays pat.Atoms against input[:matchLen] — the same elements a
// prior Tree.Match walk consumed for pat's own rule — to recover which
// atoms were actually present versus skipped. It is a separate pass
// rather than bookkeeping carried through Match so the trie (shared
// across every rule) never needs to know which pattern a given walk
// belongs to.
func Align(pat Pattern, input []Elem, matchLen int, g *types.Graph) ([]Slot, bool) {
	slots := make([]Slot, len(pat.Atoms))
	i := 0
	for idx, atom := range pat.Atoms {
		if i < matchLen && atomMatches(atom, input[i], g) {
			start := i
			count := 1
			if atom.Repeating {
				for i+count < matchLen && atomMatches(atom, input[i+count], g) {
					count++
				}
			}
			slots[idx] = Slot{Atom: atom, Present: true, Start: start, Count: count, EvalType: input[start].EvalType}
			i += count
		} else if atom.Optional {
			slots[idx] = Slot{Atom: atom, Present: false}
		} else {
			return nil, false
		}
	}
	if i != matchLen {
		return nil, false
	}
	return slots, true
}

// ResolveWhere checks every where-clause against the aligned slots and
// returns the composite's effective return type: the pattern's declared
// Returns, overridden by a bound variable's resolved type when one of
// pat.Where binds the return. ok is false when a where-clause's
// slots disagree — the caller should treat this as a failed match and
// fall back to the next (shorter) Candidate, not as an error.
func ResolveWhere(pat Pattern, slots []Slot, g *types.Graph) (types.TypeExpr, bool) {
	result := pat.Returns
	for _, wc := range pat.Where {
		var resolved types.Type
		have := false
		for _, si := range wc.Slots {
			s := slots[si]
			if !s.Present {
				continue
			}
			if s.EvalType.Kind != types.ExprAtom {
				return types.TypeExpr{}, false
			}
			if !have {
				resolved = s.EvalType.Atom
				have = true
				continue
			}
			if !g.MatchesExpr(s.EvalType, types.Expr(resolved)) {
				return types.TypeExpr{}, false
			}
		}
		if have && wc.BindsReturn {
			result = types.Expr(resolved)
		}
	}
	return result, true
}
