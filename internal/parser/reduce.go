// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package parser

import (
	"github.com/sirupsen/logrus"

	"github.com/fungus-lang/fungus/internal/ast"
	"github.com/fungus-lang/fungus/internal/rules"
)

// tryMatchAt walks the trie from work[i:], trying each candidate
// longest-first until one both aligns and satisfies its where-clauses —
// a pattern mismatch is silent; fall back to a shorter
// Candidate".
func (lang *Lang) tryMatchAt(work []workItem, i int) (rules.Rule, *rules.RuleEntry, []rules.Slot, int, bool) {
	elems := elemsFrom(work[i:])
	for _, cand := range lang.Rules.Match(lang.Types, elems) {
		entry := lang.Rules.Get(cand.Rule)
		slots, ok := rules.Align(entry.Pattern, elems, cand.Len, lang.Types)
		if !ok {
			continue
		}
		if _, ok := rules.ResolveWhere(entry.Pattern, slots, lang.Types); !ok {
			continue
		}
		return cand.Rule, entry, slots, cand.Len, true
	}
	return rules.Rule{}, nil, nil, 0, false
}

// buildChildren turns aligned slots into the composite's child slice:
// one entry per pattern atom, nil for a skipped optional, a synthetic
// List wrapper for a repeating atom's whole run.
func buildChildren(slots []rules.Slot, work []workItem, i int) []*ast.Expression {
	children := make([]*ast.Expression, len(slots))
	for idx, s := range slots {
		if !s.Present {
			continue
		}
		if !s.Atom.Repeating {
			children[idx] = work[i+s.Start].expr
			continue
		}
		items := make([]*ast.Expression, s.Count)
		for j := 0; j < s.Count; j++ {
			items[j] = work[i+s.Start+j].expr
		}
		children[idx] = ast.NewList(items, s.EvalType)
	}
	return children
}

// collapse is stage 3: repeatedly scan left to right, greedily matching
// and replacing the longest rule at each position, rotating the result,
// and retrying at the same index, until a full pass makes no change.
func (lang *Lang) collapse(work []workItem) ([]workItem, error) {
	for {
		matched := false
		for i := 0; i < len(work); {
			_, entry, slots, matchLen, ok := lang.tryMatchAt(work, i)
			if !ok {
				i++
				continue
			}
			evalType := entry.Returns
			if resolved, ok := rules.ResolveWhere(entry.Pattern, slots, lang.Types); ok {
				evalType = resolved
			}
			children := buildChildren(slots, work, i)
			composite := ast.NewComposite(entry.Name.String(), evalType, children)
			composite = correctPrecedence(lang, composite)

			logrus.WithFields(logrus.Fields{
				"rule": entry.Name.String(),
				"pos":  i,
				"len":  matchLen,
			}).Debug("parser: reduced rule")

			work = append(work[:i], append([]workItem{{expr: composite, elem: rules.Elem{EvalType: evalType}}}, work[i+matchLen:]...)...)
			matched = true
		}
		if !matched {
			break
		}
	}
	return work, nil
}
