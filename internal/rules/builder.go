// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package rules

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/fungus-lang/fungus/internal/prec"
	"github.com/fungus-lang/fungus/internal/types"
)

// Def is one rule awaiting definition, as produced by a Lang bootstrap
// table.
type Def struct {
	Name     string
	Source   string // pattern source text, compiled with Compile
	Prec     prec.Prec
	Assoc    prec.Assoc
	RuleType types.Type
}

// DiagLevel distinguishes a hard failure from a note worth surfacing but
// not worth aborting the bootstrap over.
type DiagLevel uint8

const (
	DiagError DiagLevel = iota + 1
	DiagWarn
)

// Diagnostic is one problem recorded while building a Lang's rule set.
type Diagnostic struct {
	Level DiagLevel
	Rule  string
	Msg   string
}

func (d Diagnostic) Error() string { return fmt.Sprintf("rule %q: %s", d.Rule, d.Msg) }

// Builder collects rule definitions the way the reference grammar builder
// collects symbol/production declarations: every Def is attempted even
// after an earlier one fails, so a whole bootstrap table can be debugged
// in one pass instead of stopping at the first bad entry.
type Builder struct {
	tree  *Tree
	g     *types.Graph
	diags []Diagnostic
}

// NewBuilder returns a Builder that defines rules into tree, compiling
// pattern sources against g.
func NewBuilder(tree *Tree, g *types.Graph) *Builder {
	return &Builder{tree: tree, g: g}
}

// Add compiles and defines one rule, recording — rather than stopping on
// — any failure.
func (b *Builder) Add(def Def) {
	pat, err := Compile(b.g, def.Source)
	if err != nil {
		b.diags = append(b.diags, Diagnostic{Level: DiagError, Rule: def.Name, Msg: err.Error()})
		return
	}
	if _, err := b.tree.Define(def.Name, pat, def.Prec, def.Assoc, def.RuleType); err != nil {
		b.diags = append(b.diags, Diagnostic{Level: DiagError, Rule: def.Name, Msg: err.Error()})
	}
}

// Diagnostics returns every diagnostic recorded so far, errors and warnings alike.
func (b *Builder) Diagnostics() []Diagnostic { return append([]Diagnostic(nil), b.diags...) }

// HasErrors reports whether any error-level diagnostic was recorded.
func (b *Builder) HasErrors() bool {
	for _, d := range b.diags {
		if d.Level == DiagError {
			return true
		}
	}
	return false
}

// Finalize returns the built Tree along with an aggregated error — nil if
// every Def succeeded. Unlike the reference builder (which hands back the
// partially-built grammar regardless and leaves HasErrors as a separate
// check), Finalize folds that check into the returned error so callers
// get a normal Go (value, error) result.
func (b *Builder) Finalize() (*Tree, error) {
	if !b.HasErrors() {
		return b.tree, nil
	}
	var merr *multierror.Error
	for _, d := range b.diags {
		if d.Level == DiagError {
			merr = multierror.Append(merr, d)
		}
	}
	return b.tree, merr.ErrorOrNil()
}
