// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package ast

import (
	"fmt"
	"strings"
)

// ANSI color codes used by Dump when color is requested.
const (
	colorReset = "\x1b[0m"
	colorRule  = "\x1b[36m" // cyan: composite rule names
	colorAtom  = "\x1b[33m" // yellow: literal tokens
	colorList  = "\x1b[35m" // magenta: synthetic repeating-slot wrapper
	colorNil   = "\x1b[90m" // grey: skipped-optional placeholder
)

// frame is one level of an in-progress traversal: the node being visited
// and the index of the next child of that node still to process. Dump
// walks with an explicit stack of these instead of recursing, so pretty-
// printing a pathologically deep parse tree can never blow the Go stack
// (unbounded recursion avoided via an explicit stack of (node, child-index)
// pairs").
type frame struct {
	node     *Expression
	prefix   string
	childIdx int
}

// Dump renders e as an indented, box-drawing tree. When color is true,
// rule names, literal tokens, list wrappers, and placeholders are each
// given a distinct ANSI color.
func Dump(e *Expression, color bool) string {
	var b strings.Builder
	if e == nil {
		writePlaceholder(&b, "", true, color)
		return b.String()
	}
	writeLabel(&b, e, "", true, color, true)

	stack := []*frame{{node: e}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.childIdx >= len(top.node.Children) {
			stack = stack[:len(stack)-1]
			continue
		}
		idx := top.childIdx
		top.childIdx++
		child := top.node.Children[idx]
		isLast := idx == len(top.node.Children)-1

		if child == nil {
			writePlaceholder(&b, top.prefix, isLast, color)
			continue
		}
		writeLabel(&b, child, top.prefix, isLast, color, false)

		childPrefix := top.prefix
		if isLast {
			childPrefix += "   "
		} else {
			childPrefix += "│  "
		}
		stack = append(stack, &frame{node: child, prefix: childPrefix})
	}
	return b.String()
}

func writeLabel(b *strings.Builder, e *Expression, prefix string, isLast, color, isRoot bool) {
	if !isRoot {
		b.WriteString(prefix)
		if isLast {
			b.WriteString("└─ ")
		} else {
			b.WriteString("├─ ")
		}
	}
	b.WriteString(label(e, color))
	b.WriteString("\n")
}

func writePlaceholder(b *strings.Builder, prefix string, isLast, color bool) {
	b.WriteString(prefix)
	if isLast {
		b.WriteString("└─ ")
	} else {
		b.WriteString("├─ ")
	}
	if color {
		b.WriteString(colorNil)
	}
	b.WriteString("<absent>")
	if color {
		b.WriteString(colorReset)
	}
	b.WriteString("\n")
}

func label(e *Expression, color bool) string {
	switch {
	case e.Kind == Atom:
		s := fmt.Sprintf("%s(%s)", e.Token.Kind, e.Token.Literal)
		if color {
			return colorAtom + s + colorReset
		}
		return s
	case e.IsList:
		s := fmt.Sprintf("List[%d]", len(e.Children))
		if color {
			return colorList + s + colorReset
		}
		return s
	default:
		if color {
			return colorRule + e.RuleName + colorReset
		}
		return e.RuleName
	}
}
