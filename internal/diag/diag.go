// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package diag renders Fungus diagnostics the way every other component
// already reports positions — file:line:col — plus a caret-annotated
// source span.
package diag

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// File holds a source file's text, split into lines, so a Span can be
// rendered back out with its surrounding context.
type File struct {
	Name  string
	Lines []string
}

// NewFile splits src into lines for later span rendering.
func NewFile(name string, src []byte) *File {
	text := strings.ReplaceAll(string(src), "\r\n", "\n")
	return &File{Name: name, Lines: strings.Split(text, "\n")}
}

func (f *File) line(n int) string {
	if n < 1 || n > len(f.Lines) {
		return ""
	}
	return f.Lines[n-1]
}

// Span is a single-line region of source: a 1-based line/column and a
// rune count, matching the Position convention internal/lex and
// internal/scanner already use.
type Span struct {
	File   string
	Line   int
	Column int
	Len    int // width in runes, at least 1
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

func (s Span) width() int {
	if s.Len < 1 {
		return 1
	}
	return s.Len
}

// Diagnostic is one reported problem: a span, a one-line message, and —
// when the diagnostic was triggered by another Go error (an io failure,
// an illegal-UTF-8 scan error) — the error that caused it.
type Diagnostic struct {
	Span Span
	Msg  string
	err  error
}

// New builds a plain Diagnostic with no underlying cause.
func New(span Span, format string, args ...any) Diagnostic {
	return Diagnostic{Span: span, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds a Diagnostic whose Cause() is the given error.
func Wrap(span Span, cause error, format string, args ...any) Diagnostic {
	return Diagnostic{Span: span, Msg: fmt.Sprintf(format, args...), err: errors.WithStack(cause)}
}

// Error satisfies the error interface with the file:line:col header.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Span, d.Msg)
}

// Cause returns the underlying error, if any, via pkg/errors so a caller
// can walk the full chain back to e.g. the io.Reader failure that started it.
func (d Diagnostic) Cause() error {
	if d.err == nil {
		return nil
	}
	return errors.Cause(d.err)
}

// Render produces the full multi-line diagnostic text: the header, the
// offending source line, and a caret span under the offending columns.
func Render(f *File, d Diagnostic) string {
	var b strings.Builder
	b.WriteString(d.Error())
	b.WriteString("\n")
	if f == nil {
		return b.String()
	}
	src := f.line(d.Span.Line)
	if src == "" && d.Span.Line < 1 {
		return b.String()
	}
	b.WriteString(src)
	b.WriteString("\n")

	col := d.Span.Column
	if col < 1 {
		col = 1
	}
	b.WriteString(strings.Repeat(" ", col-1))
	b.WriteString(strings.Repeat("^", d.Span.width()))
	b.WriteString("\n")
	return b.String()
}
