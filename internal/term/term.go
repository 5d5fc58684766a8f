// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package term answers one question: is this output stream connected to
// an interactive terminal, for deciding whether to colorize output.
package term

import "os"

// IsTerminal reports whether f is attached to a terminal. The answer
// drives cmd/fungus's default color behavior: colorize when attached to
// a terminal, stay plain when piped to a file or another process.
func IsTerminal(f *os.File) bool {
	return isTerminal(f.Fd())
}
