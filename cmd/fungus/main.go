// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/maloquacious/semver"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fungus-lang/fungus/internal/ast"
	"github.com/fungus-lang/fungus/internal/diag"
	"github.com/fungus-lang/fungus/internal/fungus"
	"github.com/fungus-lang/fungus/internal/lex"
	"github.com/fungus-lang/fungus/internal/parser"
	"github.com/fungus-lang/fungus/internal/term"
)

var version = semver.Version{
	Minor:      1,
	PreRelease: "alpha",
}

// Exit codes: 0 success, 1 a rejected program (parse error), 2+ an
// internal invariant violation (the base Lang itself failed to
// bootstrap, or a bug surfaced as a panic).
const (
	exitOK            = 0
	exitUserError     = 1
	exitInternalError = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		debug   bool
		trace   bool
		noColor bool
	)

	root := &cobra.Command{
		Use:          "fungus [file]",
		Short:        "Parse a Fungus source file and print its AST",
		Version:      version.String(),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
	}
	root.Flags().BoolVar(&debug, "debug", false, "enable debug-level logging")
	root.Flags().BoolVar(&trace, "trace", false, "enable trace-level logging (implies --debug)")
	root.Flags().BoolVar(&noColor, "no-color", false, "disable colorized AST output even on a terminal")

	exitCode := exitOK
	root.RunE = func(cmd *cobra.Command, args []string) error {
		switch {
		case trace:
			logrus.SetLevel(logrus.TraceLevel)
		case debug:
			logrus.SetLevel(logrus.DebugLevel)
		default:
			logrus.SetLevel(logrus.WarnLevel)
		}

		name, src, err := readSource(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			exitCode = exitInternalError
			return nil
		}

		base, err := fungus.New()
		if err != nil {
			fmt.Fprintf(os.Stderr, "fungus: internal error: bootstrapping base language: %v\n", err)
			exitCode = exitInternalError
			return nil
		}

		expr, err := parseSource(base.Lang, name, src)
		if err != nil {
			fmt.Fprint(os.Stderr, renderErr(name, src, err))
			exitCode = exitUserError
			return nil
		}

		color := term.IsTerminal(os.Stdout) && !noColor
		fmt.Println(ast.Dump(expr, color))
		return nil
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUserError
	}
	return exitCode
}

// readSource returns the source bytes and a display name for them: the
// named file, or — with no argument — stdin read until a blank line.
func readSource(args []string) (name string, src []byte, err error) {
	if len(args) == 1 {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", nil, fmt.Errorf("reading %s: %w", args[0], err)
		}
		return args[0], b, nil
	}

	var b []byte
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}
		b = append(b, line...)
		b = append(b, '\n')
	}
	if err := scanner.Err(); err != nil {
		return "", nil, fmt.Errorf("reading stdin: %w", err)
	}
	return "<stdin>", b, nil
}

// parseSource tokenizes and parses src against lang. A lexer error is
// returned unchanged (a plain error, which renderErr prints as is); a
// parse failure comes back as a diag.Diagnostic.
func parseSource(lang *parser.Lang, name string, src []byte) (*ast.Expression, error) {
	tokens, err := lex.Tokenize(name, src)
	if err != nil {
		return nil, err
	}
	return parser.Parse(lang, tokens)
}

// renderErr formats err for the user: a diag.Diagnostic gets the full
// file:line:col-plus-caret treatment; anything else (e.g. a lex-level
// io error) is printed plainly.
func renderErr(name string, src []byte, err error) string {
	if d, ok := err.(diag.Diagnostic); ok {
		return diag.Render(diag.NewFile(name, src), d)
	}
	return err.Error() + "\n"
}
