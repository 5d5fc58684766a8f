// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package lex turns Fungus source bytes into a flat token stream: Word,
// Symbols, Int, Float, Bool, and String. It knows nothing about
// scopes, rules, or precedence — that's internal/parser's job.
package lex

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/pkg/errors"

	"github.com/fungus-lang/fungus/internal/scanner"
)

// Tokenize scans the source and returns all tokens including a final
// TokenEOF. filename is used only for Position fields in the returned
// tokens.
func Tokenize(filename string, src []byte) ([]Token, error) {
	r := bytes.NewReader(src)
	s := &scanner.Scanner{Mode: scanner.DefaultTokens}
	if _, err := s.Init(r); err != nil {
		return nil, errors.Wrapf(err, "lex %s: read source", filename)
	}
	s.Filename = filename

	var tokens []Token
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		pos := Position{File: filename, Line: s.Position.Line, Column: s.Position.Column}
		text := s.TokenText()

		switch tok {
		case scanner.Comment:
			continue
		case scanner.Ident:
			if text == "true" || text == "false" {
				tokens = append(tokens, Token{Kind: TokenBool, Literal: text, Pos: pos})
			} else {
				tokens = append(tokens, Token{Kind: TokenWord, Literal: text, Pos: pos})
			}
		case scanner.Int:
			tokens = append(tokens, Token{Kind: TokenInt, Literal: text, Pos: pos})
		case scanner.Float:
			tokens = append(tokens, Token{Kind: TokenFloat, Literal: text, Pos: pos})
		case scanner.String:
			tokens = append(tokens, Token{Kind: TokenString, Literal: unescapeString(text), Pos: pos})
		case scanner.Symbols:
			tokens = append(tokens, Token{Kind: TokenSymbols, Literal: text, Pos: pos})
		default:
			tokens = append(tokens, Token{Kind: TokenInvalid, Literal: string(rune(tok)), Pos: pos})
		}
	}
	if s.ErrorCount > 0 {
		return tokens, errors.Errorf("lex %s: %d error(s):\n%s", filename, s.ErrorCount, s.ErrorLog.String())
	}
	tokens = append(tokens, Token{Kind: TokenEOF, Pos: Position{File: filename, Line: s.Position.Line, Column: s.Position.Column}})
	return tokens, nil
}

// unescapeString strips the surrounding quotes TokenText leaves in place
// and resolves the small set of backslash escapes scanner.scanString
// recognizes (\\, \", \n, \t) literally.
func unescapeString(raw string) string {
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	if !strings.Contains(raw, "\\") {
		return raw
	}
	var b strings.Builder
	rd := bufio.NewReader(strings.NewReader(raw))
	for {
		ch, _, err := rd.ReadRune()
		if err != nil {
			break
		}
		if ch != '\\' {
			b.WriteRune(ch)
			continue
		}
		esc, _, err := rd.ReadRune()
		if err != nil {
			b.WriteRune(ch)
			break
		}
		switch esc {
		case 'n':
			b.WriteRune('\n')
		case 't':
			b.WriteRune('\t')
		case '"':
			b.WriteRune('"')
		case '\\':
			b.WriteRune('\\')
		default:
			b.WriteRune('\\')
			b.WriteRune(esc)
		}
	}
	return b.String()
}
