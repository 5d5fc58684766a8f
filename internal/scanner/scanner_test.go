// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []string {
	t.Helper()
	s := &Scanner{}
	_, err := s.Init(strings.NewReader(src))
	require.NoError(t, err)
	var texts []string
	for tok := s.Scan(); tok != EOF; tok = s.Scan() {
		texts = append(texts, s.TokenText())
	}
	return texts
}

func TestScanIdentifierRun(t *testing.T) {
	assert.Equal(t, []string{"abc123"}, scanAll(t, "abc123"))
}

func TestScanSymbolRunMerges(t *testing.T) {
	assert.Equal(t, []string{"->", "+"}, scanAll(t, "-> +"))
}

func TestScanBracesNeverMerge(t *testing.T) {
	assert.Equal(t, []string{"{", "}"}, scanAll(t, "{}"))
}

func TestScanNumberDistinguishesFloat(t *testing.T) {
	s := &Scanner{}
	_, err := s.Init(strings.NewReader("42 3.14"))
	require.NoError(t, err)
	tok := s.Scan()
	assert.Equal(t, Int, tok)
	assert.Equal(t, "42", s.TokenText())
	tok = s.Scan()
	assert.Equal(t, Float, tok)
	assert.Equal(t, "3.14", s.TokenText())
}

func TestScanIllegalUTF8Errors(t *testing.T) {
	s := &Scanner{}
	_, err := s.Init(strings.NewReader("ok \xff bad"))
	require.NoError(t, err)
	for tok := s.Scan(); tok != EOF; tok = s.Scan() {
	}
	assert.Greater(t, s.ErrorCount, 0)
}
