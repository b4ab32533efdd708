// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match is the bibliographic record matching and evaluation engine.
// It normalizes free text, scores string similarity, resolves the required
// fields of a record from its kind, pairs candidate records with reference
// records, scores matched pairs field by field, and detects near-duplicates
// within a single catalogue.
//
// Every function in this package is pure: inputs are never modified and no
// state is kept between calls, so an Engine may be shared across goroutines.
package match

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	colonSpacingRe  = regexp.MustCompile(`\s*:\s*`)
	periodSpacingRe = regexp.MustCompile(`\s*\.\s*`)
)

// NormalizeText lowercases s, collapses whitespace runs to a single space,
// and trims it. Composed and decomposed accents normalize to the same form.
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeTitle is NormalizeText plus punctuation spacing: exactly one
// space after every colon and period and none before, so "Foo : bar" and
// "Foo:bar" compare equal.
func NormalizeTitle(s string) string {
	t := NormalizeText(s)
	if t == "" {
		return ""
	}
	t = colonSpacingRe.ReplaceAllString(t, ": ")
	t = periodSpacingRe.ReplaceAllString(t, ". ")
	return strings.TrimSpace(t)
}
