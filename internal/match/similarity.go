// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Ratio returns the Ratcliff/Obershelp similarity of a and b: the longest
// common contiguous block is found, the same is done recursively on the
// unmatched left and right remainders, and twice the number of matched runes
// is divided by the total rune count. Inputs are compared as given; callers
// normalize first. Two empty strings have ratio 1.
//
// The arguments are put in a canonical order before matching so that
// Ratio(a, b) == Ratio(b, a) even when block selection would tie-break
// differently.
func Ratio(a, b string) float64 {
	ra, rb := runeTokens(a), runeTokens(b)
	if len(ra) > len(rb) || (len(ra) == len(rb) && a > b) {
		ra, rb = rb, ra
	}
	m := difflib.NewMatcherWithJunk(ra, rb, false, nil)
	return m.Ratio()
}

// runeTokens splits s into one token per rune.
func runeTokens(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// Similarity compares two free-text values after NormalizeText. An empty
// side scores 0. A value that is a prefix of the other scores 1, which
// absorbs titles truncated by one source.
func Similarity(a, b string) float64 {
	return prefixAwareRatio(NormalizeText(a), NormalizeText(b))
}

// TitleSimilarity is Similarity with NormalizeTitle, which also evens out
// spacing around colons and periods.
func TitleSimilarity(a, b string) float64 {
	return prefixAwareRatio(NormalizeTitle(a), NormalizeTitle(b))
}

func prefixAwareRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	if len(a) < len(b) && strings.HasPrefix(b, a) {
		return 1
	}
	if len(b) < len(a) && strings.HasPrefix(a, b) {
		return 1
	}
	return Ratio(a, b)
}

// EmptyPolicy decides how a pair of values is scored when both are empty.
type EmptyPolicy int

const (
	// EmptyIsMismatch scores an empty side as 0, even when both sides are
	// empty. Required-field scoring uses this policy.
	EmptyIsMismatch EmptyPolicy = iota

	// EmptyIsMatch scores two empty values as 1. Side-by-side display uses
	// this policy so untouched optional fields do not look like errors.
	EmptyIsMatch
)

// FieldSimilarity compares two field values for required-field scoring.
// An empty side scores 0. Boolean flags spelled "true", "{true}",
// "{{true}}" or "\"true\"" are equivalent. Otherwise values equal after
// NormalizeText score 1 and the rest fall back to Ratio. There is no prefix
// rule: a truncated URL or abstract is not a match.
func FieldSimilarity(a, b string) float64 {
	return CompareField(a, b, EmptyIsMismatch)
}

// DisplaySimilarity is FieldSimilarity except that two empty values score 1.
func DisplaySimilarity(a, b string) float64 {
	return CompareField(a, b, EmptyIsMatch)
}

// CompareField compares two field values under the given empty policy.
func CompareField(a, b string, policy EmptyPolicy) float64 {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		if a == "" && b == "" && policy == EmptyIsMatch {
			return 1
		}
		return 0
	}
	if isTrueFlag(a) && isTrueFlag(b) {
		return 1
	}
	na, nb := NormalizeText(a), NormalizeText(b)
	if na == nb {
		return 1
	}
	return Ratio(na, nb)
}

// isTrueFlag reports whether v spells boolean true inside any nesting of
// braces or quotes.
func isTrueFlag(v string) bool {
	v = strings.TrimSpace(v)
	for len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if (first == '{' && last == '}') || (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			v = strings.TrimSpace(v[1 : len(v)-1])
			continue
		}
		break
	}
	return strings.EqualFold(v, "true")
}
