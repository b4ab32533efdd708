// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Find returns the stored publications whose title contains the characters
// of query in order, ignoring case and diacritics. Closer matches come
// first; ties keep title order. An empty query returns every publication.
func (s *Store) Find(ctx context.Context, query string) ([]Entry, error) {
	entries, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return entries, nil
	}
	query = foldDiacritics(query)

	type ranked struct {
		entry Entry
		rank  int
	}
	var hits []ranked
	for _, e := range entries {
		if r := fuzzy.RankMatchFold(query, foldDiacritics(e.Title)); r >= 0 {
			hits = append(hits, ranked{entry: e, rank: r})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].rank < hits[j].rank })

	out := make([]Entry, len(hits))
	for i, h := range hits {
		out[i] = h.entry
	}
	return out, nil
}

// foldDiacritics strips combining marks so "é" compares equal to "e".
// Both sides must be folded before matching: the fuzzy matcher rejects a
// query longer in bytes than the target before it normalizes.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
