// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"sort"
	"strings"

	"github.com/pdiddy/bibcheck/pkg/types"
)

// Selector picks the field a duplicate scan compares and the similarity
// function it compares with.
type Selector struct {
	Field   string
	Compare func(a, b string) float64
}

// TitleSelector compares titles with TitleSimilarity.
func TitleSelector() Selector {
	return Selector{Field: types.FieldTitle, Compare: TitleSimilarity}
}

// FieldSelector compares the named field with Similarity.
func FieldSelector(name string) Selector {
	return Selector{Field: strings.ToLower(name), Compare: Similarity}
}

// DuplicateOption configures FindNearDuplicates.
type DuplicateOption func(*duplicateOptions)

type duplicateOptions struct {
	progress func(done, total int)
}

// WithProgress registers a callback invoked after each outer-loop record.
// total is the number of records scanned.
func WithProgress(fn func(done, total int)) DuplicateOption {
	return func(o *duplicateOptions) { o.progress = fn }
}

// FindNearDuplicates compares every pair i < j of records on the selected
// field and returns the pairs whose similarity reaches threshold, most
// similar first. Pairs where either value is empty are skipped. Ties keep
// (i, j) order.
func FindNearDuplicates(records []types.Record, sel Selector, threshold float64, opts ...DuplicateOption) []types.DuplicatePair {
	var o duplicateOptions
	for _, opt := range opts {
		opt(&o)
	}
	compare := sel.Compare
	if compare == nil {
		compare = Similarity
	}

	values := make([]string, len(records))
	for i, r := range records {
		values[i] = strings.TrimSpace(r.Get(sel.Field))
	}

	var pairs []types.DuplicatePair
	for i := range values {
		if values[i] != "" {
			for j := i + 1; j < len(values); j++ {
				if values[j] == "" {
					continue
				}
				sim := compare(values[i], values[j])
				if sim >= threshold {
					pairs = append(pairs, types.DuplicatePair{I: i, J: j, Field: sel.Field, Similarity: sim})
				}
			}
		}
		if o.progress != nil {
			o.progress(i+1, len(values))
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].Similarity > pairs[b].Similarity
	})
	return pairs
}

// BestMatch is the closest entry found by BestMatchAbove.
type BestMatch struct {
	Index      int
	Text       string
	Similarity float64
}

// BestMatchAbove returns the candidate most similar to text under
// Similarity, the first one on ties. ok is false when no candidate reaches
// threshold or text is empty.
func BestMatchAbove(text string, candidates []string, threshold float64) (best BestMatch, ok bool) {
	best = BestMatch{Index: -1, Similarity: -1}
	for i, c := range candidates {
		sim := Similarity(text, c)
		if sim > best.Similarity {
			best = BestMatch{Index: i, Text: c, Similarity: sim}
		}
	}
	if best.Index < 0 || best.Similarity < threshold || NormalizeText(text) == "" {
		return BestMatch{Index: -1}, false
	}
	return best, true
}
