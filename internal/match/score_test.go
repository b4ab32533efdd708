// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bibcheck/pkg/types"
)

func vaswaniCandidate() types.Record {
	return rec("vaswani2017attention", "inproceedings",
		"title", "Attention is all you need",
		"author", "Vaswani, Ashish and Shazeer, Noam",
		"year", "2017",
		"booktitle", "NeurIPS",
	)
}

func vaswaniReference() types.Record {
	return rec("Vaswani2017Attention", "inproceedings",
		"title", "Attention Is All You Need",
		"author", "Vaswani, Ashish and Shazeer, Noam",
		"year", "2017",
		"month", "December",
		"booktitle", "Advances in Neural Information Processing Systems",
	)
}

func TestRequiredFieldsByKind(t *testing.T) {
	s := DefaultSchema()
	base := []string{"abstract", "author", "bibtex_show", "month", "pdf", "preview", "title", "url", "year"}

	tests := []struct {
		name  string
		rec   types.Record
		extra []string
	}{
		{"conference without doi", rec("k", "inproceedings"), []string{"booktitle"}},
		{"conference with doi", rec("k", "inproceedings", "doi", "10.1/x"), []string{"booktitle", "doi"}},
		{"journal", rec("k", "article", "journal", "Nature"), []string{"doi", "journal", "volume"}},
		{"preprint", rec("k", "article", "journal", "ArXiv"), []string{"arxiv", "journal", "volume"}},
		{"unknown type defaults to journal", rec("k", "misc"), []string{"doi", "journal", "volume"}},
		{"incollection is conference", rec("k", "incollection"), []string{"booktitle"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := append(append([]string{}, base...), tt.extra...)
			assert.ElementsMatch(t, want, s.RequiredFields(tt.rec))
			assert.IsIncreasing(t, s.RequiredFields(tt.rec))
		})
	}
}

func TestIsRequired(t *testing.T) {
	s := DefaultSchema()
	assert.True(t, s.IsRequired(rec("k", "inproceedings"), "booktitle"))
	assert.False(t, s.IsRequired(rec("k", "inproceedings"), "doi"))
	assert.True(t, s.IsRequired(rec("k", "article"), "doi"))
}

func TestScoreVaswani(t *testing.T) {
	s := Score(vaswaniCandidate(), vaswaniReference(), DefaultSchema(), 0.85)

	assert.Equal(t, []string{"author", "booktitle", "month", "title", "year"}, s.Considered)
	assert.Equal(t, []string{"author", "title", "year"}, s.Matched)
	assert.InDelta(t, 0.6, s.Ratio, 1e-9)
	assert.Equal(t, 3, s.Points())
	assert.Equal(t, 5, s.Total())
	assert.Equal(t, 0.0, s.FieldScores["month"])
	assert.Less(t, s.FieldScores["booktitle"], 0.85)
	assert.NotContains(t, s.FieldScores, "url")
}

func TestScoreNothingConsidered(t *testing.T) {
	s := Score(vaswaniCandidate(), rec("k", "inproceedings"), DefaultSchema(), 0.85)
	assert.Empty(t, s.Considered)
	assert.Equal(t, 0.0, s.Ratio)
}

func TestScoreRatioBounds(t *testing.T) {
	for _, th := range []float64{0, 0.5, 0.85, 1} {
		s := Score(vaswaniCandidate(), vaswaniReference(), DefaultSchema(), th)
		assert.GreaterOrEqual(t, s.Ratio, 0.0)
		assert.LessOrEqual(t, s.Ratio, 1.0)
		assert.LessOrEqual(t, len(s.Matched), len(s.Considered))
	}
}

func TestScoreBooleanFlag(t *testing.T) {
	cand := rec("k", "article", "title", "T", "bibtex_show", "true")
	ref := rec("k", "article", "title", "T", "bibtex_show", "{true}")
	s := Score(cand, ref, DefaultSchema(), 0.85)
	assert.Equal(t, []string{"bibtex_show", "title"}, s.Matched)
	assert.Equal(t, 1.0, s.Ratio)
}

func TestDifferences(t *testing.T) {
	diffs := Differences(vaswaniCandidate(), vaswaniReference(), DefaultSchema())
	require.Len(t, diffs, 2)
	assert.Equal(t, types.FieldDifference{
		Field:       "booktitle",
		Candidate:   "NeurIPS",
		GroundTruth: "Advances in Neural Information Processing Systems",
	}, diffs[0])
	assert.Equal(t, types.FieldDifference{Field: "month", Candidate: MissingValue, GroundTruth: "December"}, diffs[1])
}

func TestFieldRows(t *testing.T) {
	cand, ref := vaswaniCandidate(), vaswaniReference()
	s := Score(cand, ref, DefaultSchema(), 0.85)
	rows := FieldRows(cand, ref, DefaultSchema(), s)

	require.Len(t, rows, len(DisplayOrder))
	byField := make(map[string]types.FieldRow)
	for i, r := range rows {
		assert.Equal(t, DisplayOrder[i], r.Field)
		byField[r.Field] = r
	}

	assert.Equal(t, 1.0, byField["title"].Similarity)
	assert.True(t, byField["title"].Required)
	assert.Equal(t, 0.0, byField["month"].Similarity)
	// Both sides empty: shown as agreeing, but still required.
	assert.Equal(t, 1.0, byField["url"].Similarity)
	assert.True(t, byField["url"].Required)
	assert.False(t, byField["journal"].Required)
	assert.Equal(t, 1.0, byField["journal"].Similarity)
}

func TestExclusiveFields(t *testing.T) {
	ref := rec("k", "article", "title", "T", "selected", "true", "google_scholar_id", "abc", "doi", "10.1/x")
	assert.Equal(t, []string{"google_scholar_id", "selected"}, ExclusiveFields(ref))
	assert.Empty(t, ExclusiveFields(vaswaniReference()))
}
