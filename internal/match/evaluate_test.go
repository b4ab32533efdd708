// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bibcheck/pkg/types"
)

func TestEvaluate(t *testing.T) {
	perfect := rec("bert", "article",
		"title", "BERT: Pre-training of Deep Bidirectional Transformers",
		"author", "Devlin, Jacob",
		"journal", "ArXiv",
		"volume", "abs/1810.04805",
		"year", "2018",
	)
	cands := []types.Record{
		perfect,
		vaswaniCandidate(),
		titled("stray", "An Unrelated Note on Cooking"),
		rec("notitle", "article", "author", "Nobody"),
	}
	refs := []types.Record{
		vaswaniReference(),
		perfect,
		titled("gnn", "Deep Residual Learning for Image Recognition"),
	}

	e := New(types.DefaultThresholds())
	res := e.Evaluate(cands, refs)

	require.Len(t, res.Matches, 2)
	assert.Len(t, res.UnmatchedCandidates, 1)
	assert.Len(t, res.UnmatchedReferences, 1)
	assert.Len(t, res.ExcludedCandidates, 1)
	assert.Equal(t, 4, res.TotalCandidates())
	assert.Equal(t, 3, res.TotalReferences())

	// Worst first.
	assert.Equal(t, "vaswani2017attention", res.Matches[0].Candidate.Key())
	assert.InDelta(t, 0.6, res.Matches[0].Score.Ratio, 1e-9)
	assert.Len(t, res.Matches[0].Differences, 2)
	assert.Equal(t, "bert", res.Matches[1].Candidate.Key())
	assert.Equal(t, 1.0, res.Matches[1].Score.Ratio)
	assert.Empty(t, res.Matches[1].Differences)

	assert.InDelta(t, 0.8, res.AverageRatio, 1e-9)
	assert.Equal(t, types.DefaultThresholds(), res.Thresholds)

	stats := make(map[string]types.FieldStats)
	var order []string
	for _, st := range res.FieldStats {
		stats[st.Field] = st
		order = append(order, st.Field)
	}
	assert.Equal(t, []string{"title", "author", "year", "month", "booktitle", "journal", "volume"}, order)
	assert.Equal(t, types.FieldStats{Field: "title", Total: 2, Correct: 2, Accuracy: 1}, stats["title"])
	assert.Equal(t, types.FieldStats{Field: "month", Total: 1, Correct: 0, Accuracy: 0}, stats["month"])
	assert.Equal(t, types.FieldStats{Field: "volume", Total: 1, Correct: 1, Accuracy: 1}, stats["volume"])
}

func TestEvaluateNoMatches(t *testing.T) {
	res := New(types.DefaultThresholds()).Evaluate(nil, []types.Record{titled("r", "A")})
	assert.Empty(t, res.Matches)
	assert.Equal(t, 0.0, res.AverageRatio)
	assert.Empty(t, res.FieldStats)
	assert.Len(t, res.UnmatchedReferences, 1)
}

func TestEvaluateUnknownFieldsAppended(t *testing.T) {
	e := New(types.DefaultThresholds())
	e.Schema.Site = append(e.Schema.Site, "selected")

	r := rec("k", "article", "title", "Some Title", "selected", "true")
	res := e.Evaluate([]types.Record{r}, []types.Record{r})
	require.Len(t, res.FieldStats, 2)
	assert.Equal(t, "title", res.FieldStats[0].Field)
	assert.Equal(t, "selected", res.FieldStats[1].Field)
}
