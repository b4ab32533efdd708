// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"log/slog"
	"sort"

	"github.com/pdiddy/bibcheck/pkg/types"
)

// Engine evaluates candidate catalogues against a reference catalogue.
type Engine struct {
	Schema     Schema
	Thresholds types.Thresholds
}

// New returns an Engine with the default schema.
func New(t types.Thresholds) *Engine {
	return &Engine{Schema: DefaultSchema(), Thresholds: t}
}

// Evaluate matches candidates to references by title, scores every match
// field by field, and aggregates per-field accuracy. Matches are returned
// worst score first. Inputs are not modified.
func (e *Engine) Evaluate(candidates, references []types.Record) types.EvaluationResult {
	mr := Match(candidates, references, e.Thresholds.TitleMatch)
	for _, r := range mr.ExcludedCandidates {
		slog.Warn("candidate without title excluded", "key", r.Key())
	}
	for _, r := range mr.ExcludedReferences {
		slog.Warn("reference without title excluded", "key", r.Key())
	}

	res := types.EvaluationResult{
		Thresholds:          e.Thresholds,
		Matches:             make([]types.ScoredMatch, 0, len(mr.Matches)),
		UnmatchedCandidates: mr.UnmatchedCandidates,
		UnmatchedReferences: mr.UnmatchedReferences,
		ExcludedCandidates:  mr.ExcludedCandidates,
		ExcludedReferences:  mr.ExcludedReferences,
	}

	var sum float64
	for _, m := range mr.Matches {
		s := Score(m.Candidate, m.Reference, e.Schema, e.Thresholds.FieldMatch)
		res.Matches = append(res.Matches, types.ScoredMatch{
			Match:       m,
			Score:       s,
			Differences: Differences(m.Candidate, m.Reference, e.Schema),
		})
		sum += s.Ratio
	}
	if n := len(res.Matches); n > 0 {
		res.AverageRatio = sum / float64(n)
	}

	res.FieldStats = fieldStats(res.Matches)

	sort.SliceStable(res.Matches, func(i, j int) bool {
		return res.Matches[i].Score.Ratio < res.Matches[j].Score.Ratio
	})
	return res
}

// fieldStats counts, per considered field, how many matches scored it and
// how many of those reached the field threshold. Fields follow DisplayOrder;
// fields outside it are appended in name order.
func fieldStats(matches []types.ScoredMatch) []types.FieldStats {
	byField := make(map[string]*types.FieldStats)
	for _, m := range matches {
		matched := make(map[string]bool, len(m.Score.Matched))
		for _, f := range m.Score.Matched {
			matched[f] = true
		}
		for _, f := range m.Score.Considered {
			st, ok := byField[f]
			if !ok {
				st = &types.FieldStats{Field: f}
				byField[f] = st
			}
			st.Total++
			if matched[f] {
				st.Correct++
			}
		}
	}

	order := make([]string, 0, len(byField))
	seen := make(map[string]bool, len(DisplayOrder))
	for _, f := range DisplayOrder {
		seen[f] = true
		if _, ok := byField[f]; ok {
			order = append(order, f)
		}
	}
	var extra []string
	for f := range byField {
		if !seen[f] {
			extra = append(extra, f)
		}
	}
	sort.Strings(extra)
	order = append(order, extra...)

	out := make([]types.FieldStats, 0, len(order))
	for _, f := range order {
		st := *byField[f]
		if st.Total > 0 {
			st.Accuracy = float64(st.Correct) / float64(st.Total)
		}
		out = append(out, st)
	}
	return out
}
