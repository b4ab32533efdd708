// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package evaluate compares a generated BibTeX catalogue with a curated
// ground-truth catalogue and renders the outcome.
package evaluate

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/pdiddy/bibcheck/internal/bibtex"
	"github.com/pdiddy/bibcheck/internal/match"
	"github.com/pdiddy/bibcheck/pkg/types"
)

// Comparison is the side-by-side view of one matched pair.
type Comparison struct {
	Title     string           `json:"title" yaml:"title"`
	Key       string           `json:"key" yaml:"key"`
	Ratio     float64          `json:"ratio" yaml:"ratio"`
	Rows      []types.FieldRow `json:"rows" yaml:"rows"`
	Exclusive []string         `json:"ground_truth_only_fields,omitempty" yaml:"ground_truth_only_fields,omitempty"`
}

// Report is one evaluation run.
type Report struct {
	ID              string                 `json:"id" yaml:"id"`
	CreatedAt       time.Time              `json:"created_at" yaml:"created_at"`
	GeneratedPath   string                 `json:"generated" yaml:"generated"`
	GroundTruthPath string                 `json:"ground_truth" yaml:"ground_truth"`
	Result          types.EvaluationResult `json:"result" yaml:"result"`
	Comparisons     []Comparison           `json:"comparisons" yaml:"comparisons"`
}

// Coverage returns the share of ground-truth records that were matched, or
// 0 when the ground truth is empty.
func (r *Report) Coverage() float64 {
	total := r.Result.TotalReferences()
	if total == 0 {
		return 0
	}
	return float64(len(r.Result.Matches)) / float64(total)
}

// AverageDifferences returns the mean number of differing required fields
// per matched pair.
func (r *Report) AverageDifferences() float64 {
	if len(r.Result.Matches) == 0 {
		return 0
	}
	n := 0
	for _, m := range r.Result.Matches {
		n += len(m.Differences)
	}
	return float64(n) / float64(len(r.Result.Matches))
}

// Run loads both catalogues and evaluates the generated one against the
// ground truth.
func Run(generatedPath, groundTruthPath string, t types.Thresholds) (*Report, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	gen, err := bibtex.ReadFile(generatedPath)
	if err != nil {
		return nil, fmt.Errorf("loading generated catalogue: %w", err)
	}
	gt, err := bibtex.ReadFile(groundTruthPath)
	if err != nil {
		return nil, fmt.Errorf("loading ground truth: %w", err)
	}

	r := Evaluate(gen.Records, gt.Records, t)
	r.GeneratedPath = generatedPath
	r.GroundTruthPath = groundTruthPath
	return r, nil
}

// Evaluate builds a report from records already in memory.
func Evaluate(generated, groundTruth []types.Record, t types.Thresholds) *Report {
	engine := match.New(t)
	res := engine.Evaluate(generated, groundTruth)

	r := &Report{
		ID:        ulid.Make().String(),
		CreatedAt: time.Now().UTC(),
		Result:    res,
	}
	for _, m := range res.Matches {
		r.Comparisons = append(r.Comparisons, Comparison{
			Title:     m.Reference.Title(),
			Key:       m.Reference.Key(),
			Ratio:     m.Score.Ratio,
			Rows:      match.FieldRows(m.Candidate, m.Reference, engine.Schema, m.Score),
			Exclusive: match.ExclusiveFields(m.Reference),
		})
	}
	return r
}
