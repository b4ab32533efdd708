// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"sort"
	"strings"

	"github.com/pdiddy/bibcheck/pkg/types"
)

// MissingValue stands in for a field the candidate does not carry.
const MissingValue = "(missing)"

// DisplayOrder is the fixed field order of side-by-side comparisons and of
// per-field statistics.
var DisplayOrder = []string{
	types.FieldTitle, types.FieldAuthor, types.FieldYear, types.FieldMonth,
	types.FieldBooktitle, types.FieldJournal, types.FieldVolume, types.FieldDOI,
	types.FieldURL, types.FieldBibtexShow, types.FieldAbstract, types.FieldPDF,
	types.FieldPreview, types.FieldArxiv,
}

// Score compares a candidate with its reference field by field. The
// reference defines completeness: its required fields are resolved by
// schema, and only those that are non-empty on the reference are scored.
// A field counts as matched when FieldSimilarity reaches threshold. The
// ratio is matched/considered, and 0 when nothing can be considered.
func Score(candidate, reference types.Record, schema Schema, threshold float64) types.RecordScore {
	required := schema.RequiredFields(reference)
	s := types.RecordScore{
		RequiredFields: required,
		Considered:     []string{},
		Matched:        []string{},
		FieldScores:    make(map[string]float64),
	}

	for _, field := range required {
		gt := strings.TrimSpace(reference.Get(field))
		if gt == "" {
			continue
		}
		s.Considered = append(s.Considered, field)
		sim := FieldSimilarity(candidate.Get(field), gt)
		s.FieldScores[field] = sim
		if sim >= threshold {
			s.Matched = append(s.Matched, field)
		}
	}

	if len(s.Considered) > 0 {
		s.Ratio = float64(len(s.Matched)) / float64(len(s.Considered))
	}
	return s
}

// Differences lists the required fields of the reference whose normalized
// values disagree, or that the candidate lacks while the reference has
// them. Spellings of a true flag do not disagree.
func Differences(candidate, reference types.Record, schema Schema) []types.FieldDifference {
	var diffs []types.FieldDifference
	for _, field := range schema.RequiredFields(reference) {
		cv := strings.TrimSpace(candidate.Get(field))
		gv := strings.TrimSpace(reference.Get(field))
		switch {
		case cv != "" && gv != "":
			if NormalizeText(cv) != NormalizeText(gv) && !(isTrueFlag(cv) && isTrueFlag(gv)) {
				diffs = append(diffs, types.FieldDifference{Field: field, Candidate: cv, GroundTruth: gv})
			}
		case gv != "":
			diffs = append(diffs, types.FieldDifference{Field: field, Candidate: MissingValue, GroundTruth: gv})
		}
	}
	return diffs
}

// FieldRows builds the side-by-side rows of a matched pair in DisplayOrder.
// Fields that were scored reuse their score; all others are compared with
// DisplaySimilarity, so two empty values show as agreeing.
func FieldRows(candidate, reference types.Record, schema Schema, score types.RecordScore) []types.FieldRow {
	required := make(map[string]bool, len(score.RequiredFields))
	for _, f := range score.RequiredFields {
		required[f] = true
	}
	if len(required) == 0 {
		for _, f := range schema.RequiredFields(reference) {
			required[f] = true
		}
	}

	rows := make([]types.FieldRow, 0, len(DisplayOrder))
	for _, field := range DisplayOrder {
		cv := strings.TrimSpace(candidate.Get(field))
		gv := strings.TrimSpace(reference.Get(field))
		sim, ok := score.FieldScores[field]
		if !ok {
			sim = DisplaySimilarity(cv, gv)
		}
		rows = append(rows, types.FieldRow{
			Field:       field,
			Candidate:   cv,
			GroundTruth: gv,
			Similarity:  sim,
			Required:    required[field],
		})
	}
	return rows
}

// ExclusiveFields returns the sorted names of reference fields that fall
// outside DisplayOrder, such as hand-curated extras.
func ExclusiveFields(reference types.Record) []string {
	shown := make(map[string]bool, len(DisplayOrder))
	for _, f := range DisplayOrder {
		shown[f] = true
	}
	var out []string
	for _, name := range reference.Names() {
		if !shown[name] {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
