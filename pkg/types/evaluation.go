// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Match pairs a candidate record with the reference record it was assigned
// to. Similarity is the title similarity and is never below the threshold
// used to produce the match.
type Match struct {
	Candidate      Record  `json:"candidate" yaml:"candidate"`
	Reference      Record  `json:"reference" yaml:"reference"`
	CandidateIndex int     `json:"candidate_index" yaml:"candidate_index"`
	ReferenceIndex int     `json:"reference_index" yaml:"reference_index"`
	Similarity     float64 `json:"similarity" yaml:"similarity"`
}

// MatchResult partitions two record sets into matches and unmatched
// remainders. Records without a title never take part in matching and are
// listed under the Excluded fields.
type MatchResult struct {
	Matches             []Match  `json:"matches" yaml:"matches"`
	UnmatchedCandidates []Record `json:"unmatched_candidates" yaml:"unmatched_candidates"`
	UnmatchedReferences []Record `json:"unmatched_references" yaml:"unmatched_references"`
	ExcludedCandidates  []Record `json:"excluded_candidates,omitempty" yaml:"excluded_candidates,omitempty"`
	ExcludedReferences  []Record `json:"excluded_references,omitempty" yaml:"excluded_references,omitempty"`
}

// RecordScore is the field-level comparison of one matched pair.
type RecordScore struct {
	// RequiredFields is the schema of the reference record, sorted.
	RequiredFields []string `json:"required_fields" yaml:"required_fields"`

	// Considered lists the required fields that are non-empty on the
	// reference, sorted. Only these are scored.
	Considered []string `json:"considered" yaml:"considered"`

	// Matched lists the considered fields at or above the field threshold.
	Matched []string `json:"matched" yaml:"matched"`

	// FieldScores maps each considered field to its similarity in [0,1].
	FieldScores map[string]float64 `json:"field_scores" yaml:"field_scores"`

	// Ratio is len(Matched)/len(Considered), or 0 when nothing is considered.
	Ratio float64 `json:"ratio" yaml:"ratio"`
}

// Points returns the number of matched fields.
func (s RecordScore) Points() int { return len(s.Matched) }

// Total returns the number of considered fields.
func (s RecordScore) Total() int { return len(s.Considered) }

// FieldDifference records a required field whose values disagree.
type FieldDifference struct {
	Field       string `json:"field" yaml:"field"`
	Candidate   string `json:"candidate" yaml:"candidate"`
	GroundTruth string `json:"ground_truth" yaml:"ground_truth"`
}

// FieldRow is one line of a side-by-side comparison of a matched pair.
type FieldRow struct {
	Field       string  `json:"field" yaml:"field"`
	Candidate   string  `json:"candidate" yaml:"candidate"`
	GroundTruth string  `json:"ground_truth" yaml:"ground_truth"`
	Similarity  float64 `json:"similarity" yaml:"similarity"`
	Required    bool    `json:"required" yaml:"required"`
}

// ScoredMatch is a match together with its field-level score.
type ScoredMatch struct {
	Match       `yaml:",inline"`
	Score       RecordScore       `json:"score" yaml:"score"`
	Differences []FieldDifference `json:"differences,omitempty" yaml:"differences,omitempty"`
}

// FieldStats aggregates one field across all scored matches.
type FieldStats struct {
	Field    string  `json:"field" yaml:"field"`
	Total    int     `json:"total" yaml:"total"`
	Correct  int     `json:"correct" yaml:"correct"`
	Accuracy float64 `json:"accuracy" yaml:"accuracy"`
}

// EvaluationResult is the full outcome of comparing candidates against
// references. It is computed fresh on every run.
type EvaluationResult struct {
	Thresholds          Thresholds    `json:"thresholds" yaml:"thresholds"`
	Matches             []ScoredMatch `json:"matches" yaml:"matches"`
	UnmatchedCandidates []Record      `json:"unmatched_candidates" yaml:"unmatched_candidates"`
	UnmatchedReferences []Record      `json:"unmatched_references" yaml:"unmatched_references"`
	ExcludedCandidates  []Record      `json:"excluded_candidates,omitempty" yaml:"excluded_candidates,omitempty"`
	ExcludedReferences  []Record      `json:"excluded_references,omitempty" yaml:"excluded_references,omitempty"`
	FieldStats          []FieldStats  `json:"field_stats" yaml:"field_stats"`
	AverageRatio        float64       `json:"average_ratio" yaml:"average_ratio"`
}

// TotalCandidates returns the number of candidate records evaluated.
func (r EvaluationResult) TotalCandidates() int {
	return len(r.Matches) + len(r.UnmatchedCandidates) + len(r.ExcludedCandidates)
}

// TotalReferences returns the number of reference records evaluated.
func (r EvaluationResult) TotalReferences() int {
	return len(r.Matches) + len(r.UnmatchedReferences) + len(r.ExcludedReferences)
}

// DuplicatePair flags two records of one catalogue whose selected field is
// at least as similar as the detection threshold. I < J always.
type DuplicatePair struct {
	I          int     `json:"i" yaml:"i"`
	J          int     `json:"j" yaml:"j"`
	Field      string  `json:"field" yaml:"field"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
}
