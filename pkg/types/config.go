package types

import "fmt"

// Default thresholds.
const (
	DefaultTitleMatch      = 0.85
	DefaultFieldMatch      = 0.85
	DefaultDuplicateTitle  = 0.85
	DefaultDuplicateAuthor = 0.90
	DefaultRemoval         = 0.70
)

// Thresholds holds the similarity cut-offs used by the matching engine.
// Each value is a probability in [0,1].
type Thresholds struct {
	// TitleMatch is the minimum title similarity for a candidate to be
	// paired with a reference (default 0.85).
	TitleMatch float64 `json:"title_match" yaml:"title_match" mapstructure:"title_match"`

	// FieldMatch is the minimum field similarity for a required field to
	// count as matched during scoring (default 0.85).
	FieldMatch float64 `json:"field_match" yaml:"field_match" mapstructure:"field_match"`

	// DuplicateTitle flags near-duplicate titles within one catalogue (default 0.85).
	DuplicateTitle float64 `json:"duplicate_title" yaml:"duplicate_title" mapstructure:"duplicate_title"`

	// DuplicateAuthor flags near-duplicate author lists within one catalogue (default 0.90).
	DuplicateAuthor float64 `json:"duplicate_author" yaml:"duplicate_author" mapstructure:"duplicate_author"`

	// Removal is the minimum similarity for a removed record to be reported
	// as merged into a remaining one (default 0.70).
	Removal float64 `json:"removal" yaml:"removal" mapstructure:"removal"`
}

// DefaultThresholds returns the standard threshold set.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TitleMatch:      DefaultTitleMatch,
		FieldMatch:      DefaultFieldMatch,
		DuplicateTitle:  DefaultDuplicateTitle,
		DuplicateAuthor: DefaultDuplicateAuthor,
		Removal:         DefaultRemoval,
	}
}

// Validate reports the first threshold outside [0,1].
func (t Thresholds) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"title_match", t.TitleMatch},
		{"field_match", t.FieldMatch},
		{"duplicate_title", t.DuplicateTitle},
		{"duplicate_author", t.DuplicateAuthor},
		{"removal", t.Removal},
	}
	for _, c := range checks {
		if c.value < 0 || c.value > 1 {
			return fmt.Errorf("threshold %s = %v: must be within [0,1]", c.name, c.value)
		}
	}
	return nil
}

// StoreConfig holds settings for the harvested-publication store.
type StoreConfig struct {
	// Dir is the directory that holds publications.db.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// EvaluateConfig holds settings for the evaluate command.
type EvaluateConfig struct {
	// ReportDir receives evaluation-<id>.yaml files. Empty disables them.
	ReportDir string `json:"report_dir" yaml:"report_dir" mapstructure:"report_dir"`
}

// QualityConfig holds settings for the quality command.
type QualityConfig struct {
	// MinYear flags records published before this year (default 2000).
	MinYear int `json:"min_year" yaml:"min_year" mapstructure:"min_year"`

	// ListLimit caps the number of missing-field and suspicious-pattern
	// entries printed in text output (default 50).
	ListLimit int `json:"list_limit" yaml:"list_limit" mapstructure:"list_limit"`
}

// Config groups all command configurations.
type Config struct {
	Thresholds Thresholds     `json:"thresholds" yaml:"thresholds" mapstructure:"thresholds"`
	Store      StoreConfig    `json:"store" yaml:"store" mapstructure:"store"`
	Evaluate   EvaluateConfig `json:"evaluate" yaml:"evaluate" mapstructure:"evaluate"`
	Quality    QualityConfig  `json:"quality" yaml:"quality" mapstructure:"quality"`
}
