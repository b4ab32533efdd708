// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quality checks a single catalogue for likely problems:
// near-duplicate titles and author lists, missing critical fields, and
// suspicious values.
package quality

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/bibcheck/internal/match"
	"github.com/pdiddy/bibcheck/pkg/types"
)

// Defaults for Options.
const (
	DefaultMinYear  = 2000
	minTitleLength  = 10
	maxTitleLength  = 200
	DefaultListSize = 50
)

// Check names passed to the progress callback.
const (
	CheckTitles  = "titles"
	CheckAuthors = "authors"
)

// Options tunes Run.
type Options struct {
	// MinYear flags records published before it. Zero means DefaultMinYear.
	MinYear int

	// Now sets the current date for the future-year check. Zero means
	// time.Now.
	Now time.Time

	// Progress, when set, is called during the pairwise scans.
	Progress func(check string, done, total int)
}

// Pair is two records of the catalogue whose selected field is nearly the
// same.
type Pair struct {
	Field      string       `json:"field" yaml:"field"`
	Similarity float64      `json:"similarity" yaml:"similarity"`
	First      types.Record `json:"first" yaml:"first"`
	Second     types.Record `json:"second" yaml:"second"`
}

// MissingFields lists the critical fields a record lacks.
type MissingFields struct {
	Record  types.Record `json:"record" yaml:"record"`
	Missing []string     `json:"missing" yaml:"missing"`
}

// Suspicious lists the anomalies found on one record.
type Suspicious struct {
	Record types.Record `json:"record" yaml:"record"`
	Flags  []string     `json:"flags" yaml:"flags"`
}

// Report is the outcome of Run.
type Report struct {
	Total          int             `json:"total" yaml:"total"`
	SimilarTitles  []Pair          `json:"similar_titles" yaml:"similar_titles"`
	SimilarAuthors []Pair          `json:"similar_authors" yaml:"similar_authors"`
	Missing        []MissingFields `json:"missing_fields" yaml:"missing_fields"`
	Suspicious     []Suspicious    `json:"suspicious" yaml:"suspicious"`
}

// Issues returns the number of findings across all checks.
func (r Report) Issues() int {
	return len(r.SimilarTitles) + len(r.SimilarAuthors) + len(r.Missing) + len(r.Suspicious)
}

// criticalFields must be present on every record.
var criticalFields = []string{types.FieldTitle, types.FieldAuthor, types.FieldYear}

// Run applies every check to records. Title pairs use the duplicate-title
// threshold and author pairs the duplicate-author threshold.
func Run(records []types.Record, t types.Thresholds, opts Options) Report {
	if opts.MinYear == 0 {
		opts.MinYear = DefaultMinYear
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	r := Report{Total: len(records)}
	r.SimilarTitles = pairs(records, match.TitleSelector(), t.DuplicateTitle, CheckTitles, opts.Progress)
	r.SimilarAuthors = pairs(records, match.FieldSelector(types.FieldAuthor), t.DuplicateAuthor, CheckAuthors, opts.Progress)

	for _, rec := range records {
		if missing := missingFields(rec); len(missing) > 0 {
			r.Missing = append(r.Missing, MissingFields{Record: rec, Missing: missing})
		}
		if flags := suspiciousFlags(rec, opts.MinYear, opts.Now.Year()); len(flags) > 0 {
			r.Suspicious = append(r.Suspicious, Suspicious{Record: rec, Flags: flags})
		}
	}
	return r
}

func pairs(records []types.Record, sel match.Selector, threshold float64, check string, progress func(string, int, int)) []Pair {
	var opts []match.DuplicateOption
	if progress != nil {
		opts = append(opts, match.WithProgress(func(done, total int) {
			progress(check, done, total)
		}))
	}
	found := match.FindNearDuplicates(records, sel, threshold, opts...)
	out := make([]Pair, 0, len(found))
	for _, d := range found {
		out = append(out, Pair{
			Field:      d.Field,
			Similarity: d.Similarity,
			First:      records[d.I],
			Second:     records[d.J],
		})
	}
	return out
}

func missingFields(rec types.Record) []string {
	var missing []string
	for _, f := range criticalFields {
		if !rec.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// venueFields hold the publication venue in harvested and BibTeX records.
var venueFields = []string{types.FieldVenue, types.FieldBooktitle, types.FieldJournal, types.FieldPublisher}

func suspiciousFlags(rec types.Record, minYear, currentYear int) []string {
	var flags []string

	if title := strings.TrimSpace(rec.Title()); title != "" {
		if isAllCaps(title) {
			flags = append(flags, "ALL CAPS TITLE")
		}
		n := utf8.RuneCountInString(title)
		if n < minTitleLength {
			flags = append(flags, fmt.Sprintf("Very short title (%d chars)", n))
		}
		if n > maxTitleLength {
			flags = append(flags, fmt.Sprintf("Very long title (%d chars)", n))
		}
	}

	hasVenue := false
	for _, f := range venueFields {
		if rec.Has(f) {
			hasVenue = true
			break
		}
	}
	if !hasVenue {
		flags = append(flags, "No venue or publisher")
	}

	if y := strings.TrimSpace(rec.Get(types.FieldYear)); y != "" {
		year, err := strconv.Atoi(y)
		switch {
		case err != nil:
			flags = append(flags, fmt.Sprintf("Invalid year format: %s", y))
		case year < minYear:
			flags = append(flags, fmt.Sprintf("Old paper (%d)", year))
		case year > currentYear:
			flags = append(flags, fmt.Sprintf("Future year (%d)", year))
		}
	}
	return flags
}

// isAllCaps reports whether s has at least one cased letter and no
// lowercase ones.
func isAllCaps(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}
