// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"sort"

	"github.com/pdiddy/bibcheck/pkg/types"
)

// Schema lists the fields every record must carry. Kind-specific fields are
// layered on top by RequiredFields.
type Schema struct {
	// Universal fields apply to every publication.
	Universal []string `json:"universal" yaml:"universal"`

	// Site fields are site-specific metadata that also apply to every record.
	Site []string `json:"site" yaml:"site"`
}

// DefaultSchema returns the universal fields title, author, url, month and
// year, plus the site fields bibtex_show, abstract, pdf and preview.
func DefaultSchema() Schema {
	return Schema{
		Universal: []string{types.FieldTitle, types.FieldAuthor, types.FieldURL, types.FieldMonth, types.FieldYear},
		Site:      []string{types.FieldBibtexShow, types.FieldAbstract, types.FieldPDF, types.FieldPreview},
	}
}

// RequiredFields returns the sorted set of fields rec must carry:
//
//	conference: + booktitle, and doi when rec itself has a doi
//	journal:    + journal, volume, doi
//	preprint:   + journal, volume, arxiv
//
// The result depends only on the kind of rec, its journal (through the
// kind) and, for conferences, whether its doi is non-empty.
func (s Schema) RequiredFields(rec types.Record) []string {
	set := make(map[string]struct{}, len(s.Universal)+len(s.Site)+3)
	add := func(names ...string) {
		for _, n := range names {
			set[n] = struct{}{}
		}
	}
	add(s.Universal...)
	add(s.Site...)

	switch rec.Kind() {
	case types.KindConference:
		add(types.FieldBooktitle)
		if rec.Has(types.FieldDOI) {
			add(types.FieldDOI)
		}
	case types.KindPreprint:
		add(types.FieldJournal, types.FieldVolume, types.FieldArxiv)
	default:
		add(types.FieldJournal, types.FieldVolume, types.FieldDOI)
	}

	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// IsRequired reports whether field is in the required set of rec.
func (s Schema) IsRequired(rec types.Record, field string) bool {
	for _, f := range s.RequiredFields(rec) {
		if f == field {
			return true
		}
	}
	return false
}
