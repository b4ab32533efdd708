// Package export renders a catalogue in formats other tools consume.
package export

import (
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bibcheck/internal/bibtex"
	"github.com/pdiddy/bibcheck/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Volume         string    `yaml:"volume,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// cslTypes maps record kinds to CSL item types.
var cslTypes = map[types.Kind]string{
	types.KindConference: "paper-conference",
	types.KindJournal:    "article-journal",
	types.KindPreprint:   "article",
}

// FormatCSL writes records as a CSL-YAML list to w.
func FormatCSL(records []types.Record, w io.Writer) error {
	items := make([]CSLItem, len(records))
	for i, r := range records {
		items[i] = toCSLItem(r)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a record to a CSLItem.
func toCSLItem(r types.Record) CSLItem {
	item := CSLItem{
		ID:       r.Key(),
		Type:     cslTypes[r.Kind()],
		Title:    r.Title(),
		Volume:   r.Get(types.FieldVolume),
		Abstract: r.Get(types.FieldAbstract),
		DOI:      r.Get(types.FieldDOI),
		URL:      r.Get(types.FieldURL),
	}

	switch r.Kind() {
	case types.KindConference:
		item.ContainerTitle = r.Get(types.FieldBooktitle)
	default:
		item.ContainerTitle = r.Get(types.FieldJournal)
	}
	if item.ContainerTitle == "" {
		item.ContainerTitle = r.Get(types.FieldVenue)
	}

	for _, a := range strings.Split(r.Get(types.FieldAuthor), " and ") {
		if name := parseAuthorName(a); name != (CSLName{}) {
			item.Author = append(item.Author, name)
		}
	}

	if year, ok := bibtex.Year(r); ok {
		parts := []int{year}
		if month, ok := bibtex.Month(r); ok {
			parts = append(parts, month+1)
		}
		item.Issued = &CSLDate{DateParts: [][]int{parts}}
	}

	return item
}

// parseAuthorName splits one BibTeX author into CSL family/given parts.
// "Family, Given" splits on the comma; otherwise the last token is the
// family name. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	if family, given, ok := strings.Cut(name, ","); ok {
		return CSLName{Family: strings.TrimSpace(family), Given: strings.TrimSpace(given)}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
