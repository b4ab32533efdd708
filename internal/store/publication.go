// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/bibcheck/pkg/types"
)

// Publication is one harvested entry in the shape a scholar-profile export
// produces: a bib map plus citation metadata.
type Publication struct {
	Bib          map[string]any `json:"bib"`
	NumCitations int            `json:"num_citations,omitempty"`
	PubURL       string         `json:"pub_url,omitempty"`
	AuthorPubID  string         `json:"author_pub_id,omitempty"`
	EprintURL    string         `json:"eprint_url,omitempty"`
}

// Get returns a bib value as a trimmed string. Numbers are formatted
// without a fractional part when they have none.
func (p Publication) Get(key string) string {
	v, ok := p.Bib[key]
	if !ok || v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

// Title returns the bib title.
func (p Publication) Title() string { return p.Get("title") }

// Year returns the publication year, which exports store as pub_year.
func (p Publication) Year() string {
	if y := p.Get("pub_year"); y != "" {
		return y
	}
	return p.Get("year")
}

// Venue returns the first non-empty of conference, journal, citation and
// venue.
func (p Publication) Venue() string {
	for _, k := range []string{"conference", "journal", "citation", "venue"} {
		if v := p.Get(k); v != "" {
			return v
		}
	}
	return ""
}

// URL returns the publication link, preferring pub_url.
func (p Publication) URL() string {
	if p.PubURL != "" {
		return p.PubURL
	}
	if u := p.Get("pub_url"); u != "" {
		return u
	}
	return p.EprintURL
}

// ID returns the stable identifier of a publication: the hex MD5 of its
// title.
func ID(title string) string {
	sum := md5.Sum([]byte(title))
	return hex.EncodeToString(sum[:])
}

// Record returns the comparison view of the publication: title, author,
// venue, year, publisher and url, keyed by ID.
func (p Publication) Record() types.Record {
	entryType := "article"
	if p.Get("conference") != "" {
		entryType = "inproceedings"
	}
	fields := []types.Field{
		{Name: types.FieldTitle, Value: p.Title()},
		{Name: types.FieldAuthor, Value: p.Get("author")},
		{Name: types.FieldVenue, Value: p.Venue()},
		{Name: types.FieldYear, Value: p.Year()},
		{Name: types.FieldPublisher, Value: p.Get("publisher")},
		{Name: types.FieldURL, Value: p.URL()},
	}
	kept := fields[:0]
	for _, f := range fields {
		if f.Value != "" {
			kept = append(kept, f)
		}
	}
	return types.NewRecord(ID(p.Title()), entryType, kept...)
}

// LoadPublications decodes a JSON array of publications, or an author
// object holding them under "publications".
func LoadPublications(r io.Reader) ([]Publication, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading publications: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var pubs []Publication
		if err := json.Unmarshal(data, &pubs); err != nil {
			return nil, fmt.Errorf("decoding publications: %w", err)
		}
		return pubs, nil
	}

	var author struct {
		Publications []Publication `json:"publications"`
	}
	if err := json.Unmarshal(data, &author); err != nil {
		return nil, fmt.Errorf("decoding author export: %w", err)
	}
	return author.Publications, nil
}
