// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns harvested publications into BibTeX records with
// fixed rules: entry type from the venue, month from the citation text,
// arXiv and DOI identifiers from venue and link, and the site fields the
// bibliography page expects.
package convert

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/bibcheck/internal/store"
	"github.com/pdiddy/bibcheck/pkg/types"
)

var (
	arxivIDRe   = regexp.MustCompile(`(?i)(?:arXiv[:\s]+)?(\d{4}\.\d{4,5})`)
	nonLetterRe = regexp.MustCompile(`[^a-zA-Z]`)
	nonSlugRe   = regexp.MustCompile(`[^a-z0-9]+`)
)

// conferenceMarkers in a venue mark a conference paper.
var conferenceMarkers = []string{"proceedings", "conference", "workshop", "symposium"}

// monthNames maps month spellings to BibTeX month macros. Full names are
// tried before abbreviations.
var monthNames = []struct{ name, abbr string }{
	{"january", "jan"}, {"jan", "jan"},
	{"february", "feb"}, {"feb", "feb"},
	{"march", "mar"}, {"mar", "mar"},
	{"april", "apr"}, {"apr", "apr"},
	{"may", "may"},
	{"june", "jun"}, {"jun", "jun"},
	{"july", "jul"}, {"jul", "jul"},
	{"august", "aug"}, {"aug", "aug"},
	{"september", "sep"}, {"sep", "sep"},
	{"october", "oct"}, {"oct", "oct"},
	{"november", "nov"}, {"nov", "nov"},
	{"december", "dec"}, {"dec", "dec"},
}

var stopWords = map[string]bool{"a": true, "an": true, "the": true}

// Convert builds the BibTeX record of one publication.
func Convert(p store.Publication) types.Record {
	venue := ""
	for _, k := range []string{"conference", "journal", "citation"} {
		if v := p.Get(k); v != "" {
			venue = v
			break
		}
	}
	venueLower := strings.ToLower(venue)

	entryType := "article"
	if _, ok := p.Bib["conference"]; ok || containsAny(venueLower, conferenceMarkers) {
		entryType = "inproceedings"
	}

	title := p.Title()
	author := p.Get("author")
	year := p.Get("pub_year")
	url := p.URL()

	citation := p.Get("citation")
	if citation == "" {
		citation = venue
	}

	var fields []types.Field
	add := func(name, value string) {
		if value != "" {
			fields = append(fields, types.Field{Name: name, Value: value})
		}
	}
	add(types.FieldTitle, title)
	add(types.FieldAuthor, author)
	add(types.FieldYear, year)
	add(types.FieldURL, url)
	add(types.FieldMonth, Month(citation))

	arxivID := ""
	switch {
	case entryType == "inproceedings":
		add(types.FieldBooktitle, venue)
		add(types.FieldDOI, DOI(url))
	case strings.Contains(venueLower, types.PreprintMarker):
		add(types.FieldJournal, "ArXiv")
		src := venue
		if src == "" {
			src = url
		}
		arxivID = ArxivID(src)
		add(types.FieldVolume, arxivID)
	default:
		add(types.FieldJournal, venue)
		add(types.FieldDOI, DOI(url))
	}

	add(types.FieldBibtexShow, "true")
	add(types.FieldAbstract, p.Get("abstract"))
	if slug := Slug(title); slug != "" {
		add(types.FieldPDF, slug+".pdf")
		add(types.FieldPreview, slug+".png")
	}
	add(types.FieldArxiv, arxivID)

	return types.NewRecord(Key(title, author, year), entryType, fields...)
}

// ConvertAll converts publications in order. A citation key already taken
// by an earlier record gets the first free suffix "b", "c", ... so every key
// in the result is unique.
func ConvertAll(pubs []store.Publication) []types.Record {
	out := make([]types.Record, 0, len(pubs))
	taken := make(map[string]bool, len(pubs))
	for _, p := range pubs {
		rec := Convert(p)
		key := rec.Key()
		for suffix := 'b'; taken[key]; suffix++ {
			key = rec.Key() + string(suffix)
		}
		if key != rec.Key() {
			rec = rec.WithKey(key)
		}
		taken[key] = true
		out = append(out, rec)
	}
	return out
}

// Key builds a citation key from the first author's last name, the year
// and up to three leading title words, e.g. "Vaswani2017AttentionIsAll".
func Key(title, author, year string) string {
	last := "Unknown"
	if author != "" {
		last = ""
		first := strings.TrimSpace(strings.SplitN(author, " and ", 2)[0])
		if words := strings.Fields(first); len(words) > 0 {
			last = nonLetterRe.ReplaceAllString(words[len(words)-1], "")
		}
	}

	titlePart := "Paper"
	if title != "" {
		var b strings.Builder
		words := strings.Fields(title)
		if len(words) > 3 {
			words = words[:3]
		}
		for _, w := range words {
			if stopWords[strings.ToLower(w)] {
				continue
			}
			b.WriteString(capitalize(w))
		}
		titlePart = nonLetterRe.ReplaceAllString(b.String(), "")
	}
	return last + year + titlePart
}

// capitalize upper-cases the first rune of w and lower-cases the rest.
func capitalize(w string) string {
	r := []rune(strings.ToLower(w))
	if len(r) == 0 {
		return ""
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Month returns the month macro of the first month name found in s.
func Month(s string) string {
	lower := strings.ToLower(s)
	for _, m := range monthNames {
		if strings.Contains(lower, m.name) {
			return m.abbr
		}
	}
	return ""
}

// ArxivID extracts an identifier such as 2401.12345 from a venue or link.
func ArxivID(s string) string {
	m := arxivIDRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}

// DOI returns the part of a doi.org link after "doi.org/".
func DOI(url string) string {
	i := strings.LastIndex(url, "doi.org/")
	if i < 0 {
		return ""
	}
	return url[i+len("doi.org/"):]
}

// Slug turns a title into the file stem of its PDF and preview image:
// apostrophes dropped, accents folded to ASCII, lowercase, and runs of
// other characters replaced by single hyphens.
func Slug(title string) string {
	title = strings.NewReplacer("'", "", "’", "").Replace(title)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}
	return strings.Trim(nonSlugRe.ReplaceAllString(strings.ToLower(folded), "-"), "-")
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
