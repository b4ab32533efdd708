// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for bibcheck: bibliographic
// records, their inferred kind, matching thresholds, and the comparison
// results produced by the matching engine.
package types

import (
	"encoding/json"
	"strings"
)

// Well-known field names. Field names are case-insensitive and stored
// lowercased.
const (
	FieldTitle      = "title"
	FieldAuthor     = "author"
	FieldURL        = "url"
	FieldMonth      = "month"
	FieldYear       = "year"
	FieldBooktitle  = "booktitle"
	FieldJournal    = "journal"
	FieldVolume     = "volume"
	FieldDOI        = "doi"
	FieldArxiv      = "arxiv"
	FieldBibtexShow = "bibtex_show"
	FieldAbstract   = "abstract"
	FieldPDF        = "pdf"
	FieldPreview    = "preview"
	FieldPublisher  = "publisher"
	FieldVenue      = "venue"
)

// PreprintMarker is the substring of a lowercased journal name that marks a
// record as a preprint.
const PreprintMarker = "arxiv"

// Kind is the inferred publication category of a record. It selects the
// required-field schema.
type Kind string

const (
	KindConference Kind = "conference"
	KindJournal    Kind = "journal"
	KindPreprint   Kind = "preprint"
)

// conferenceTypes lists entry types treated as conference papers.
var conferenceTypes = map[string]bool{
	"inproceedings": true,
	"conference":    true,
	"proceedings":   true,
	"incollection":  true,
}

// InferKind resolves the kind from an entry type and a journal name.
// Unknown entry types fall back to KindJournal, the most permissive schema.
func InferKind(entryType, journal string) Kind {
	if conferenceTypes[strings.ToLower(strings.TrimSpace(entryType))] {
		return KindConference
	}
	if strings.Contains(strings.ToLower(journal), PreprintMarker) {
		return KindPreprint
	}
	return KindJournal
}

// Field is a single named value of a record.
type Field struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Record is an ordered, immutable set of string fields plus a citation key
// and an entry type. Use NewRecord to build one; With returns a modified copy.
type Record struct {
	key       string
	entryType string
	kind      Kind
	fields    []Field
	index     map[string]int
}

// NewRecord builds a record. Field names are lowercased; a repeated name
// overwrites the earlier value but keeps its position.
func NewRecord(key, entryType string, fields ...Field) Record {
	r := Record{
		key:       key,
		entryType: strings.ToLower(strings.TrimSpace(entryType)),
		index:     make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		r.set(f.Name, f.Value)
	}
	r.kind = InferKind(r.entryType, r.Get(FieldJournal))
	return r
}

func (r *Record) set(name, value string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	if i, ok := r.index[name]; ok {
		r.fields[i].Value = value
		return
	}
	r.index[name] = len(r.fields)
	r.fields = append(r.fields, Field{Name: name, Value: value})
}

// Key returns the citation key.
func (r Record) Key() string { return r.key }

// Type returns the lowercased entry type (e.g. "article", "inproceedings").
func (r Record) Type() string { return r.entryType }

// Kind returns the kind resolved when the record was built.
func (r Record) Kind() Kind {
	if r.kind == "" {
		return KindJournal
	}
	return r.kind
}

// Get returns the raw value of a field, or "" when absent.
func (r Record) Get(name string) string {
	i, ok := r.index[strings.ToLower(name)]
	if !ok {
		return ""
	}
	return r.fields[i].Value
}

// Has reports whether the field is present with a non-blank value.
func (r Record) Has(name string) bool {
	return strings.TrimSpace(r.Get(name)) != ""
}

// Title returns the title field.
func (r Record) Title() string { return r.Get(FieldTitle) }

// Fields returns a copy of the fields in insertion order.
func (r Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Names returns the field names in insertion order.
func (r Record) Names() []string {
	out := make([]string, len(r.fields))
	for i, f := range r.fields {
		out[i] = f.Name
	}
	return out
}

// With returns a copy of r with the field set. The original is unchanged.
func (r Record) With(name, value string) Record {
	fields := r.Fields()
	fields = append(fields, Field{Name: name, Value: value})
	return NewRecord(r.key, r.entryType, fields...)
}

// WithKey returns a copy of r with a different citation key.
func (r Record) WithKey(key string) Record {
	return NewRecord(key, r.entryType, r.fields...)
}

// recordView is the serialized form of a Record.
type recordView struct {
	Key    string  `json:"key" yaml:"key"`
	Type   string  `json:"type" yaml:"type"`
	Kind   Kind    `json:"kind" yaml:"kind"`
	Fields []Field `json:"fields" yaml:"fields"`
}

func (r Record) view() recordView {
	return recordView{Key: r.key, Type: r.entryType, Kind: r.Kind(), Fields: r.Fields()}
}

// MarshalJSON encodes the record with its fields in order.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.view())
}

// UnmarshalJSON decodes a record written by MarshalJSON.
func (r *Record) UnmarshalJSON(data []byte) error {
	var v recordView
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = NewRecord(v.Key, v.Type, v.Fields...)
	return nil
}

// MarshalYAML encodes the record with its fields in order.
func (r Record) MarshalYAML() (any, error) {
	return r.view(), nil
}
