// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pdiddy/bibcheck/pkg/types"
)

func record(key, entryType string, kv ...string) types.Record {
	var fields []types.Field
	for i := 0; i+1 < len(kv); i += 2 {
		fields = append(fields, types.Field{Name: kv[i], Value: kv[i+1]})
	}
	return types.NewRecord(key, entryType, fields...)
}

func TestToCSLItemConference(t *testing.T) {
	r := record("vaswani2017attention", "inproceedings",
		"title", "Attention Is All You Need",
		"author", "Vaswani, Ashish and Noam Shazeer and Plato",
		"booktitle", "Advances in Neural Information Processing Systems",
		"year", "2017",
		"month", "December",
		"doi", "10.5555/3295222",
	)

	item := toCSLItem(r)

	if item.Type != "paper-conference" {
		t.Errorf("Type = %q, want %q", item.Type, "paper-conference")
	}
	if item.ContainerTitle != "Advances in Neural Information Processing Systems" {
		t.Errorf("ContainerTitle = %q", item.ContainerTitle)
	}
	if item.DOI != "10.5555/3295222" {
		t.Errorf("DOI = %q", item.DOI)
	}
	if len(item.Author) != 3 {
		t.Fatalf("len(Author) = %d, want 3", len(item.Author))
	}
	if item.Author[0] != (CSLName{Family: "Vaswani", Given: "Ashish"}) {
		t.Errorf("Author[0] = %+v", item.Author[0])
	}
	if item.Author[1] != (CSLName{Family: "Shazeer", Given: "Noam"}) {
		t.Errorf("Author[1] = %+v", item.Author[1])
	}
	if item.Author[2] != (CSLName{Literal: "Plato"}) {
		t.Errorf("Author[2] = %+v", item.Author[2])
	}
	if item.Issued == nil || len(item.Issued.DateParts[0]) != 2 ||
		item.Issued.DateParts[0][0] != 2017 || item.Issued.DateParts[0][1] != 12 {
		t.Errorf("Issued = %+v, want 2017-12", item.Issued)
	}
}

func TestToCSLItemKinds(t *testing.T) {
	tests := []struct {
		name      string
		rec       types.Record
		wantType  string
		container string
	}{
		{"journal", record("k", "article", "journal", "Nature"), "article-journal", "Nature"},
		{"preprint", record("k", "article", "journal", "ArXiv", "volume", "1810.04805"), "article", "ArXiv"},
		{"harvested venue", record("k", "article", "venue", "SIGIR"), "article-journal", "SIGIR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := toCSLItem(tt.rec)
			if item.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", item.Type, tt.wantType)
			}
			if item.ContainerTitle != tt.container {
				t.Errorf("ContainerTitle = %q, want %q", item.ContainerTitle, tt.container)
			}
			if item.Issued != nil {
				t.Errorf("Issued = %+v, want nil without a year", item.Issued)
			}
			if item.Author != nil {
				t.Errorf("Author = %+v, want none", item.Author)
			}
		})
	}
}

func TestFormatCSL(t *testing.T) {
	records := []types.Record{
		record("a", "article", "title", "First", "journal", "Nature", "year", "2020"),
		record("b", "inproceedings", "title", "Second", "booktitle", "ICML"),
	}
	var buf bytes.Buffer
	if err := FormatCSL(records, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"id: a", "type: article-journal", "container-title: Nature", "date-parts:", "id: b", "type: paper-conference"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
