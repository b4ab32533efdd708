// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferKind(t *testing.T) {
	tests := []struct {
		entryType string
		journal   string
		want      Kind
	}{
		{"inproceedings", "", KindConference},
		{" InCollection ", "arXiv preprint", KindConference},
		{"article", "ArXiv", KindPreprint},
		{"article", "arXiv preprint arXiv:1810.04805", KindPreprint},
		{"article", "Nature", KindJournal},
		{"misc", "", KindJournal},
		{"", "", KindJournal},
	}
	for _, tt := range tests {
		t.Run(tt.entryType+"/"+tt.journal, func(t *testing.T) {
			assert.Equal(t, tt.want, InferKind(tt.entryType, tt.journal))
		})
	}
}

func TestNewRecord(t *testing.T) {
	r := NewRecord("k", "ARTICLE",
		Field{Name: "Title", Value: "First"},
		Field{Name: "year", Value: "2020"},
		Field{Name: "TITLE", Value: "Second"},
		Field{Name: " ", Value: "dropped"},
	)

	assert.Equal(t, "article", r.Type())
	assert.Equal(t, "Second", r.Get("title"))
	assert.Equal(t, "Second", r.Title())
	assert.Equal(t, []string{"title", "year"}, r.Names())
	assert.True(t, r.Has("YEAR"))
	assert.False(t, r.Has("journal"))
	assert.Equal(t, KindJournal, r.Kind())
	assert.Equal(t, KindJournal, Record{}.Kind())
}

func TestRecordWith(t *testing.T) {
	orig := NewRecord("k", "article", Field{Name: "title", Value: "T"})
	changed := orig.With("journal", "arXiv")

	assert.Equal(t, KindJournal, orig.Kind())
	assert.False(t, orig.Has("journal"))
	assert.Equal(t, KindPreprint, changed.Kind())
	assert.Equal(t, []string{"title", "journal"}, changed.Names())

	fields := changed.Fields()
	fields[0].Value = "mutated"
	assert.Equal(t, "T", changed.Title(), "Fields returns a copy")

	rekeyed := changed.WithKey("other")
	assert.Equal(t, "other", rekeyed.Key())
	assert.Equal(t, "k", changed.Key())
	assert.Equal(t, changed.Fields(), rekeyed.Fields())
}

func TestRecordJSON(t *testing.T) {
	r := NewRecord("vaswani2017", "inproceedings",
		Field{Name: "title", Value: "Attention"},
		Field{Name: "booktitle", Value: "NeurIPS"},
	)
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"vaswani2017","type":"inproceedings","kind":"conference",
		"fields":[{"name":"title","value":"Attention"},{"name":"booktitle","value":"NeurIPS"}]}`, string(data))

	var back Record
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, KindConference, back.Kind())
	assert.Equal(t, r.Fields(), back.Fields())
}

func TestThresholdsValidate(t *testing.T) {
	require.NoError(t, DefaultThresholds().Validate())

	tests := []struct {
		name   string
		mutate func(*Thresholds)
		field  string
	}{
		{"title above one", func(th *Thresholds) { th.TitleMatch = 1.01 }, "title_match"},
		{"field negative", func(th *Thresholds) { th.FieldMatch = -0.1 }, "field_match"},
		{"removal above one", func(th *Thresholds) { th.Removal = 2 }, "removal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := DefaultThresholds()
			tt.mutate(&th)
			err := th.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	edges := Thresholds{}
	assert.NoError(t, edges.Validate(), "zero is within range")
}
