// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quality

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bibcheck/pkg/types"
)

func rec(key string, kv ...string) types.Record {
	fields := make([]types.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields = append(fields, types.Field{Name: kv[i], Value: kv[i+1]})
	}
	return types.NewRecord(key, "article", fields...)
}

var now = time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

func catalogue() []types.Record {
	return []types.Record{
		rec("a", "title", "Learning to Rank (Extended Abstract)", "author", "Doe, Jane and Roe, Richard", "year", "2021", "venue", "SIGIR"),
		rec("b", "title", "Learning to Rank", "author", "Doe, Jane and Roe, Richard", "year", "2022", "venue", "ICML"),
		rec("c", "title", "SHORT", "author", "Someone Else", "year", "1999"),
		rec("d", "author", "Nobody Known", "year", "20x1", "journal", "Nature"),
		rec("e", "title", "A Perfectly Ordinary Paper Title", "author", "Quite Different Person", "year", "2030", "publisher", "ACM"),
	}
}

func TestRun(t *testing.T) {
	r := Run(catalogue(), types.DefaultThresholds(), Options{Now: now})

	assert.Equal(t, 5, r.Total)

	require.Len(t, r.SimilarTitles, 1)
	assert.Equal(t, "a", r.SimilarTitles[0].First.Key())
	assert.Equal(t, "b", r.SimilarTitles[0].Second.Key())
	assert.Equal(t, 1.0, r.SimilarTitles[0].Similarity)

	require.Len(t, r.SimilarAuthors, 1)
	assert.Equal(t, "author", r.SimilarAuthors[0].Field)

	require.Len(t, r.Missing, 1)
	assert.Equal(t, "d", r.Missing[0].Record.Key())
	assert.Equal(t, []string{"title"}, r.Missing[0].Missing)

	flags := make(map[string][]string)
	for _, s := range r.Suspicious {
		flags[s.Record.Key()] = s.Flags
	}
	assert.Equal(t, []string{"ALL CAPS TITLE", "Very short title (5 chars)", "No venue or publisher", "Old paper (1999)"}, flags["c"])
	assert.Equal(t, []string{"Invalid year format: 20x1"}, flags["d"])
	assert.Equal(t, []string{"Future year (2030)"}, flags["e"])
	assert.NotContains(t, flags, "a")
	assert.NotContains(t, flags, "b")

	assert.Equal(t, 2+1+3, r.Issues())
}

func TestRunMinYear(t *testing.T) {
	r := Run([]types.Record{rec("x", "title", "A Reasonable Title", "author", "A", "year", "2005", "venue", "V")},
		types.DefaultThresholds(), Options{Now: now, MinYear: 2010})
	require.Len(t, r.Suspicious, 1)
	assert.Equal(t, []string{"Old paper (2005)"}, r.Suspicious[0].Flags)
}

func TestRunProgress(t *testing.T) {
	calls := make(map[string]int)
	Run(catalogue(), types.DefaultThresholds(), Options{
		Now: now,
		Progress: func(check string, done, total int) {
			calls[check]++
			assert.Equal(t, 5, total)
		},
	})
	assert.Equal(t, map[string]int{CheckTitles: 5, CheckAuthors: 5}, calls)
}

func TestIsAllCaps(t *testing.T) {
	assert.True(t, isAllCaps("BERT: A MODEL 2"))
	assert.False(t, isAllCaps("BERT: A model"))
	assert.False(t, isAllCaps("1234 !!"))
}

func TestFormatText(t *testing.T) {
	r := Run(catalogue(), types.DefaultThresholds(), Options{Now: now})
	var buf bytes.Buffer
	FormatText(r, &buf, 1)
	out := buf.String()

	assert.Contains(t, out, "QUALITY REPORT")
	assert.Contains(t, out, "Records:             5\n")
	assert.Contains(t, out, "--- Similar titles (1) ---")
	assert.Contains(t, out, "100.0% similar")
	assert.Contains(t, out, "[d]: missing title")
	assert.Contains(t, out, "... and 2 more")
}

func TestFormatTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatText(Report{}, &buf, 0)
	assert.Equal(t, 4, strings.Count(buf.String(), "none found"))
}

func TestFormatJSONAndYAML(t *testing.T) {
	r := Run(catalogue(), types.DefaultThresholds(), Options{Now: now})

	var jb bytes.Buffer
	require.NoError(t, FormatJSON(r, &jb))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(jb.Bytes(), &decoded))
	assert.EqualValues(t, 5, decoded["total"])
	assert.Len(t, decoded["similar_titles"], 1)

	var yb bytes.Buffer
	require.NoError(t, FormatYAML(r, &yb))
	var ydecoded map[string]any
	require.NoError(t, yaml.Unmarshal(yb.Bytes(), &ydecoded))
	assert.Equal(t, 5, ydecoded["total"])
	assert.Contains(t, yb.String(), "similar_titles:")
}
