// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluate

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bibcheck/pkg/types"
)

// FormatSummary writes the headline numbers of a run to w.
func FormatSummary(r *Report, w io.Writer) {
	res := r.Result
	fmt.Fprintf(w, "Evaluation Summary:\n")
	fmt.Fprintf(w, "  - Ground truth papers: %d\n", res.TotalReferences())
	fmt.Fprintf(w, "  - Generated papers: %d\n", res.TotalCandidates())
	fmt.Fprintf(w, "  - Matched: %d\n", len(res.Matches))
	fmt.Fprintf(w, "  - Coverage: %.1f%%\n", r.Coverage()*100)
	fmt.Fprintf(w, "  - In generated only (new papers): %d\n", len(res.UnmatchedCandidates))
	fmt.Fprintf(w, "  - In ground truth only (missing): %d\n", len(res.UnmatchedReferences))
	if n := len(res.ExcludedCandidates) + len(res.ExcludedReferences); n > 0 {
		fmt.Fprintf(w, "  - Excluded without title: %d\n", n)
	}
	fmt.Fprintf(w, "  - Average field differences per matched paper: %.2f\n", r.AverageDifferences())
	fmt.Fprintf(w, "  - Average score: %.1f%%\n", res.AverageRatio*100)
}

// FormatTable writes per-field accuracy and per-paper scores, worst first.
func FormatTable(r *Report, w io.Writer) {
	res := r.Result
	if len(res.Matches) == 0 {
		fmt.Fprintln(w, "No matched papers.")
		return
	}

	fmt.Fprintf(w, "%-14s  %7s  %5s  %8s\n", "Field", "Correct", "Total", "Accuracy")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	for _, st := range res.FieldStats {
		fmt.Fprintf(w, "%-14s  %7d  %5d  %7.1f%%\n", st.Field, st.Correct, st.Total, st.Accuracy*100)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-6s  %-6s  %-60s  %s\n", "Score", "Points", "Title", "Differences")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, m := range res.Matches {
		title := m.Reference.Title()
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		var fields []string
		for _, d := range m.Differences {
			fields = append(fields, d.Field)
		}
		fmt.Fprintf(w, "%5.1f%%  %2d/%-3d  %-60s  %s\n",
			m.Score.Ratio*100, m.Score.Points(), m.Score.Total(), title, strings.Join(fields, ", "))
	}

	writeTitles(w, "In generated only", res.UnmatchedCandidates)
	writeTitles(w, "In ground truth only", res.UnmatchedReferences)
}

func writeTitles(w io.Writer, heading string, recs []types.Record) {
	if len(recs) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s (%d):\n", heading, len(recs))
	for _, rec := range recs {
		fmt.Fprintf(w, "  [%s] %s\n", rec.Key(), rec.Title())
	}
}

// FormatJSON writes the report as indented JSON to w.
func FormatJSON(r *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteYAML writes the report to dir/evaluation-<id>.yaml and returns the
// path.
func WriteYAML(r *Report, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}
	data, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}
	path := filepath.Join(dir, "evaluation-"+r.ID+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
