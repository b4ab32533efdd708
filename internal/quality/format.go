// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quality

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"
)

// FormatText writes a readable report to w. limit caps the number of
// missing-field and suspicious entries listed; zero or less lists all.
func FormatText(r Report, w io.Writer, limit int) {
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(w, "%s\nQUALITY REPORT\n%s\n", rule, rule)
	fmt.Fprintf(w, "Records:             %d\n", r.Total)
	fmt.Fprintf(w, "Issues:              %d\n", r.Issues())
	fmt.Fprintf(w, "Similar titles:      %d\n", len(r.SimilarTitles))
	fmt.Fprintf(w, "Similar authors:     %d\n", len(r.SimilarAuthors))
	fmt.Fprintf(w, "Missing fields:      %d\n", len(r.Missing))
	fmt.Fprintf(w, "Suspicious patterns: %d\n", len(r.Suspicious))

	section(w, "Similar titles", len(r.SimilarTitles))
	for _, p := range r.SimilarTitles {
		fmt.Fprintf(w, "\n  %.1f%% similar\n", p.Similarity*100)
		fmt.Fprintf(w, "    1: %s (%s, %s)\n", p.First.Title(), orNA(p.First.Get("author")), orNA(p.First.Get("year")))
		fmt.Fprintf(w, "    2: %s (%s, %s)\n", p.Second.Title(), orNA(p.Second.Get("author")), orNA(p.Second.Get("year")))
	}

	section(w, "Similar author lists", len(r.SimilarAuthors))
	for _, p := range r.SimilarAuthors {
		fmt.Fprintf(w, "\n  %.1f%% similar\n", p.Similarity*100)
		fmt.Fprintf(w, "    1: %s\n       %s\n", orNA(p.First.Title()), p.First.Get("author"))
		fmt.Fprintf(w, "    2: %s\n       %s\n", orNA(p.Second.Title()), p.Second.Get("author"))
	}

	section(w, "Missing fields", len(r.Missing))
	for i, m := range r.Missing {
		if limit > 0 && i == limit {
			fmt.Fprintf(w, "  ... and %d more\n", len(r.Missing)-limit)
			break
		}
		fmt.Fprintf(w, "  %s: missing %s\n", label(m.Record.Title(), m.Record.Key()), strings.Join(m.Missing, ", "))
	}

	section(w, "Suspicious patterns", len(r.Suspicious))
	for i, s := range r.Suspicious {
		if limit > 0 && i == limit {
			fmt.Fprintf(w, "  ... and %d more\n", len(r.Suspicious)-limit)
			break
		}
		fmt.Fprintf(w, "  %s: %s\n", label(s.Record.Title(), s.Record.Key()), strings.Join(s.Flags, "; "))
	}
}

func section(w io.Writer, name string, n int) {
	fmt.Fprintf(w, "\n--- %s (%d) ---\n", name, n)
	if n == 0 {
		fmt.Fprintln(w, "  none found")
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func label(title, key string) string {
	if strings.TrimSpace(title) == "" {
		return "[" + key + "]"
	}
	if len(title) > 70 {
		return title[:67] + "..."
	}
	return title
}

// FormatJSON writes the report as indented JSON to w.
func FormatJSON(r Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// FormatYAML writes the report as YAML to w.
func FormatYAML(r Report, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}
