// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pdiddy/bibcheck/internal/match"
)

// Removal describes a stored publication that the latest harvest no longer
// contains.
type Removal struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`

	// Merged is true when a current title is similar enough that the
	// removal is most likely a merge of two profile entries.
	Merged     bool    `json:"merged" yaml:"merged"`
	SimilarTo  string  `json:"similar_to,omitempty" yaml:"similar_to,omitempty"`
	Similarity float64 `json:"similarity,omitempty" yaml:"similarity,omitempty"`
}

// SyncSummary holds counts from a sync run.
type SyncSummary struct {
	Inserted int
	Skipped  int
	Untitled int
	Failed   int
	Removals []Removal
}

// Total returns the number of publications processed.
func (s SyncSummary) Total() int {
	return s.Inserted + s.Skipped + s.Untitled + s.Failed
}

// Sync makes the store mirror batch: new publications are inserted, known
// ones are left untouched, and rows missing from batch are deleted. Each
// deleted title is compared with the current titles; a match at or above
// removal marks it as merged. Progress lines are written to w.
func (s *Store) Sync(ctx context.Context, batch []Publication, removal float64, w io.Writer) (SyncSummary, error) {
	var summary SyncSummary
	seen := make(map[string]bool, len(batch))
	current := make([]string, 0, len(batch))

	for i, p := range batch {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		title := p.Title()
		if title == "" {
			slog.Warn("publication without title skipped", "position", i+1)
			summary.Untitled++
			continue
		}
		id := ID(title)
		seen[id] = true
		current = append(current, title)

		inserted, err := s.Insert(ctx, p)
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", title, err)
			summary.Failed++
			continue
		}
		if !inserted {
			fmt.Fprintf(w, "skipped  %s (already stored)\n", title)
			summary.Skipped++
			continue
		}
		fmt.Fprintf(w, "inserted %s\n", title)
		summary.Inserted++
	}

	stale, err := s.removeMissing(ctx, seen)
	if err != nil {
		return summary, err
	}
	for _, e := range stale {
		r := Removal{ID: e.ID, Title: e.Title}
		if best, ok := match.BestMatchAbove(e.Title, current, removal); ok {
			r.Merged = true
			r.SimilarTo = best.Text
			r.Similarity = best.Similarity
		}
		summary.Removals = append(summary.Removals, r)
	}

	if len(summary.Removals) > 0 {
		writeRemovals(w, summary.Removals)
	}
	return summary, nil
}

func writeRemovals(w io.Writer, removals []Removal) {
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(w, "\n%s\nPUBLICATIONS REMOVED FROM STORE\n%s\n", rule, rule)
	for _, r := range removals {
		fmt.Fprintf(w, "\nRemoved: %s\n  ID: %s\n", r.Title, r.ID)
		if r.Merged {
			fmt.Fprintf(w, "  Similar publication found (similarity: %.1f%%)\n", r.Similarity*100)
			fmt.Fprintf(w, "  Current: %s\n", r.SimilarTo)
			fmt.Fprintf(w, "  Likely merged into the current entry\n")
		} else {
			fmt.Fprintf(w, "  No similar publication found\n")
			fmt.Fprintf(w, "  Likely removed from the profile\n")
		}
	}
	fmt.Fprintf(w, "%s\n", rule)
}
