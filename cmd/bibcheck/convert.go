// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bibcheck/internal/bibtex"
	"github.com/pdiddy/bibcheck/internal/convert"
	"github.com/pdiddy/bibcheck/internal/store"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert stored publications to a BibTeX catalogue",
	Long: `Convert turns every stored publication into a BibTeX entry using fixed
rules: conference venues become inproceedings, arXiv venues become preprint
articles, and the citation key is built from the first author's last name,
the year and the leading title words.

The result is written with an empty front matter block so it can be
evaluated against the curated catalogue.`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")
	limit, _ := cmd.Flags().GetInt("limit")
	sorted, _ := cmd.Flags().GetBool("sort")

	s, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.All(cmd.Context())
	if err != nil {
		return err
	}
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	pubs := make([]store.Publication, len(entries))
	for i, e := range entries {
		pubs[i] = e.Publication
	}
	records := convert.ConvertAll(pubs)
	if sorted {
		bibtex.SortReverseChronological(records)
	}

	f := &bibtex.File{FrontMatter: "---\n---", Records: records}
	if out == "-" {
		return bibtex.Write(os.Stdout, f)
	}
	if err := bibtex.WriteFile(out, f); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Converted %d publications to %s\n", len(records), out)
	return nil
}

func init() {
	convertCmd.Flags().StringP("out", "o", "papers_generated_rules.bib", "output BibTeX file (- for stdout)")
	convertCmd.Flags().Int("limit", 0, "convert only the first N stored publications")
	convertCmd.Flags().Bool("sort", false, "order entries newest first")

	rootCmd.AddCommand(convertCmd)
}
