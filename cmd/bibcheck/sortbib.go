// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bibcheck/internal/bibtex"
)

var sortbibCmd = &cobra.Command{
	Use:   "sortbib <catalogue.bib>",
	Short: "Order a BibTeX catalogue newest first",
	Long: `Sortbib rewrites a catalogue in reverse chronological order by year and
month. Entries without a year move to the end; entries with equal dates keep
their order. The front matter block is preserved.`,
	Args: cobra.ExactArgs(1),
	RunE: runSortbib,
}

func runSortbib(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = args[0]
	}

	f, err := bibtex.ReadFile(args[0])
	if err != nil {
		return err
	}
	bibtex.SortReverseChronological(f.Records)

	if out == "-" {
		return bibtex.Write(os.Stdout, f)
	}
	if err := bibtex.WriteFile(out, f); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Sorted %d entries into %s\n", len(f.Records), out)
	return nil
}

func init() {
	sortbibCmd.Flags().StringP("out", "o", "", "output file (default: rewrite the input, - for stdout)")

	rootCmd.AddCommand(sortbibCmd)
}
