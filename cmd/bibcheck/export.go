// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bibcheck/internal/bibtex"
	"github.com/pdiddy/bibcheck/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <catalogue.bib>",
	Short: "Export a BibTeX catalogue as CSL-YAML",
	Long: `Export converts every entry of a catalogue to a CSL item so that Pandoc
and reference managers can cite it.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")

	f, err := bibtex.ReadFile(args[0])
	if err != nil {
		return err
	}

	if out == "" || out == "-" {
		return export.FormatCSL(f.Records, os.Stdout)
	}

	w, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	if err := export.FormatCSL(f.Records, w); err != nil {
		w.Close()
		return fmt.Errorf("writing %s: %w", out, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", out, err)
	}
	fmt.Fprintf(os.Stderr, "Exported %d entries to %s\n", len(f.Records), out)
	return nil
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}
