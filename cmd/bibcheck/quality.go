// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pdiddy/bibcheck/internal/bibtex"
	"github.com/pdiddy/bibcheck/internal/quality"
	"github.com/pdiddy/bibcheck/internal/store"
	"github.com/pdiddy/bibcheck/pkg/types"
)

var qualityCmd = &cobra.Command{
	Use:   "quality [catalogue.bib]",
	Short: "Flag near-duplicates and suspicious entries in one catalogue",
	Long: `Quality checks a single catalogue for near-duplicate titles and author
lists, entries missing title, author or year, and suspicious values such as
all-caps titles, missing venues, or years outside the expected range.

With a BibTeX file argument the file is checked; otherwise the harvested
publications in the store are checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuality,
}

func runQuality(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unsupported format %q: use text, json or yaml", format)
	}

	records, err := qualityRecords(cmd, args, cfg.Store)
	if err != nil {
		return err
	}

	opts := quality.Options{MinYear: cfg.Quality.MinYear}
	if noProgress, _ := cmd.Flags().GetBool("no-progress"); !noProgress && format == "text" {
		opts.Progress = progressReporter(os.Stderr)
	}
	report := quality.Run(records, cfg.Thresholds, opts)

	switch format {
	case "json":
		return quality.FormatJSON(report, os.Stdout)
	case "yaml":
		return quality.FormatYAML(report, os.Stdout)
	default:
		quality.FormatText(report, os.Stdout, cfg.Quality.ListLimit)
		return nil
	}
}

func qualityRecords(cmd *cobra.Command, args []string, storeCfg types.StoreConfig) ([]types.Record, error) {
	if len(args) == 1 {
		f, err := bibtex.ReadFile(args[0])
		if err != nil {
			return nil, err
		}
		return f.Records, nil
	}

	s, err := store.Open(storeCfg)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Records(cmd.Context())
}

// progressReporter returns a callback that draws one bar per check on w.
func progressReporter(w io.Writer) func(check string, done, total int) {
	var (
		bar     *progressbar.ProgressBar
		current string
	)
	return func(check string, done, total int) {
		if bar == nil || check != current {
			current = check
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("comparing "+check),
				progressbar.OptionSetWriter(w),
				progressbar.OptionShowCount(),
				progressbar.OptionSetRenderBlankState(true),
				progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
			)
		}
		if err := bar.Set(done); err != nil {
			slog.Debug("progress bar render failed", "check", check, "error", err)
		}
	}
}

func init() {
	qualityCmd.Flags().String("format", "text", "output format: text, json or yaml")
	qualityCmd.Flags().Int("min-year", quality.DefaultMinYear, "flag records published before this year")
	qualityCmd.Flags().Int("limit", quality.DefaultListSize, "maximum missing-field and suspicious entries listed; 0 lists all")
	qualityCmd.Flags().Bool("no-progress", false, "disable the progress bar")
	bindFlags(qualityCmd, map[string]string{
		"quality.min_year":   "min-year",
		"quality.list_limit": "limit",
	})

	rootCmd.AddCommand(qualityCmd)
}
