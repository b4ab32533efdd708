// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bibcheck/internal/evaluate"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <generated.bib> <ground-truth.bib>",
	Short: "Score a generated catalogue against the curated ground truth",
	Long: `Evaluate pairs each generated entry with the ground-truth entry whose
title is most similar, scores the pair on the fields the ground-truth entry's
publication kind requires, and prints a per-paper accuracy table with the
entries that only appear on one side.

Use --report-dir to also write the full result as evaluation-<id>.yaml.`,
	Args: cobra.ExactArgs(2),
	RunE: runEvaluate,
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	report, err := evaluate.Run(args[0], args[1], cfg.Thresholds)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		if err := evaluate.FormatJSON(report, os.Stdout); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}
	} else {
		evaluate.FormatSummary(report, os.Stdout)
		fmt.Fprintln(os.Stdout)
		evaluate.FormatTable(report, os.Stdout)
	}

	if cfg.Evaluate.ReportDir != "" {
		path, err := evaluate.WriteYAML(report, cfg.Evaluate.ReportDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", path)
	}
	return nil
}

func init() {
	evaluateCmd.Flags().Bool("json", false, "output the full result as JSON")
	evaluateCmd.Flags().String("report-dir", "", "directory for evaluation-<id>.yaml reports")
	bindFlags(evaluateCmd, map[string]string{"evaluate.report_dir": "report-dir"})

	rootCmd.AddCommand(evaluateCmd)
}
