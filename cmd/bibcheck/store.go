// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bibcheck/internal/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the store of harvested publications",
	Long: `Store keeps the publications harvested from a scholar profile in a SQLite
database keyed by a hash of their title. Use subcommands to import a harvest,
list the stored publications, or mark one as validated.`,
}

// --- import subcommand ---

var storeImportCmd = &cobra.Command{
	Use:   "import <publications.json>",
	Short: "Synchronise the store with a harvested publication list",
	Long: `Import reads a JSON export of publications ("-" reads stdin), inserts
the ones not yet stored, and removes stored publications that are no longer
in the harvest. Each removal is reported as either merged into a similar
current publication or dropped from the profile.`,
	Args: cobra.ExactArgs(1),
	RunE: runStoreImport,
}

func runStoreImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pubs, err := readPublications(args[0])
	if err != nil {
		return err
	}

	s, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.Sync(cmd.Context(), pubs, cfg.Thresholds.Removal, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\n%d publications: %d inserted, %d skipped, %d removed\n",
		summary.Total(), summary.Inserted, summary.Skipped, len(summary.Removals))
	if summary.Failed > 0 {
		return fmt.Errorf("%d publication(s) failed to store", summary.Failed)
	}
	return nil
}

func readPublications(path string) ([]store.Publication, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	return store.LoadPublications(r)
}

// --- list subcommand ---

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored publications",
	RunE:  runStoreList,
}

func runStoreList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	find, _ := cmd.Flags().GetString("find")
	entries, err := s.Find(cmd.Context(), find)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatStoreList(entries, jsonOutput, os.Stdout)
}

func formatStoreList(entries []store.Entry, jsonOutput bool, w io.Writer) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No publications stored.")
		return nil
	}

	fmt.Fprintf(w, "%-32s  %-10s  %-3s  %s\n", "ID", "Added", "OK", "Title")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, e := range entries {
		ok := ""
		if e.Validated {
			ok = "yes"
		}
		title := e.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		fmt.Fprintf(w, "%-32s  %-10s  %-3s  %s\n", e.ID, e.DateAdded, ok, title)
	}
	fmt.Fprintf(w, "\n%d publications\n", len(entries))
	return nil
}

// --- validate subcommand ---

var storeValidateCmd = &cobra.Command{
	Use:   "validate <id>...",
	Short: "Mark stored publications as checked against the catalogue",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStoreValidate,
}

func runStoreValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	unset, _ := cmd.Flags().GetBool("unset")
	for _, id := range args {
		if err := s.SetValidated(cmd.Context(), id, !unset); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	storeListCmd.Flags().Bool("json", false, "output entries as JSON")
	storeListCmd.Flags().String("find", "", "list only titles fuzzily matching this text")
	storeValidateCmd.Flags().Bool("unset", false, "clear the validated mark instead")

	storeCmd.AddCommand(storeImportCmd)
	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeValidateCmd)
	rootCmd.AddCommand(storeCmd)
}
