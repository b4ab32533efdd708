// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bibcheck CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibcheck/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the bibcheck CLI.
var rootCmd = &cobra.Command{
	Use:   "bibcheck",
	Short: "Reconcile a harvested bibliography with a curated BibTeX catalogue",
	Long: `bibcheck maintains a personal bibliography. It stores publications
harvested from a scholar profile, converts them to BibTeX, evaluates the
generated entries against a hand-curated ground-truth catalogue, and flags
near-duplicate or suspicious records inside one catalogue.

Records are paired by title similarity and scored field by field against the
fields their publication kind requires (conference, journal or preprint).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine.
		_ = godotenv.Load()

		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./bibcheck.yaml or ~/.config/bibcheck/bibcheck.yaml)")
	pf.Bool("verbose", false, "log debug diagnostics")
	pf.String("store-dir", "_bibliography", "directory holding publications.db")
	pf.Float64("title-threshold", types.DefaultTitleMatch, "minimum title similarity to pair two records")
	pf.Float64("field-threshold", types.DefaultFieldMatch, "minimum field similarity to count a field as correct")
	pf.Float64("duplicate-title-threshold", types.DefaultDuplicateTitle, "minimum title similarity to flag a duplicate")
	pf.Float64("duplicate-author-threshold", types.DefaultDuplicateAuthor, "minimum author similarity to flag a duplicate")
	pf.Float64("removal-threshold", types.DefaultRemoval, "minimum similarity to report a removed publication as merged")

	bindFlags(rootCmd, map[string]string{
		"store.dir":                   "store-dir",
		"thresholds.title_match":      "title-threshold",
		"thresholds.field_match":      "field-threshold",
		"thresholds.duplicate_title":  "duplicate-title-threshold",
		"thresholds.duplicate_author": "duplicate-author-threshold",
		"thresholds.removal":          "removal-threshold",
	})
}

// bindFlags binds each config key to the named flag of cmd, looking in its
// local flags first and then its persistent flags. A missing flag is a
// programming error and panics with the flag name.
func bindFlags(cmd *cobra.Command, bindings map[string]string) {
	for key, name := range bindings {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.PersistentFlags().Lookup(name)
		}
		if flag == nil {
			panic(fmt.Sprintf("binding %s: flag --%s not defined", key, name))
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			panic(fmt.Sprintf("binding %s: %v", name, err))
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bibcheck")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bibcheck"))
		}
	}

	viper.SetEnvPrefix("BIBCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves flags, environment and config file into a Config.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	if err := cfg.Thresholds.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
