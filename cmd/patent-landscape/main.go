// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the patent-landscape CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/herrkrueger/epo.patlib2025-sub001/internal/logging"
	"github.com/herrkrueger/epo.patlib2025-sub001/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg holds the resolved configuration for the current invocation.
var cfg types.Config

// rootCmd is the base command for the patent-landscape CLI.
var rootCmd = &cobra.Command{
	Use:   "patent-landscape",
	Short: "Patent landscape analysis over a PATSTAT database",
	Long: `patent-landscape builds patent landscape datasets from a PATSTAT
database and enriches them with citation and geographic data.

Each pipeline stage is a subcommand: dataset, citations, geography,
score, and report. A landscape is described by a YAML definition file
(keywords, CPC class prefixes, filing-year range); a built-in
rare-earth-elements definition is used when none is given. Results
export as CSV, JSON, and optionally Parquet under the exports
directory, and every report run is recorded in a local history.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("parsing configuration: %w", err)
		}
		cfg.ApplyDefaults()
		logging.Init(cfg.Logging)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./patent-landscape.yaml or ~/.config/patent-landscape/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("patent-landscape")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "patent-landscape"))
		}
	}

	viper.SetEnvPrefix("PATENT_LANDSCAPE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
