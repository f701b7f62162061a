// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/herrkrueger/epo.patlib2025-sub001/internal/citation"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/dataset"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/geo"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/history"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/quality"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the full pipeline and export the business report",
	Long: `Report runs dataset construction, citation enrichment, geographic
enrichment, and quality scoring, then assembles the business report and
exports every table to the export directory: applications, forward and
backward citations, countries, and the report JSON. Unless history is
disabled the run is also recorded in the local run history.`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	def, err := loadDefinition(cmd)
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	ds, err := dataset.Build(ctx, db, def, os.Stdout)
	if err != nil {
		return err
	}

	citations, err := citation.Enrich(ctx, db, ds, os.Stdout)
	if err != nil {
		return err
	}

	profile, err := geo.Enrich(ctx, db, ds, os.Stdout)
	if err != nil {
		return err
	}

	metrics := quality.Score(ds, citations, profile)
	businessReport := report.Build(ds, metrics, profile)

	fmt.Fprintln(os.Stdout)
	report.FormatScorecard(metrics, os.Stdout)
	fmt.Fprintln(os.Stdout)
	report.FormatSummary(businessReport, os.Stdout)
	fmt.Fprintln(os.Stdout)

	exportDir, _ := cmd.Flags().GetString("export-dir")
	if exportDir == "" {
		exportDir = cfg.Export.Dir
	}
	parquet, _ := cmd.Flags().GetBool("parquet")

	exporter := &report.Exporter{Dir: exportDir, Parquet: cfg.Export.Parquet || parquet}
	if _, err := exporter.ExportAll(ds, citations, profile, businessReport, os.Stdout); err != nil {
		return err
	}

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if cfg.History.Disabled || noHistory {
		return nil
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Record(ctx, businessReport); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "  recorded run %s\n", businessReport.RunID)
	return nil
}

func init() {
	reportCmd.Flags().String("definition", "", "landscape definition YAML (default: built-in rare-earth-elements)")
	reportCmd.Flags().String("export-dir", "", "export directory (default: from configuration)")
	reportCmd.Flags().Bool("parquet", false, "also write the applications table as Parquet")
	reportCmd.Flags().Bool("no-history", false, "skip recording the run in the local history")

	rootCmd.AddCommand(reportCmd)
}
