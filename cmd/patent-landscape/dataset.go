// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/herrkrueger/epo.patlib2025-sub001/internal/dataset"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/report"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Build the landscape dataset from keyword and classification searches",
	Long: `Dataset runs the keyword and CPC classification searches described by
the landscape definition, combines the results into one deduplicated
candidate set, and prints it as a table. Each application records which
strategy found it; an application found by both counts toward the
overlap.`,
	RunE: runDataset,
}

func runDataset(cmd *cobra.Command, args []string) error {
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

	fmt.Fprintln(os.Stdout)
	report.FormatApplications(ds, os.Stdout)

	export, _ := cmd.Flags().GetBool("export")
	parquet, _ := cmd.Flags().GetBool("parquet")
	if export || parquet {
		exporter := &report.Exporter{Dir: cfg.Export.Dir, Parquet: cfg.Export.Parquet || parquet}
		paths, err := exporter.ExportDataset(ds)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(os.Stdout, "  wrote %s\n", p)
		}
	}
	return nil
}

func init() {
	datasetCmd.Flags().String("definition", "", "landscape definition YAML (default: built-in rare-earth-elements)")
	datasetCmd.Flags().Bool("export", false, "write the applications CSV to the export directory")
	datasetCmd.Flags().Bool("parquet", false, "also write the applications table as Parquet (implies --export)")

	rootCmd.AddCommand(datasetCmd)
}
