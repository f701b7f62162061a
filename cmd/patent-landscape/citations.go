// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/herrkrueger/epo.patlib2025-sub001/internal/citation"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/dataset"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/report"
)

var citationsCmd = &cobra.Command{
	Use:   "citations",
	Short: "Enrich the dataset with forward and backward citations",
	Long: `Citations builds the landscape dataset, resolves its publications, and
collects forward citations (later publications citing the dataset) and
backward citations (prior art the dataset cites). Both directions are
printed with a per-origin breakdown.`,
	RunE: runCitations,
}

func runCitations(cmd *cobra.Command, args []string) error {
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

	set, err := citation.Enrich(ctx, db, ds, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout)
	report.FormatCitations(set, os.Stdout)

	export, _ := cmd.Flags().GetBool("export")
	if export {
		exporter := &report.Exporter{Dir: cfg.Export.Dir}
		paths, err := exporter.ExportCitations(ds.Definition, set)
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
	citationsCmd.Flags().String("definition", "", "landscape definition YAML (default: built-in rare-earth-elements)")
	citationsCmd.Flags().Bool("export", false, "write forward and backward citation CSVs to the export directory")

	rootCmd.AddCommand(citationsCmd)
}
