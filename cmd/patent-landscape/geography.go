// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/herrkrueger/epo.patlib2025-sub001/internal/dataset"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/geo"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/report"
)

var geographyCmd = &cobra.Command{
	Use:   "geography",
	Short: "Resolve applicant countries and regional distribution",
	Long: `Geography builds the landscape dataset, loads its applicant records,
assigns one primary applicant per application, and aggregates filing
countries with their share of the dataset. Country names and regions
come from the PATSTAT country reference table.`,
	RunE: runGeography,
}

func runGeography(cmd *cobra.Command, args []string) error {
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

	profile, err := geo.Enrich(ctx, db, ds, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout)
	report.FormatCountries(profile, os.Stdout)

	export, _ := cmd.Flags().GetBool("export")
	if export {
		exporter := &report.Exporter{Dir: cfg.Export.Dir}
		path, err := exporter.ExportCountries(ds.Definition, profile)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "  wrote %s\n", path)
	}
	return nil
}

func init() {
	geographyCmd.Flags().String("definition", "", "landscape definition YAML (default: built-in rare-earth-elements)")
	geographyCmd.Flags().Bool("export", false, "write the country CSV to the export directory")

	rootCmd.AddCommand(geographyCmd)
}
