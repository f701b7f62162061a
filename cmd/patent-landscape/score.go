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
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/quality"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/report"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score dataset quality across five dimensions",
	Long: `Score runs the full enrichment pipeline and grades the resulting
dataset on volume, family coverage, forward impact, backward grounding,
and geographic spread. The five dimensions sum to a 0-100 score with a
rating of excellent, good, fair, or limited.`,
	RunE: runScore,
}

func runScore(cmd *cobra.Command, args []string) error {
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

	fmt.Fprintln(os.Stdout)
	report.FormatScorecard(metrics, os.Stdout)
	return nil
}

func init() {
	scoreCmd.Flags().String("definition", "", "landscape definition YAML (default: built-in rare-earth-elements)")

	rootCmd.AddCommand(scoreCmd)
}
