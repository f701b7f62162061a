// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/herrkrueger/epo.patlib2025-sub001/internal/history"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/report"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded report runs",
	Long: `Runs lists the report runs recorded in the local history, newest
first. Pass --show with a run id to print the stored business report as
JSON instead.`,
	RunE: runRuns,
}

func runRuns(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	show, _ := cmd.Flags().GetString("show")
	if show != "" {
		businessReport, err := store.Get(ctx, show)
		if err != nil {
			return err
		}
		return report.WriteJSON(businessReport, os.Stdout)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(ctx, limit)
	if err != nil {
		return err
	}

	history.FormatRuns(runs, os.Stdout)
	return nil
}

func init() {
	runsCmd.Flags().Int("limit", 20, "maximum number of runs to list (0 for all)")
	runsCmd.Flags().String("show", "", "print the stored report for the given run id as JSON")

	rootCmd.AddCommand(runsCmd)
}
