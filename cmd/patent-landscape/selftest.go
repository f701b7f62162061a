// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/herrkrueger/epo.patlib2025-sub001/internal/selftest"
)

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Run the pipeline against a bundled SQLite fixture",
	Long: `Selftest builds a small PATSTAT extract in a temporary SQLite database
and runs every pipeline stage against it, checking the results against
known answers. No PATSTAT connection or configuration is needed. Use
--stage to run a single check: ` + strings.Join(selftest.StageNames(), ", ") + `.`,
	RunE: runSelftest,
}

func runSelftest(cmd *cobra.Command, args []string) error {
	stage, _ := cmd.Flags().GetString("stage")
	return selftest.Run(context.Background(), stage, os.Stdout)
}

func init() {
	selftestCmd.Flags().String("stage", "", "run a single check instead of all of them")

	rootCmd.AddCommand(selftestCmd)
}
