// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/herrkrueger/epo.patlib2025-sub001/internal/dataset"
)

var definitionCmd = &cobra.Command{
	Use:   "definition",
	Short: "Manage landscape definitions (init, show)",
	Long: `Definition manages the YAML files that describe a landscape: its
keywords, CPC classification prefixes, filing-year window, and result
cap. Use init to seed a landscapes directory with the built-in default,
and show to print the definition a pipeline command would use.`,
}

// --- init subcommand ---

var definitionInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the built-in default definition as a YAML starting point",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDefinitionInit,
}

func runDefinitionInit(cmd *cobra.Command, args []string) error {
	def := dataset.Default()

	path := filepath.Join("landscapes", def.Name+".yaml")
	if len(args) > 0 {
		path = args[0]
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating definition directory: %w", err)
		}
	}
	if err := dataset.WriteFile(path, def); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "  wrote %s\n", path)
	return nil
}

// --- show subcommand ---

var definitionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved definition as YAML",
	RunE:  runDefinitionShow,
}

func runDefinitionShow(cmd *cobra.Command, args []string) error {
	def, err := loadDefinition(cmd)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(&def)
	if err != nil {
		return fmt.Errorf("marshaling definition: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}

func init() {
	definitionShowCmd.Flags().String("definition", "", "landscape definition YAML (default: built-in rare-earth-elements)")

	definitionCmd.AddCommand(definitionInitCmd)
	definitionCmd.AddCommand(definitionShowCmd)

	rootCmd.AddCommand(definitionCmd)
}
