//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Selftest builds the CLI and runs every pipeline check against the
// bundled SQLite fixture.
func Selftest() error {
	if err := Build(); err != nil {
		return err
	}
	return runBinary("selftest")
}

// Report builds the CLI and runs the full pipeline with exports,
// using the configured landscape definition.
func Report() error {
	if err := Build(); err != nil {
		return err
	}
	return runBinary("report")
}

// runBinary executes the built CLI with the given arguments.
func runBinary(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", binName, strings.Join(args, " "), err)
	}
	return nil
}
