// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/herrkrueger/epo.patlib2025-sub001/internal/logging"
	"github.com/herrkrueger/epo.patlib2025-sub001/pkg/types"
)

// Exporter writes run outputs under the export directory. Filenames
// follow <definition>_<table>_<timestamp>.<ext>; every file of one run
// shares the same timestamp.
type Exporter struct {
	// Dir is the export directory, created on first use.
	Dir string

	// Parquet additionally writes the applications table as Parquet.
	Parquet bool

	// Timestamp stamps filenames. The zero value locks in the current
	// time on first export.
	Timestamp time.Time
}

func (e *Exporter) prepare() error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return fmt.Errorf("creating export directory %s: %w", e.Dir, err)
	}
	return nil
}

func (e *Exporter) path(definition, table, ext string) string {
	stamp := e.Timestamp.Format("20060102_150405")
	return filepath.Join(e.Dir, fmt.Sprintf("%s_%s_%s.%s", slug(definition), table, stamp, ext))
}

// ExportDataset writes the applications CSV, plus Parquet when
// enabled, and returns the written paths.
func (e *Exporter) ExportDataset(ds *types.Dataset) ([]string, error) {
	if err := e.prepare(); err != nil {
		return nil, err
	}

	path := e.path(ds.Definition, "applications", "csv")
	if err := writeFile(path, func(f io.Writer) error {
		return writeApplicationsCSV(f, ds.Applications)
	}); err != nil {
		return nil, err
	}
	paths := []string{path}

	if e.Parquet {
		pqPath := e.path(ds.Definition, "applications", "parquet")
		if err := writeApplicationsParquet(pqPath, ds.Applications); err != nil {
			return nil, err
		}
		paths = append(paths, pqPath)
	}
	return paths, nil
}

// ExportCitations writes one CSV per citation direction and returns
// the written paths.
func (e *Exporter) ExportCitations(definition string, set *types.CitationSet) ([]string, error) {
	if err := e.prepare(); err != nil {
		return nil, err
	}

	forward := e.path(definition, "forward_citations", "csv")
	if err := writeFile(forward, func(f io.Writer) error {
		return writeCitationsCSV(f, "forward_citations", set.Forward)
	}); err != nil {
		return nil, err
	}

	backward := e.path(definition, "backward_citations", "csv")
	if err := writeFile(backward, func(f io.Writer) error {
		return writeCitationsCSV(f, "backward_citations", set.Backward)
	}); err != nil {
		return nil, err
	}

	return []string{forward, backward}, nil
}

// ExportCountries writes the country breakdown CSV and returns its
// path.
func (e *Exporter) ExportCountries(definition string, geo *types.GeoProfile) (string, error) {
	if err := e.prepare(); err != nil {
		return "", err
	}

	path := e.path(definition, "countries", "csv")
	if err := writeFile(path, func(f io.Writer) error {
		return writeCountriesCSV(f, geo.Countries)
	}); err != nil {
		return "", err
	}
	return path, nil
}

// ExportReport writes the business summary JSON and returns its path.
func (e *Exporter) ExportReport(r *types.BusinessReport) (string, error) {
	if err := e.prepare(); err != nil {
		return "", err
	}

	path := e.path(r.Definition, "report", "json")
	if err := writeFile(path, func(f io.Writer) error {
		return WriteJSON(r, f)
	}); err != nil {
		return "", err
	}
	return path, nil
}

// ExportAll writes every export for a run, prints each written path
// to w, and returns the full list.
func (e *Exporter) ExportAll(ds *types.Dataset, set *types.CitationSet, geo *types.GeoProfile, r *types.BusinessReport, w io.Writer) ([]string, error) {
	var paths []string

	datasetPaths, err := e.ExportDataset(ds)
	if err != nil {
		return nil, fmt.Errorf("exporting dataset: %w", err)
	}
	paths = append(paths, datasetPaths...)

	citationPaths, err := e.ExportCitations(ds.Definition, set)
	if err != nil {
		return nil, fmt.Errorf("exporting citations: %w", err)
	}
	paths = append(paths, citationPaths...)

	countriesPath, err := e.ExportCountries(ds.Definition, geo)
	if err != nil {
		return nil, fmt.Errorf("exporting countries: %w", err)
	}
	paths = append(paths, countriesPath)

	reportPath, err := e.ExportReport(r)
	if err != nil {
		return nil, fmt.Errorf("exporting report: %w", err)
	}
	paths = append(paths, reportPath)

	for _, path := range paths {
		fmt.Fprintf(w, "  wrote %s\n", path)
	}
	logging.Named("report").Info().
		Str("definition", ds.Definition).
		Int("files", len(paths)).
		Str("dir", e.Dir).
		Msg("exports written")

	return paths, nil
}

// writeFile creates path, hands it to write, and closes it, keeping
// the first error.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// slug normalizes a definition name for use in filenames.
func slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ', r == '/', r == '.':
			b.WriteRune('-')
		}
	}
	s := strings.Trim(b.String(), "-")
	if s == "" {
		return "landscape"
	}
	return s
}
