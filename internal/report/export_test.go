// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"

	"github.com/herrkrueger/epo.patlib2025-sub001/pkg/types"
)

func TestExportAllWritesEveryTable(t *testing.T) {
	dir := t.TempDir()
	e := &Exporter{
		Dir:       dir,
		Parquet:   true,
		Timestamp: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	ds := sampleDataset()
	set := &types.CitationSet{
		Forward: []types.Citation{
			{CitingPublnID: 9201, CitedPublnID: 9101, CitedApplnID: 3001, Origin: "SEA", CitingAuthority: "US", CitingYear: 2021},
			{CitingPublnID: 9202, CitedPublnID: 9101, CitedApplnID: 3001, Origin: "APP", CitingAuthority: "CN", CitingYear: 2022},
		},
		Backward: []types.Citation{
			{CitingPublnID: 9101, CitedPublnID: 9301, CitedApplnID: 3201, Origin: "APP", CitingAuthority: "EP", CitingYear: 2019},
		},
	}
	geo := sampleGeo()
	r := Build(ds, types.QualityMetrics{Score: 25, Rating: types.RatingLimited}, geo)

	var buf bytes.Buffer
	paths, err := e.ExportAll(ds, set, geo, r, &buf)
	if err != nil {
		t.Fatalf("ExportAll: %v", err)
	}

	// applications csv + parquet, two citation tables, countries,
	// report json.
	if len(paths) != 6 {
		t.Fatalf("paths = %d, want 6:\n%s", len(paths), strings.Join(paths, "\n"))
	}
	for _, p := range paths {
		if !strings.Contains(filepath.Base(p), "rare-earth-elements_") {
			t.Errorf("path %s missing definition prefix", p)
		}
		if !strings.Contains(p, "20260314_093000") {
			t.Errorf("path %s missing shared run timestamp", p)
		}
		if _, err := os.Stat(p); err != nil {
			t.Errorf("export missing on disk: %v", err)
		}
		if !strings.Contains(buf.String(), p) {
			t.Errorf("written path %s not reported to the writer", p)
		}
	}

	rows := readCSV(t, paths[0])
	if len(rows) != len(ds.Applications)+1 {
		t.Errorf("applications csv rows = %d, want %d", len(rows), len(ds.Applications)+1)
	}
	if rows[0][0] != "appln_id" {
		t.Errorf("applications header = %v", rows[0])
	}
	if rows[1][6] != "C22B  59/00|H01F   1/057" {
		t.Errorf("cpc column = %q, want pipe-joined symbols", rows[1][6])
	}

	forward := readCSV(t, paths[2])
	if len(forward) != len(set.Forward)+1 {
		t.Errorf("forward csv rows = %d, want %d", len(forward), len(set.Forward)+1)
	}
	backward := readCSV(t, paths[3])
	if len(backward) != len(set.Backward)+1 {
		t.Errorf("backward csv rows = %d, want %d", len(backward), len(set.Backward)+1)
	}

	countries := readCSV(t, paths[4])
	if len(countries) != len(geo.Countries)+1 {
		t.Errorf("countries csv rows = %d, want %d", len(countries), len(geo.Countries)+1)
	}

	data, err := os.ReadFile(paths[5])
	if err != nil {
		t.Fatalf("reading report json: %v", err)
	}
	var got types.BusinessReport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("parsing report json: %v", err)
	}
	if got.RunID != r.RunID {
		t.Errorf("report RunID = %q, want %q", got.RunID, r.RunID)
	}
	if got.Metrics.Score != 25 {
		t.Errorf("report score = %d, want 25", got.Metrics.Score)
	}
}

func TestExportDatasetWithoutParquet(t *testing.T) {
	e := &Exporter{Dir: t.TempDir()}
	ds := &types.Dataset{Definition: "empty"}

	paths, err := e.ExportDataset(ds)
	if err != nil {
		t.Fatalf("ExportDataset: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("paths = %v, want the csv only", paths)
	}
	rows := readCSV(t, paths[0])
	if len(rows) != 1 {
		t.Errorf("empty dataset csv rows = %d, want header only", len(rows))
	}
}

func TestParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "applications.parquet")
	apps := sampleDataset().Applications

	if err := writeApplicationsParquet(path, apps); err != nil {
		t.Fatalf("writeApplicationsParquet: %v", err)
	}

	rdr, err := file.OpenParquetFile(path, true)
	if err != nil {
		t.Fatalf("opening parquet file: %v", err)
	}
	defer rdr.Close()

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
	if err != nil {
		t.Fatalf("creating pqarrow reader: %v", err)
	}
	tbl, err := fr.ReadTable(context.Background())
	if err != nil {
		t.Fatalf("reading parquet table: %v", err)
	}
	defer tbl.Release()

	if tbl.NumRows() != int64(len(apps)) {
		t.Errorf("parquet rows = %d, want %d", tbl.NumRows(), len(apps))
	}
	if int(tbl.NumCols()) != len(ApplicationsSchema.Fields()) {
		t.Errorf("parquet cols = %d, want %d", tbl.NumCols(), len(ApplicationsSchema.Fields()))
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parsing %s: %v", path, err)
	}
	return rows
}
