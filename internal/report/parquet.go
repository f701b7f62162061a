// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"compress/gzip"
	"fmt"
	"os"
	"strings"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	"github.com/apache/arrow/go/v18/parquet/compress"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"

	"github.com/herrkrueger/epo.patlib2025-sub001/pkg/types"
)

// parquetBatchRows is the record length the parquet writer flushes at.
const parquetBatchRows = 4096

// ApplicationsSchema mirrors the applications CSV columns. List-typed
// columns are pipe-joined strings so the file stays flat.
var ApplicationsSchema = arrow.NewSchema([]arrow.Field{
	{Name: "appln_id", Type: arrow.PrimitiveTypes.Int64,
		Metadata: arrow.MetadataFrom(map[string]string{"comment": "PATSTAT application id"})},
	{Name: "family_id", Type: arrow.PrimitiveTypes.Int64,
		Metadata: arrow.MetadataFrom(map[string]string{"comment": "DOCDB family id"})},
	{Name: "authority", Type: arrow.BinaryTypes.String},
	{Name: "filing_year", Type: arrow.PrimitiveTypes.Int32},
	{Name: "title", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "abstract", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "cpc_symbols", Type: arrow.BinaryTypes.String,
		Metadata: arrow.MetadataFrom(map[string]string{"comment": "pipe-joined CPC symbols"})},
	{Name: "strategies", Type: arrow.BinaryTypes.String,
		Metadata: arrow.MetadataFrom(map[string]string{"comment": "pipe-joined search strategies"})},
}, nil)

// writeApplicationsParquet writes the applications table as a
// gzip-compressed Parquet file at path.
func writeApplicationsParquet(path string, apps []types.Application) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating parquet file: %w", err)
	}
	// Don't close f; the parquet writer owns it.
	w, err := pqarrow.NewFileWriter(
		ApplicationsSchema,
		f,
		parquet.NewWriterProperties(
			parquet.WithCompression(compress.Codecs.Gzip),
			parquet.WithCompressionLevel(gzip.BestCompression)),
		pqarrow.DefaultWriterProps(),
	)
	if err != nil {
		return fmt.Errorf("creating parquet writer: %w", err)
	}

	b := array.NewRecordBuilder(memory.NewGoAllocator(), ApplicationsSchema)
	defer b.Release()

	fields := b.Fields()
	applnID := fields[0].(*array.Int64Builder)
	familyID := fields[1].(*array.Int64Builder)
	authority := fields[2].(*array.StringBuilder)
	filingYear := fields[3].(*array.Int32Builder)
	title := fields[4].(*array.StringBuilder)
	abstract := fields[5].(*array.StringBuilder)
	cpcSymbols := fields[6].(*array.StringBuilder)
	strategies := fields[7].(*array.StringBuilder)

	flush := func() error {
		record := b.NewRecord()
		defer record.Release()
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing parquet record: %w", err)
		}
		return nil
	}

	for _, a := range apps {
		applnID.Append(a.ApplnID)
		familyID.Append(a.FamilyID)
		authority.Append(a.Authority)
		filingYear.Append(int32(a.FilingYear))
		if a.Title == "" {
			title.AppendNull()
		} else {
			title.Append(a.Title)
		}
		if a.Abstract == "" {
			abstract.AppendNull()
		} else {
			abstract.Append(a.Abstract)
		}
		cpcSymbols.Append(strings.Join(a.CPCSymbols, "|"))
		strategies.Append(strings.Join(a.Strategies, "|"))

		if applnID.Len() >= parquetBatchRows {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if applnID.Len() > 0 {
		if err := flush(); err != nil {
			return err
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("closing parquet writer: %w", err)
	}
	return nil
}
