// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/vbauerster/mpb"
	"github.com/vbauerster/mpb/decor"

	"github.com/herrkrueger/epo.patlib2025-sub001/pkg/types"
)

// progressThreshold is the row count above which a streaming export
// shows a progress bar. Small exports finish before a bar would be
// worth drawing.
const progressThreshold = 1000

// exportBar wraps a progress bar over a row-streaming export; below
// the threshold every method is a no-op.
type exportBar struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

func newExportBar(name string, total int) *exportBar {
	if total < progressThreshold {
		return &exportBar{}
	}
	p := mpb.New(mpb.WithWidth(64))
	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(decor.Name(name)),
		mpb.PrependDecorators(decor.CountersNoUnit("%d/%d", decor.WCSyncSpace)),
		mpb.AppendDecorators(decor.AverageETA(decor.ET_STYLE_GO)),
		mpb.BarRemoveOnComplete())
	return &exportBar{p: p, bar: bar}
}

func (b *exportBar) incr(start time.Time) {
	if b.bar != nil {
		b.bar.IncrBy(1, time.Since(start))
	}
}

func (b *exportBar) wait() {
	if b.p != nil {
		b.p.Wait()
	}
}

// writeApplicationsCSV streams the applications table as CSV. Symbol
// and strategy lists are pipe-joined into single columns.
func writeApplicationsCSV(w io.Writer, apps []types.Application) error {
	cw := csv.NewWriter(w)
	header := []string{"appln_id", "family_id", "authority", "filing_year",
		"title", "abstract", "cpc_symbols", "strategies"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing applications header: %w", err)
	}

	bar := newExportBar("applications", len(apps))
	start := time.Now()
	for _, a := range apps {
		record := []string{
			strconv.FormatInt(a.ApplnID, 10),
			strconv.FormatInt(a.FamilyID, 10),
			a.Authority,
			strconv.Itoa(a.FilingYear),
			a.Title,
			a.Abstract,
			strings.Join(a.CPCSymbols, "|"),
			strings.Join(a.Strategies, "|"),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing application row: %w", err)
		}
		bar.incr(start)
	}
	bar.wait()

	cw.Flush()
	return cw.Error()
}

// writeCitationsCSV streams one citation direction as CSV.
func writeCitationsCSV(w io.Writer, name string, citations []types.Citation) error {
	cw := csv.NewWriter(w)
	header := []string{"citing_publn_id", "cited_publn_id", "cited_appln_id",
		"citn_origin", "citing_auth", "citing_year"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing %s header: %w", name, err)
	}

	bar := newExportBar(name, len(citations))
	start := time.Now()
	for _, c := range citations {
		record := []string{
			strconv.FormatInt(c.CitingPublnID, 10),
			strconv.FormatInt(c.CitedPublnID, 10),
			strconv.FormatInt(c.CitedApplnID, 10),
			c.Origin,
			c.CitingAuthority,
			strconv.Itoa(c.CitingYear),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing %s row: %w", name, err)
		}
		bar.incr(start)
	}
	bar.wait()

	cw.Flush()
	return cw.Error()
}

// writeCountriesCSV writes the country breakdown as CSV.
func writeCountriesCSV(w io.Writer, countries []types.CountryShare) error {
	cw := csv.NewWriter(w)
	header := []string{"country_code", "country_name", "region", "applications", "share"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing countries header: %w", err)
	}

	for _, c := range countries {
		record := []string{
			c.CountryCode,
			c.CountryName,
			c.Region,
			strconv.Itoa(c.Applications),
			strconv.FormatFloat(c.Share, 'f', 4, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing country row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
