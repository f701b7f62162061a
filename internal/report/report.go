// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders the outputs of a landscape run: console
// tables, the business summary, and CSV/JSON/Parquet exports under a
// timestamped exports layout.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/herrkrueger/epo.patlib2025-sub001/pkg/types"
)

// topCountryCount bounds the country list embedded in the business
// summary.
const topCountryCount = 10

// Build assembles the business summary for one run. Nil enrichments
// leave their sections empty, so a summary is available after any
// pipeline stage.
func Build(ds *types.Dataset, metrics types.QualityMetrics, geo *types.GeoProfile) *types.BusinessReport {
	r := &types.BusinessReport{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Metrics:     metrics,
	}

	if ds != nil {
		r.Definition = ds.Definition
		r.KeywordHits = ds.KeywordHits
		r.ClassificationHits = ds.ClassificationHits
		r.OverlapHits = ds.OverlapHits

		byYear := make(map[int]int)
		for _, a := range ds.Applications {
			if a.FilingYear == 0 {
				continue
			}
			byYear[a.FilingYear]++
			if r.FirstFilingYear == 0 || a.FilingYear < r.FirstFilingYear {
				r.FirstFilingYear = a.FilingYear
			}
			if a.FilingYear > r.LastFilingYear {
				r.LastFilingYear = a.FilingYear
			}
		}
		years := make([]int, 0, len(byYear))
		for year := range byYear {
			years = append(years, year)
		}
		sort.Ints(years)
		for _, year := range years {
			r.FilingYears = append(r.FilingYears, types.YearCount{Year: year, Applications: byYear[year]})
		}
	}

	if geo != nil {
		n := len(geo.Countries)
		if n > topCountryCount {
			n = topCountryCount
		}
		r.TopCountries = append([]types.CountryShare(nil), geo.Countries[:n]...)
	}

	return r
}

// FormatApplications writes the dataset as a human-readable table to w.
func FormatApplications(ds *types.Dataset, w io.Writer) {
	if ds == nil || len(ds.Applications) == 0 {
		fmt.Fprintln(w, "No applications found.")
		return
	}

	fmt.Fprintf(w, "%-10s  %-4s  %-4s  %-52s  %-10s  %s\n",
		"ApplnID", "Year", "Auth", "Title", "Family", "Found by")
	fmt.Fprintln(w, strings.Repeat("-", 104))

	for _, a := range ds.Applications {
		fmt.Fprintf(w, "%-10d  %-4d  %-4s  %-52s  %-10d  %s\n",
			a.ApplnID, a.FilingYear, a.Authority, truncate(a.Title, 52),
			a.FamilyID, strings.Join(a.Strategies, ","))
	}

	fmt.Fprintf(w, "\n%d applications (%d keyword, %d classification, %d both)\n",
		len(ds.Applications), ds.KeywordHits, ds.ClassificationHits, ds.OverlapHits)
}

// FormatCitations writes the citation counts and the per-origin
// breakdown to w.
func FormatCitations(set *types.CitationSet, w io.Writer) {
	if set == nil || (len(set.Forward) == 0 && len(set.Backward) == 0) {
		fmt.Fprintln(w, "No citations found.")
		return
	}

	fmt.Fprintf(w, "%-10s  %-6s  %s\n", "Direction", "Rows", "Origins")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintf(w, "%-10s  %-6d  %s\n", "forward", len(set.Forward), originSummary(set.Forward))
	fmt.Fprintf(w, "%-10s  %-6d  %s\n", "backward", len(set.Backward), originSummary(set.Backward))
}

// FormatCountries writes the country breakdown as a table to w.
func FormatCountries(geo *types.GeoProfile, w io.Writer) {
	if geo == nil || len(geo.Countries) == 0 {
		fmt.Fprintln(w, "No applicant countries found.")
		return
	}

	fmt.Fprintf(w, "%-7s  %-28s  %-14s  %-6s  %s\n",
		"Country", "Name", "Region", "Apps", "Share")
	fmt.Fprintln(w, strings.Repeat("-", 68))

	for _, c := range geo.Countries {
		fmt.Fprintf(w, "%-7s  %-28s  %-14s  %-6d  %5.1f%%\n",
			c.CountryCode, truncate(c.CountryName, 28), truncate(c.Region, 14),
			c.Applications, c.Share*100)
	}

	fmt.Fprintf(w, "\n%d countries, %d applicant rows\n",
		len(geo.Countries), len(geo.Applicants))
}

// FormatScorecard writes the quality scorecard as a table to w.
func FormatScorecard(m types.QualityMetrics, w io.Writer) {
	fmt.Fprintf(w, "%-22s  %-10s  %-6s  %s\n", "Dimension", "Value", "Points", "Max")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintf(w, "%-22s  %-10d  %-6d  %d\n", "Application volume", m.TotalApplications, m.VolumePoints, 30)
	fmt.Fprintf(w, "%-22s  %-10.2f  %-6d  %d\n", "Family ratio", m.FamilyRatio, m.FamilyPoints, 15)
	fmt.Fprintf(w, "%-22s  %-10d  %-6d  %d\n", "Forward citations", m.ForwardCitations, m.ForwardPoints, 25)
	fmt.Fprintf(w, "%-22s  %-10d  %-6d  %d\n", "Backward citations", m.BackwardCitations, m.BackwardPoints, 10)
	fmt.Fprintf(w, "%-22s  %-10d  %-6d  %d\n", "Distinct countries", m.DistinctCountries, m.CountryPoints, 20)
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintf(w, "Score: %d/100 (%s)\n", m.Score, m.Rating)
}

// FormatSummary writes the business summary to w.
func FormatSummary(r *types.BusinessReport, w io.Writer) {
	fmt.Fprintf(w, "Run %s generated %s\n", r.RunID, r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Definition: %s\n", r.Definition)
	fmt.Fprintf(w, "Applications: %d (%d families), filed %d-%d\n",
		r.Metrics.TotalApplications, r.Metrics.TotalFamilies,
		r.FirstFilingYear, r.LastFilingYear)
	fmt.Fprintf(w, "Strategies: %d keyword, %d classification, %d both\n",
		r.KeywordHits, r.ClassificationHits, r.OverlapHits)
	fmt.Fprintf(w, "Citations: %d forward, %d backward\n",
		r.Metrics.ForwardCitations, r.Metrics.BackwardCitations)
	if len(r.TopCountries) > 0 {
		codes := make([]string, len(r.TopCountries))
		for i, c := range r.TopCountries {
			codes[i] = fmt.Sprintf("%s %d", c.CountryCode, c.Applications)
		}
		fmt.Fprintf(w, "Top countries: %s\n", strings.Join(codes, ", "))
	}
	fmt.Fprintf(w, "Quality: %d/100 (%s)\n", r.Metrics.Score, r.Metrics.Rating)
}

// WriteJSON writes the business summary as indented JSON to w.
func WriteJSON(r *types.BusinessReport, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// originSummary aggregates citation rows by origin code, descending
// by count.
func originSummary(citations []types.Citation) string {
	counts := make(map[string]int)
	for _, c := range citations {
		origin := c.Origin
		if origin == "" {
			origin = "?"
		}
		counts[origin]++
	}
	origins := make([]string, 0, len(counts))
	for origin := range counts {
		origins = append(origins, origin)
	}
	sort.Slice(origins, func(i, j int) bool {
		if counts[origins[i]] != counts[origins[j]] {
			return counts[origins[i]] > counts[origins[j]]
		}
		return origins[i] < origins[j]
	})
	parts := make([]string, len(origins))
	for i, origin := range origins {
		parts[i] = fmt.Sprintf("%s:%d", origin, counts[origin])
	}
	return strings.Join(parts, " ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
