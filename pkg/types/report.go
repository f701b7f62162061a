// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// YearCount is one bucket of the filing-year distribution.
type YearCount struct {
	Year         int `json:"year" yaml:"year"`
	Applications int `json:"applications" yaml:"applications"`
}

// BusinessReport is the JSON summary written at the end of a report
// run and recorded in the run history.
type BusinessReport struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id" yaml:"run_id"`

	// GeneratedAt is the wall-clock time the report was produced.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// Definition is the landscape definition name.
	Definition string `json:"definition" yaml:"definition"`

	// Metrics is the full quality summary.
	Metrics QualityMetrics `json:"metrics" yaml:"metrics"`

	// Strategy hit counts from the dataset build.
	KeywordHits        int `json:"keyword_hits" yaml:"keyword_hits"`
	ClassificationHits int `json:"classification_hits" yaml:"classification_hits"`
	OverlapHits        int `json:"overlap_hits" yaml:"overlap_hits"`

	// FirstFilingYear and LastFilingYear bound the filing-year span;
	// both are zero for an empty dataset.
	FirstFilingYear int `json:"first_filing_year" yaml:"first_filing_year"`
	LastFilingYear  int `json:"last_filing_year" yaml:"last_filing_year"`

	// FilingYears is the applications-per-year distribution, ascending.
	FilingYears []YearCount `json:"filing_years" yaml:"filing_years"`

	// TopCountries lists the largest primary applicant countries,
	// descending by application count.
	TopCountries []CountryShare `json:"top_countries" yaml:"top_countries"`
}
