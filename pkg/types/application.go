// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the patent-landscape
// pipeline. The stages (dataset build, citation enrichment, geographic
// enrichment, quality scoring, reporting) exchange these flat records;
// every stage keys rows by application id.
package types

// Search strategy labels recorded on Application.Strategies.
const (
	StrategyKeyword        = "keyword"
	StrategyClassification = "classification"
)

// Application is a single patent filing in the candidate dataset. Rows
// come from tls201_appln joined to the title, abstract, and CPC tables.
type Application struct {
	// ApplnID is the PATSTAT application identifier and the join key
	// for every downstream stage.
	ApplnID int64 `json:"appln_id" yaml:"appln_id"`

	// FamilyID is the DOCDB family the application belongs to.
	FamilyID int64 `json:"docdb_family_id" yaml:"docdb_family_id"`

	// Authority is the filing office country code (e.g. "EP", "US").
	Authority string `json:"appln_auth" yaml:"appln_auth"`

	// FilingYear is the year the application was filed.
	FilingYear int `json:"appln_filing_year" yaml:"appln_filing_year"`

	// Title is the application title, English where available.
	Title string `json:"title" yaml:"title"`

	// Abstract is the application abstract, possibly empty.
	Abstract string `json:"abstract" yaml:"abstract"`

	// CPCSymbols lists the CPC classification symbols attached to the
	// application.
	CPCSymbols []string `json:"cpc_symbols" yaml:"cpc_symbols"`

	// Strategies records which search strategies found the application,
	// in the order they matched.
	Strategies []string `json:"strategies" yaml:"strategies"`
}

// FoundBy reports whether the named strategy matched this application.
func (a *Application) FoundBy(strategy string) bool {
	for _, s := range a.Strategies {
		if s == strategy {
			return true
		}
	}
	return false
}

// Dataset is the deduplicated union of the search strategies.
type Dataset struct {
	// Definition is the name of the landscape definition that produced
	// the dataset.
	Definition string `json:"definition" yaml:"definition"`

	// Applications is the combined candidate set, ordered by
	// application id, one row per id.
	Applications []Application `json:"applications" yaml:"applications"`

	// KeywordHits is the number of applications the keyword strategy
	// found.
	KeywordHits int `json:"keyword_hits" yaml:"keyword_hits"`

	// ClassificationHits is the number of applications the
	// classification strategy found.
	ClassificationHits int `json:"classification_hits" yaml:"classification_hits"`

	// OverlapHits is the number of applications both strategies found.
	OverlapHits int `json:"overlap_hits" yaml:"overlap_hits"`
}

// ApplnIDs returns the application ids of the dataset in order.
func (d *Dataset) ApplnIDs() []int64 {
	ids := make([]int64, 0, len(d.Applications))
	for i := range d.Applications {
		ids = append(ids, d.Applications[i].ApplnID)
	}
	return ids
}
