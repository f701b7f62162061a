// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Citation is one edge in the citation graph touching the dataset.
// A forward row has the dataset on its cited side; a backward row has
// the dataset on its citing side.
type Citation struct {
	// CitingPublnID identifies the citing publication.
	CitingPublnID int64 `json:"citing_publn_id" yaml:"citing_publn_id"`

	// CitedPublnID identifies the cited publication. Zero when the
	// citation points at non-patent literature.
	CitedPublnID int64 `json:"cited_publn_id" yaml:"cited_publn_id"`

	// CitedApplnID identifies the application the cited publication
	// belongs to, when resolvable.
	CitedApplnID int64 `json:"cited_appln_id" yaml:"cited_appln_id"`

	// Origin is the citation origin code (SEA, APP, ISR, ...).
	Origin string `json:"citn_origin" yaml:"citn_origin"`

	// CitingAuthority is the publication authority of the citing side.
	CitingAuthority string `json:"citing_auth" yaml:"citing_auth"`

	// CitingYear is the publication year of the citing side.
	CitingYear int `json:"citing_year" yaml:"citing_year"`
}

// CitationSet holds the citation tables produced for a dataset.
type CitationSet struct {
	// Forward lists later publications citing the dataset.
	Forward []Citation `json:"forward" yaml:"forward"`

	// Backward lists prior art cited by the dataset.
	Backward []Citation `json:"backward" yaml:"backward"`
}
