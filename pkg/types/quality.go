// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Quality rating labels derived from the total score.
const (
	RatingExcellent = "excellent"
	RatingGood      = "good"
	RatingFair      = "fair"
	RatingLimited   = "limited"
)

// QualityMetrics is the scalar summary the quality scorer produces.
// It is recomputed fully on every run and never persisted except as
// part of an exported report.
type QualityMetrics struct {
	// TotalApplications is the number of applications in the dataset.
	TotalApplications int `json:"total_applications" yaml:"total_applications"`

	// TotalFamilies is the number of distinct DOCDB families.
	TotalFamilies int `json:"total_families" yaml:"total_families"`

	// FamilyRatio is TotalFamilies divided by TotalApplications, or
	// zero for an empty dataset.
	FamilyRatio float64 `json:"family_ratio" yaml:"family_ratio"`

	// ForwardCitations is the number of forward citation rows.
	ForwardCitations int `json:"forward_citations" yaml:"forward_citations"`

	// BackwardCitations is the number of backward citation rows.
	BackwardCitations int `json:"backward_citations" yaml:"backward_citations"`

	// DistinctCountries is the number of distinct primary applicant
	// countries.
	DistinctCountries int `json:"distinct_countries" yaml:"distinct_countries"`

	// Per-dimension tier points.
	VolumePoints   int `json:"volume_points" yaml:"volume_points"`
	FamilyPoints   int `json:"family_points" yaml:"family_points"`
	ForwardPoints  int `json:"forward_points" yaml:"forward_points"`
	BackwardPoints int `json:"backward_points" yaml:"backward_points"`
	CountryPoints  int `json:"country_points" yaml:"country_points"`

	// Score is the summed tier points, clamped to [0, 100].
	Score int `json:"score" yaml:"score"`

	// Rating is the label derived from Score.
	Rating string `json:"rating" yaml:"rating"`
}
