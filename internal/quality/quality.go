// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quality scores a landscape dataset on a fixed 0-100 rubric.
//
// Five dimensions contribute tiered points:
//
//	application volume   max 30  (>=1000:30 >=500:25 >=100:20 >=50:15 >=10:10 >=1:5)
//	family ratio         max 15  (>=0.8:15 >=0.6:12 >=0.4:8 >=0.2:5 >0:2)
//	forward citations    max 25  (>=500:25 >=200:20 >=50:15 >=10:10 >=1:5)
//	backward citations   max 10  (>=200:10 >=50:8 >=10:5 >=1:3)
//	distinct countries   max 20  (>=20:20 >=10:15 >=5:10 >=2:5 >=1:2)
//
// The summed score is clamped to [0, 100] and labeled excellent (>=80),
// good (>=60), fair (>=40), or limited. Each dimension is monotone:
// more applications, citations, countries, or a higher family ratio
// never lowers the score.
package quality

import (
	"github.com/herrkrueger/epo.patlib2025-sub001/pkg/types"
)

// Score computes the quality metrics for a dataset and its
// enrichments. Nil enrichments count as zero, so a score is available
// after any pipeline stage.
func Score(ds *types.Dataset, citations *types.CitationSet, geo *types.GeoProfile) types.QualityMetrics {
	var m types.QualityMetrics

	if ds != nil {
		m.TotalApplications = len(ds.Applications)
		m.TotalFamilies = countFamilies(ds.Applications)
	}
	if m.TotalApplications > 0 {
		m.FamilyRatio = float64(m.TotalFamilies) / float64(m.TotalApplications)
	}
	if citations != nil {
		m.ForwardCitations = len(citations.Forward)
		m.BackwardCitations = len(citations.Backward)
	}
	if geo != nil {
		m.DistinctCountries = len(geo.Countries)
	}

	m.VolumePoints = volumePoints(m.TotalApplications)
	m.FamilyPoints = familyPoints(m.FamilyRatio)
	m.ForwardPoints = forwardPoints(m.ForwardCitations)
	m.BackwardPoints = backwardPoints(m.BackwardCitations)
	m.CountryPoints = countryPoints(m.DistinctCountries)

	m.Score = clamp(m.VolumePoints + m.FamilyPoints + m.ForwardPoints +
		m.BackwardPoints + m.CountryPoints)
	m.Rating = Rating(m.Score)

	return m
}

// Rating maps a score to its label.
func Rating(score int) string {
	switch {
	case score >= 80:
		return types.RatingExcellent
	case score >= 60:
		return types.RatingGood
	case score >= 40:
		return types.RatingFair
	default:
		return types.RatingLimited
	}
}

func countFamilies(applications []types.Application) int {
	families := make(map[int64]bool)
	for _, a := range applications {
		families[a.FamilyID] = true
	}
	return len(families)
}

func volumePoints(applications int) int {
	switch {
	case applications >= 1000:
		return 30
	case applications >= 500:
		return 25
	case applications >= 100:
		return 20
	case applications >= 50:
		return 15
	case applications >= 10:
		return 10
	case applications >= 1:
		return 5
	default:
		return 0
	}
}

func familyPoints(ratio float64) int {
	switch {
	case ratio >= 0.8:
		return 15
	case ratio >= 0.6:
		return 12
	case ratio >= 0.4:
		return 8
	case ratio >= 0.2:
		return 5
	case ratio > 0:
		return 2
	default:
		return 0
	}
}

func forwardPoints(citations int) int {
	switch {
	case citations >= 500:
		return 25
	case citations >= 200:
		return 20
	case citations >= 50:
		return 15
	case citations >= 10:
		return 10
	case citations >= 1:
		return 5
	default:
		return 0
	}
}

func backwardPoints(citations int) int {
	switch {
	case citations >= 200:
		return 10
	case citations >= 50:
		return 8
	case citations >= 10:
		return 5
	case citations >= 1:
		return 3
	default:
		return 0
	}
}

func countryPoints(countries int) int {
	switch {
	case countries >= 20:
		return 20
	case countries >= 10:
		return 15
	case countries >= 5:
		return 10
	case countries >= 2:
		return 5
	case countries >= 1:
		return 2
	default:
		return 0
	}
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
