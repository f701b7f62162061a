// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package geo attaches applicant geography to a dataset: the applicant
// rows behind each application, the primary applicant per application,
// and the per-country breakdown over primary applicants.
package geo

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/herrkrueger/epo.patlib2025-sub001/internal/logging"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/patstat"
	"github.com/herrkrueger/epo.patlib2025-sub001/pkg/types"
)

// Enrich fetches the applicant rows for the dataset, assigns each
// application its primary applicant, and aggregates country shares.
// An empty dataset returns an empty profile without touching the
// database.
func Enrich(ctx context.Context, db *patstat.DB, ds *types.Dataset, w io.Writer) (*types.GeoProfile, error) {
	profile := &types.GeoProfile{Primary: make(map[int64]types.ApplicantGeo)}
	log := logging.Named("geo")

	ids := ds.ApplnIDs()
	if len(ids) == 0 {
		fmt.Fprintf(w, "Geographic enrichment skipped: empty dataset\n")
		return profile, nil
	}

	fmt.Fprintf(w, "Enriching geography for %d applications\n", len(ids))

	applicants, err := fetchApplicants(ctx, db, ids)
	if err != nil {
		return nil, fmt.Errorf("fetching applicants: %w", err)
	}
	profile.Applicants = applicants
	profile.Primary = assignPrimary(applicants)
	profile.Countries = countryShares(profile.Primary, len(ids))

	fmt.Fprintf(w, "  applicant rows:     %5d\n", len(applicants))
	fmt.Fprintf(w, "  primary applicants: %5d\n", len(profile.Primary))
	fmt.Fprintf(w, "  countries:          %5d\n", len(profile.Countries))

	log.Info().Str("definition", ds.Definition).
		Int("applicants", len(applicants)).
		Int("primary", len(profile.Primary)).
		Int("countries", len(profile.Countries)).
		Msg("geography enriched")

	return profile, nil
}

// applicantQuery reads the applicant rows for one chunk of application
// ids. Inventor-only person links carry applt_seq_nr zero and stay
// out. The country lookup is a left join so applicants without a
// country code survive with empty name and region.
func applicantQuery(ids []int64) (string, []any) {
	q := fmt.Sprintf(`SELECT pa.appln_id, pa.applt_seq_nr, pe.person_name,
       COALESCE(pe.person_ctry_code, '') AS ctry_code,
       COALESCE(co.st3_name, '') AS country_name,
       COALESCE(co.continent, '') AS region
FROM tls207_pers_appln pa
JOIN tls206_person pe ON pe.person_id = pa.person_id
LEFT JOIN tls801_country co ON co.ctry_code = pe.person_ctry_code
WHERE pa.appln_id IN (%s)
  AND pa.applt_seq_nr > 0
ORDER BY pa.appln_id, pa.applt_seq_nr`, patstat.Placeholders(1, len(ids)))
	return q, patstat.Int64Args(ids)
}

// fetchApplicants collects applicant rows across chunks.
func fetchApplicants(ctx context.Context, db *patstat.DB, applnIDs []int64) ([]types.ApplicantGeo, error) {
	var applicants []types.ApplicantGeo
	for _, chunk := range patstat.ChunkIDs(applnIDs, patstat.MaxInListSize) {
		query, args := applicantQuery(chunk)

		rows, err := db.Query(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var a types.ApplicantGeo
			if err := rows.Scan(&a.ApplnID, &a.SeqNr, &a.PersonName,
				&a.CountryCode, &a.CountryName, &a.Region); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning applicant row: %w", err)
			}
			applicants = append(applicants, a)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	return applicants, nil
}

// assignPrimary maps each application id to its sequence-number-one
// applicant. The first matching row wins, so an application never
// fans out to more than one primary even if the person link table
// carries duplicates.
func assignPrimary(applicants []types.ApplicantGeo) map[int64]types.ApplicantGeo {
	primary := make(map[int64]types.ApplicantGeo)
	for _, a := range applicants {
		if a.SeqNr != 1 {
			continue
		}
		if _, ok := primary[a.ApplnID]; ok {
			continue
		}
		primary[a.ApplnID] = a
	}
	return primary
}

// countryShares aggregates the primary applicants by country. Shares
// are fractions of the dataset's application count; applications whose
// primary applicant has no country code are left out of the table.
// The result is ordered by descending count, then country code.
func countryShares(primary map[int64]types.ApplicantGeo, total int) []types.CountryShare {
	if total == 0 {
		return nil
	}

	byCode := make(map[string]*types.CountryShare)
	for _, a := range primary {
		if a.CountryCode == "" {
			continue
		}
		share, ok := byCode[a.CountryCode]
		if !ok {
			share = &types.CountryShare{
				CountryCode: a.CountryCode,
				CountryName: a.CountryName,
				Region:      a.Region,
			}
			byCode[a.CountryCode] = share
		}
		share.Applications++
	}

	countries := make([]types.CountryShare, 0, len(byCode))
	for _, share := range byCode {
		share.Share = float64(share.Applications) / float64(total)
		countries = append(countries, *share)
	}
	sort.Slice(countries, func(i, j int) bool {
		if countries[i].Applications != countries[j].Applications {
			return countries[i].Applications > countries[j].Applications
		}
		return countries[i].CountryCode < countries[j].CountryCode
	})
	return countries
}
