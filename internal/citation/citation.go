// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation enriches a dataset with forward and backward
// citation tables. Applications resolve to their publications first;
// forward rows are later publications citing those, backward rows are
// the prior art those publications cite.
package citation

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/herrkrueger/epo.patlib2025-sub001/internal/logging"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/patstat"
	"github.com/herrkrueger/epo.patlib2025-sub001/pkg/types"
)

// Enrich fetches both citation directions for the dataset. An empty
// application list returns empty tables without touching the database;
// a dataset whose applications have no publications returns empty
// tables without issuing the citation queries.
func Enrich(ctx context.Context, db *patstat.DB, ds *types.Dataset, w io.Writer) (*types.CitationSet, error) {
	set := &types.CitationSet{}
	log := logging.Named("citation")

	ids := ds.ApplnIDs()
	if len(ids) == 0 {
		fmt.Fprintf(w, "Citation enrichment skipped: empty dataset\n")
		return set, nil
	}

	fmt.Fprintf(w, "Enriching citations for %d applications\n", len(ids))

	publnIDs, err := publicationIDs(ctx, db, ids)
	if err != nil {
		return nil, fmt.Errorf("resolving publications: %w", err)
	}
	if len(publnIDs) == 0 {
		log.Warn().Str("definition", ds.Definition).Msg("dataset has no publications")
		fmt.Fprintf(w, "warning: no publications found, citation tables are empty\n")
		return set, nil
	}
	fmt.Fprintf(w, "  publications:       %5d\n", len(publnIDs))

	forward, err := fetchCitations(ctx, db, "cited_pat_publn_id", publnIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching forward citations: %w", err)
	}
	set.Forward = forward
	fmt.Fprintf(w, "  forward citations:  %5d\n", len(forward))

	backward, err := fetchCitations(ctx, db, "pat_publn_id", publnIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching backward citations: %w", err)
	}
	set.Backward = backward
	fmt.Fprintf(w, "  backward citations: %5d\n", len(backward))

	log.Info().Str("definition", ds.Definition).
		Int("publications", len(publnIDs)).
		Int("forward", len(forward)).
		Int("backward", len(backward)).
		Msg("citations enriched")

	return set, nil
}

// publicationQuery resolves publications for one chunk of application
// ids.
func publicationQuery(ids []int64) (string, []any) {
	q := fmt.Sprintf(`SELECT pat_publn_id
FROM tls211_pat_publn
WHERE appln_id IN (%s)
ORDER BY pat_publn_id`, patstat.Placeholders(1, len(ids)))
	return q, patstat.Int64Args(ids)
}

// citationQuery reads citation rows where matchColumn falls in one
// chunk of publication ids: cited_pat_publn_id selects the forward
// direction, pat_publn_id the backward one. The citing publication is
// joined for its authority and date.
func citationQuery(matchColumn string, ids []int64) (string, []any) {
	q := fmt.Sprintf(`SELECT c.pat_publn_id, c.cited_pat_publn_id, c.cited_appln_id,
       COALESCE(c.citn_origin, '') AS citn_origin,
       p.publn_auth,
       COALESCE(CAST(p.publn_date AS VARCHAR(10)), '') AS publn_date
FROM tls212_citation c
JOIN tls211_pat_publn p ON p.pat_publn_id = c.pat_publn_id
WHERE c.%s IN (%s)
ORDER BY c.pat_publn_id, c.cited_pat_publn_id`, matchColumn, patstat.Placeholders(1, len(ids)))
	return q, patstat.Int64Args(ids)
}

// publicationIDs resolves the publications belonging to the dataset,
// chunked to keep IN lists bounded.
func publicationIDs(ctx context.Context, db *patstat.DB, applnIDs []int64) ([]int64, error) {
	var publnIDs []int64
	for _, chunk := range patstat.ChunkIDs(applnIDs, patstat.MaxInListSize) {
		query, args := publicationQuery(chunk)

		rows, err := db.Query(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning publication id: %w", err)
			}
			publnIDs = append(publnIDs, id)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	return publnIDs, nil
}

// fetchCitations collects one citation direction across chunks.
func fetchCitations(ctx context.Context, db *patstat.DB, matchColumn string, publnIDs []int64) ([]types.Citation, error) {
	var citations []types.Citation
	for _, chunk := range patstat.ChunkIDs(publnIDs, patstat.MaxInListSize) {
		query, args := citationQuery(matchColumn, chunk)

		rows, err := db.Query(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var c types.Citation
			var date string
			if err := rows.Scan(&c.CitingPublnID, &c.CitedPublnID, &c.CitedApplnID,
				&c.Origin, &c.CitingAuthority, &date); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning citation row: %w", err)
			}
			c.CitingYear = yearOf(date)
			citations = append(citations, c)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	return citations, nil
}

// yearOf extracts the year from an ISO date string, zero when absent.
func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
