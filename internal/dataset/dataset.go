// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset builds the candidate application set for a patent
// landscape. Two search strategies run independently, keyword matching
// over titles and abstracts and CPC classification prefix matching,
// and their results are unioned and deduplicated by application id.
// Each surviving row records which strategies found it.
package dataset

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/herrkrueger/epo.patlib2025-sub001/internal/logging"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/patstat"
	"github.com/herrkrueger/epo.patlib2025-sub001/pkg/types"
)

// Build runs both search strategies for def and combines the results
// into one dataset. If one strategy finds nothing the other stands
// alone; if both find nothing the dataset is empty and Build still
// returns nil error, with a warning on w.
func Build(ctx context.Context, db *patstat.DB, def Definition, w io.Writer) (*types.Dataset, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	log := logging.Named("dataset")

	fmt.Fprintf(w, "Building dataset %q\n", def.Name)

	var keyword []types.Application
	if len(def.Keywords) > 0 {
		query, args := keywordQuery(def)
		found, err := runSearch(ctx, db, query, args)
		if err != nil {
			return nil, fmt.Errorf("keyword search: %w", err)
		}
		keyword = found
	}
	fmt.Fprintf(w, "  keyword search:        %5d applications\n", len(keyword))

	var classification []types.Application
	if len(def.CPCPrefixes) > 0 {
		query, args := classificationQuery(def)
		found, err := runSearch(ctx, db, query, args)
		if err != nil {
			return nil, fmt.Errorf("classification search: %w", err)
		}
		classification = found
	}
	fmt.Fprintf(w, "  classification search: %5d applications\n", len(classification))

	ds := combine(def.Name, keyword, classification)

	if len(ds.Applications) == 0 {
		log.Warn().Str("definition", def.Name).Msg("no applications matched either strategy")
		fmt.Fprintf(w, "warning: no applications matched either strategy\n")
		return ds, nil
	}

	if err := attachCPCSymbols(ctx, db, ds); err != nil {
		return nil, fmt.Errorf("fetching cpc symbols: %w", err)
	}

	fmt.Fprintf(w, "  combined:              %5d applications (%d found by both)\n",
		len(ds.Applications), ds.OverlapHits)
	log.Info().Str("definition", def.Name).
		Int("keyword", ds.KeywordHits).
		Int("classification", ds.ClassificationHits).
		Int("combined", len(ds.Applications)).
		Msg("dataset built")

	return ds, nil
}

// runSearch executes one strategy query and scans the application rows.
func runSearch(ctx context.Context, db *patstat.DB, query string, args []any) ([]types.Application, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []types.Application
	for rows.Next() {
		var a types.Application
		if err := rows.Scan(&a.ApplnID, &a.Authority, &a.FilingYear, &a.FamilyID, &a.Title, &a.Abstract); err != nil {
			return nil, fmt.Errorf("scanning application row: %w", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return apps, nil
}

// combine unions the strategy results. A row found by both strategies
// appears once, tagged with both; ids never repeat and the combined
// count never exceeds the sum of the inputs.
func combine(definition string, keyword, classification []types.Application) *types.Dataset {
	seen := make(map[int64]int) // appln id → index in apps
	var apps []types.Application

	add := func(found []types.Application, strategy string) {
		for _, a := range found {
			if idx, ok := seen[a.ApplnID]; ok {
				if !apps[idx].FoundBy(strategy) {
					apps[idx].Strategies = append(apps[idx].Strategies, strategy)
				}
				continue
			}
			a.Strategies = []string{strategy}
			seen[a.ApplnID] = len(apps)
			apps = append(apps, a)
		}
	}
	add(keyword, types.StrategyKeyword)
	add(classification, types.StrategyClassification)

	sort.Slice(apps, func(i, j int) bool { return apps[i].ApplnID < apps[j].ApplnID })

	ds := &types.Dataset{Definition: definition, Applications: apps}
	for i := range apps {
		if apps[i].FoundBy(types.StrategyKeyword) {
			ds.KeywordHits++
		}
		if apps[i].FoundBy(types.StrategyClassification) {
			ds.ClassificationHits++
		}
		if len(apps[i].Strategies) > 1 {
			ds.OverlapHits++
		}
	}
	return ds
}

// attachCPCSymbols fills Application.CPCSymbols for every row, chunking
// the id list to keep IN lists bounded.
func attachCPCSymbols(ctx context.Context, db *patstat.DB, ds *types.Dataset) error {
	byID := make(map[int64]*types.Application, len(ds.Applications))
	for i := range ds.Applications {
		byID[ds.Applications[i].ApplnID] = &ds.Applications[i]
	}

	for _, chunk := range patstat.ChunkIDs(ds.ApplnIDs(), patstat.MaxInListSize) {
		query, args := cpcSymbolsQuery(chunk)
		rows, err := db.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		for rows.Next() {
			var id int64
			var symbol string
			if err := rows.Scan(&id, &symbol); err != nil {
				rows.Close()
				return fmt.Errorf("scanning cpc row: %w", err)
			}
			if app, ok := byID[id]; ok {
				app.CPCSymbols = append(app.CPCSymbols, symbol)
			}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()
	}
	return nil
}
