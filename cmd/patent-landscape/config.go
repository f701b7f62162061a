// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/herrkrueger/epo.patlib2025-sub001/internal/dataset"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/patstat"
	"github.com/herrkrueger/epo.patlib2025-sub001/internal/secrets"
	"github.com/herrkrueger/epo.patlib2025-sub001/pkg/types"
)

// secretsDir holds plain-file credential overrides next to the
// working directory.
const secretsDir = ".secrets/"

var validate = validator.New(validator.WithRequiredStructEnabled())

// databaseConfig resolves the database settings for commands that hit
// PATSTAT. The patstat-dsn secret overrides the configured DSN before
// validation, so credentials never need to live in the config file.
func databaseConfig() (types.DatabaseConfig, error) {
	db := cfg.Database

	dsn, err := secrets.DSN(secretsDir)
	if err != nil {
		return db, err
	}
	if dsn != "" {
		db.DSN = dsn
	}

	if err := validate.Struct(db); err != nil {
		return db, fmt.Errorf("database configuration: %w", err)
	}
	return db, nil
}

// openDatabase opens the configured PATSTAT connection.
func openDatabase(ctx context.Context) (*patstat.DB, error) {
	dbCfg, err := databaseConfig()
	if err != nil {
		return nil, err
	}
	return patstat.Open(ctx, dbCfg)
}

// loadDefinition resolves the landscape definition for a command: the
// --definition flag wins over the configured path, and the built-in
// default stands in when neither is set. The configured application
// cap applies when the definition itself does not set one.
func loadDefinition(cmd *cobra.Command) (dataset.Definition, error) {
	path, _ := cmd.Flags().GetString("definition")
	if path == "" {
		path = cfg.Dataset.Definition
	}

	var def dataset.Definition
	if path == "" {
		def = dataset.Default()
	} else {
		var err error
		def, err = dataset.ReadFile(path)
		if err != nil {
			return dataset.Definition{}, err
		}
	}

	if def.MaxResults == 0 && cfg.Dataset.MaxApplications > 0 {
		def.MaxResults = cfg.Dataset.MaxApplications
	}
	return def, nil
}
