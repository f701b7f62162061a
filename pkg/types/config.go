// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DatabaseConfig holds the connection settings for the patent database.
type DatabaseConfig struct {
	// Driver selects the database driver: "pgx" for a remote PATSTAT
	// instance on PostgreSQL, "sqlite3" for a local PATSTAT extract.
	Driver string `json:"driver" yaml:"driver" mapstructure:"driver" validate:"required,oneof=pgx sqlite3"`

	// DSN is the data source name: a postgres:// URL for pgx, a file
	// path for sqlite3. May be overridden by the patstat-dsn secret.
	DSN string `json:"dsn" yaml:"dsn" mapstructure:"dsn" validate:"required"`

	// MaxOpenConns caps the connection pool (default 4; sqlite3 uses 1).
	MaxOpenConns int `json:"max_open_conns" yaml:"max_open_conns" mapstructure:"max_open_conns" validate:"gte=0"`

	// ConnectTimeout bounds the initial connectivity check (default 10s).
	ConnectTimeout time.Duration `json:"connect_timeout" yaml:"connect_timeout" mapstructure:"connect_timeout"`

	// SlowQuery is the duration above which a query is logged as slow
	// (default 2s; zero disables the warning).
	SlowQuery time.Duration `json:"slow_query" yaml:"slow_query" mapstructure:"slow_query"`
}

// DatasetConfig holds settings for the dataset-building stage.
type DatasetConfig struct {
	// Definition is the path to the landscape definition YAML file.
	// Empty selects the built-in rare-earth-elements definition.
	Definition string `json:"definition" yaml:"definition" mapstructure:"definition"`

	// MaxApplications caps the candidate set per search strategy.
	// Zero means no cap.
	MaxApplications int `json:"max_applications" yaml:"max_applications" mapstructure:"max_applications" validate:"gte=0"`
}

// ExportConfig holds settings for report and dataset exports.
type ExportConfig struct {
	// Dir is the directory export files are written to (default "exports").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Parquet additionally writes the applications table as Parquet.
	Parquet bool `json:"parquet" yaml:"parquet" mapstructure:"parquet"`
}

// HistoryConfig holds settings for the local run-history store.
type HistoryConfig struct {
	// Path is the SQLite file run summaries are recorded in
	// (default "exports/history.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// Disabled turns run recording off.
	Disabled bool `json:"disabled" yaml:"disabled" mapstructure:"disabled"`
}

// LoggingConfig holds settings for diagnostic logging.
type LoggingConfig struct {
	// Level is the minimum level: trace, debug, info, warn, or error
	// (default "info").
	Level string `json:"level" yaml:"level" mapstructure:"level" validate:"omitempty,oneof=trace debug info warn error"`

	// Format selects "console" or "json" output (default "console").
	Format string `json:"format" yaml:"format" mapstructure:"format" validate:"omitempty,oneof=console json"`
}

// Config groups all settings for the pipeline.
type Config struct {
	Database DatabaseConfig `json:"database" yaml:"database" mapstructure:"database"`
	Dataset  DatasetConfig  `json:"dataset" yaml:"dataset" mapstructure:"dataset"`
	Export   ExportConfig   `json:"export" yaml:"export" mapstructure:"export"`
	History  HistoryConfig  `json:"history" yaml:"history" mapstructure:"history"`
	Logging  LoggingConfig  `json:"logging" yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults fills unset fields with their documented defaults.
func (c *Config) ApplyDefaults() {
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = 4
	}
	if c.Database.Driver == "sqlite3" {
		c.Database.MaxOpenConns = 1
	}
	if c.Database.ConnectTimeout <= 0 {
		c.Database.ConnectTimeout = 10 * time.Second
	}
	if c.Database.SlowQuery <= 0 {
		c.Database.SlowQuery = 2 * time.Second
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "exports"
	}
	if c.History.Path == "" {
		c.History.Path = "exports/history.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
}
