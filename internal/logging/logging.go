// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging configures the process-wide zerolog logger.
//
// Diagnostics go to stderr so command output on stdout stays clean.
// User-facing progress lines are printed by the pipeline stages
// themselves on an io.Writer; this logger carries query timings, stage
// lifecycle events, and warnings.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/herrkrueger/epo.patlib2025-sub001/pkg/types"
)

// Logger is the project-wide logging type.
type Logger = zerolog.Logger

var (
	once sync.Once
	root atomic.Pointer[zerolog.Logger]
)

// Init configures the root logger from config. The first call wins;
// later calls are ignored.
func Init(cfg types.LoggingConfig) {
	InitWriter(cfg, os.Stderr)
}

// InitWriter is Init with an explicit destination, for tests.
func InitWriter(cfg types.LoggingConfig, w io.Writer) {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339
		if cfg.Format != "json" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
		}
		log := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
		root.Store(&log)
	})
}

// Get returns the process-wide root logger, initializing it with
// defaults if Init has not run.
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(types.LoggingConfig{Level: "info", Format: "console"})
	return root.Load()
}

// Named returns a child logger tagged with a component field.
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	ll := Get().With().Str("component", component).Logger()
	return &ll
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
