// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

// Package main loads a JSON harmonics dump into the SQLite database the
// server reads at startup.
//
//	harmonics-import [-db /data/harmonics.db] [-log-level info] [dump.json]
//
// The dump is read from stdin when no file is given. The import runs in a
// single transaction, so a failed import leaves the database unchanged.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/sailtide/internal/harmonics"
	"github.com/tomtom215/sailtide/internal/logging"
)

func main() {
	dbPath := flag.String("db", "/data/harmonics.db", "harmonics database path")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [dump.json]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logging.Init(logging.Config{Level: *logLevel, Format: "console", Timestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *dbPath, flag.Args()); err != nil {
		logging.Fatal().Err(err).Str("db", *dbPath).Msg("Harmonics import failed")
	}
}

func run(ctx context.Context, dbPath string, args []string) error {
	var in io.Reader = os.Stdin
	source := "stdin"
	switch len(args) {
	case 0:
	case 1:
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening dump: %w", err)
		}
		defer f.Close()
		in, source = f, args[0]
	default:
		return fmt.Errorf("expected at most one dump file, got %d", len(args))
	}

	store, err := harmonics.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing harmonics database")
		}
	}()

	start := time.Now()
	stats, err := store.Import(ctx, in)
	if err != nil {
		return err
	}

	logging.Info().
		Str("source", source).
		Str("db", dbPath).
		Int("constituents", stats.Constituents).
		Int("stations", stats.Stations).
		Dur("duration", time.Since(start)).
		Msg("Imported harmonics")
	return nil
}
