// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

// Package logging provides centralized zerolog-based structured logging for Sailtide.
//
// JSON output is the default and is what production deployments should use;
// console output is for running the server by hand.
//
// # Quick Start
//
//	import "github.com/tomtom215/sailtide/internal/logging"
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//
//	logging.Info().Int("stations", ix.Count()).Msg("Loaded reference tide stations")
//	logging.Error().Err(err).Msg("Harmonics database unavailable")
//
//	// Request-scoped: adds request_id and correlation_id
//	logging.Ctx(r.Context()).Warn().Str("map_id", id).Msg("Map fetch failed")
//
// # Configuration
//
// Logging is configured through the logging section of the server config:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
//
// # slog Integration
//
// The suture supervisor logs through log/slog. NewSlogLogger returns an
// *slog.Logger whose records are written by zerolog, so supervisor events
// share the server's format and level.
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging
