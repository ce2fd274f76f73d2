// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

// Package main is the Sailtide API server.
//
// Sailtide serves a sailing watch app: race marks grouped from a CalTopo
// map, the reference tide stations nearest a position, and the harmonic
// constants the watch needs to predict tides offline.
//
// # Startup
//
//  1. Configuration: defaults, config.yaml, then environment (koanf)
//  2. Harmonics: open the SQLite store and build the station index
//  3. Cache: memory or badger store for grouped CalTopo maps
//  4. CalTopo: rate-limited HTTP client behind a circuit breaker
//  5. Supervisor tree: HTTP server, plus badger GC when enabled
//
// # Usage
//
//	sailtide-server [port]
//
// The optional port argument overrides HTTP_PORT and server.port. The
// default port is 18266.
//
// SIGINT and SIGTERM stop the server gracefully.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"

	"github.com/tomtom215/sailtide/internal/api"
	"github.com/tomtom215/sailtide/internal/cache"
	"github.com/tomtom215/sailtide/internal/caltopo"
	"github.com/tomtom215/sailtide/internal/config"
	"github.com/tomtom215/sailtide/internal/harmonics"
	"github.com/tomtom215/sailtide/internal/logging"
	"github.com/tomtom215/sailtide/internal/metrics"
	"github.com/tomtom215/sailtide/internal/supervisor"
	"github.com/tomtom215/sailtide/internal/supervisor/services"
	"github.com/tomtom215/sailtide/internal/tides"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	port, ok, err := parsePortArg(os.Args[1:])
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid command line")
	}
	if ok {
		cfg.Server.Port = port
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	index, err := loadIndex(ctx, cfg.Harmonics.Path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Harmonics.Path).Msg("Failed to load tide stations")
	}
	metrics.StationsLoaded.Set(float64(index.Count()))
	logging.Info().Int("stations", index.Count()).
		Msgf("There are %d reference tide stations", index.Count())
	if index.Count() == 0 {
		logging.Warn().Str("path", cfg.Harmonics.Path).
			Msg("Harmonics database is empty; run harmonics-import first")
	}

	var store cache.Store
	if cfg.Cache.Enabled {
		store, err = cache.NewStore(cache.Config{
			Backend: cfg.Cache.Backend,
			TTL:     cfg.Cache.TTL,
			Path:    cfg.Cache.Path,
		})
		if err != nil {
			logging.Fatal().Err(err).Str("backend", cfg.Cache.Backend).Msg("Failed to open cache")
		}
		defer func() {
			stats := store.GetStats()
			logging.Info().
				Str("backend", stats.Backend).
				Int64("hits", stats.Hits).
				Int64("misses", stats.Misses).
				Float64("hit_rate", stats.HitRate()).
				Msg("Cache statistics")
			if err := store.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing cache")
			}
		}()
	}

	client := caltopo.NewClient(&cfg.CalTopo)
	breaker := caltopo.NewCircuitBreakerClient(client, cfg.CalTopo.Breaker)
	maps := caltopo.NewService(breaker, store)

	handler := api.NewHandler(index, maps, cfg.Tides)
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(handler, cfg.Security),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeCfg)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if b, ok := store.(*cache.Badger); ok {
		tree.AddDataService(cache.NewGCService(b, 0))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().
		Str("addr", server.Addr).
		Str("version", version).
		Str("caltopo", cfg.CalTopo.BaseURL).
		Bool("cache", cfg.Cache.Enabled).
		Msg("Starting Sailtide")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}
	logging.Info().Msg("Sailtide stopped")
}

// loadIndex reads every station from the harmonics store and indexes the
// reference tide stations.
func loadIndex(ctx context.Context, path string) (*tides.Index, error) {
	store, err := harmonics.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing harmonics database")
		}
	}()

	records, err := store.LoadRecords(ctx)
	if err != nil {
		return nil, err
	}
	return tides.NewIndex(records), nil
}

// parsePortArg reads the optional positional port argument.
func parsePortArg(args []string) (port int, ok bool, err error) {
	switch len(args) {
	case 0:
		return 0, false, nil
	case 1:
	default:
		return 0, false, errors.New("usage: sailtide-server [port]")
	}

	port, err = strconv.Atoi(args[0])
	if err != nil || port < 1 || port > 65535 {
		return 0, false, fmt.Errorf("port must be a number between 1 and 65535, got %q", args[0])
	}
	return port, true, nil
}
