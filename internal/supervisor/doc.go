// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

/*
Package supervisor runs the long-lived parts of the server under a suture
supervisor tree.

	sailtide (root)
	├── data-layer
	│   └── badger-gc (only with the badger cache backend)
	└── api-layer
	    └── http-server

Supervisor events (restarts, backoff, stop timeouts) are logged through
sutureslog, bridged onto the zerolog logger with logging.NewSlogLogger.
Services return an error to be restarted and return ctx.Err() when asked
to stop.
*/
package supervisor
