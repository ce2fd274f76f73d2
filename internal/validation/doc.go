// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

// Package validation checks request parameters with go-playground/validator.
//
// A single validator instance is built on first use (GetValidator) with
// field names taken from json tags and one custom tag, caltopo_map_id.
// Failures are returned as *RequestValidationError, which converts to a
// 400 apperr.Error for the {"error": ...} response.
//
// The Parse* helpers turn raw path segments into validated request
// structs:
//
//	req, err := validation.ParseCoordinates("47.6,-122.3")
//	if err != nil {
//	    // err is an *apperr.Error with status 400
//	}
package validation
