// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

// Package apperr defines the error taxonomy shared by every endpoint.
//
// Domain packages return plain sentinel or struct errors. The layer that
// talks to a client wraps them in an *Error so the HTTP boundary can pick a
// status code and a client-facing message without knowing the domain.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a failure by who is at fault.
type Kind uint8

const (
	// KindInput is a missing or malformed request parameter.
	KindInput Kind = iota + 1

	// KindUpstream is a failed or malformed response from CalTopo.
	KindUpstream

	// KindDataConsistency is a defect in an external data source,
	// such as a missing node-factor year or a marker in an unknown folder.
	KindDataConsistency
)

// String implements fmt.Stringer for log fields.
func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindUpstream:
		return "upstream"
	case KindDataConsistency:
		return "data_consistency"
	default:
		return "unknown"
	}
}

// Error is a classified failure carrying the message shown to the client.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String() + " error"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Input returns a 400 input error.
func Input(msg string) *Error {
	return &Error{Kind: KindInput, Status: http.StatusBadRequest, Message: msg}
}

// NotFound returns a 404 input error, used for ids that name nothing.
func NotFound(msg string, err error) *Error {
	return &Error{Kind: KindInput, Status: http.StatusNotFound, Message: msg, Err: err}
}

// Upstream returns a 502 upstream error.
func Upstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Status: http.StatusBadGateway, Message: msg, Err: err}
}

// Unavailable returns a 503 upstream error, used when the circuit breaker
// is refusing calls.
func Unavailable(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Status: http.StatusServiceUnavailable, Message: msg, Err: err}
}

// DataConsistency returns a 500 error for a defect in external data.
func DataConsistency(err error) *Error {
	return &Error{Kind: KindDataConsistency, Status: http.StatusInternalServerError, Err: err}
}

// KindOf returns the Kind of err, or 0 if err is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// HTTPStatus maps err to a response status code. Unclassified errors are
// treated as internal failures.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	if e.Status != 0 {
		return e.Status
	}
	switch e.Kind {
	case KindInput:
		return http.StatusBadRequest
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text placed in the error field of a response.
// When a message is set the wrapped cause stays out of the response.
func PublicMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "internal server error"
	}
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String() + " error"
	}
}
