// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package caltopo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/sailtide/internal/config"
	"github.com/tomtom215/sailtide/internal/logging"
	"github.com/tomtom215/sailtide/internal/metrics"
)

// ErrBodyTooLarge is returned when an export exceeds the configured cap.
var ErrBodyTooLarge = errors.New("CalTopo response exceeds size limit")

// StatusError is a non-200 reply from CalTopo.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("CalTopo returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("CalTopo returned HTTP %d: %s", e.StatusCode, e.Body)
}

// maxErrorBody caps how much of a failed response is kept for logs.
const maxErrorBody = 64 * 1024

// Client fetches raw map exports from CalTopo. It does not retry.
type Client struct {
	baseURL      string
	client       *http.Client
	maxBodyBytes int64
	limiter      *rate.Limiter
}

// NewClient creates a CalTopo client from cfg. A zero RequestsPerSecond
// disables the outbound limiter.
func NewClient(cfg *config.CalTopoConfig) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		maxBodyBytes: cfg.MaxBodyBytes,
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	}
	return c
}

// MapURL returns the export URL for mapID.
func (c *Client) MapURL(mapID string) string {
	return c.baseURL + "/m/" + url.PathEscape(mapID) + "?format=json"
}

// Fetch downloads the JSON export of mapID.
func (c *Client) Fetch(ctx context.Context, mapID string) ([]byte, error) {
	start := time.Now()
	body, err := c.fetch(ctx, mapID)
	metrics.RecordUpstreamFetch(time.Since(start), len(body), err)
	return body, err
}

func (c *Client) fetch(ctx context.Context, mapID string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("outbound rate limit: %w", err)
		}
	}

	reqURL := c.MapURL(mapID)
	logging.Ctx(ctx).Debug().Str("url", reqURL).Msg("Fetching CalTopo map")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	// Read one byte past the cap to tell "exactly at limit" from "over".
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrBodyTooLarge, c.maxBodyBytes)
	}
	return body, nil
}
