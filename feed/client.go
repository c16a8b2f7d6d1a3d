// Package feed talks to the remote station-telemetry API. The three
// resources (alerts, schedule, metrics) are fetched independently; every
// response field is treated as optional and untrusted, so all decoding
// funnels through the normalize package.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/railscope/stationboard/model"
	"github.com/railscope/stationboard/normalize"
)

const (
	// requestTimeout caps a single round trip so a hung source degrades to
	// fallback data instead of a stuck loading indicator.
	requestTimeout = 10 * time.Second

	// maxBody bounds response reads; the source is untrusted.
	maxBody = 4 << 20
)

// Client fetches station-scoped telemetry resources over HTTP.
type Client struct {
	base   string
	client *http.Client
}

// NewClient creates a client for the given API base URL, e.g.
// "http://127.0.0.1:8000".
func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		client: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Alerts fetches and normalizes the alert feed for one station.
func (c *Client) Alerts(ctx context.Context, station model.Station) ([]model.Alert, error) {
	var payload struct {
		Alerts *[]any `json:"alerts"`
	}
	if err := c.getJSON(ctx, "/api/v1/alerts", station, &payload); err != nil {
		return nil, err
	}
	if payload.Alerts == nil {
		return nil, fmt.Errorf("alerts: response missing alerts field")
	}
	out := make([]model.Alert, 0, len(*payload.Alerts))
	for _, raw := range *payload.Alerts {
		out = append(out, normalize.Alert(raw))
	}
	return out, nil
}

// Schedule fetches and normalizes the train schedule for one station.
func (c *Client) Schedule(ctx context.Context, station model.Station) ([]model.TrainRow, error) {
	var payload struct {
		Schedule *struct {
			Trains []any `json:"trains"`
		} `json:"schedule"`
	}
	if err := c.getJSON(ctx, "/api/v1/schedule", station, &payload); err != nil {
		return nil, err
	}
	if payload.Schedule == nil {
		return nil, fmt.Errorf("schedule: response missing schedule field")
	}
	out := make([]model.TrainRow, 0, len(payload.Schedule.Trains))
	for _, raw := range payload.Schedule.Trains {
		out = append(out, normalize.TrainRow(raw))
	}
	return out, nil
}

// Metrics fetches and normalizes the performance metrics for one station.
func (c *Client) Metrics(ctx context.Context, station model.Station) ([]model.MetricEntry, error) {
	var payload struct {
		Metrics map[string]any `json:"metrics"`
	}
	if err := c.getJSON(ctx, "/api/v1/metrics", station, &payload); err != nil {
		return nil, err
	}
	if payload.Metrics == nil {
		return nil, fmt.Errorf("metrics: response missing metrics field")
	}
	return normalize.Metrics(payload.Metrics), nil
}

// getJSON performs one station-scoped GET and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, path string, station model.Station, out any) error {
	u := c.base + path + "?station=" + url.QueryEscape(string(station))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
