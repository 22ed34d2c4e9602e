// Package client provides an HTTP client for the gatelog REST API,
// used by the CLI commands.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/groblegark/gatelog/internal/model"
)

// Client talks to a gatelog server over HTTP/JSON.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *Client) Close() error { return nil }

// ExitResult is the response to a recorded exit.
type ExitResult struct {
	Message  string `json:"message"`
	Duration string `json:"duration"`
}

// RecordEntry records an entry for the given roll.
func (c *Client) RecordEntry(ctx context.Context, roll string, laptop *string, books []string) (string, error) {
	body := map[string]any{"roll": roll}
	if laptop != nil {
		body["laptop"] = *laptop
	}
	if len(books) > 0 {
		body["books"] = books
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/entry", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// RecordExit records an exit for the given roll.
func (c *Client) RecordExit(ctx context.Context, roll string) (*ExitResult, error) {
	body := map[string]any{"roll": roll}
	var resp ExitResult
	if err := c.doJSON(ctx, http.MethodPost, "/v1/exit", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Current returns the live occupancy view.
func (c *Client) Current(ctx context.Context) (*model.Occupancy, error) {
	var occ model.Occupancy
	if err := c.doJSON(ctx, http.MethodGet, "/v1/current", nil, &occ); err != nil {
		return nil, err
	}
	return &occ, nil
}

// DayStats returns aggregates for one calendar day (YYYY-MM-DD).
func (c *Client) DayStats(ctx context.Context, date string) (*model.DayStats, error) {
	var stats model.DayStats
	if err := c.doJSON(ctx, http.MethodGet, "/v1/stats/day/"+url.PathEscape(date), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// MonthStats returns aggregates for one calendar month (YYYY-MM).
func (c *Client) MonthStats(ctx context.Context, month string) (*model.MonthStats, error) {
	var stats model.MonthStats
	if err := c.doJSON(ctx, http.MethodGet, "/v1/stats/month/"+url.PathEscape(month), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// YearStats returns aggregates for one calendar year (YYYY).
func (c *Client) YearStats(ctx context.Context, year string) (*model.YearStats, error) {
	var stats model.YearStats
	if err := c.doJSON(ctx, http.MethodGet, "/v1/stats/year/"+url.PathEscape(year), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// RangeStats returns a dense per-day entry series for [start, end], both
// YYYY-MM-DD.
func (c *Client) RangeStats(ctx context.Context, start, end string) ([]model.RangePoint, error) {
	q := url.Values{}
	q.Set("start", start)
	q.Set("end", end)
	var series []model.RangePoint
	if err := c.doJSON(ctx, http.MethodGet, "/v1/stats/range?"+q.Encode(), nil, &series); err != nil {
		return nil, err
	}
	return series, nil
}

// History returns reconstructed visit sessions, optionally filtered by roll
// and/or date (YYYY-MM-DD).
func (c *Client) History(ctx context.Context, roll, date string) ([]model.Session, error) {
	q := url.Values{}
	if roll != "" {
		q.Set("roll", roll)
	}
	if date != "" {
		q.Set("date", date)
	}
	path := "/v1/history"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var resp struct {
		Sessions []model.Session `json:"sessions"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sessions, nil
}

// EventsByDate returns the raw event log for one calendar day (YYYY-MM-DD),
// ascending by event time.
func (c *Client) EventsByDate(ctx context.Context, date string) ([]model.Event, error) {
	var evts []model.Event
	if err := c.doJSON(ctx, http.MethodGet, "/v1/events/date/"+url.PathEscape(date), nil, &evts); err != nil {
		return nil, err
	}
	return evts, nil
}

// RegisterVisitor registers a new student and returns the stored record,
// including the generated card ID.
func (c *Client) RegisterVisitor(ctx context.Context, roll, name string) (*model.Visitor, error) {
	body := map[string]string{"roll": roll, "name": name}
	var visitor model.Visitor
	if err := c.doJSON(ctx, http.MethodPost, "/v1/visitors", body, &visitor); err != nil {
		return nil, err
	}
	return &visitor, nil
}

// GetVisitor fetches one registered student by roll.
func (c *Client) GetVisitor(ctx context.Context, roll string) (*model.Visitor, error) {
	var visitor model.Visitor
	if err := c.doJSON(ctx, http.MethodGet, "/v1/visitors/"+url.PathEscape(roll), nil, &visitor); err != nil {
		return nil, err
	}
	return &visitor, nil
}

// ListVisitors returns all registered students.
func (c *Client) ListVisitors(ctx context.Context) ([]model.Visitor, error) {
	var resp struct {
		Visitors []model.Visitor `json:"visitors"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/visitors", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Visitors, nil
}

// Health checks server health.
func (c *Client) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content: success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
