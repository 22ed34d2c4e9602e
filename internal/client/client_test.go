package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/groblegark/gatelog/internal/model"
)

// testHandler captures the incoming request details and returns a canned response.
type testHandler struct {
	// captured from the request
	method      string
	path        string
	query       string
	body        string
	contentType string
	authHeader  string

	// canned response
	statusCode   int
	responseBody string
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.method = r.Method
	h.path = r.URL.Path
	h.query = r.URL.RawQuery
	h.contentType = r.Header.Get("Content-Type")
	h.authHeader = r.Header.Get("Authorization")
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		h.body = string(data)
	}

	w.Header().Set("Content-Type", "application/json")
	if h.statusCode != 0 {
		w.WriteHeader(h.statusCode)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if h.responseBody != "" {
		_, _ = w.Write([]byte(h.responseBody))
	}
}

// newTestClient creates a Client pointed at a test server with the given handler.
func newTestClient(h http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(h)
	c := New(srv.URL, "")
	return c, srv
}

func TestClient_RecordEntry(t *testing.T) {
	h := &testHandler{responseBody: `{"message":"entry recorded"}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	laptop := "Dell"
	msg, err := c.RecordEntry(context.Background(), "1001", &laptop, []string{"algorithms"})
	if err != nil {
		t.Fatalf("RecordEntry() error = %v", err)
	}
	if msg != "entry recorded" {
		t.Errorf("message = %q, want %q", msg, "entry recorded")
	}

	if h.method != http.MethodPost || h.path != "/v1/entry" {
		t.Errorf("request = %s %s, want POST /v1/entry", h.method, h.path)
	}
	if h.contentType != "application/json" {
		t.Errorf("content-type = %q, want application/json", h.contentType)
	}

	var reqBody map[string]interface{}
	if err := json.Unmarshal([]byte(h.body), &reqBody); err != nil {
		t.Fatalf("unmarshaling request body: %v", err)
	}
	if reqBody["roll"] != "1001" || reqBody["laptop"] != "Dell" {
		t.Errorf("request body = %v", reqBody)
	}
}

func TestClient_RecordEntry_NoLaptop(t *testing.T) {
	h := &testHandler{responseBody: `{"message":"entry recorded"}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	if _, err := c.RecordEntry(context.Background(), "1001", nil, nil); err != nil {
		t.Fatalf("RecordEntry() error = %v", err)
	}

	// laptop and books must be omitted entirely when absent.
	if strings.Contains(h.body, "laptop") || strings.Contains(h.body, "books") {
		t.Errorf("request body should omit laptop and books, got %q", h.body)
	}
}

func TestClient_RecordExit(t *testing.T) {
	h := &testHandler{responseBody: `{"message":"exit recorded","duration":"1h30m0s"}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	result, err := c.RecordExit(context.Background(), "1001")
	if err != nil {
		t.Fatalf("RecordExit() error = %v", err)
	}
	if result.Duration != "1h30m0s" {
		t.Errorf("duration = %q, want %q", result.Duration, "1h30m0s")
	}
	if h.method != http.MethodPost || h.path != "/v1/exit" {
		t.Errorf("request = %s %s, want POST /v1/exit", h.method, h.path)
	}
}

func TestClient_Current(t *testing.T) {
	h := &testHandler{responseBody: `{
		"count": 2,
		"laptopCount": 1,
		"current": [
			{"roll":"1001","entryTime":"2025-08-10T09:00:00Z","durationMinutes":90,"hasLaptop":true},
			{"roll":"1002","entryTime":"2025-08-10T10:00:00Z","durationMinutes":30,"hasLaptop":false}
		]
	}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	occ, err := c.Current(context.Background())
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if occ.Count != 2 || occ.LaptopCount != 1 || len(occ.Current) != 2 {
		t.Errorf("occupancy = %+v", occ)
	}
	if occ.Current[0].Roll != "1001" || occ.Current[0].DurationMinutes != 90 {
		t.Errorf("first visitor = %+v", occ.Current[0])
	}
}

func TestClient_DayStats(t *testing.T) {
	h := &testHandler{responseBody: `{
		"date":"2025-08-10","totalEntries":12,"totalUniqueStudents":9,
		"avgStayMinutes":73,"laptopUsersCount":5
	}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	stats, err := c.DayStats(context.Background(), "2025-08-10")
	if err != nil {
		t.Fatalf("DayStats() error = %v", err)
	}
	if stats.TotalEntries != 12 || stats.AvgStayMinutes != 73 {
		t.Errorf("stats = %+v", stats)
	}
	if h.path != "/v1/stats/day/2025-08-10" {
		t.Errorf("path = %q", h.path)
	}
}

func TestClient_RangeStats(t *testing.T) {
	h := &testHandler{responseBody: `[
		{"date":"2025-08-01","entries":3},
		{"date":"2025-08-02","entries":0}
	]`}
	c, srv := newTestClient(h)
	defer srv.Close()

	series, err := c.RangeStats(context.Background(), "2025-08-01", "2025-08-02")
	if err != nil {
		t.Fatalf("RangeStats() error = %v", err)
	}
	if len(series) != 2 || series[1].Entries != 0 {
		t.Errorf("series = %+v", series)
	}
	if !strings.Contains(h.query, "start=2025-08-01") || !strings.Contains(h.query, "end=2025-08-02") {
		t.Errorf("query = %q", h.query)
	}
}

func TestClient_History(t *testing.T) {
	h := &testHandler{responseBody: `{"sessions":[
		{"roll":"1001","entryTime":"2025-08-10T09:00:00Z","exitTime":"2025-08-10T10:30:00Z","laptop":"Dell"}
	]}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	sessions, err := c.History(context.Background(), "1001", "2025-08-10")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(sessions) != 1 || sessions[0].Roll != "1001" {
		t.Errorf("sessions = %+v", sessions)
	}
	if !strings.Contains(h.query, "roll=1001") || !strings.Contains(h.query, "date=2025-08-10") {
		t.Errorf("query = %q", h.query)
	}
}

func TestClient_EventsByDate(t *testing.T) {
	h := &testHandler{responseBody: `[
		{"id":1,"roll":"1001","kind":"entry","eventTime":"2025-08-10T09:00:00Z","laptop":"Dell"},
		{"id":2,"roll":"1001","kind":"exit","eventTime":"2025-08-10T10:30:00Z","laptop":"Dell"}
	]`}
	c, srv := newTestClient(h)
	defer srv.Close()

	evts, err := c.EventsByDate(context.Background(), "2025-08-10")
	if err != nil {
		t.Fatalf("EventsByDate() error = %v", err)
	}
	if len(evts) != 2 || evts[1].Kind != model.KindExit {
		t.Errorf("events = %+v", evts)
	}
	if h.path != "/v1/events/date/2025-08-10" {
		t.Errorf("path = %q", h.path)
	}
}

func TestClient_RegisterVisitor(t *testing.T) {
	h := &testHandler{
		statusCode:   http.StatusCreated,
		responseBody: `{"roll":"1001","name":"Asha","cardId":"lib-x1","registeredAt":"2025-08-10T09:00:00Z"}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	visitor, err := c.RegisterVisitor(context.Background(), "1001", "Asha")
	if err != nil {
		t.Fatalf("RegisterVisitor() error = %v", err)
	}
	if visitor.CardID != "lib-x1" {
		t.Errorf("cardId = %q", visitor.CardID)
	}
	if h.method != http.MethodPost || h.path != "/v1/visitors" {
		t.Errorf("request = %s %s, want POST /v1/visitors", h.method, h.path)
	}
}

func TestClient_AuthToken(t *testing.T) {
	h := &testHandler{responseBody: `{"status":"ok"}`}
	srv := httptest.NewServer(h)
	defer srv.Close()
	c := New(srv.URL, "secret-token")

	if _, err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if h.authHeader != "Bearer secret-token" {
		t.Errorf("authorization = %q, want Bearer secret-token", h.authHeader)
	}
}

func TestClient_APIError(t *testing.T) {
	h := &testHandler{
		statusCode:   http.StatusBadRequest,
		responseBody: `{"error":"student is already inside"}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	_, err := c.RecordEntry(context.Background(), "1001", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != 400 || apiErr.Message != "student is already inside" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestClient_APIError_NonJSONBody(t *testing.T) {
	h := &testHandler{
		statusCode:   http.StatusBadGateway,
		responseBody: `upstream unavailable`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	_, err := c.Current(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != 502 || !strings.Contains(apiErr.Message, "upstream unavailable") {
		t.Errorf("apiErr = %+v", apiErr)
	}
}
