package server

import (
	"encoding/json"
	"net/http"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *VisitServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/entry", s.handleRecordEntry)
	mux.HandleFunc("POST /v1/exit", s.handleRecordExit)
	mux.HandleFunc("GET /v1/current", s.handleCurrent)
	mux.HandleFunc("GET /v1/stats/day/{date}", s.handleDayStats)
	mux.HandleFunc("GET /v1/stats/month/{month}", s.handleMonthStats)
	mux.HandleFunc("GET /v1/stats/year/{year}", s.handleYearStats)
	mux.HandleFunc("GET /v1/stats/range", s.handleRangeStats)
	mux.HandleFunc("GET /v1/history", s.handleHistory)
	mux.HandleFunc("GET /v1/events/date/{date}", s.handleEventsByDate)
	mux.HandleFunc("POST /v1/visitors", s.handleRegisterVisitor)
	mux.HandleFunc("GET /v1/visitors", s.handleListVisitors)
	mux.HandleFunc("GET /v1/visitors/{roll}", s.handleGetVisitor)
	mux.HandleFunc("GET /v1/events/stream", s.handleEventStream)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return AuthMiddleware(authToken, mux)
}

// handleHealth handles GET /v1/health.
func (s *VisitServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
