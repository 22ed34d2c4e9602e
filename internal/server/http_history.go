package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/groblegark/gatelog/internal/model"
	"github.com/groblegark/gatelog/internal/session"
)

// handleHistory handles GET /v1/history?roll=&date=.
// At least one filter must be set; sessions are reconstructed from the
// raw event log.
func (s *VisitServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	roll := q.Get("roll")
	if roll == "" && q.Get("date") == "" {
		writeError(w, http.StatusBadRequest, "at least one of roll or date is required")
		return
	}

	var start, end time.Time
	if v := q.Get("date"); v != "" {
		day, err := model.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		start, end = model.DayWindow(day)
	}

	evts, err := s.store.EventsForHistory(r.Context(), roll, start, end)
	if err != nil {
		slog.Error("failed to get history", "roll", roll, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get history")
		return
	}

	sessions := session.Reconstruct(evts)

	// Ensure sessions is never null in JSON output.
	if sessions == nil {
		sessions = []model.Session{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

// handleEventsByDate handles GET /v1/events/date/{date}: the raw event log
// for one calendar day, ascending by event time. This feeds the
// recent-activity view, which wants unpaired events rather than sessions.
func (s *VisitServer) handleEventsByDate(w http.ResponseWriter, r *http.Request) {
	day, err := model.ParseDate(r.PathValue("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	start, end := model.DayWindow(day)

	evts, err := s.store.EventsInWindow(r.Context(), start, end)
	if err != nil {
		slog.Error("failed to list events", "date", r.PathValue("date"), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	// Bare array, never null.
	if evts == nil {
		evts = []model.Event{}
	}

	writeJSON(w, http.StatusOK, evts)
}
