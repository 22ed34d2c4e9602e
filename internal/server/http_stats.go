package server

import (
	"log/slog"
	"net/http"

	"github.com/groblegark/gatelog/internal/model"
)

// handleDayStats handles GET /v1/stats/day/{date}.
func (s *VisitServer) handleDayStats(w http.ResponseWriter, r *http.Request) {
	day, err := model.ParseDate(r.PathValue("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := s.store.DayStats(r.Context(), day)
	if err != nil {
		slog.Error("failed to get day stats", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get day stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// handleMonthStats handles GET /v1/stats/month/{month}.
func (s *VisitServer) handleMonthStats(w http.ResponseWriter, r *http.Request) {
	month, err := model.ParseMonth(r.PathValue("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := s.store.MonthStats(r.Context(), month)
	if err != nil {
		slog.Error("failed to get month stats", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get month stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// handleYearStats handles GET /v1/stats/year/{year}.
func (s *VisitServer) handleYearStats(w http.ResponseWriter, r *http.Request) {
	year, err := model.ParseYear(r.PathValue("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := s.store.YearStats(r.Context(), year)
	if err != nil {
		slog.Error("failed to get year stats", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get year stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// handleRangeStats handles GET /v1/stats/range?start=&end=.
// Both endpoints are required; the series is inclusive of both days and
// dense, with zero counts for days without entries.
func (s *VisitServer) handleRangeStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("start") == "" || q.Get("end") == "" {
		writeError(w, http.StatusBadRequest, "start and end are required")
		return
	}

	start, err := model.ParseDate(q.Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := model.ParseDate(q.Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "end must not be before start")
		return
	}

	series, err := s.store.RangeSeries(r.Context(), start, end)
	if err != nil {
		slog.Error("failed to get range stats", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get range stats")
		return
	}

	// The response is the bare array. Ensure it is never null in JSON output.
	if series == nil {
		series = []model.RangePoint{}
	}

	writeJSON(w, http.StatusOK, series)
}
