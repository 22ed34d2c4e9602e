package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/groblegark/gatelog/internal/events"
	"github.com/groblegark/gatelog/internal/store"
)

type entryInput struct {
	Roll   string   `json:"roll"`
	Laptop *string  `json:"laptop"`
	Books  []string `json:"books"`
}

type exitInput struct {
	Roll string `json:"roll"`
}

// handleRecordEntry handles POST /v1/entry.
func (s *VisitServer) handleRecordEntry(w http.ResponseWriter, r *http.Request) {
	var in entryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.Roll == "" {
		writeError(w, http.StatusBadRequest, "roll is required")
		return
	}

	if !s.checkRegistered(w, r, in.Roll) {
		return
	}

	event, err := s.store.RecordEntry(r.Context(), in.Roll, in.Laptop, in.Books)
	if errors.Is(err, store.ErrAlreadyInside) {
		writeError(w, http.StatusBadRequest, "student is already inside")
		return
	}
	if err != nil {
		slog.Error("failed to record entry", "roll", in.Roll, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to record entry")
		return
	}

	s.publishEvent(r.Context(), events.TopicEntryRecorded, in.Roll, events.EntryRecorded{Event: event})

	writeJSON(w, http.StatusOK, map[string]string{"message": "entry recorded"})
}

// handleRecordExit handles POST /v1/exit.
func (s *VisitServer) handleRecordExit(w http.ResponseWriter, r *http.Request) {
	var in exitInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.Roll == "" {
		writeError(w, http.StatusBadRequest, "roll is required")
		return
	}

	if !s.checkRegistered(w, r, in.Roll) {
		return
	}

	event, err := s.store.RecordExit(r.Context(), in.Roll)
	if errors.Is(err, store.ErrNoPriorEntry) {
		writeError(w, http.StatusBadRequest, "no entry found for student")
		return
	}
	if errors.Is(err, store.ErrAlreadyExited) {
		writeError(w, http.StatusBadRequest, "student has already exited")
		return
	}
	if err != nil {
		slog.Error("failed to record exit", "roll", in.Roll, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to record exit")
		return
	}

	var duration time.Duration
	if event.StayDuration != nil {
		duration = *event.StayDuration
	}

	s.publishEvent(r.Context(), events.TopicExitRecorded, in.Roll, events.ExitRecorded{
		Event:    event,
		Duration: duration,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "exit recorded",
		"duration": duration.String(),
	})
}

// handleCurrent handles GET /v1/current.
func (s *VisitServer) handleCurrent(w http.ResponseWriter, r *http.Request) {
	occ, err := s.store.CurrentOccupancy(r.Context(), time.Now().UTC())
	if err != nil {
		slog.Error("failed to get current visitors", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get current visitors")
		return
	}

	writeJSON(w, http.StatusOK, occ)
}

// checkRegistered enforces the registration policy for entry and exit.
// Returns false after writing an error response when the roll is unknown.
func (s *VisitServer) checkRegistered(w http.ResponseWriter, r *http.Request, roll string) bool {
	if !s.requireRegistration {
		return true
	}
	_, err := s.store.GetVisitor(r.Context(), roll)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "student not found")
		return false
	}
	if err != nil {
		slog.Error("failed to look up student", "roll", roll, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to look up student")
		return false
	}
	return true
}
