package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/groblegark/gatelog/internal/events"
	"github.com/groblegark/gatelog/internal/idgen"
	"github.com/groblegark/gatelog/internal/model"
	"github.com/groblegark/gatelog/internal/store"
)

type registerVisitorInput struct {
	Roll string `json:"roll"`
	Name string `json:"name"`
}

// handleRegisterVisitor handles POST /v1/visitors.
// A library card ID is generated for each new visitor.
func (s *VisitServer) handleRegisterVisitor(w http.ResponseWriter, r *http.Request) {
	var in registerVisitorInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.Roll == "" {
		writeError(w, http.StatusBadRequest, "roll is required")
		return
	}
	if in.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	cardID, err := idgen.Generate()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate card id")
		return
	}

	visitor := &model.Visitor{
		Roll:         in.Roll,
		Name:         in.Name,
		CardID:       cardID,
		RegisteredAt: time.Now().UTC(),
	}

	if err := s.store.CreateVisitor(r.Context(), visitor); err != nil {
		if errors.Is(err, store.ErrDuplicateVisitor) {
			writeError(w, http.StatusConflict, "student is already registered")
			return
		}
		slog.Error("failed to register student", "roll", in.Roll, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to register student")
		return
	}

	s.publishEvent(r.Context(), events.TopicVisitorRegistered, visitor.Roll, events.VisitorRegistered{Visitor: visitor})

	writeJSON(w, http.StatusCreated, visitor)
}

// handleGetVisitor handles GET /v1/visitors/{roll}.
func (s *VisitServer) handleGetVisitor(w http.ResponseWriter, r *http.Request) {
	roll := r.PathValue("roll")
	if roll == "" {
		writeError(w, http.StatusBadRequest, "roll is required")
		return
	}

	visitor, err := s.store.GetVisitor(r.Context(), roll)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "student not found")
		return
	}
	if err != nil {
		slog.Error("failed to get student", "roll", roll, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get student")
		return
	}

	writeJSON(w, http.StatusOK, visitor)
}

// handleListVisitors handles GET /v1/visitors.
func (s *VisitServer) handleListVisitors(w http.ResponseWriter, r *http.Request) {
	visitors, err := s.store.ListVisitors(r.Context())
	if err != nil {
		slog.Error("failed to list students", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list students")
		return
	}

	// Ensure visitors is never null in JSON output.
	if visitors == nil {
		visitors = []*model.Visitor{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"visitors": visitors})
}
