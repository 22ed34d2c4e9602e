package server

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/groblegark/gatelog/internal/events"
	"github.com/groblegark/gatelog/internal/store"
)

// VisitServer serves the visit log HTTP API.
type VisitServer struct {
	store               store.Store
	publisher           events.Publisher
	sseHub              *sseHub
	requireRegistration bool
}

// NewVisitServer returns a new VisitServer backed by the given store and
// publisher. When requireRegistration is true, entry and exit requests for
// rolls absent from the visitor registry are rejected with 404.
func NewVisitServer(s store.Store, p events.Publisher, requireRegistration bool) *VisitServer {
	return &VisitServer{
		store:               s,
		publisher:           p,
		sseHub:              newSSEHub(),
		requireRegistration: requireRegistration,
	}
}

// publishEvent sends an event to NATS and fans it out to SSE clients.
// Best-effort; failures are logged but do not block the caller. The event
// itself is already durable in the store by the time this runs.
func (s *VisitServer) publishEvent(ctx context.Context, topic, roll string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "roll", roll, "error", err)
	}
	s.broadcastEvent(topic, event)
}

// broadcastEvent fans an event out to connected SSE clients.
func (s *VisitServer) broadcastEvent(topic string, event any) {
	if s.sseHub == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Warn("failed to marshal event for SSE broadcast", "topic", topic, "error", err)
		return
	}
	s.sseHub.broadcast(topic, payload)
}
