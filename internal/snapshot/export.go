package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/groblegark/gatelog/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version      string    `json:"version"`
	Type         string    `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
	EventCount   int       `json:"event_count"`
	VisitorCount int       `json:"visitor_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ExportJSONL writes all events and visitors from the store as JSONL to w.
// Events keep their insertion order so the snapshot replays cleanly.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	events, err := s.AllEvents(ctx)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}

	visitors, err := s.ListVisitors(ctx)
	if err != nil {
		return fmt.Errorf("list visitors: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	// Write header.
	if err := enc.Encode(header{
		Version:      "1",
		Type:         "header",
		Timestamp:    time.Now().UTC(),
		EventCount:   len(events),
		VisitorCount: len(visitors),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	// Write visitors first so replays can register before ingesting events.
	for _, v := range visitors {
		if err := enc.Encode(record{Type: "visitor", Data: v}); err != nil {
			return fmt.Errorf("encode visitor %s: %w", v.Roll, err)
		}
	}

	// Write events.
	for _, e := range events {
		if err := enc.Encode(record{Type: "event", Data: e}); err != nil {
			return fmt.Errorf("encode event %d: %w", e.ID, err)
		}
	}

	return nil
}
