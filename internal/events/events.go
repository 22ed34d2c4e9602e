package events

import (
	"context"
	"time"

	"github.com/groblegark/gatelog/internal/model"
)

// Event topic constants
const (
	TopicEntryRecorded     = "visits.entry.recorded"
	TopicExitRecorded      = "visits.exit.recorded"
	TopicVisitorRegistered = "visits.visitor.registered"
)

// Event types

type EntryRecorded struct {
	Event *model.Event `json:"event"`
}

type ExitRecorded struct {
	Event    *model.Event  `json:"event"`
	Duration time.Duration `json:"duration"`
}

type VisitorRegistered struct {
	Visitor *model.Visitor `json:"visitor"`
}

// Publisher publishes events to the event bus.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
