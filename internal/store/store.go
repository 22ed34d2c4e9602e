// Package store defines the persistence interface for the visit log.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/groblegark/gatelog/internal/model"
)

// Business-rule violations surfaced by the ingestion guard. These are
// expected client errors, not store failures.
var (
	ErrAlreadyInside    = errors.New("already inside")
	ErrNoPriorEntry     = errors.New("no prior entry found")
	ErrAlreadyExited    = errors.New("already exited")
	ErrDuplicateVisitor = errors.New("visitor already registered")
)

// Store is the persistence interface for events and visitors.
//
// Event queries return events in ascending event_time order for a given
// roll; every derived computation relies on that ordering.
type Store interface {
	// Ingestion. Both calls enforce the alternating entry/exit invariant
	// atomically: concurrent calls for the same roll serialize in-store.
	RecordEntry(ctx context.Context, roll string, laptop *string, books []string) (*model.Event, error)
	RecordExit(ctx context.Context, roll string) (*model.Event, error)

	// Event queries.
	EventsByRoll(ctx context.Context, roll string) ([]model.Event, error)
	// EventsInWindow returns events with start <= event_time < end.
	EventsInWindow(ctx context.Context, start, end time.Time) ([]model.Event, error)
	LatestByKind(ctx context.Context, roll string, kind model.EventKind) (*model.Event, error)
	// EventsForHistory filters by roll and/or a [start, end) window (zero
	// times disable the window) and orders by roll, then event_time, so
	// the result can be fed straight into session reconstruction.
	EventsForHistory(ctx context.Context, roll string, start, end time.Time) ([]model.Event, error)
	// AllEvents returns the full log in insertion order (snapshot export).
	AllEvents(ctx context.Context) ([]model.Event, error)

	// Aggregates. Windows are half-open [start, end).
	CurrentOccupancy(ctx context.Context, now time.Time) (*model.Occupancy, error)
	DayStats(ctx context.Context, day time.Time) (*model.DayStats, error)
	MonthStats(ctx context.Context, month time.Time) (*model.MonthStats, error)
	YearStats(ctx context.Context, year time.Time) (*model.YearStats, error)
	// RangeSeries is dense and inclusive of both endpoint days.
	RangeSeries(ctx context.Context, start, end time.Time) ([]model.RangePoint, error)

	// Visitor registry, consulted only at the ingestion boundary.
	CreateVisitor(ctx context.Context, v *model.Visitor) error
	// GetVisitor returns sql.ErrNoRows (wrapped) for unknown rolls.
	GetVisitor(ctx context.Context, roll string) (*model.Visitor, error)
	ListVisitors(ctx context.Context) ([]*model.Visitor, error)

	// Lifecycle
	Close() error
}
