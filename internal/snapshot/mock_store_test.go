package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/groblegark/gatelog/internal/model"
)

// mockStore is a minimal in-memory store for snapshot tests. Only the
// methods the exporter touches have real behavior.
type mockStore struct {
	events   []model.Event
	visitors []*model.Visitor

	// allEventsErr, when non-nil, is returned by AllEvents.
	allEventsErr error
}

func newMockStore() *mockStore {
	return &mockStore{}
}

func (m *mockStore) AllEvents(_ context.Context) ([]model.Event, error) {
	if m.allEventsErr != nil {
		return nil, m.allEventsErr
	}
	return m.events, nil
}

func (m *mockStore) ListVisitors(_ context.Context) ([]*model.Visitor, error) {
	return m.visitors, nil
}

func (m *mockStore) RecordEntry(_ context.Context, _ string, _ *string, _ []string) (*model.Event, error) {
	return nil, errors.New("not supported")
}

func (m *mockStore) RecordExit(_ context.Context, _ string) (*model.Event, error) {
	return nil, errors.New("not supported")
}

func (m *mockStore) EventsByRoll(_ context.Context, _ string) ([]model.Event, error) {
	return nil, nil
}

func (m *mockStore) EventsInWindow(_ context.Context, _, _ time.Time) ([]model.Event, error) {
	return nil, nil
}

func (m *mockStore) LatestByKind(_ context.Context, _ string, _ model.EventKind) (*model.Event, error) {
	return nil, nil
}

func (m *mockStore) EventsForHistory(_ context.Context, _ string, _, _ time.Time) ([]model.Event, error) {
	return nil, nil
}

func (m *mockStore) CurrentOccupancy(_ context.Context, _ time.Time) (*model.Occupancy, error) {
	return &model.Occupancy{}, nil
}

func (m *mockStore) DayStats(_ context.Context, _ time.Time) (*model.DayStats, error) {
	return &model.DayStats{}, nil
}

func (m *mockStore) MonthStats(_ context.Context, _ time.Time) (*model.MonthStats, error) {
	return &model.MonthStats{}, nil
}

func (m *mockStore) YearStats(_ context.Context, _ time.Time) (*model.YearStats, error) {
	return &model.YearStats{}, nil
}

func (m *mockStore) RangeSeries(_ context.Context, _, _ time.Time) ([]model.RangePoint, error) {
	return nil, nil
}

func (m *mockStore) CreateVisitor(_ context.Context, v *model.Visitor) error {
	m.visitors = append(m.visitors, v)
	return nil
}

func (m *mockStore) GetVisitor(_ context.Context, _ string) (*model.Visitor, error) {
	return nil, sql.ErrNoRows
}

func (m *mockStore) Close() error {
	return nil
}
