package session

import (
	"testing"
	"time"

	"github.com/groblegark/gatelog/internal/model"
)

var t0 = time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC)

func entry(roll string, at time.Time, laptop string, books ...string) model.Event {
	e := model.Event{Roll: roll, Kind: model.KindEntry, EventTime: at}
	if laptop != "" {
		e.Laptop = &laptop
	}
	if len(books) > 0 {
		e.Books = books
	}
	return e
}

func exit(roll string, at time.Time, stay time.Duration) model.Event {
	return model.Event{Roll: roll, Kind: model.KindExit, EventTime: at, StayDuration: &stay}
}

func TestReconstruct_Empty(t *testing.T) {
	if got := Reconstruct(nil); got != nil {
		t.Errorf("Reconstruct(nil) = %v, want nil", got)
	}
	if got := Reconstruct([]model.Event{}); got != nil {
		t.Errorf("Reconstruct(empty) = %v, want nil", got)
	}
}

func TestReconstruct_SingleCompletedVisit(t *testing.T) {
	events := []model.Event{
		entry("1001", t0, "Dell", "algo"),
		exit("1001", t0.Add(90*time.Minute), 90*time.Minute),
	}

	sessions := Reconstruct(events)
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	s := sessions[0]
	if s.Roll != "1001" {
		t.Errorf("Roll = %s", s.Roll)
	}
	if s.Open() {
		t.Error("session should be closed")
	}
	if s.Duration == nil || *s.Duration != 90*time.Minute {
		t.Errorf("Duration = %v, want 90m", s.Duration)
	}
	if s.Laptop == nil || *s.Laptop != "Dell" {
		t.Errorf("Laptop = %v, want Dell", s.Laptop)
	}
	if len(s.Books) != 1 || s.Books[0] != "algo" {
		t.Errorf("Books = %v", s.Books)
	}
}

func TestReconstruct_TrailingOpenSession(t *testing.T) {
	events := []model.Event{
		entry("1001", t0, ""),
		exit("1001", t0.Add(time.Hour), time.Hour),
		entry("1001", t0.Add(2*time.Hour), ""),
	}

	sessions := Reconstruct(events)
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	if sessions[0].Open() {
		t.Error("first session should be closed")
	}
	if !sessions[1].Open() {
		t.Error("trailing session should be open")
	}
	if sessions[1].ExitTime != nil || sessions[1].Duration != nil {
		t.Error("open session must have nil exit time and duration")
	}
}

func TestReconstruct_ConsecutiveEntries(t *testing.T) {
	// Corrupted history: two entries in a row are never reconciled
	// retroactively; each starts its own session, the first stays open.
	events := []model.Event{
		entry("1001", t0, ""),
		entry("1001", t0.Add(time.Hour), ""),
		exit("1001", t0.Add(2*time.Hour), time.Hour),
	}

	sessions := Reconstruct(events)
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	if !sessions[0].Open() {
		t.Error("first orphaned entry should stay open")
	}
	if sessions[1].Open() {
		t.Error("second entry should pair with the exit")
	}
}

func TestReconstruct_LeadingExitDropped(t *testing.T) {
	events := []model.Event{
		exit("1001", t0, time.Hour),
		entry("1001", t0.Add(time.Hour), ""),
	}

	sessions := Reconstruct(events)
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	if !sessions[0].Open() {
		t.Error("remaining session should be the open entry")
	}
}

func TestReconstruct_MixedRollsNeverCrossPair(t *testing.T) {
	// 1001 enters, then 1002 enters, then 1001 exits. Adjacency inside a
	// roll's own sequence must pair 1001's entry with 1001's exit even
	// though 1002's entry sits between them in global time order.
	events := []model.Event{
		entry("1001", t0, "Dell"),
		entry("1002", t0.Add(10*time.Minute), ""),
		exit("1001", t0.Add(30*time.Minute), 30*time.Minute),
	}

	sessions := Reconstruct(events)
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}

	// Output ordered by roll.
	if sessions[0].Roll != "1001" || sessions[1].Roll != "1002" {
		t.Fatalf("rolls = %s, %s", sessions[0].Roll, sessions[1].Roll)
	}
	if sessions[0].Open() {
		t.Error("1001's session should be closed by its own exit")
	}
	if !sessions[1].Open() {
		t.Error("1002's session should remain open")
	}
}

func TestReconstruct_SessionsOrderedByEntryTime(t *testing.T) {
	events := []model.Event{
		entry("1001", t0, ""),
		exit("1001", t0.Add(time.Hour), time.Hour),
		entry("1001", t0.Add(2*time.Hour), ""),
		exit("1001", t0.Add(3*time.Hour), time.Hour),
		entry("1001", t0.Add(4*time.Hour), ""),
	}

	sessions := Reconstruct(events)
	if len(sessions) != 3 {
		t.Fatalf("got %d sessions, want 3", len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].EntryTime.Before(sessions[i-1].EntryTime) {
			t.Errorf("sessions out of order at %d", i)
		}
	}
	// At most one open session, and it is last.
	for i, s := range sessions {
		if s.Open() && i != len(sessions)-1 {
			t.Errorf("open session at index %d, want last only", i)
		}
	}
}

func TestReconstruct_ExitWithoutStoredDuration(t *testing.T) {
	// Exits written before stay tracking existed have no duration; the
	// reconstructor derives one from the pair's timestamps.
	exitAt := t0.Add(45 * time.Minute)
	events := []model.Event{
		entry("1001", t0, ""),
		{Roll: "1001", Kind: model.KindExit, EventTime: exitAt},
	}

	sessions := Reconstruct(events)
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	if sessions[0].Duration == nil || *sessions[0].Duration != 45*time.Minute {
		t.Errorf("Duration = %v, want derived 45m", sessions[0].Duration)
	}
}
