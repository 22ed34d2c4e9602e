// Package session reconstructs visit sessions from the raw event log.
//
// Reconstruction is a pure function of its input: no store access, no
// clock. Callers fetch events however they like; this package only pairs
// them.
package session

import (
	"sort"

	"github.com/groblegark/gatelog/internal/model"
)

// Reconstruct pairs entry/exit events into sessions.
//
// Events are grouped by roll first, so a mixed-roll input can never pair
// one visitor's entry with another's exit. Within a roll, events are
// walked in ascending time order and paired positionally: an entry
// immediately followed by an exit closes a session; an entry followed by
// anything else (or nothing) stays open. An exit with no immediately
// preceding unmatched entry is dropped; malformed history degrades to
// best-effort pairing rather than an error, since events are immutable.
//
// The result is ordered by roll, then entry time. Per roll, at most the
// final session can be open.
func Reconstruct(events []model.Event) []model.Session {
	if len(events) == 0 {
		return nil
	}

	byRoll := make(map[string][]model.Event)
	var rolls []string
	for _, e := range events {
		if _, seen := byRoll[e.Roll]; !seen {
			rolls = append(rolls, e.Roll)
		}
		byRoll[e.Roll] = append(byRoll[e.Roll], e)
	}
	sort.Strings(rolls)

	var sessions []model.Session
	for _, roll := range rolls {
		sessions = append(sessions, pairRoll(byRoll[roll])...)
	}
	return sessions
}

// pairRoll runs the positional adjacency scan over a single roll's events.
// The input must already be in ascending event_time order.
func pairRoll(events []model.Event) []model.Session {
	var sessions []model.Session
	for i := 0; i < len(events); i++ {
		e := events[i]
		if e.Kind != model.KindEntry {
			// Exit with no unmatched entry right before it: dropped.
			continue
		}

		s := model.Session{
			Roll:      e.Roll,
			EntryTime: e.EventTime,
			Laptop:    e.Laptop,
			Books:     e.Books,
		}

		if i+1 < len(events) && events[i+1].Kind == model.KindExit {
			next := events[i+1]
			exitTime := next.EventTime
			s.ExitTime = &exitTime
			if next.StayDuration != nil {
				d := *next.StayDuration
				s.Duration = &d
			} else {
				d := exitTime.Sub(e.EventTime)
				s.Duration = &d
			}
			i++ // consume the matched exit
		}

		sessions = append(sessions, s)
	}
	return sessions
}
