package model

import (
	"time"
)

// EventKind distinguishes entry events from exit events.
type EventKind string

const (
	KindEntry EventKind = "entry"
	KindExit  EventKind = "exit"
)

// String returns the string representation of the kind.
func (k EventKind) String() string {
	return string(k)
}

// IsValid checks whether the kind is a known value.
func (k EventKind) IsValid() bool {
	switch k {
	case KindEntry, KindExit:
		return true
	}
	return false
}

// Event is one immutable row of the append-only visit log.
//
// Laptop and Books are recorded on entry and copied onto the paired exit;
// StayDuration is populated only on exit events.
type Event struct {
	ID        int64     `json:"id"`
	Roll      string    `json:"roll"`
	Kind      EventKind `json:"kind"`
	EventTime time.Time `json:"eventTime"`

	Laptop       *string        `json:"laptop,omitempty"`
	Books        []string       `json:"books,omitempty"`
	StayDuration *time.Duration `json:"stayDuration,omitempty"`
}

// HasLaptop reports whether the event carries a laptop tag.
func (e *Event) HasLaptop() bool {
	return e.Laptop != nil && *e.Laptop != ""
}

// Visitor is a registered identity consulted at the ingestion boundary.
type Visitor struct {
	Roll         string    `json:"roll"`
	Name         string    `json:"name"`
	CardID       string    `json:"cardId"`
	RegisteredAt time.Time `json:"registeredAt"`
}
