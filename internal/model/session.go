package model

import "time"

// Session is a reconstructed visit: a matched (entry, exit) event pair for
// one roll. ExitTime and Duration are nil while the visit is still open.
// Sessions are derived on every read and never stored.
type Session struct {
	Roll      string         `json:"roll"`
	EntryTime time.Time      `json:"entryTime"`
	ExitTime  *time.Time     `json:"exitTime"`
	Duration  *time.Duration `json:"duration"`
	Laptop    *string        `json:"laptop,omitempty"`
	Books     []string       `json:"books,omitempty"`
}

// Open reports whether the session has no exit yet.
func (s *Session) Open() bool {
	return s.ExitTime == nil
}
