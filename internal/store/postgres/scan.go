package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/groblegark/gatelog/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanEvent scans a single row into a model.Event.
// The row must contain columns in the order defined by eventColumns.
func scanEvent(row scannable) (*model.Event, error) {
	var (
		e           model.Event
		laptop      sql.NullString
		books       pq.StringArray
		durationSec sql.NullInt64
	)

	err := row.Scan(
		&e.ID,
		&e.Roll,
		&e.Kind,
		&e.EventTime,
		&laptop,
		&books,
		&durationSec,
	)
	if err != nil {
		return nil, err
	}

	if laptop.Valid {
		s := laptop.String
		e.Laptop = &s
	}
	if books != nil {
		e.Books = []string(books)
	}
	if durationSec.Valid {
		d := time.Duration(durationSec.Int64) * time.Second
		e.StayDuration = &d
	}

	return &e, nil
}

func scanEvents(rows *sql.Rows) ([]model.Event, error) {
	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// nullStringPtr converts a *string to a driver value, mapping nil and ""
// to NULL so optional tags are never stored as empty strings.
func nullStringPtr(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

// textArray converts a book list to a driver value, mapping an empty list
// to NULL rather than an empty array.
func textArray(items []string) any {
	if len(items) == 0 {
		return nil
	}
	return pq.Array(items)
}
