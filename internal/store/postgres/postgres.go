// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/groblegark/gatelog/internal/model"
	"github.com/groblegark/gatelog/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// RecordEntry appends an entry event for roll unless the roll is already
// inside. The read-then-append guard runs inside a transaction holding an
// advisory lock keyed by the roll, so concurrent entries for the same roll
// serialize and cannot both observe "not inside".
func (s *PostgresStore) RecordEntry(ctx context.Context, roll string, laptop *string, books []string) (*model.Event, error) {
	var ev *model.Event
	err := s.withRollLock(ctx, roll, func(tx *sql.Tx) error {
		lastEntry, err := queryLatestByKind(ctx, tx, roll, model.KindEntry)
		if err != nil {
			return err
		}
		lastExit, err := queryLatestByKind(ctx, tx, roll, model.KindExit)
		if err != nil {
			return err
		}

		if isInside(lastEntry, lastExit) {
			return store.ErrAlreadyInside
		}

		ev = &model.Event{
			Roll:      roll,
			Kind:      model.KindEntry,
			EventTime: time.Now().UTC(),
			Laptop:    laptop,
			Books:     books,
		}
		return queryInsertEvent(ctx, tx, ev)
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// RecordExit appends an exit event matched against the roll's latest entry.
// Laptop and books are copied forward from that entry; the caller supplies
// nothing besides the roll.
func (s *PostgresStore) RecordExit(ctx context.Context, roll string) (*model.Event, error) {
	var ev *model.Event
	err := s.withRollLock(ctx, roll, func(tx *sql.Tx) error {
		lastEntry, err := queryLatestByKind(ctx, tx, roll, model.KindEntry)
		if err != nil {
			return err
		}
		if lastEntry == nil {
			return store.ErrNoPriorEntry
		}
		lastExit, err := queryLatestByKind(ctx, tx, roll, model.KindExit)
		if err != nil {
			return err
		}
		if lastExit != nil && lastExit.EventTime.After(lastEntry.EventTime) {
			return store.ErrAlreadyExited
		}

		now := time.Now().UTC()
		duration := now.Sub(lastEntry.EventTime)
		if duration < 0 {
			// Clock went backward; never store a negative stay.
			slog.Warn("negative stay duration clamped to zero",
				"roll", roll, "entry_time", lastEntry.EventTime, "exit_time", now)
			duration = 0
		}

		ev = &model.Event{
			Roll:         roll,
			Kind:         model.KindExit,
			EventTime:    now,
			Laptop:       lastEntry.Laptop,
			Books:        lastEntry.Books,
			StayDuration: &duration,
		}
		return queryInsertEvent(ctx, tx, ev)
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// isInside applies the occupancy rule: a roll is inside iff it has an
// entry with no later exit.
func isInside(lastEntry, lastExit *model.Event) bool {
	if lastEntry == nil {
		return false
	}
	return lastExit == nil || lastExit.EventTime.Before(lastEntry.EventTime)
}

// withRollLock runs fn in a transaction that holds pg_advisory_xact_lock
// keyed by the roll. The lock releases automatically on commit/rollback.
func (s *PostgresStore) withRollLock(ctx context.Context, roll string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, roll); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("acquire roll lock: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) EventsByRoll(ctx context.Context, roll string) ([]model.Event, error) {
	return queryEventsByRoll(ctx, s.db, roll)
}

func (s *PostgresStore) EventsInWindow(ctx context.Context, start, end time.Time) ([]model.Event, error) {
	return queryEventsInWindow(ctx, s.db, start, end)
}

func (s *PostgresStore) LatestByKind(ctx context.Context, roll string, kind model.EventKind) (*model.Event, error) {
	return queryLatestByKind(ctx, s.db, roll, kind)
}

func (s *PostgresStore) EventsForHistory(ctx context.Context, roll string, start, end time.Time) ([]model.Event, error) {
	return queryEventsForHistory(ctx, s.db, roll, start, end)
}

func (s *PostgresStore) AllEvents(ctx context.Context) ([]model.Event, error) {
	return queryAllEvents(ctx, s.db)
}

func (s *PostgresStore) CurrentOccupancy(ctx context.Context, now time.Time) (*model.Occupancy, error) {
	return queryCurrentOccupancy(ctx, s.db, now)
}

func (s *PostgresStore) DayStats(ctx context.Context, day time.Time) (*model.DayStats, error) {
	return queryDayStats(ctx, s.db, day)
}

func (s *PostgresStore) MonthStats(ctx context.Context, month time.Time) (*model.MonthStats, error) {
	return queryMonthStats(ctx, s.db, month)
}

func (s *PostgresStore) YearStats(ctx context.Context, year time.Time) (*model.YearStats, error) {
	return queryYearStats(ctx, s.db, year)
}

func (s *PostgresStore) RangeSeries(ctx context.Context, start, end time.Time) ([]model.RangePoint, error) {
	return queryRangeSeries(ctx, s.db, start, end)
}

func (s *PostgresStore) CreateVisitor(ctx context.Context, v *model.Visitor) error {
	return queryCreateVisitor(ctx, s.db, v)
}

func (s *PostgresStore) GetVisitor(ctx context.Context, roll string) (*model.Visitor, error) {
	return queryGetVisitor(ctx, s.db, roll)
}

func (s *PostgresStore) ListVisitors(ctx context.Context) ([]*model.Visitor, error) {
	return queryListVisitors(ctx, s.db)
}
