package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/groblegark/gatelog/internal/model"
	"github.com/groblegark/gatelog/internal/store"
)

// eventColumns is the column list used for SELECT statements on the events table.
const eventColumns = `id, roll, kind, event_time, laptop, books, stay_duration_s`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryInsertEvent(ctx context.Context, db executor, e *model.Event) error {
	var durationSec any
	if e.StayDuration != nil {
		durationSec = int64(e.StayDuration.Seconds())
	}

	err := db.QueryRowContext(ctx, `
		INSERT INTO events (roll, kind, event_time, laptop, books, stay_duration_s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		e.Roll,
		string(e.Kind),
		e.EventTime,
		nullStringPtr(e.Laptop),
		textArray(e.Books),
		durationSec,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// queryLatestByKind returns the roll's most recent event of the given kind,
// or nil when none exists.
func queryLatestByKind(ctx context.Context, db executor, roll string, kind model.EventKind) (*model.Event, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE roll = $1 AND kind = $2
		ORDER BY event_time DESC, id DESC
		LIMIT 1`,
		roll, string(kind),
	)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func queryEventsByRoll(ctx context.Context, db executor, roll string) ([]model.Event, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE roll = $1
		ORDER BY event_time ASC, id ASC`,
		roll,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func queryEventsInWindow(ctx context.Context, db executor, start, end time.Time) ([]model.Event, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE event_time >= $1 AND event_time < $2
		ORDER BY event_time ASC, id ASC`,
		start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// queryEventsForHistory orders by roll before event_time so adjacent rows
// in the result belong to the same roll, which is what positional session
// pairing needs. A zero start/end disables the window condition.
func queryEventsForHistory(ctx context.Context, db executor, roll string, start, end time.Time) ([]model.Event, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if roll != "" {
		whereClauses = append(whereClauses, "roll = "+nextArg())
		args = append(args, roll)
	}
	if !start.IsZero() && !end.IsZero() {
		a, b := nextArg(), nextArg()
		whereClauses = append(whereClauses, "event_time >= "+a+" AND event_time < "+b)
		args = append(args, start, end)
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(whereClauses) > 0 {
		query += ` WHERE ` + strings.Join(whereClauses, " AND ")
	}
	query += ` ORDER BY roll ASC, event_time ASC, id ASC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func queryAllEvents(ctx context.Context, db executor) ([]model.Event, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events
		ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// queryCurrentOccupancy finds rolls that are inside by anti-join: entry
// events with no later exit for the same roll. Elapsed time is measured
// against the caller-supplied now and floored to whole minutes.
func queryCurrentOccupancy(ctx context.Context, db executor, now time.Time) (*model.Occupancy, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT l.roll, l.event_time, l.laptop
		FROM events l
		WHERE l.kind = 'entry'
		  AND NOT EXISTS (
		    SELECT 1 FROM events l2
		    WHERE l2.roll = l.roll
		      AND l2.kind = 'exit'
		      AND l2.event_time > l.event_time
		  )
		ORDER BY l.event_time DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	occ := &model.Occupancy{Current: []model.CurrentVisitor{}}
	for rows.Next() {
		var (
			cv     model.CurrentVisitor
			laptop sql.NullString
		)
		if err := rows.Scan(&cv.Roll, &cv.EntryTime, &laptop); err != nil {
			return nil, err
		}
		cv.HasLaptop = laptop.Valid && laptop.String != ""
		cv.DurationMinutes = int(now.Sub(cv.EntryTime).Minutes())
		if cv.DurationMinutes < 0 {
			cv.DurationMinutes = 0
		}
		occ.Current = append(occ.Current, cv)
		if cv.HasLaptop {
			occ.LaptopCount++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	occ.Count = len(occ.Current)
	return occ, nil
}

func queryDayStats(ctx context.Context, db executor, day time.Time) (*model.DayStats, error) {
	start, end := model.DayWindow(day)

	var (
		totalEntries   int
		uniqueStudents int
		laptopUsers    int
		avgStay        sql.NullFloat64
	)
	err := db.QueryRowContext(ctx, `
		WITH day_logs AS (
		  SELECT * FROM events WHERE event_time >= $1 AND event_time < $2
		)
		SELECT
		  (SELECT COUNT(*) FROM day_logs WHERE kind = 'entry') AS total_entries,
		  (SELECT COUNT(DISTINCT roll) FROM day_logs WHERE kind = 'entry') AS unique_students,
		  (SELECT COUNT(*) FROM day_logs WHERE kind = 'entry' AND laptop IS NOT NULL) AS laptop_users,
		  (SELECT TRUNC(AVG(stay_duration_s) / 60) FROM day_logs WHERE kind = 'exit' AND stay_duration_s IS NOT NULL) AS avg_stay_minutes`,
		start, end,
	).Scan(&totalEntries, &uniqueStudents, &laptopUsers, &avgStay)
	if err != nil {
		return nil, err
	}

	st := &model.DayStats{
		Date:                start.Format(model.DateLayout),
		TotalEntries:        totalEntries,
		TotalUniqueStudents: uniqueStudents,
		LaptopUsersCount:    laptopUsers,
	}
	if avgStay.Valid {
		st.AvgStayMinutes = int(avgStay.Float64)
	}
	return st, nil
}

func queryMonthStats(ctx context.Context, db executor, month time.Time) (*model.MonthStats, error) {
	start, end := model.MonthWindow(month)

	st := &model.MonthStats{
		Month:          start.Format(model.MonthLayout),
		DailyBreakdown: map[string]int{},
	}
	err := db.QueryRowContext(ctx, `
		SELECT
		  COUNT(*) AS total_entries,
		  COUNT(DISTINCT roll) AS unique_students,
		  COUNT(*) FILTER (WHERE laptop IS NOT NULL) AS laptop_users
		FROM events
		WHERE kind = 'entry' AND event_time >= $1 AND event_time < $2`,
		start, end,
	).Scan(&st.TotalEntries, &st.UniqueStudents, &st.LaptopUsers)
	if err != nil {
		return nil, err
	}

	if err := queryEntryBreakdown(ctx, db, "YYYY-MM-DD", start, end, st.DailyBreakdown); err != nil {
		return nil, err
	}
	return st, nil
}

func queryYearStats(ctx context.Context, db executor, year time.Time) (*model.YearStats, error) {
	start, end := model.YearWindow(year)

	st := &model.YearStats{
		Year:               start.Format(model.YearLayout),
		MonthWiseBreakdown: map[string]int{},
	}
	err := db.QueryRowContext(ctx, `
		SELECT
		  COUNT(*) AS total_entries,
		  COUNT(DISTINCT roll) AS unique_students,
		  COUNT(*) FILTER (WHERE laptop IS NOT NULL) AS total_laptop_entries
		FROM events
		WHERE kind = 'entry' AND event_time >= $1 AND event_time < $2`,
		start, end,
	).Scan(&st.TotalEntries, &st.UniqueStudents, &st.TotalLaptopEntries)
	if err != nil {
		return nil, err
	}

	if err := queryEntryBreakdown(ctx, db, "YYYY-MM", start, end, st.MonthWiseBreakdown); err != nil {
		return nil, err
	}
	return st, nil
}

// queryEntryBreakdown groups entry events by the given to_char period
// format within [start, end). Periods with no entries never appear as
// keys; callers treat missing keys as zero.
func queryEntryBreakdown(ctx context.Context, db executor, periodFormat string, start, end time.Time, out map[string]int) error {
	rows, err := db.QueryContext(ctx, `
		SELECT to_char(event_time AT TIME ZONE 'UTC', $1) AS period, COUNT(*) AS entries
		FROM events
		WHERE kind = 'entry' AND event_time >= $2 AND event_time < $3
		GROUP BY period
		ORDER BY period`,
		periodFormat, start, end,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			period  string
			entries int
		)
		if err := rows.Scan(&period, &entries); err != nil {
			return err
		}
		out[period] = entries
	}
	return rows.Err()
}

// queryRangeSeries produces one row per calendar day in [start, end]
// inclusive, zero-filled: a generated day spine left-joined against the
// per-day entry counts.
func queryRangeSeries(ctx context.Context, db executor, start, end time.Time) ([]model.RangePoint, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT
		  to_char(d.day, 'YYYY-MM-DD') AS date,
		  COALESCE(e.count, 0)::integer AS entries
		FROM generate_series($1::date, $2::date, '1 day'::interval) AS d(day)
		LEFT JOIN (
		  SELECT (event_time AT TIME ZONE 'UTC')::date AS day, COUNT(*) AS count
		  FROM events
		  WHERE kind = 'entry'
		  GROUP BY day
		) AS e ON d.day = e.day
		ORDER BY d.day`,
		start.Format(model.DateLayout), end.Format(model.DateLayout),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series []model.RangePoint
	for rows.Next() {
		var p model.RangePoint
		if err := rows.Scan(&p.Date, &p.Entries); err != nil {
			return nil, err
		}
		series = append(series, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return series, nil
}

func queryCreateVisitor(ctx context.Context, db executor, v *model.Visitor) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO visitors (roll, name, card_id, registered_at)
		VALUES ($1, $2, $3, $4)`,
		v.Roll, v.Name, v.CardID, v.RegisteredAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return store.ErrDuplicateVisitor
	}
	return err
}

func queryGetVisitor(ctx context.Context, db executor, roll string) (*model.Visitor, error) {
	row := db.QueryRowContext(ctx, `
		SELECT roll, name, card_id, registered_at FROM visitors WHERE roll = $1`,
		roll,
	)
	var v model.Visitor
	if err := row.Scan(&v.Roll, &v.Name, &v.CardID, &v.RegisteredAt); err != nil {
		return nil, err
	}
	return &v, nil
}

func queryListVisitors(ctx context.Context, db executor) ([]*model.Visitor, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT roll, name, card_id, registered_at FROM visitors ORDER BY roll ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visitors []*model.Visitor
	for rows.Next() {
		var v model.Visitor
		if err := rows.Scan(&v.Roll, &v.Name, &v.CardID, &v.RegisteredAt); err != nil {
			return nil, err
		}
		visitors = append(visitors, &v)
	}
	return visitors, rows.Err()
}
