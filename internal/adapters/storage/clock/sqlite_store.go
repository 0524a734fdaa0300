package clock

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"clubhouse/internal/adapters/storage"
	domain "clubhouse/internal/domain/clock"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new clock store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const recordColumns = "id, member_id, date, clock_in, clock_out"

func scanRecord(scan func(dest ...any) error) (domain.Record, error) {
	var entity domain.Record
	var clockIn, clockOut sql.NullString
	err := scan(
		&entity.ID,
		&entity.MemberID,
		&entity.Date,
		&clockIn,
		&clockOut,
	)
	if err != nil {
		return domain.Record{}, err
	}
	if clockIn.Valid && clockIn.String != "" {
		entity.ClockIn, err = parseStoredTime(clockIn.String)
		if err != nil {
			return domain.Record{}, fmt.Errorf("failed to parse clock_in: %w", err)
		}
	}
	if clockOut.Valid && clockOut.String != "" {
		entity.ClockOut, err = parseStoredTime(clockOut.String)
		if err != nil {
			return domain.Record{}, fmt.Errorf("failed to parse clock_out: %w", err)
		}
	}
	return entity, nil
}

// GetByMemberAndDate retrieves a member's record for a calendar day.
// PRE: memberID is non-empty, date is YYYY-MM-DD
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByMemberAndDate(ctx context.Context, memberID string, date string) (domain.Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM clock_record WHERE member_id = ? AND date = ?",
		memberID, date)
	entity, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Record{}, fmt.Errorf("clock record not found: %w", err)
	}
	return entity, err
}

// Save persists a Record to the database.
// One record per member per day; conflicts on (member_id, date)
// overwrite the stored stamps.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var clockInVal, clockOutVal interface{}
	if !entity.ClockIn.IsZero() {
		clockInVal = entity.ClockIn.Format(time.RFC3339Nano)
	}
	if !entity.ClockOut.IsZero() {
		clockOutVal = entity.ClockOut.Format(time.RFC3339Nano)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO clock_record (id, member_id, date, clock_in, clock_out)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(member_id, date) DO UPDATE SET
			clock_in=excluded.clock_in,
			clock_out=excluded.clock_out`,
		entity.ID,
		entity.MemberID,
		entity.Date,
		clockInVal,
		clockOutVal,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// ListByMemberID retrieves all records for a member.
// PRE: memberID is non-empty
// POST: Returns records ordered by date descending
func (s *SQLiteStore) ListByMemberID(ctx context.Context, memberID string) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM clock_record WHERE member_id = ? ORDER BY date DESC",
		memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Record
	for rows.Next() {
		entity, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// ListDatesByMemberID retrieves the distinct days a member clocked in.
// PRE: memberID is non-empty
// POST: Returns YYYY-MM-DD strings, unordered set semantics
func (s *SQLiteStore) ListDatesByMemberID(ctx context.Context, memberID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT date FROM clock_record WHERE member_id = ? AND clock_in IS NOT NULL",
		memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func parseStoredTime(value string) (time.Time, error) {
	if idx := strings.Index(value, " m="); idx != -1 {
		value = value[:idx]
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999 -0700 MST",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format: %q", value)
}
