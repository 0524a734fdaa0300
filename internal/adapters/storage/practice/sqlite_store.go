package practice

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"clubhouse/internal/adapters/storage"
	domain "clubhouse/internal/domain/practice"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new practice store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const recordColumns = "id, member_id, date, mood, menu, tags, saved_at"

func scanRecord(scan func(dest ...any) error) (domain.Record, error) {
	var entity domain.Record
	var tagsJSON, savedAtStr string
	err := scan(
		&entity.ID,
		&entity.MemberID,
		&entity.Date,
		&entity.Mood,
		&entity.Menu,
		&tagsJSON,
		&savedAtStr,
	)
	if err != nil {
		return domain.Record{}, err
	}
	if tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &entity.Tags); err != nil {
			return domain.Record{}, fmt.Errorf("failed to decode tags: %w", err)
		}
	}
	entity.SavedAt, err = parseStoredTime(savedAtStr)
	if err != nil {
		return domain.Record{}, fmt.Errorf("failed to parse saved_at: %w", err)
	}
	return entity, nil
}

// GetByID retrieves a Record by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Record, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM practice_record WHERE id = ?", id)
	entity, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Record{}, fmt.Errorf("practice record not found: %w", err)
	}
	return entity, err
}

// Save persists a Record to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	tags := entity.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO practice_record (id, member_id, date, mood, menu, tags, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date=excluded.date,
			mood=excluded.mood,
			menu=excluded.menu,
			tags=excluded.tags,
			saved_at=excluded.saved_at`,
		entity.ID,
		entity.MemberID,
		entity.Date,
		entity.Mood,
		entity.Menu,
		string(tagsJSON),
		entity.SavedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Record from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM practice_record WHERE id = ?", id)
	return err
}

// ListByMemberID retrieves all records for a member.
// PRE: memberID is non-empty
// POST: Returns records ordered by date descending
func (s *SQLiteStore) ListByMemberID(ctx context.Context, memberID string) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM practice_record WHERE member_id = ? ORDER BY date DESC",
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

// ListDatesByMemberID retrieves the distinct days a member logged practice.
// PRE: memberID is non-empty
// POST: Returns YYYY-MM-DD strings, unordered set semantics
func (s *SQLiteStore) ListDatesByMemberID(ctx context.Context, memberID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT date FROM practice_record WHERE member_id = ?",
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
