package absence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"clubhouse/internal/adapters/storage"
	domain "clubhouse/internal/domain/absence"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new absence store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const reportColumns = "id, member_id, event_title, reason, created_at"

func scanReport(scan func(dest ...any) error) (domain.Report, error) {
	var entity domain.Report
	var createdAtStr string
	err := scan(
		&entity.ID,
		&entity.MemberID,
		&entity.EventTitle,
		&entity.Reason,
		&createdAtStr,
	)
	if err != nil {
		return domain.Report{}, err
	}
	entity.CreatedAt, err = parseStoredTime(createdAtStr)
	if err != nil {
		return domain.Report{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return entity, nil
}

// Save persists a Report to the database.
// Reports are append-only; there is no update path.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Report) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO absence_report (id, member_id, event_title, reason, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		entity.ID,
		entity.MemberID,
		entity.EventTitle,
		entity.Reason,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// ListByMemberID retrieves all reports filed by a member.
// PRE: memberID is non-empty
// POST: Returns reports ordered by creation time descending
func (s *SQLiteStore) ListByMemberID(ctx context.Context, memberID string) ([]domain.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+reportColumns+" FROM absence_report WHERE member_id = ? ORDER BY created_at DESC",
		memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReports(rows)
}

// List retrieves reports ordered by creation time descending.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+reportColumns+" FROM absence_report ORDER BY created_at DESC LIMIT ? OFFSET ?",
		filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReports(rows)
}

func collectReports(rows *sql.Rows) ([]domain.Report, error) {
	var results []domain.Report
	for rows.Next() {
		entity, err := scanReport(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
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
