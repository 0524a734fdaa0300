package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"clubhouse/internal/adapters/storage"
	domain "clubhouse/internal/domain/attendance"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new attendance store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const responseColumns = "id, member_id, event_id, status, reason, responded_at"

func scanResponse(scan func(dest ...any) error) (domain.Response, error) {
	var entity domain.Response
	var respondedAtStr string
	err := scan(
		&entity.ID,
		&entity.MemberID,
		&entity.EventID,
		&entity.Status,
		&entity.Reason,
		&respondedAtStr,
	)
	if err != nil {
		return domain.Response{}, err
	}
	entity.RespondedAt, err = parseStoredTime(respondedAtStr)
	if err != nil {
		return domain.Response{}, fmt.Errorf("failed to parse responded_at: %w", err)
	}
	return entity, nil
}

// GetByID retrieves a Response by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Response, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+responseColumns+" FROM attendance WHERE id = ?", id)
	entity, err := scanResponse(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Response{}, fmt.Errorf("attendance response not found: %w", err)
	}
	return entity, err
}

// GetByMemberAndEvent retrieves a member's response to an event.
// PRE: memberID and eventID are non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByMemberAndEvent(ctx context.Context, memberID string, eventID string) (domain.Response, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+responseColumns+" FROM attendance WHERE member_id = ? AND event_id = ?",
		memberID, eventID)
	entity, err := scanResponse(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Response{}, fmt.Errorf("attendance response not found: %w", err)
	}
	return entity, err
}

// Save persists a Response to the database.
// A member answers each event at most once, so conflicts on the
// (member_id, event_id) pair overwrite the earlier answer.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Response) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO attendance (id, member_id, event_id, status, reason, responded_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(member_id, event_id) DO UPDATE SET
			status=excluded.status,
			reason=excluded.reason,
			responded_at=excluded.responded_at`,
		entity.ID,
		entity.MemberID,
		entity.EventID,
		entity.Status,
		entity.Reason,
		entity.RespondedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Response from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM attendance WHERE id = ?", id)
	return err
}

// ListByEventID retrieves all responses for an event.
// PRE: eventID is non-empty
// POST: Returns responses ordered by response time
func (s *SQLiteStore) ListByEventID(ctx context.Context, eventID string) ([]domain.Response, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+responseColumns+" FROM attendance WHERE event_id = ? ORDER BY responded_at",
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectResponses(rows)
}

// ListByMemberID retrieves all responses by a member.
// PRE: memberID is non-empty
// POST: Returns responses ordered by response time descending
func (s *SQLiteStore) ListByMemberID(ctx context.Context, memberID string) ([]domain.Response, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+responseColumns+" FROM attendance WHERE member_id = ? ORDER BY responded_at DESC",
		memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectResponses(rows)
}

func collectResponses(rows *sql.Rows) ([]domain.Response, error) {
	var results []domain.Response
	for rows.Next() {
		entity, err := scanResponse(rows.Scan)
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
