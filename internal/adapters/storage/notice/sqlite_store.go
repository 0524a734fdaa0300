package notice

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"clubhouse/internal/adapters/storage"
	domain "clubhouse/internal/domain/notice"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new notice store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const noticeColumns = "id, type, title, content, created_by, created_at"

func scanNotice(scan func(dest ...any) error) (domain.Notice, error) {
	var entity domain.Notice
	var createdAtStr string
	err := scan(
		&entity.ID,
		&entity.Type,
		&entity.Title,
		&entity.Content,
		&entity.CreatedBy,
		&createdAtStr,
	)
	if err != nil {
		return domain.Notice{}, err
	}
	entity.CreatedAt, err = parseStoredTime(createdAtStr)
	if err != nil {
		return domain.Notice{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return entity, nil
}

// GetByID retrieves a Notice by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Notice, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+noticeColumns+" FROM notice WHERE id = ?", id)
	entity, err := scanNotice(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Notice{}, fmt.Errorf("notice not found: %w", err)
	}
	return entity, err
}

// Save persists a Notice to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Notice) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO notice (id, type, title, content, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type=excluded.type,
			title=excluded.title,
			content=excluded.content`,
		entity.ID,
		entity.Type,
		entity.Title,
		entity.Content,
		entity.CreatedBy,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Notice from the database.
// Read marks for the notice are removed by the schema's cascade.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM notice WHERE id = ?", id)
	return err
}

// List retrieves notices ordered by creation time descending.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Notice, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+noticeColumns+" FROM notice ORDER BY created_at DESC LIMIT ? OFFSET ?",
		filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Notice
	for rows.Next() {
		entity, err := scanNotice(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// MarkRead records that a member has read a notice.
// Re-reading keeps the first read_at.
// PRE: mark has been validated
// POST: Mark for (notice_id, member_id) exists
func (s *SQLiteStore) MarkRead(ctx context.Context, mark domain.ReadMark) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notice_read (notice_id, member_id, read_at)
		VALUES (?, ?, ?)
		ON CONFLICT(notice_id, member_id) DO NOTHING`,
		mark.NoticeID,
		mark.MemberID,
		mark.ReadAt.Format(time.RFC3339Nano),
	)
	return err
}

// ListReadNoticeIDs retrieves the notices a member has marked read.
// PRE: memberID is non-empty
// POST: Returns notice IDs, unordered set semantics
func (s *SQLiteStore) ListReadNoticeIDs(ctx context.Context, memberID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT notice_id FROM notice_read WHERE member_id = ?", memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
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
