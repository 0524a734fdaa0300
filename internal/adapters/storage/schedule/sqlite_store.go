package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"clubhouse/internal/adapters/storage"
	domain "clubhouse/internal/domain/schedule"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new schedule store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const eventColumns = "id, title, time_range, location, type, items, event_day, event_month, event_year, created_by, created_at"

func scanEvent(scan func(dest ...any) error) (domain.Event, error) {
	var entity domain.Event
	var itemsJSON, createdAtStr string
	var month int
	err := scan(
		&entity.ID,
		&entity.Title,
		&entity.TimeRange,
		&entity.Location,
		&entity.Type,
		&itemsJSON,
		&entity.Day,
		&month,
		&entity.Year,
		&entity.CreatedBy,
		&createdAtStr,
	)
	if err != nil {
		return domain.Event{}, err
	}
	entity.Month = time.Month(month)
	if itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &entity.Items); err != nil {
			return domain.Event{}, fmt.Errorf("failed to decode items: %w", err)
		}
	}
	entity.CreatedAt, err = parseStoredTime(createdAtStr)
	if err != nil {
		return domain.Event{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return entity, nil
}

// GetByID retrieves an Event by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Event, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+eventColumns+" FROM schedule_event WHERE id = ?", id)
	entity, err := scanEvent(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Event{}, fmt.Errorf("event not found: %w", err)
	}
	return entity, err
}

// Save persists an Event to the database.
// Items are stored as a JSON array so the bring-list round trips intact.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	items := entity.Items
	if items == nil {
		items = []string{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO schedule_event (id, title, time_range, location, type, items, event_day, event_month, event_year, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			time_range=excluded.time_range,
			location=excluded.location,
			type=excluded.type,
			items=excluded.items,
			event_day=excluded.event_day,
			event_month=excluded.event_month,
			event_year=excluded.event_year`,
		entity.ID,
		entity.Title,
		entity.TimeRange,
		entity.Location,
		entity.Type,
		string(itemsJSON),
		entity.Day,
		int(entity.Month),
		entity.Year,
		entity.CreatedBy,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes an Event from the database.
// Attendance responses for the event are removed by the schema's cascade.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM schedule_event WHERE id = ?", id)
	return err
}

// List retrieves events ordered by date.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM schedule_event ORDER BY event_year, event_month, event_day LIMIT ? OFFSET ?",
		filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// ListForMonth retrieves events pinned to the given month and year, plus
// floating events whose month or year is 0 and therefore follow the
// month being viewed.
// PRE: month is 1-12, year > 0
// POST: Returns matching entities ordered by day
func (s *SQLiteStore) ListForMonth(ctx context.Context, month time.Month, year int) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+eventColumns+` FROM schedule_event
		WHERE (event_month = ? OR event_month = 0) AND (event_year = ? OR event_year = 0)
		ORDER BY event_day`,
		int(month), year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func collectEvents(rows *sql.Rows) ([]domain.Event, error) {
	var results []domain.Event
	for rows.Next() {
		entity, err := scanEvent(rows.Scan)
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

// ListTitlesByIDs resolves event IDs to titles in a single query.
// IDs that do not exist are simply absent from the result map.
// PRE: ids may be empty
// POST: Returns a map from event ID to title for every ID found
func (s *SQLiteStore) ListTitlesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	titles := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return titles, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(
		"SELECT id, title FROM schedule_event WHERE id IN (%s)",
		strings.Join(placeholders, ","),
	)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, err
		}
		titles[id] = title
	}
	return titles, rows.Err()
}
