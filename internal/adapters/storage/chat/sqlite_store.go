package chat

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"clubhouse/internal/adapters/storage"
	domain "clubhouse/internal/domain/chat"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new chat store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const roomColumns = "id, name, category, avatar_url, created_at"
const messageColumns = "id, room_id, sender_id, content, created_at"

func scanRoom(scan func(dest ...any) error) (domain.Room, error) {
	var entity domain.Room
	var createdAtStr string
	err := scan(
		&entity.ID,
		&entity.Name,
		&entity.Category,
		&entity.AvatarURL,
		&createdAtStr,
	)
	if err != nil {
		return domain.Room{}, err
	}
	entity.CreatedAt, err = parseStoredTime(createdAtStr)
	if err != nil {
		return domain.Room{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return entity, nil
}

func scanMessage(scan func(dest ...any) error) (domain.Message, error) {
	var entity domain.Message
	var createdAtStr string
	err := scan(
		&entity.ID,
		&entity.RoomID,
		&entity.SenderID,
		&entity.Content,
		&createdAtStr,
	)
	if err != nil {
		return domain.Message{}, err
	}
	entity.CreatedAt, err = parseStoredTime(createdAtStr)
	if err != nil {
		return domain.Message{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return entity, nil
}

// GetRoomByID retrieves a Room by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetRoomByID(ctx context.Context, id string) (domain.Room, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+roomColumns+" FROM chat_room WHERE id = ?", id)
	entity, err := scanRoom(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Room{}, fmt.Errorf("chat room not found: %w", err)
	}
	return entity, err
}

// SaveRoom persists a Room to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) SaveRoom(ctx context.Context, entity domain.Room) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO chat_room (id, name, category, avatar_url, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			category=excluded.category,
			avatar_url=excluded.avatar_url`,
		entity.ID,
		entity.Name,
		entity.Category,
		entity.AvatarURL,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteRoom removes a Room from the database.
// Messages and receipts in the room are removed by the schema's cascade.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) DeleteRoom(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chat_room WHERE id = ?", id)
	return err
}

// ListRooms retrieves all rooms ordered by creation time.
// POST: Returns all rooms
func (s *SQLiteStore) ListRooms(ctx context.Context) ([]domain.Room, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+roomColumns+" FROM chat_room ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Room
	for rows.Next() {
		entity, err := scanRoom(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// GetMessageByID retrieves a Message by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetMessageByID(ctx context.Context, id string) (domain.Message, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+messageColumns+" FROM chat_message WHERE id = ?", id)
	entity, err := scanMessage(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Message{}, fmt.Errorf("chat message not found: %w", err)
	}
	return entity, err
}

// SaveMessage persists a Message to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) SaveMessage(ctx context.Context, entity domain.Message) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO chat_message (id, room_id, sender_id, content, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content=excluded.content`,
		entity.ID,
		entity.RoomID,
		entity.SenderID,
		entity.Content,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteMessage removes a Message from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) DeleteMessage(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chat_message WHERE id = ?", id)
	return err
}

// ListMessagesByRoomID retrieves messages in a room, oldest first.
// PRE: roomID is non-empty, filter has valid parameters
// POST: Returns messages ordered by creation time ascending
func (s *SQLiteStore) ListMessagesByRoomID(ctx context.Context, roomID string, filter ListFilter) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+messageColumns+" FROM chat_message WHERE room_id = ? ORDER BY created_at LIMIT ? OFFSET ?",
		roomID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Message
	for rows.Next() {
		entity, err := scanMessage(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// LatestMessagesByRoomIDs retrieves the newest message of each room in a
// single query. Rooms with no messages are absent from the result map.
// PRE: roomIDs may be empty
// POST: Returns a map from room ID to its latest message
func (s *SQLiteStore) LatestMessagesByRoomIDs(ctx context.Context, roomIDs []string) (map[string]domain.Message, error) {
	latest := make(map[string]domain.Message, len(roomIDs))
	if len(roomIDs) == 0 {
		return latest, nil
	}
	placeholders := make([]string, len(roomIDs))
	args := make([]any, len(roomIDs))
	for i, id := range roomIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(
		`SELECT %s FROM chat_message
		WHERE room_id IN (%s)
		GROUP BY room_id
		HAVING created_at = MAX(created_at)`,
		messageColumns, strings.Join(placeholders, ","),
	)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		entity, err := scanMessage(rows.Scan)
		if err != nil {
			return nil, err
		}
		latest[entity.RoomID] = entity
	}
	return latest, rows.Err()
}

// MarkRead records that a member has read a message.
// Re-reading keeps the first read_at.
// PRE: receipt has been validated
// POST: Receipt for (message_id, member_id) exists
func (s *SQLiteStore) MarkRead(ctx context.Context, receipt domain.ReadReceipt) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_message_read (message_id, member_id, read_at)
		VALUES (?, ?, ?)
		ON CONFLICT(message_id, member_id) DO NOTHING`,
		receipt.MessageID,
		receipt.MemberID,
		receipt.ReadAt.Format(time.RFC3339Nano),
	)
	return err
}

// CountReadsByMessageIDs counts receipts per message in a single query.
// Messages with no receipts are absent from the result map.
// PRE: messageIDs may be empty
// POST: Returns a map from message ID to receipt count
func (s *SQLiteStore) CountReadsByMessageIDs(ctx context.Context, messageIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(messageIDs))
	if len(messageIDs) == 0 {
		return counts, nil
	}
	placeholders := make([]string, len(messageIDs))
	args := make([]any, len(messageIDs))
	for i, id := range messageIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(
		`SELECT message_id, COUNT(*) FROM chat_message_read
		WHERE message_id IN (%s) GROUP BY message_id`,
		strings.Join(placeholders, ","),
	)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
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
