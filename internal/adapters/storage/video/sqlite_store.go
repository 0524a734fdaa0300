package video

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"clubhouse/internal/adapters/storage"
	domain "clubhouse/internal/domain/video"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new video store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const folderColumns = "id, name, created_at"
const videoColumns = "id, member_id, title, match_date, opponent, video_url, note, folder_id, created_at"

func scanFolder(scan func(dest ...any) error) (domain.Folder, error) {
	var entity domain.Folder
	var createdAtStr string
	err := scan(&entity.ID, &entity.Name, &createdAtStr)
	if err != nil {
		return domain.Folder{}, err
	}
	entity.CreatedAt, err = parseStoredTime(createdAtStr)
	if err != nil {
		return domain.Folder{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return entity, nil
}

func scanVideo(scan func(dest ...any) error) (domain.MatchVideo, error) {
	var entity domain.MatchVideo
	var folderID sql.NullString
	var createdAtStr string
	err := scan(
		&entity.ID,
		&entity.MemberID,
		&entity.Title,
		&entity.MatchDate,
		&entity.Opponent,
		&entity.VideoURL,
		&entity.Note,
		&folderID,
		&createdAtStr,
	)
	if err != nil {
		return domain.MatchVideo{}, err
	}
	if folderID.Valid {
		entity.FolderID = folderID.String
	}
	entity.CreatedAt, err = parseStoredTime(createdAtStr)
	if err != nil {
		return domain.MatchVideo{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return entity, nil
}

// GetFolderByID retrieves a Folder by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetFolderByID(ctx context.Context, id string) (domain.Folder, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+folderColumns+" FROM video_folder WHERE id = ?", id)
	entity, err := scanFolder(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Folder{}, fmt.Errorf("video folder not found: %w", err)
	}
	return entity, err
}

// SaveFolder persists a Folder to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) SaveFolder(ctx context.Context, entity domain.Folder) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO video_folder (id, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name`,
		entity.ID,
		entity.Name,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// DeleteFolder removes a Folder from the database.
// Videos filed in the folder become unfiled through the schema's SET NULL.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) DeleteFolder(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM video_folder WHERE id = ?", id)
	return err
}

// ListFolders retrieves all folders ordered by creation time.
// POST: Returns all folders
func (s *SQLiteStore) ListFolders(ctx context.Context) ([]domain.Folder, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+folderColumns+" FROM video_folder ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Folder
	for rows.Next() {
		entity, err := scanFolder(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// GetVideoByID retrieves a MatchVideo by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetVideoByID(ctx context.Context, id string) (domain.MatchVideo, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+videoColumns+" FROM match_video WHERE id = ?", id)
	entity, err := scanVideo(row.Scan)
	if err == sql.ErrNoRows {
		return domain.MatchVideo{}, fmt.Errorf("match video not found: %w", err)
	}
	return entity, err
}

// SaveVideo persists a MatchVideo to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) SaveVideo(ctx context.Context, entity domain.MatchVideo) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var folderIDVal interface{}
	if entity.FolderID != "" {
		folderIDVal = entity.FolderID
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO match_video (id, member_id, title, match_date, opponent, video_url, note, folder_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			match_date=excluded.match_date,
			opponent=excluded.opponent,
			video_url=excluded.video_url,
			note=excluded.note,
			folder_id=excluded.folder_id`,
		entity.ID,
		entity.MemberID,
		entity.Title,
		entity.MatchDate,
		entity.Opponent,
		entity.VideoURL,
		entity.Note,
		folderIDVal,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteVideo removes a MatchVideo from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) DeleteVideo(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM match_video WHERE id = ?", id)
	return err
}

// ListVideos retrieves videos ordered by match date descending.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) ListVideos(ctx context.Context, filter ListFilter) ([]domain.MatchVideo, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+videoColumns+" FROM match_video ORDER BY match_date DESC LIMIT ? OFFSET ?",
		filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectVideos(rows)
}

// ListVideosByMemberID retrieves all videos uploaded by a member.
// PRE: memberID is non-empty
// POST: Returns videos ordered by match date descending
func (s *SQLiteStore) ListVideosByMemberID(ctx context.Context, memberID string) ([]domain.MatchVideo, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+videoColumns+" FROM match_video WHERE member_id = ? ORDER BY match_date DESC",
		memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectVideos(rows)
}

// ListVideosByFolderID retrieves all videos filed in a folder.
// PRE: folderID is non-empty
// POST: Returns videos ordered by match date descending
func (s *SQLiteStore) ListVideosByFolderID(ctx context.Context, folderID string) ([]domain.MatchVideo, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+videoColumns+" FROM match_video WHERE folder_id = ? ORDER BY match_date DESC",
		folderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectVideos(rows)
}

func collectVideos(rows *sql.Rows) ([]domain.MatchVideo, error) {
	var results []domain.MatchVideo
	for rows.Next() {
		entity, err := scanVideo(rows.Scan)
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
