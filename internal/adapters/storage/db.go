package storage

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// migration applies one schema change. Migrations run inside a transaction
// and are recorded in schema_version; they must be safe to re-run reasoning
// only from the recorded version.
type migration struct {
	version int
	name    string
	apply   func(tx *sql.Tx) error
}

var migrations = []migration{
	{1, "baseline schema", migrateBaseline},
	{2, "hot-path indexes", migrateIndexes},
}

// LatestSchemaVersion returns the version the database should be at.
// PRE: none
// POST: returns the highest known migration version
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion reads the current schema version from the database.
// PRE: db is a valid connection
// POST: returns 0 for a fresh database, the recorded version otherwise
func SchemaVersion(db *sql.DB) (int, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER NOT NULL
	)`); err != nil {
		return 0, fmt.Errorf("failed to ensure schema_version table: %w", err)
	}
	var version sql.NullInt64
	err := db.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}

// MigrateDB brings the database schema up to the latest version.
// A file-level backup is taken before upgrading an existing on-disk database.
// PRE: db is a valid connection; dbPath is the file path or ":memory:"
// POST: schema is at LatestSchemaVersion(); already-current databases are untouched
func MigrateDB(db *sql.DB, dbPath string) error {
	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}
	if current >= LatestSchemaVersion() {
		return nil
	}

	// Upgrading an existing file: keep a copy in case a migration goes wrong.
	if current > 0 && dbPath != ":memory:" {
		if err := backupFile(dbPath); err != nil {
			return fmt.Errorf("failed to back up database before migration: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: %w", m.version, err)
		}
		if err := m.apply(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: failed to record version: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: %w", m.version, err)
		}
		slog.Info("schema_migrated", "version", m.version, "name", m.name)
	}
	return nil
}

func backupFile(path string) error {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer src.Close()

	dst, err := os.Create(path + ".bak")
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// migrateBaseline creates all tables. Dates are TEXT YYYY-MM-DD, timestamps
// TEXT RFC3339. Attendance cascades with its event; chat artifacts cascade
// with their room/message.
func migrateBaseline(tx *sql.Tx) error {
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS member (
		id TEXT PRIMARY KEY,
		account_id TEXT,
		name TEXT NOT NULL,
		team TEXT NOT NULL DEFAULT '',
		position TEXT NOT NULL DEFAULT '',
		number INTEGER NOT NULL DEFAULT 0,
		course TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (account_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS schedule_event (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		time_range TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL,
		items TEXT NOT NULL DEFAULT '[]',
		event_day INTEGER NOT NULL,
		event_month INTEGER NOT NULL DEFAULT 0,
		event_year INTEGER NOT NULL DEFAULT 0,
		created_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS attendance (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		event_id TEXT NOT NULL,
		status TEXT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		responded_at TEXT NOT NULL,
		UNIQUE (member_id, event_id),
		FOREIGN KEY (member_id) REFERENCES member(id),
		FOREIGN KEY (event_id) REFERENCES schedule_event(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS clock_record (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		date TEXT NOT NULL,
		clock_in TEXT,
		clock_out TEXT,
		UNIQUE (member_id, date),
		FOREIGN KEY (member_id) REFERENCES member(id)
	);

	CREATE TABLE IF NOT EXISTS practice_record (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		date TEXT NOT NULL,
		mood TEXT NOT NULL DEFAULT '',
		menu TEXT NOT NULL,
		tags TEXT NOT NULL DEFAULT '[]',
		saved_at TEXT NOT NULL,
		FOREIGN KEY (member_id) REFERENCES member(id)
	);

	CREATE TABLE IF NOT EXISTS absence_report (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		event_title TEXT NOT NULL,
		reason TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (member_id) REFERENCES member(id)
	);

	CREATE TABLE IF NOT EXISTS chat_room (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '連絡',
		avatar_url TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS chat_message (
		id TEXT PRIMARY KEY,
		room_id TEXT NOT NULL,
		sender_id TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (room_id) REFERENCES chat_room(id) ON DELETE CASCADE,
		FOREIGN KEY (sender_id) REFERENCES member(id)
	);

	CREATE TABLE IF NOT EXISTS chat_message_read (
		message_id TEXT NOT NULL,
		member_id TEXT NOT NULL,
		read_at TEXT NOT NULL,
		PRIMARY KEY (message_id, member_id),
		FOREIGN KEY (message_id) REFERENCES chat_message(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS notice (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		created_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS notice_read (
		notice_id TEXT NOT NULL,
		member_id TEXT NOT NULL,
		read_at TEXT NOT NULL,
		PRIMARY KEY (notice_id, member_id),
		FOREIGN KEY (notice_id) REFERENCES notice(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS video_folder (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS match_video (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		title TEXT NOT NULL,
		match_date TEXT NOT NULL,
		opponent TEXT NOT NULL DEFAULT '',
		video_url TEXT NOT NULL DEFAULT '',
		note TEXT NOT NULL DEFAULT '',
		folder_id TEXT,
		created_at TEXT NOT NULL,
		FOREIGN KEY (member_id) REFERENCES member(id),
		FOREIGN KEY (folder_id) REFERENCES video_folder(id) ON DELETE SET NULL
	);
	`
	if _, err := tx.Exec(schema); err != nil {
		return fmt.Errorf("failed to create baseline schema: %w", err)
	}
	return nil
}

// migrateIndexes adds indexes for the per-event, per-member and per-room
// list queries that every screen load issues.
func migrateIndexes(tx *sql.Tx) error {
	stmts := `
	CREATE INDEX IF NOT EXISTS idx_attendance_event ON attendance(event_id);
	CREATE INDEX IF NOT EXISTS idx_attendance_member ON attendance(member_id);
	CREATE INDEX IF NOT EXISTS idx_clock_member_date ON clock_record(member_id, date);
	CREATE INDEX IF NOT EXISTS idx_practice_member_date ON practice_record(member_id, date);
	CREATE INDEX IF NOT EXISTS idx_chat_message_room ON chat_message(room_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_event_month ON schedule_event(event_year, event_month);
	CREATE INDEX IF NOT EXISTS idx_match_video_member ON match_video(member_id);
	`
	if _, err := tx.Exec(stmts); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
