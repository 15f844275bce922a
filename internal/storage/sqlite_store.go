package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"habitkit/internal/logger"
	"habitkit/internal/models"
)

// SQLiteStore persists month records, backups, and metadata in a local
// SQLite database. Month and backup payloads are stored as JSON columns;
// the data model is document-shaped and queried whole, never by field.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

const schema = `
CREATE TABLE IF NOT EXISTS months (
	key     TEXT PRIMARY KEY,
	payload TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS backups (
	date      TEXT PRIMARY KEY,
	timestamp INTEGER NOT NULL,
	payload   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS notifications (
	habit_id   TEXT PRIMARY KEY,
	last_fired TEXT NOT NULL
);
`

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA foreign_keys=ON;"); err != nil {
		db.Close()
		return fmt.Errorf("failed to configure database: %w", err)
	}
	s.db = db
	return nil
}

// Load opens the database, creating the schema on first use. The JSON
// backend degrades corrupt files to an empty store; here SQLite itself
// guards file integrity, so open failures on an existing file surface
// as a fresh schema after a logged warning.
func (s *SQLiteStore) Load() error {
	if err := s.open(); err != nil {
		return err
	}
	if _, err := s.db.Exec(schema); err != nil {
		logger.Warn("Failed to ensure schema", "path", s.path, "error", err)
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) GetStore() (models.Store, error) {
	if err := s.Load(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT key, payload FROM months")
	if err != nil {
		return nil, fmt.Errorf("failed to query months: %w", err)
	}
	defer rows.Close()

	store := models.Store{}
	for rows.Next() {
		var key, payload string
		if err := rows.Scan(&key, &payload); err != nil {
			return nil, err
		}
		var month models.MonthData
		if err := json.Unmarshal([]byte(payload), &month); err != nil {
			logger.Warn("Skipping corrupt month record", "key", key, "error", err)
			continue
		}
		store[key] = month
	}
	return store, rows.Err()
}

func (s *SQLiteStore) SaveStore(store models.Store) error {
	if err := s.Load(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM months"); err != nil {
		return err
	}
	for key, month := range store {
		payload, err := json.Marshal(month)
		if err != nil {
			return fmt.Errorf("failed to serialize month %s: %w", key, err)
		}
		if _, err := tx.Exec("INSERT INTO months (key, payload) VALUES (?, ?)", key, string(payload)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetBackups() ([]models.Backup, error) {
	if err := s.Load(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT date, timestamp, payload FROM backups ORDER BY timestamp")
	if err != nil {
		return nil, fmt.Errorf("failed to query backups: %w", err)
	}
	defer rows.Close()

	var backups []models.Backup
	for rows.Next() {
		var b models.Backup
		var payload string
		if err := rows.Scan(&b.Date, &b.Timestamp, &payload); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payload), &b.Data); err != nil {
			logger.Warn("Skipping corrupt backup record", "date", b.Date, "error", err)
			continue
		}
		backups = append(backups, b)
	}
	return backups, rows.Err()
}

func (s *SQLiteStore) SaveBackups(backups []models.Backup) error {
	if err := s.Load(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM backups"); err != nil {
		return err
	}
	for _, b := range backups {
		payload, err := json.Marshal(b.Data)
		if err != nil {
			return fmt.Errorf("failed to serialize backup %s: %w", b.Date, err)
		}
		if _, err := tx.Exec("INSERT INTO backups (date, timestamp, payload) VALUES (?, ?, ?)",
			b.Date, b.Timestamp, string(payload)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetMeta(key string) (string, error) {
	if err := s.Load(); err != nil {
		return "", err
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (s *SQLiteStore) SetMeta(key, value string) error {
	if err := s.Load(); err != nil {
		return err
	}
	_, err := s.db.Exec(
		"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	return err
}

func (s *SQLiteStore) GetNotificationState() (models.NotificationState, error) {
	state := models.NotificationState{LastFired: map[string]string{}}
	if err := s.Load(); err != nil {
		return state, err
	}

	rows, err := s.db.Query("SELECT habit_id, last_fired FROM notifications")
	if err != nil {
		return state, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, at string
		if err := rows.Scan(&id, &at); err != nil {
			return state, err
		}
		state.LastFired[id] = at
	}
	return state, rows.Err()
}

func (s *SQLiteStore) SaveNotificationState(state models.NotificationState) error {
	if err := s.Load(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM notifications"); err != nil {
		return err
	}
	for id, at := range state.LastFired {
		if _, err := tx.Exec("INSERT INTO notifications (habit_id, last_fired) VALUES (?, ?)", id, at); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Reset() error {
	if err := s.Load(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"months", "backups", "meta", "notifications"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
