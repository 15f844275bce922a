package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"habitkit/internal/logger"
	"habitkit/internal/models"
)

// fileStore is the on-disk layout of the JSON backend.
type fileStore struct {
	Version       int                      `json:"version"`
	Monthly       models.Store             `json:"monthlyData"`
	Backups       []models.Backup          `json:"backups"`
	Meta          map[string]string        `json:"meta"`
	Notifications models.NotificationState `json:"notificationState"`
}

// JSONStore persists everything in a single JSON file, rewritten in full
// on every mutation.
type JSONStore struct {
	path  string
	store *fileStore
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func emptyFileStore() *fileStore {
	return &fileStore{
		Version:       1,
		Monthly:       models.Store{},
		Backups:       []models.Backup{},
		Meta:          map[string]string{},
		Notifications: models.NotificationState{LastFired: map[string]string{}},
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = emptyFileStore()
	return s.save()
}

// Load reads the backing file. A missing, unreadable, or corrupt file
// degrades to an empty store so the app starts fresh instead of
// crashing.
func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read storage, starting fresh", "path", s.path, "error", err)
		}
		s.store = emptyFileStore()
		return nil
	}

	s.store = &fileStore{}
	if err := json.Unmarshal(data, s.store); err != nil {
		logger.Warn("Storage file is corrupt, starting fresh", "path", s.path, "error", err)
		s.store = emptyFileStore()
		return nil
	}

	// Ensure maps survive older or hand-edited files
	if s.store.Monthly == nil {
		s.store.Monthly = models.Store{}
	}
	if s.store.Meta == nil {
		s.store.Meta = map[string]string{}
	}
	if s.store.Notifications.LastFired == nil {
		s.store.Notifications.LastFired = map[string]string{}
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) ensureLoaded() error {
	if s.store == nil {
		return s.Load()
	}
	return nil
}

func (s *JSONStore) GetStore() (models.Store, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	return s.store.Monthly.Clone(), nil
}

func (s *JSONStore) SaveStore(store models.Store) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.store.Monthly = store.Clone()
	return s.save()
}

func (s *JSONStore) GetBackups() ([]models.Backup, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	backups := make([]models.Backup, 0, len(s.store.Backups))
	for _, b := range s.store.Backups {
		backups = append(backups, models.Backup{Date: b.Date, Timestamp: b.Timestamp, Data: b.Data.Clone()})
	}
	return backups, nil
}

func (s *JSONStore) SaveBackups(backups []models.Backup) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	copied := make([]models.Backup, 0, len(backups))
	for _, b := range backups {
		copied = append(copied, models.Backup{Date: b.Date, Timestamp: b.Timestamp, Data: b.Data.Clone()})
	}
	s.store.Backups = copied
	return s.save()
}

func (s *JSONStore) GetMeta(key string) (string, error) {
	if err := s.ensureLoaded(); err != nil {
		return "", err
	}
	return s.store.Meta[key], nil
}

func (s *JSONStore) SetMeta(key, value string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.store.Meta[key] = value
	return s.save()
}

func (s *JSONStore) GetNotificationState() (models.NotificationState, error) {
	if err := s.ensureLoaded(); err != nil {
		return models.NotificationState{}, err
	}
	return s.store.Notifications.Clone(), nil
}

func (s *JSONStore) SaveNotificationState(state models.NotificationState) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.store.Notifications = state.Clone()
	return s.save()
}

func (s *JSONStore) Reset() error {
	s.store = emptyFileStore()
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
