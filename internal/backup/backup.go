// Package backup snapshots the whole habit store with bounded,
// date-keyed retention: at most one backup per calendar date, at most
// MaxBackups entries, oldest evicted first.
package backup

import (
	"fmt"
	"io"
	"time"

	"habitkit/internal/constants"
	"habitkit/internal/csvcodec"
	"habitkit/internal/logger"
	"habitkit/internal/models"
	"habitkit/internal/storage"
)

// Manager handles backup operations over a storage provider.
type Manager struct {
	store storage.Provider
	now   func() time.Time
}

// NewManager creates a new backup manager.
func NewManager(store storage.Provider) *Manager {
	return &Manager{store: store, now: time.Now}
}

// InitializeDaily creates today's automatic backup unless one was
// already made today. Called on every app start; the persisted
// last-backup-date marker keeps it to one backup per calendar day.
func (m *Manager) InitializeDaily() error {
	today := m.now().Format(constants.DateFormat)
	last, err := m.store.GetMeta(constants.MetaLastBackupDate)
	if err != nil {
		return err
	}
	if last == today {
		return nil
	}
	if err := m.Create(); err != nil {
		return err
	}
	return m.store.SetMeta(constants.MetaLastBackupDate, today)
}

// Create snapshots the current store. An empty store is a no-op. A
// backup already taken today is replaced rather than duplicated.
func (m *Manager) Create() error {
	data, err := m.store.GetStore()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		logger.Debug("No habit data to back up")
		return nil
	}

	backups, err := m.store.GetBackups()
	if err != nil {
		return err
	}

	now := m.now()
	today := now.Format(constants.DateFormat)

	kept := backups[:0]
	for _, b := range backups {
		if b.Date != today {
			kept = append(kept, b)
		}
	}
	kept = append(kept, models.Backup{
		Date:      today,
		Timestamp: now.UnixMilli(),
		Data:      data,
	})

	if len(kept) > constants.MaxBackups {
		kept = kept[len(kept)-constants.MaxBackups:]
	}

	return m.store.SaveBackups(kept)
}

// List returns all retained backups in insertion order.
func (m *Manager) List() ([]models.Backup, error) {
	return m.store.GetBackups()
}

func (m *Manager) find(date string) (models.Backup, bool, error) {
	backups, err := m.store.GetBackups()
	if err != nil {
		return models.Backup{}, false, err
	}
	for _, b := range backups {
		if b.Date == date {
			return b, true, nil
		}
	}
	return models.Backup{}, false, nil
}

// Restore overwrites the live store with the snapshot for the given
// date. Returns false when no backup exists for that date.
func (m *Manager) Restore(date string) (bool, error) {
	b, ok, err := m.find(date)
	if err != nil || !ok {
		return false, err
	}
	if err := m.store.SaveStore(b.Data); err != nil {
		return false, err
	}
	logger.Info("Restored habit data from backup", "date", date)
	return true, nil
}

// Delete removes the backup for the given date. Deleting a date with no
// backup still succeeds; delete is idempotent.
func (m *Manager) Delete(date string) (bool, error) {
	backups, err := m.store.GetBackups()
	if err != nil {
		return false, err
	}
	kept := backups[:0]
	for _, b := range backups {
		if b.Date != date {
			kept = append(kept, b)
		}
	}
	if err := m.store.SaveBackups(kept); err != nil {
		return false, err
	}
	return true, nil
}

// ExportCSV writes the snapshot for the given date through the CSV
// codec's backup encoding. Returns false when no backup exists.
func (m *Manager) ExportCSV(date string, w io.Writer) (bool, error) {
	b, ok, err := m.find(date)
	if err != nil || !ok {
		return false, err
	}
	if err := csvcodec.ExportBackupTo(w, b.Data); err != nil {
		return false, fmt.Errorf("failed to export backup: %w", err)
	}
	return true, nil
}
