package storage

import "habitkit/internal/models"

// Provider persists the habit store, its backups, and the small
// key-value metadata the app keeps alongside them. Every Save* call is
// write-through: it returns only after the data is durably written.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habit data
	GetStore() (models.Store, error)
	SaveStore(models.Store) error

	// Backups
	GetBackups() ([]models.Backup, error)
	SaveBackups([]models.Backup) error

	// Meta (last_backup_date, theme)
	GetMeta(key string) (string, error)
	SetMeta(key, value string) error

	// Reminder bookkeeping
	GetNotificationState() (models.NotificationState, error)
	SaveNotificationState(models.NotificationState) error

	// Reset clears all persisted data (full fresh-start reset).
	Reset() error

	// Utils
	GetConfigPath() string
}
