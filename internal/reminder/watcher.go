package reminder

import (
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"habitkit/internal/logger"
	"habitkit/internal/models"
	"habitkit/internal/storage"
	"habitkit/internal/tracker"
)

// Notifier delivers a reminder to the user.
type Notifier interface {
	Notify(habitName, at string) error
}

// TerminalNotifier prints reminders to stdout with a terminal bell.
type TerminalNotifier struct{}

func (TerminalNotifier) Notify(habitName, at string) error {
	_, err := fmt.Fprintf(os.Stdout, "\a⏰ Habit reminder: %s (%s)\n", habitName, at)
	return err
}

// Watcher polls the store once per minute and fires due reminders. The
// check is a full re-read each tick, not a subscription; firing state is
// persisted read-modify-write so a reminder fires once per minute.
type Watcher struct {
	store    storage.Provider
	notifier Notifier
	cron     *cron.Cron
	now      func() time.Time
}

func NewWatcher(store storage.Provider, notifier Notifier) *Watcher {
	return &Watcher{
		store:    store,
		notifier: notifier,
		cron:     cron.New(),
		now:      time.Now,
	}
}

// Start schedules the minutely check. Blocks until Stop via the caller;
// the cron runs its own goroutine.
func (w *Watcher) Start() error {
	if _, err := w.cron.AddFunc("* * * * *", w.Check); err != nil {
		return fmt.Errorf("failed to schedule reminder check: %w", err)
	}
	w.cron.Start()
	logger.Info("Reminder watcher started")
	return nil
}

// Stop halts the poll and waits for an in-flight check to finish.
func (w *Watcher) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	logger.Info("Reminder watcher stopped")
}

// Check runs one poll: read the current month's habits, fire anything
// due, record firings. Failures are logged and never propagate; a
// missed reminder is not worth crashing the watcher.
func (w *Watcher) Check() {
	now := w.now()

	store, err := w.store.GetStore()
	if err != nil {
		logger.Error("Reminder check failed to read store", "error", err)
		return
	}
	state, err := w.store.GetNotificationState()
	if err != nil {
		logger.Error("Reminder check failed to read state", "error", err)
		return
	}

	month := tracker.GetMonth(store, models.MonthKeyFor(now))
	fired := false
	for _, h := range Due(month.Habits, now, state) {
		if err := w.notifier.Notify(h.Name, h.Time); err != nil {
			logger.Warn("Failed to deliver reminder", "habit", h.Name, "error", err)
			continue
		}
		state = MarkFired(state, h.ID, now)
		fired = true
	}

	if fired {
		if err := w.store.SaveNotificationState(state); err != nil {
			logger.Error("Failed to persist notification state", "error", err)
		}
	}
}
