// Package reminder decides which habits are due at the current minute
// and runs the once-per-minute poll that fires them.
package reminder

import (
	"time"

	"habitkit/internal/constants"
	"habitkit/internal/models"
)

// Due returns the habits whose reminder time matches the current HH:MM,
// apply on today's date, and have not already fired this minute.
func Due(habits []models.Habit, now time.Time, state models.NotificationState) []models.Habit {
	current := now.Format(constants.TimeFormat)
	var due []models.Habit
	for _, h := range habits {
		if h.Time == "" || h.Time != current {
			continue
		}
		if h.Type != models.TypeWeekly && !h.AppliesOn(now) {
			continue
		}
		if state.LastFired[h.ID] == current {
			continue
		}
		due = append(due, h)
	}
	return due
}

// MarkFired records that a habit's reminder fired at the given minute,
// suppressing re-firing until the clock moves on.
func MarkFired(state models.NotificationState, habitID string, now time.Time) models.NotificationState {
	updated := state.Clone()
	if updated.LastFired == nil {
		updated.LastFired = map[string]string{}
	}
	updated.LastFired[habitID] = now.Format(constants.TimeFormat)
	return updated
}
