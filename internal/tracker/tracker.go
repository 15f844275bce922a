// Package tracker implements the month-keyed habit store operations.
// All operations take the store as a value and return an updated copy;
// persistence happens at the caller's boundary. Inputs that fail
// validation leave the store untouched.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"habitkit/internal/constants"
	"habitkit/internal/models"
	"habitkit/internal/validation"
)

// ErrNotFound is returned when an operation references a missing month
// key or habit id.
var ErrNotFound = errors.New("not found")

// GetMonth returns the record for the given month key, or an empty record
// when absent. Reading never creates the month in the store.
func GetMonth(store models.Store, key string) models.MonthData {
	if m, ok := store[key]; ok {
		return m.Clone()
	}
	year, month, err := models.ParseMonthKey(key)
	if err != nil {
		year, month = 0, 0
	}
	return models.MonthData{
		Month:       month,
		Year:        year,
		Habits:      []models.Habit{},
		Completions: map[string][]bool{},
	}
}

// completionSlots returns the length of a fresh completions array for a
// habit in the given month: week slots for weekly habits, one slot per
// calendar day otherwise.
func completionSlots(t models.HabitType, year, month int) int {
	if t == models.TypeWeekly {
		return constants.WeeksPerMonth
	}
	return models.DaysInMonth(year, month)
}

// AddHabit validates the habit, enforces the per-type monthly quota, and
// appends it to the month with an all-false completions array sized to
// the month's true day count.
func AddHabit(store models.Store, key string, habit models.Habit) (models.Store, error) {
	year, month, err := models.ParseMonthKey(key)
	if err != nil {
		return store, err
	}
	if err := validation.ValidateHabit(habit); err != nil {
		return store, err
	}

	current := GetMonth(store, key)
	if err := validation.CheckQuota(current.Habits, habit.Type); err != nil {
		return store, err
	}

	updated := store.Clone()
	record := GetMonth(updated, key)
	record.Month = month
	record.Year = year
	record.Habits = append(record.Habits, habit.Clone())
	record.Completions[habit.ID] = make([]bool, completionSlots(habit.Type, year, month))
	updated[key] = record
	return updated, nil
}

// ToggleCompletion flips the completion bit for one habit on one day.
// A habit with no stored array gets a fresh all-false one first. Out of
// range day indices are a no-op.
func ToggleCompletion(store models.Store, key, habitID string, dayIndex int) models.Store {
	record, ok := store[key]
	if !ok {
		return store
	}

	var habit *models.Habit
	for i := range record.Habits {
		if record.Habits[i].ID == habitID {
			habit = &record.Habits[i]
			break
		}
	}
	if habit == nil {
		return store
	}

	slots := completionSlots(habit.Type, record.Year, record.Month)
	if dayIndex < 0 || dayIndex >= slots {
		return store
	}

	updated := store.Clone()
	record = updated[key]
	if record.Completions == nil {
		record.Completions = map[string][]bool{}
	}
	if _, ok := record.Completions[habitID]; !ok {
		record.Completions[habitID] = make([]bool, slots)
	}
	record.Completions[habitID][dayIndex] = !record.Completions[habitID][dayIndex]
	updated[key] = record
	return updated
}

// HabitUpdate carries the mutable habit fields for UpdateHabit. Nil
// pointers leave the field unchanged. Identity and scheduling fields
// (id, type, createdAt, weekDays, specificDate) are immutable.
type HabitUpdate struct {
	Name     *string
	Time     *string
	Category *string
}

// UpdateHabit merges the provided fields into an existing habit.
func UpdateHabit(store models.Store, key, habitID string, update HabitUpdate) (models.Store, error) {
	record, ok := store[key]
	if !ok {
		return store, fmt.Errorf("month %s: %w", key, ErrNotFound)
	}

	idx := -1
	for i := range record.Habits {
		if record.Habits[i].ID == habitID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return store, fmt.Errorf("habit %s: %w", habitID, ErrNotFound)
	}

	name := record.Habits[idx].Name
	if update.Name != nil {
		trimmed, err := validation.ValidateName(*update.Name)
		if err != nil {
			return store, err
		}
		name = trimmed
	}
	if update.Time != nil {
		if err := validation.ValidateTime(*update.Time); err != nil {
			return store, err
		}
	}

	updated := store.Clone()
	record = updated[key]
	record.Habits[idx].Name = name
	if update.Time != nil {
		record.Habits[idx].Time = *update.Time
	}
	if update.Category != nil {
		record.Habits[idx].Category = *update.Category
	}
	updated[key] = record
	return updated, nil
}

// DeleteHabit removes the habit and its completions entry together.
func DeleteHabit(store models.Store, key, habitID string) (models.Store, error) {
	record, ok := store[key]
	if !ok {
		return store, fmt.Errorf("month %s: %w", key, ErrNotFound)
	}

	found := false
	for _, h := range record.Habits {
		if h.ID == habitID {
			found = true
			break
		}
	}
	if !found {
		return store, fmt.Errorf("habit %s: %w", habitID, ErrNotFound)
	}

	updated := store.Clone()
	record = updated[key]
	habits := record.Habits[:0]
	for _, h := range record.Habits {
		if h.ID != habitID {
			habits = append(habits, h)
		}
	}
	record.Habits = habits
	delete(record.Completions, habitID)
	updated[key] = record
	return updated, nil
}

// CopyHabits copies every habit from the source month into the target
// month as a template: fresh ids and creation timestamps, completion
// history discarded, arrays sized to the target month. Any existing
// target record is overwritten.
func CopyHabits(store models.Store, sourceKey, targetKey string) (models.Store, error) {
	if sourceKey == targetKey {
		return store, fmt.Errorf("source and target month are the same: %w", ErrNotFound)
	}
	source, ok := store[sourceKey]
	if !ok {
		return store, fmt.Errorf("month %s: %w", sourceKey, ErrNotFound)
	}
	targetYear, targetMonth, err := models.ParseMonthKey(targetKey)
	if err != nil {
		return store, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	target := models.MonthData{
		Month:       targetMonth,
		Year:        targetYear,
		Habits:      make([]models.Habit, 0, len(source.Habits)),
		Completions: make(map[string][]bool, len(source.Habits)),
	}
	for _, h := range source.Habits {
		copied := h.Clone()
		copied.ID = models.NewHabitID()
		copied.CreatedAt = now
		target.Habits = append(target.Habits, copied)
		target.Completions[copied.ID] = make([]bool, completionSlots(copied.Type, targetYear, targetMonth))
	}

	updated := store.Clone()
	updated[targetKey] = target
	return updated, nil
}
