package models

import (
	"time"

	"github.com/google/uuid"

	"habitkit/internal/constants"
)

// HabitType identifies a habit's scheduling variant
type HabitType string

const (
	// TypeDaily habits apply every calendar day
	TypeDaily HabitType = "daily"
	// TypeWeekly habits are tracked on the weekly checklist by week index
	TypeWeekly HabitType = "weekly"
	// TypeSpecificDays habits apply only on selected weekdays
	TypeSpecificDays HabitType = "specific-days"
	// TypeOneTime habits apply on exactly one calendar date
	TypeOneTime HabitType = "one-time"
)

// Habit represents one tracked activity. WeekDays is populated only for
// specific-days habits and SpecificDate only for one-time habits; the
// validation package rejects any other combination before a habit
// reaches storage.
//
// WeekDays uses 0=Monday..6=Sunday. This is the storage convention for
// the whole core; conversion from Go's Sunday-based time.Weekday happens
// in MondayIndex and nowhere else.
type Habit struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         HabitType `json:"type"`
	CreatedAt    string    `json:"createdAt"`
	Category     string    `json:"category,omitempty"`
	Time         string    `json:"time,omitempty"`
	WeekDays     []int     `json:"weekDays,omitempty"`
	SpecificDate string    `json:"specificDate,omitempty"`
}

// NewHabitID returns a fresh opaque habit identifier.
func NewHabitID() string {
	return uuid.New().String()
}

// MondayIndex converts a calendar date's weekday to the 0=Monday..6=Sunday
// convention used by Habit.WeekDays.
func MondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// AppliesOn reports whether the habit is scheduled for the given calendar
// date. Unrecognized types fail closed.
func (h Habit) AppliesOn(date time.Time) bool {
	switch h.Type {
	case TypeDaily:
		return true
	case TypeSpecificDays:
		wd := MondayIndex(date)
		for _, d := range h.WeekDays {
			if d == wd {
				return true
			}
		}
		return false
	case TypeOneTime:
		target, err := time.Parse(constants.DateFormat, h.SpecificDate)
		if err != nil {
			return false
		}
		return date.Year() == target.Year() && date.Month() == target.Month() && date.Day() == target.Day()
	default:
		return false
	}
}

// Clone returns a deep copy of the habit.
func (h Habit) Clone() Habit {
	c := h
	if h.WeekDays != nil {
		c.WeekDays = append([]int(nil), h.WeekDays...)
	}
	return c
}
