package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MonthData is the unit of persistence: the habits tracked in one
// calendar month plus each habit's per-day completion array. Completion
// arrays are indexed 0 = day 1 and sized to the month's true day count
// (28-31). Weekly habits use week-indexed arrays instead.
type MonthData struct {
	Month       int               `json:"month"` // zero-based
	Year        int               `json:"year"`
	Habits      []Habit           `json:"habits"`
	Completions map[string][]bool `json:"completions"`
}

// Store is the complete persisted state, keyed by "{year}-{zeroBasedMonth}".
type Store map[string]MonthData

// Backup is a dated point-in-time deep copy of the whole Store.
type Backup struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Timestamp int64  `json:"timestamp"`
	Data      Store  `json:"data"`
}

// NotificationState records the last HH:MM a reminder fired per habit,
// used to suppress duplicate firing within the same minute.
type NotificationState struct {
	LastFired map[string]string `json:"lastNotificationTime"`
}

// MonthKey builds the canonical month key from a year and zero-based month.
func MonthKey(year, month int) string {
	return fmt.Sprintf("%d-%d", year, month)
}

// MonthKeyFor returns the month key for the month containing the given date.
func MonthKeyFor(t time.Time) string {
	return MonthKey(t.Year(), int(t.Month())-1)
}

// ParseMonthKey splits a month key into year and zero-based month.
func ParseMonthKey(key string) (year, month int, err error) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid month key: %s", key)
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month key: %s", key)
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil || month < 0 || month > 11 {
		return 0, 0, fmt.Errorf("invalid month key: %s", key)
	}
	return year, month, nil
}

// DaysInMonth returns the number of calendar days in the given
// zero-based month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// Clone returns a deep copy of the month record.
func (m MonthData) Clone() MonthData {
	c := MonthData{
		Month:       m.Month,
		Year:        m.Year,
		Habits:      make([]Habit, 0, len(m.Habits)),
		Completions: make(map[string][]bool, len(m.Completions)),
	}
	for _, h := range m.Habits {
		c.Habits = append(c.Habits, h.Clone())
	}
	for id, days := range m.Completions {
		c.Completions[id] = append([]bool(nil), days...)
	}
	return c
}

// Clone returns a deep copy of the store.
func (s Store) Clone() Store {
	c := make(Store, len(s))
	for key, month := range s {
		c[key] = month.Clone()
	}
	return c
}

// Clone returns a deep copy of the notification state.
func (n NotificationState) Clone() NotificationState {
	c := NotificationState{LastFired: make(map[string]string, len(n.LastFired))}
	for id, at := range n.LastFired {
		c.LastFired[id] = at
	}
	return c
}
