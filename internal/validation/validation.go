package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"habitkit/internal/constants"
	"habitkit/internal/models"
)

// Error describes rejected habit input. Operations that fail validation
// leave the store unmodified.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var timePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateName checks habit name length bounds after trimming whitespace
// and returns the trimmed name. Bounds are measured in runes so
// multi-byte names are not penalized.
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	length := utf8.RuneCountInString(trimmed)
	if length < constants.MinHabitNameLen {
		return "", &Error{Field: "name", Reason: fmt.Sprintf("must be at least %d characters", constants.MinHabitNameLen)}
	}
	if length > constants.MaxHabitNameLen {
		return "", &Error{Field: "name", Reason: fmt.Sprintf("must be at most %d characters", constants.MaxHabitNameLen)}
	}
	return trimmed, nil
}

// ValidateTime checks an optional HH:MM 24-hour reminder time. An empty
// string is valid (no reminder).
func ValidateTime(t string) error {
	if t == "" {
		return nil
	}
	if !timePattern.MatchString(t) {
		return &Error{Field: "time", Reason: "must be HH:MM in 24-hour format"}
	}
	return nil
}

// ValidateWeekDays checks a specific-days selection: non-empty, indices
// in 0=Monday..6=Sunday, no duplicates. Returns the selection sorted
// ascending.
func ValidateWeekDays(days []int) ([]int, error) {
	if len(days) == 0 {
		return nil, &Error{Field: "weekDays", Reason: "select at least one day"}
	}
	seen := make(map[int]bool, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, &Error{Field: "weekDays", Reason: fmt.Sprintf("day index %d out of range", d)}
		}
		if seen[d] {
			return nil, &Error{Field: "weekDays", Reason: fmt.Sprintf("duplicate day index %d", d)}
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out, nil
}

// ValidateSpecificDate checks a one-time habit's target date: ISO format,
// not before the creation date.
func ValidateSpecificDate(date string, createdAt time.Time) error {
	if date == "" {
		return &Error{Field: "specificDate", Reason: "date is required for one-time habits"}
	}
	target, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return &Error{Field: "specificDate", Reason: "must be YYYY-MM-DD"}
	}
	created := time.Date(createdAt.Year(), createdAt.Month(), createdAt.Day(), 0, 0, 0, 0, time.UTC)
	if target.Before(created) {
		return &Error{Field: "specificDate", Reason: "must not be before the creation date"}
	}
	return nil
}

// ValidateHabit checks a fully assembled habit: name, time, and the
// per-type field pairing (weekDays iff specific-days, specificDate iff
// one-time).
func ValidateHabit(h models.Habit) error {
	if _, err := ValidateName(h.Name); err != nil {
		return err
	}
	if err := ValidateTime(h.Time); err != nil {
		return err
	}
	switch h.Type {
	case models.TypeDaily, models.TypeWeekly:
		if len(h.WeekDays) > 0 {
			return &Error{Field: "weekDays", Reason: fmt.Sprintf("not allowed for %s habits", h.Type)}
		}
		if h.SpecificDate != "" {
			return &Error{Field: "specificDate", Reason: fmt.Sprintf("not allowed for %s habits", h.Type)}
		}
	case models.TypeSpecificDays:
		if _, err := ValidateWeekDays(h.WeekDays); err != nil {
			return err
		}
		if h.SpecificDate != "" {
			return &Error{Field: "specificDate", Reason: "not allowed for specific-days habits"}
		}
	case models.TypeOneTime:
		created, err := time.Parse(time.RFC3339, h.CreatedAt)
		if err != nil {
			created = time.Now()
		}
		if err := ValidateSpecificDate(h.SpecificDate, created); err != nil {
			return err
		}
		if len(h.WeekDays) > 0 {
			return &Error{Field: "weekDays", Reason: "not allowed for one-time habits"}
		}
	default:
		return &Error{Field: "type", Reason: fmt.Sprintf("unknown habit type %q", h.Type)}
	}
	return nil
}

// CheckQuota enforces the per-month cap for the given habit type against
// the habits already present in the month.
func CheckQuota(existing []models.Habit, t models.HabitType) error {
	var limit int
	switch t {
	case models.TypeDaily:
		limit = constants.MaxDailyHabits
	case models.TypeSpecificDays:
		limit = constants.MaxSpecificDaysHabits
	case models.TypeOneTime:
		limit = constants.MaxOneTimeHabits
	case models.TypeWeekly:
		limit = constants.MaxWeeklyHabits
	default:
		return &Error{Field: "type", Reason: fmt.Sprintf("unknown habit type %q", t)}
	}

	count := 0
	for _, h := range existing {
		if h.Type == t {
			count++
		}
	}
	if count >= limit {
		return &Error{Field: "type", Reason: fmt.Sprintf("maximum %d %s habits per month", limit, t)}
	}
	return nil
}
