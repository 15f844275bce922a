package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"habitkit/internal/backup"
	"habitkit/internal/logger"
	"habitkit/internal/models"
	"habitkit/internal/storage"
)

type Context struct {
	Store storage.Provider
}

// PerformDailyBackup runs the once-per-day automatic backup and silently
// handles errors so it never interrupts the user's command.
func (c *Context) PerformDailyBackup() {
	mgr := backup.NewManager(c.Store)
	if err := mgr.InitializeDaily(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// CurrentMonthKey returns the month key for the system clock's month.
func CurrentMonthKey() string {
	return models.MonthKeyFor(time.Now())
}

// ResolveMonthKey parses a --month flag value (YYYY-MM or the raw
// "{year}-{zeroBasedMonth}" key); empty means the current month.
func ResolveMonthKey(flag string) (string, error) {
	if flag == "" {
		return CurrentMonthKey(), nil
	}
	if t, err := time.Parse("2006-01", flag); err == nil {
		return models.MonthKeyFor(t), nil
	}
	if _, _, err := models.ParseMonthKey(flag); err == nil {
		return flag, nil
	}
	return "", fmt.Errorf("invalid month %q (expected YYYY-MM)", flag)
}

// ParseWeekdays parses a comma-separated list of weekdays into the
// 0=Monday..6=Sunday indices used by specific-days habits.
func ParseWeekdays(s string) ([]int, error) {
	dayMap := map[string]int{
		"mon": 0, "monday": 0,
		"tue": 1, "tuesday": 1,
		"wed": 2, "wednesday": 2,
		"thu": 3, "thursday": 3,
		"fri": 4, "friday": 4,
		"sat": 5, "saturday": 5,
		"sun": 6, "sunday": 6,
	}

	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if d, ok := dayMap[part]; ok {
			days = append(days, d)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		days = append(days, num)
	}
	return days, nil
}

// FindHabit locates a habit in a month record by name (exact match
// first, then unique case-insensitive prefix).
func FindHabit(month models.MonthData, name string) (models.Habit, error) {
	for _, h := range month.Habits {
		if h.Name == name {
			return h, nil
		}
	}
	var matches []models.Habit
	lower := strings.ToLower(name)
	for _, h := range month.Habits {
		if strings.HasPrefix(strings.ToLower(h.Name), lower) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Habit{}, fmt.Errorf("habit %q not found", name)
	default:
		return models.Habit{}, fmt.Errorf("habit %q is ambiguous", name)
	}
}

// FormatSchedule renders a habit's schedule for listings.
func FormatSchedule(h models.Habit) string {
	switch h.Type {
	case models.TypeDaily:
		return "daily"
	case models.TypeWeekly:
		return "weekly"
	case models.TypeSpecificDays:
		names := [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
		var days []string
		for _, d := range h.WeekDays {
			if d >= 0 && d < 7 {
				days = append(days, names[d])
			}
		}
		return "on " + strings.Join(days, ",")
	case models.TypeOneTime:
		return "once on " + h.SpecificDate
	default:
		return string(h.Type)
	}
}
