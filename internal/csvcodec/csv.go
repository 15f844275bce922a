// Package csvcodec serializes the habit store to and from its CSV text
// format. Two column orders exist in the wild: the settings exporter
// writes Year,Month,Day,Habit,Completed,Type,Time and the backup
// exporter writes Year,Month,Day,Habit,Type,Completed,Time. Import
// accepts both by reading the header.
package csvcodec

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"habitkit/internal/constants"
	"habitkit/internal/models"
)

// ErrFormat is returned for CSV input with no header or no data rows.
// Malformed individual rows are skipped, not fatal.
var ErrFormat = errors.New("invalid CSV format")

// PrimaryHeader is the column order of the main data exporter.
var PrimaryHeader = []string{"Year", "Month", "Day", "Habit", "Completed", "Type", "Time"}

// BackupHeader is the column order of the backup exporter.
var BackupHeader = []string{"Year", "Month", "Day", "Habit", "Type", "Completed", "Time"}

var monthIndex = func() map[string]int {
	m := make(map[string]int, 12)
	for i, name := range constants.MonthNames {
		m[strings.ToLower(name)] = i
	}
	return m
}()

// ExportTo writes the full store in the primary column order, one row
// per (habit, day) pair.
func ExportTo(w io.Writer, store models.Store) error {
	return export(w, store, PrimaryHeader)
}

// ExportBackupTo writes the full store in the backup exporter's column
// order.
func ExportBackupTo(w io.Writer, store models.Store) error {
	return export(w, store, BackupHeader)
}

// Export renders the store to a CSV string in the primary column order.
func Export(store models.Store) string {
	var b strings.Builder
	_ = ExportTo(&b, store)
	return b.String()
}

func export(w io.Writer, store models.Store, header []string) error {
	if _, err := fmt.Fprintln(w, strings.Join(header, ",")); err != nil {
		return err
	}
	completedFirst := header[4] == "Completed"

	keys := make([]string, 0, len(store))
	for key := range store {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		yi, mi, _ := models.ParseMonthKey(keys[i])
		yj, mj, _ := models.ParseMonthKey(keys[j])
		if yi != yj {
			return yi < yj
		}
		return mi < mj
	})

	for _, key := range keys {
		record := store[key]
		year, month, err := models.ParseMonthKey(key)
		if err != nil {
			continue
		}
		monthName := constants.MonthNames[month]
		for _, habit := range record.Habits {
			for dayIndex, done := range record.Completions[habit.ID] {
				completed := "no"
				if done {
					completed = "yes"
				}
				var mid string
				if completedFirst {
					mid = fmt.Sprintf("%s,%s", completed, habit.Type)
				} else {
					mid = fmt.Sprintf("%s,%s", habit.Type, completed)
				}
				if _, err := fmt.Fprintf(w, "%d,%s,%d,%s,%s,%s\n",
					year, monthName, dayIndex+1, habit.Name, mid, habit.Time); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// columnLayout maps field positions for one CSV encoding.
type columnLayout struct {
	year, month, day, habit, completed, habitType, timeCol int
}

var primaryLayout = columnLayout{year: 0, month: 1, day: 2, habit: 3, completed: 4, habitType: 5, timeCol: 6}

func layoutFromHeader(fields []string) columnLayout {
	layout := columnLayout{year: -1, month: -1, day: -1, habit: -1, completed: -1, habitType: -1, timeCol: -1}
	for i, name := range fields {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "year":
			layout.year = i
		case "month":
			layout.month = i
		case "day":
			layout.day = i
		case "habit":
			layout.habit = i
		case "completed":
			layout.completed = i
		case "type":
			layout.habitType = i
		case "time":
			layout.timeCol = i
		}
	}
	if layout.year == -1 || layout.month == -1 || layout.day == -1 || layout.habit == -1 || layout.completed == -1 {
		return primaryLayout
	}
	return layout
}

type habitRows struct {
	order     []string // habit names in first-seen order
	habitType map[string]models.HabitType
	habitTime map[string]string
	days      map[string]map[int]bool
}

// Import parses CSV text into a partial store holding only the months
// present in the input. Rows with too few fields, unknown month names,
// or unparseable numbers are skipped silently.
func Import(text string) (models.Store, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return nil, ErrFormat
	}

	layout := layoutFromHeader(strings.Split(lines[0], ","))
	minFields := 5

	byMonth := map[string]*habitRows{}
	for _, line := range lines[1:] {
		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if len(fields) < minFields {
			continue
		}

		year, err := strconv.Atoi(fields[layout.year])
		if err != nil {
			continue
		}
		month, ok := monthIndex[strings.ToLower(fields[layout.month])]
		if !ok {
			continue
		}
		day, err := strconv.Atoi(fields[layout.day])
		if err != nil {
			continue
		}
		name := fields[layout.habit]
		if name == "" {
			continue
		}
		completed := strings.EqualFold(fields[layout.completed], "yes")

		habitType := models.TypeDaily
		if layout.habitType >= 0 && layout.habitType < len(fields) && fields[layout.habitType] != "" {
			habitType = models.HabitType(fields[layout.habitType])
		}
		habitTime := ""
		if layout.timeCol >= 0 && layout.timeCol < len(fields) {
			habitTime = fields[layout.timeCol]
		}

		key := models.MonthKey(year, month)
		rows, ok := byMonth[key]
		if !ok {
			rows = &habitRows{
				habitType: map[string]models.HabitType{},
				habitTime: map[string]string{},
				days:      map[string]map[int]bool{},
			}
			byMonth[key] = rows
		}
		if _, seen := rows.days[name]; !seen {
			// first row for a habit seeds its type and time
			rows.order = append(rows.order, name)
			rows.days[name] = map[int]bool{}
			rows.habitType[name] = habitType
			rows.habitTime[name] = habitTime
		}
		rows.days[name][day-1] = completed
	}

	now := time.Now().UTC().Format(time.RFC3339)
	store := make(models.Store, len(byMonth))
	for key, rows := range byMonth {
		year, month, err := models.ParseMonthKey(key)
		if err != nil {
			continue
		}
		daysInMonth := models.DaysInMonth(year, month)
		record := models.MonthData{
			Month:       month,
			Year:        year,
			Habits:      make([]models.Habit, 0, len(rows.order)),
			Completions: make(map[string][]bool, len(rows.order)),
		}
		for _, name := range rows.order {
			habit := models.Habit{
				ID:        models.NewHabitID(),
				Name:      name,
				Type:      rows.habitType[name],
				CreatedAt: now,
				Time:      rows.habitTime[name],
			}
			// weekly habits track week slots, not calendar days
			slots := daysInMonth
			if habit.Type == models.TypeWeekly {
				slots = constants.WeeksPerMonth
			}
			completions := make([]bool, slots)
			for dayIndex, done := range rows.days[name] {
				if dayIndex >= 0 && dayIndex < slots {
					completions[dayIndex] = done
				}
			}
			record.Habits = append(record.Habits, habit)
			record.Completions[habit.ID] = completions
		}
		store[key] = record
	}
	return store, nil
}

// Merge overlays imported months onto an existing store. The merge is
// shallow at the month-key level: an imported month fully replaces any
// same-keyed existing month.
func Merge(dst, src models.Store) models.Store {
	merged := dst.Clone()
	for key, record := range src {
		merged[key] = record.Clone()
	}
	return merged
}

// ExportFilename returns the conventional download name for a full
// export on the given date.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("habit-tracker-%s.csv", t.Format(constants.DateFormat))
}

// BackupExportFilename returns the conventional download name for a
// backup export.
func BackupExportFilename(date string) string {
	return fmt.Sprintf("habit-tracker-backup-%s.csv", date)
}
