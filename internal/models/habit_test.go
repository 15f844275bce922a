package models

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMondayIndex(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want int
	}{
		{"monday", date(2024, time.January, 1), 0},
		{"wednesday", date(2024, time.January, 3), 2},
		{"saturday", date(2024, time.January, 6), 5},
		{"sunday", date(2024, time.January, 7), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MondayIndex(tt.day); got != tt.want {
				t.Errorf("MondayIndex(%v) = %d, want %d", tt.day, got, tt.want)
			}
		})
	}
}

func TestAppliesOn(t *testing.T) {
	monday := date(2024, time.January, 1)
	sunday := date(2024, time.January, 7)

	tests := []struct {
		name  string
		habit Habit
		day   time.Time
		want  bool
	}{
		{"daily always applies", Habit{Type: TypeDaily}, sunday, true},
		{"specific-days on selected weekday", Habit{Type: TypeSpecificDays, WeekDays: []int{0, 2, 4}}, monday, true},
		{"specific-days off selected weekday", Habit{Type: TypeSpecificDays, WeekDays: []int{0, 2, 4}}, sunday, false},
		{"one-time on exact date", Habit{Type: TypeOneTime, SpecificDate: "2024-01-07"}, sunday, true},
		{"one-time on other date", Habit{Type: TypeOneTime, SpecificDate: "2024-01-07"}, monday, false},
		{"one-time with bad date", Habit{Type: TypeOneTime, SpecificDate: "not-a-date"}, monday, false},
		{"unknown type fails closed", Habit{Type: "mystery"}, monday, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.habit.AppliesOn(tt.day); got != tt.want {
				t.Errorf("AppliesOn() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month int
		want  int
	}{
		{2024, 0, 31},  // January
		{2024, 1, 29},  // leap February
		{2023, 1, 28},  // non-leap February
		{2024, 3, 30},  // April
		{2024, 11, 31}, // December
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestMonthKeyRoundTrip(t *testing.T) {
	key := MonthKey(2024, 0)
	if key != "2024-0" {
		t.Fatalf("MonthKey(2024, 0) = %q, want \"2024-0\"", key)
	}

	year, month, err := ParseMonthKey(key)
	if err != nil {
		t.Fatalf("ParseMonthKey(%q) failed: %v", key, err)
	}
	if year != 2024 || month != 0 {
		t.Errorf("ParseMonthKey(%q) = (%d, %d), want (2024, 0)", key, year, month)
	}

	for _, bad := range []string{"", "2024", "2024-12", "abc-0", "2024-x"} {
		if _, _, err := ParseMonthKey(bad); err == nil {
			t.Errorf("ParseMonthKey(%q) succeeded, want error", bad)
		}
	}
}

func TestMonthKeyFor(t *testing.T) {
	if got := MonthKeyFor(date(2024, time.January, 15)); got != "2024-0" {
		t.Errorf("MonthKeyFor(January 2024) = %q, want \"2024-0\"", got)
	}
	if got := MonthKeyFor(date(2025, time.December, 1)); got != "2025-11" {
		t.Errorf("MonthKeyFor(December 2025) = %q, want \"2025-11\"", got)
	}
}

func TestStoreCloneIsDeep(t *testing.T) {
	store := Store{
		"2024-0": {
			Month:  0,
			Year:   2024,
			Habits: []Habit{{ID: "h1", Name: "Read", Type: TypeDaily}},
			Completions: map[string][]bool{
				"h1": make([]bool, 31),
			},
		},
	}

	clone := store.Clone()
	clone["2024-0"].Completions["h1"][0] = true
	clone["2024-0"].Habits[0].Name = "Changed"

	if store["2024-0"].Completions["h1"][0] {
		t.Error("mutating clone's completions changed the original")
	}
	if store["2024-0"].Habits[0].Name != "Read" {
		t.Error("mutating clone's habit changed the original")
	}
}
