package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"habitkit/internal/models"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "Read 30 mins", "Read 30 mins", false},
		{"trims whitespace", "  Meditate  ", "Meditate", false},
		{"minimum length", "Gym", "Gym", false},
		{"too short", "Go", "", true},
		{"too short after trim", "  ab   ", "", true},
		{"too long", strings.Repeat("x", 51), "", true},
		{"max length ok", strings.Repeat("x", 50), strings.Repeat("x", 50), false},
		{"multi-byte counted as runes", strings.Repeat("ü", 50), strings.Repeat("ü", 50), false},
		{"multi-byte minimum", "日記だ", "日記だ", false},
		{"multi-byte too short", "日記", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateName(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if err != nil {
				var verr *Error
				if !errors.As(err, &verr) {
					t.Errorf("error is %T, want *validation.Error", err)
				}
			}
		})
	}
}

func TestValidateTime(t *testing.T) {
	valid := []string{"", "00:00", "7:30", "07:30", "19:05", "23:59"}
	invalid := []string{"24:00", "12:60", "7:5", "noon", "7.30", "007:30"}

	for _, v := range valid {
		if err := ValidateTime(v); err != nil {
			t.Errorf("ValidateTime(%q) = %v, want nil", v, err)
		}
	}
	for _, v := range invalid {
		if err := ValidateTime(v); err == nil {
			t.Errorf("ValidateTime(%q) = nil, want error", v)
		}
	}
}

func TestValidateWeekDays(t *testing.T) {
	got, err := ValidateWeekDays([]int{4, 0, 2})
	if err != nil {
		t.Fatalf("ValidateWeekDays failed: %v", err)
	}
	want := []int{0, 2, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ValidateWeekDays sorted = %v, want %v", got, want)
		}
	}

	for name, days := range map[string][]int{
		"empty":        {},
		"out of range": {7},
		"negative":     {-1},
		"duplicate":    {1, 1},
	} {
		if _, err := ValidateWeekDays(days); err == nil {
			t.Errorf("ValidateWeekDays(%s %v) succeeded, want error", name, days)
		}
	}
}

func TestValidateSpecificDate(t *testing.T) {
	created := time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

	if err := ValidateSpecificDate("2024-06-15", created); err != nil {
		t.Errorf("same-day date rejected: %v", err)
	}
	if err := ValidateSpecificDate("2024-07-01", created); err != nil {
		t.Errorf("future date rejected: %v", err)
	}
	if err := ValidateSpecificDate("2024-06-14", created); err == nil {
		t.Error("past date accepted")
	}
	if err := ValidateSpecificDate("", created); err == nil {
		t.Error("empty date accepted")
	}
	if err := ValidateSpecificDate("June 15", created); err == nil {
		t.Error("malformed date accepted")
	}
}

func TestValidateHabitFieldPairing(t *testing.T) {
	now := time.Now().UTC().Format(time.RFC3339)

	tests := []struct {
		name    string
		habit   models.Habit
		wantErr bool
	}{
		{"daily plain", models.Habit{Name: "Read", Type: models.TypeDaily, CreatedAt: now}, false},
		{"daily with weekdays", models.Habit{Name: "Read", Type: models.TypeDaily, CreatedAt: now, WeekDays: []int{0}}, true},
		{"daily with date", models.Habit{Name: "Read", Type: models.TypeDaily, CreatedAt: now, SpecificDate: "2030-01-01"}, true},
		{"specific-days with days", models.Habit{Name: "Gym time", Type: models.TypeSpecificDays, CreatedAt: now, WeekDays: []int{0, 2}}, false},
		{"specific-days without days", models.Habit{Name: "Gym time", Type: models.TypeSpecificDays, CreatedAt: now}, true},
		{"one-time with date", models.Habit{Name: "Dentist", Type: models.TypeOneTime, CreatedAt: now, SpecificDate: "2099-01-01"}, false},
		{"one-time without date", models.Habit{Name: "Dentist", Type: models.TypeOneTime, CreatedAt: now}, true},
		{"unknown type", models.Habit{Name: "Read", Type: "sometimes", CreatedAt: now}, true},
		{"bad time", models.Habit{Name: "Read", Type: models.TypeDaily, CreatedAt: now, Time: "25:00"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHabit(tt.habit)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHabit() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckQuota(t *testing.T) {
	makeHabits := func(t models.HabitType, n int) []models.Habit {
		habits := make([]models.Habit, n)
		for i := range habits {
			habits[i] = models.Habit{Type: t}
		}
		return habits
	}

	tests := []struct {
		habitType models.HabitType
		limit     int
	}{
		{models.TypeDaily, 25},
		{models.TypeSpecificDays, 15},
		{models.TypeOneTime, 20},
		{models.TypeWeekly, 10},
	}

	for _, tt := range tests {
		t.Run(string(tt.habitType), func(t *testing.T) {
			if err := CheckQuota(makeHabits(tt.habitType, tt.limit-1), tt.habitType); err != nil {
				t.Errorf("quota rejected below limit: %v", err)
			}
			if err := CheckQuota(makeHabits(tt.habitType, tt.limit), tt.habitType); err == nil {
				t.Errorf("quota allowed at limit %d", tt.limit)
			}
		})
	}

	// habits of other types don't count toward the quota
	mixed := append(makeHabits(models.TypeDaily, 25), makeHabits(models.TypeWeekly, 5)...)
	if err := CheckQuota(mixed, models.TypeWeekly); err != nil {
		t.Errorf("daily habits counted toward weekly quota: %v", err)
	}
}
