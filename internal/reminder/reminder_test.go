package reminder

import (
	"testing"
	"time"

	"habitkit/internal/models"
)

func TestDue(t *testing.T) {
	// Monday 2024-01-15, 08:00
	now := time.Date(2024, time.January, 15, 8, 0, 0, 0, time.UTC)

	habits := []models.Habit{
		{ID: "a", Name: "Read", Type: models.TypeDaily, Time: "08:00"},
		{ID: "b", Name: "Gym", Type: models.TypeDaily, Time: "18:00"},
		{ID: "c", Name: "Journal", Type: models.TypeDaily},
		{ID: "d", Name: "Piano", Type: models.TypeSpecificDays, Time: "08:00", WeekDays: []int{3}}, // Thursdays only
		{ID: "e", Name: "Plan", Type: models.TypeWeekly, Time: "08:00"},
		{ID: "f", Name: "Dentist", Type: models.TypeOneTime, Time: "08:00", SpecificDate: "2024-01-15"},
	}

	due := Due(habits, now, models.NotificationState{})

	want := map[string]bool{"a": true, "e": true, "f": true}
	if len(due) != len(want) {
		t.Fatalf("got %d due habits, want %d: %+v", len(due), len(want), due)
	}
	for _, h := range due {
		if !want[h.ID] {
			t.Errorf("habit %s (%s) unexpectedly due", h.ID, h.Name)
		}
	}
}

func TestDueSuppressedAfterFiring(t *testing.T) {
	now := time.Date(2024, time.January, 15, 8, 0, 0, 0, time.UTC)
	habits := []models.Habit{
		{ID: "a", Name: "Read", Type: models.TypeDaily, Time: "08:00"},
	}

	state := MarkFired(models.NotificationState{}, "a", now)
	if due := Due(habits, now, state); len(due) != 0 {
		t.Errorf("habit fired again in the same minute: %+v", due)
	}

	// the next minute makes it eligible again
	later := now.Add(time.Minute)
	habits[0].Time = "08:01"
	if due := Due(habits, later, state); len(due) != 1 {
		t.Errorf("got %d due habits at the next minute, want 1", len(due))
	}
}

func TestMarkFiredDoesNotMutateInput(t *testing.T) {
	now := time.Date(2024, time.January, 15, 8, 0, 0, 0, time.UTC)
	original := models.NotificationState{LastFired: map[string]string{"b": "07:00"}}

	updated := MarkFired(original, "a", now)

	if updated.LastFired["a"] != "08:00" {
		t.Errorf("LastFired[a] = %q, want 08:00", updated.LastFired["a"])
	}
	if _, ok := original.LastFired["a"]; ok {
		t.Error("MarkFired mutated its input state")
	}
	if updated.LastFired["b"] != "07:00" {
		t.Error("MarkFired dropped an existing entry")
	}
}
