package tracker

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"habitkit/internal/models"
	"habitkit/internal/validation"
)

func newHabit(name string, t models.HabitType) models.Habit {
	h := models.Habit{
		ID:        models.NewHabitID(),
		Name:      name,
		Type:      t,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	switch t {
	case models.TypeSpecificDays:
		h.WeekDays = []int{0, 2, 4}
	case models.TypeOneTime:
		h.SpecificDate = "2099-01-01"
	}
	return h
}

func TestGetMonthAbsent(t *testing.T) {
	store := models.Store{}
	month := GetMonth(store, "2024-0")

	if month.Year != 2024 || month.Month != 0 {
		t.Errorf("empty record year/month = %d/%d, want 2024/0", month.Year, month.Month)
	}
	if len(month.Habits) != 0 || len(month.Completions) != 0 {
		t.Error("empty record has data")
	}
	if len(store) != 0 {
		t.Error("reading created a month in the store")
	}
}

func TestAddHabitInitializesCompletions(t *testing.T) {
	store := models.Store{}
	habit := newHabit("Read", models.TypeDaily)

	updated, err := AddHabit(store, "2024-0", habit)
	if err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	month := updated["2024-0"]
	if len(month.Habits) != 1 {
		t.Fatalf("got %d habits, want 1", len(month.Habits))
	}
	days := month.Completions[habit.ID]
	if len(days) != 31 {
		t.Fatalf("January completions length = %d, want 31", len(days))
	}
	for i, done := range days {
		if done {
			t.Fatalf("day %d initialized true", i)
		}
	}
	if len(store) != 0 {
		t.Error("AddHabit mutated its input store")
	}
}

func TestAddHabitWeeklySlots(t *testing.T) {
	store, err := AddHabit(models.Store{}, "2024-0", newHabit("Plan week", models.TypeWeekly))
	if err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	month := store["2024-0"]
	if got := len(month.Completions[month.Habits[0].ID]); got != 4 {
		t.Errorf("weekly completions length = %d, want 4", got)
	}
}

func TestAddHabitQuota(t *testing.T) {
	store := models.Store{}
	var err error
	for i := 0; i < 25; i++ {
		store, err = AddHabit(store, "2024-0", newHabit(fmt.Sprintf("Habit %02d", i), models.TypeDaily))
		if err != nil {
			t.Fatalf("add %d failed: %v", i, err)
		}
	}

	before := store.Clone()
	_, err = AddHabit(store, "2024-0", newHabit("One too many", models.TypeDaily))
	if err == nil {
		t.Fatal("26th daily habit accepted")
	}
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Errorf("error is %T, want *validation.Error", err)
	}
	if len(store["2024-0"].Habits) != len(before["2024-0"].Habits) {
		t.Error("failed add modified the store")
	}

	// other types still have room
	if _, err := AddHabit(store, "2024-0", newHabit("Stretch", models.TypeSpecificDays)); err != nil {
		t.Errorf("specific-days add blocked by daily quota: %v", err)
	}
}

func TestCompletionsHabitsConsistency(t *testing.T) {
	store := models.Store{}
	var err error
	var ids []string
	for i := 0; i < 5; i++ {
		h := newHabit(fmt.Sprintf("Habit %d", i), models.TypeDaily)
		ids = append(ids, h.ID)
		store, err = AddHabit(store, "2024-1", h)
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}
	store, err = DeleteHabit(store, "2024-1", ids[2])
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	month := store["2024-1"]
	if len(month.Habits) != 4 {
		t.Fatalf("got %d habits, want 4", len(month.Habits))
	}
	if len(month.Completions) != len(month.Habits) {
		t.Fatalf("completions count %d != habits count %d", len(month.Completions), len(month.Habits))
	}
	for _, h := range month.Habits {
		days, ok := month.Completions[h.ID]
		if !ok {
			t.Errorf("habit %s has no completions entry", h.Name)
		}
		if len(days) != 29 { // February 2024 is a leap month
			t.Errorf("habit %s completions length = %d, want 29", h.Name, len(days))
		}
	}
	if _, ok := month.Completions[ids[2]]; ok {
		t.Error("deleted habit left an orphan completions entry")
	}
}

func TestTogglePairRestoresValue(t *testing.T) {
	habit := newHabit("Read", models.TypeDaily)
	store, err := AddHabit(models.Store{}, "2024-0", habit)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	once := ToggleCompletion(store, "2024-0", habit.ID, 4)
	if !once["2024-0"].Completions[habit.ID][4] {
		t.Fatal("first toggle did not set day 4")
	}
	twice := ToggleCompletion(once, "2024-0", habit.ID, 4)
	if twice["2024-0"].Completions[habit.ID][4] {
		t.Fatal("second toggle did not restore day 4")
	}
}

func TestToggleOutOfRangeIsNoOp(t *testing.T) {
	habit := newHabit("Read", models.TypeDaily)
	store, err := AddHabit(models.Store{}, "2024-0", habit)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	for _, day := range []int{-1, 31, 99} {
		updated := ToggleCompletion(store, "2024-0", habit.ID, day)
		for i, done := range updated["2024-0"].Completions[habit.ID] {
			if done {
				t.Errorf("toggle day %d flipped day %d", day, i)
			}
		}
	}
}

func TestToggleLazilyCreatesArray(t *testing.T) {
	habit := newHabit("Read", models.TypeDaily)
	store := models.Store{
		"2024-0": {
			Month:       0,
			Year:        2024,
			Habits:      []models.Habit{habit},
			Completions: map[string][]bool{}, // no array for the habit
		},
	}

	updated := ToggleCompletion(store, "2024-0", habit.ID, 10)
	days := updated["2024-0"].Completions[habit.ID]
	if len(days) != 31 {
		t.Fatalf("lazily created array length = %d, want 31", len(days))
	}
	if !days[10] {
		t.Error("target day not toggled")
	}
}

func TestUpdateHabitImmutableFields(t *testing.T) {
	habit := newHabit("Read books", models.TypeSpecificDays)
	store, err := AddHabit(models.Store{}, "2024-0", habit)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	newName := "Read more books"
	newTime := "07:30"
	updated, err := UpdateHabit(store, "2024-0", habit.ID, HabitUpdate{Name: &newName, Time: &newTime})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got := updated["2024-0"].Habits[0]
	if got.Name != newName || got.Time != newTime {
		t.Errorf("update not applied: name=%q time=%q", got.Name, got.Time)
	}
	if got.ID != habit.ID || got.Type != habit.Type || got.CreatedAt != habit.CreatedAt {
		t.Error("update changed an immutable field")
	}
	if len(got.WeekDays) != len(habit.WeekDays) {
		t.Error("update changed weekDays")
	}

	bad := "ab"
	if _, err := UpdateHabit(store, "2024-0", habit.ID, HabitUpdate{Name: &bad}); err == nil {
		t.Error("invalid rename accepted")
	}
	if _, err := UpdateHabit(store, "2024-0", "missing", HabitUpdate{Name: &newName}); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing habit error = %v, want ErrNotFound", err)
	}
}

func TestCopyHabitsResetsCompletions(t *testing.T) {
	store := models.Store{}
	var err error
	for _, name := range []string{"Read", "Meditate", "Exercise"} {
		store, err = AddHabit(store, "2024-0", newHabit(name, models.TypeDaily))
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}
	// mark some completions in the source month
	src := store["2024-0"]
	store = ToggleCompletion(store, "2024-0", src.Habits[0].ID, 3)

	copied, err := CopyHabits(store, "2024-0", "2024-1")
	if err != nil {
		t.Fatalf("CopyHabits failed: %v", err)
	}

	source := copied["2024-0"]
	target := copied["2024-1"]
	if len(target.Habits) != len(source.Habits) {
		t.Fatalf("copied %d habits, want %d", len(target.Habits), len(source.Habits))
	}
	for i, h := range target.Habits {
		if h.Name != source.Habits[i].Name {
			t.Errorf("habit %d name = %q, want %q", i, h.Name, source.Habits[i].Name)
		}
		if h.ID == source.Habits[i].ID {
			t.Errorf("habit %d kept the source id", i)
		}
		days := target.Completions[h.ID]
		if len(days) != 29 { // February 2024
			t.Errorf("habit %d completions length = %d, want 29", i, len(days))
		}
		for d, done := range days {
			if done {
				t.Errorf("habit %d day %d copied as completed", i, d)
			}
		}
	}
}

func TestCopyHabitsErrors(t *testing.T) {
	store, err := AddHabit(models.Store{}, "2024-0", newHabit("Read", models.TypeDaily))
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if _, err := CopyHabits(store, "2023-5", "2024-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing source error = %v, want ErrNotFound", err)
	}
	if _, err := CopyHabits(store, "2024-0", "2024-0"); !errors.Is(err, ErrNotFound) {
		t.Errorf("same-month copy error = %v, want ErrNotFound", err)
	}
}

func TestScenarioAddAndToggle(t *testing.T) {
	habit := newHabit("Read", models.TypeDaily)
	store, err := AddHabit(models.Store{}, "2024-0", habit)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	days := store["2024-0"].Completions[habit.ID]
	if len(days) != 31 {
		t.Fatalf("completions length = %d, want 31", len(days))
	}

	store = ToggleCompletion(store, "2024-0", habit.ID, 4)
	days = store["2024-0"].Completions[habit.ID]
	if !days[4] {
		t.Error("day 4 not completed after toggle")
	}
	for i, done := range days {
		if i != 4 && done {
			t.Errorf("day %d unexpectedly completed", i)
		}
	}
}
