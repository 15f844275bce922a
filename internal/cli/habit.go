package cli

import (
	"fmt"
	"time"

	"habitkit/internal/models"
	"habitkit/internal/stats"
	"habitkit/internal/tracker"
	"habitkit/internal/validation"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit to a month."`
	List   HabitListCmd   `cmd:"" help:"List a month's habits."`
	Toggle HabitToggleCmd `cmd:"" help:"Toggle a habit's completion for a day."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit a habit's name, time, or category."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its history."`
	Copy   HabitCopyCmd   `cmd:"" help:"Copy a month's habits into another month as a template."`
}

type HabitAddCmd struct {
	Name     string `arg:"" help:"Habit name (3-50 characters)."`
	Type     string `help:"Habit type: daily, weekly, specific-days, one-time." default:"daily"`
	Time     string `help:"Optional reminder time (HH:MM)."`
	Days     string `help:"Weekdays for specific-days habits (e.g. mon,wed,fri)."`
	Date     string `help:"Target date for one-time habits (YYYY-MM-DD)."`
	Category string `help:"Optional category label."`
	Month    string `help:"Month to add to (YYYY-MM, default: current)."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	key, err := ResolveMonthKey(c.Month)
	if err != nil {
		return err
	}

	name, err := validation.ValidateName(c.Name)
	if err != nil {
		return err
	}

	habit := models.Habit{
		ID:        models.NewHabitID(),
		Name:      name,
		Type:      models.HabitType(c.Type),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Category:  c.Category,
		Time:      c.Time,
	}
	if c.Days != "" {
		days, err := ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		habit.WeekDays = days
	}
	if c.Date != "" {
		habit.SpecificDate = c.Date
	}

	store, err := ctx.Store.GetStore()
	if err != nil {
		return err
	}
	updated, err := tracker.AddHabit(store, key, habit)
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveStore(updated); err != nil {
		return err
	}

	fmt.Printf("Added habit %q (%s) to %s\n", habit.Name, FormatSchedule(habit), key)
	return nil
}

type HabitListCmd struct {
	Month string `help:"Month to list (YYYY-MM, default: current)."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	key, err := ResolveMonthKey(c.Month)
	if err != nil {
		return err
	}

	store, err := ctx.Store.GetStore()
	if err != nil {
		return err
	}
	month := tracker.GetMonth(store, key)
	if len(month.Habits) == 0 {
		fmt.Printf("No habits for %s.\n", key)
		return nil
	}

	for _, h := range month.Habits {
		rate := stats.CompletionRate(month.Completions[h.ID])
		timeNote := ""
		if h.Time != "" {
			timeNote = " at " + h.Time
		}
		fmt.Printf("%-30s %-18s %3d%%%s\n", h.Name, FormatSchedule(h), rate, timeNote)
	}
	return nil
}

type HabitToggleCmd struct {
	Name  string `arg:"" help:"Habit name."`
	Day   int    `arg:"" optional:"" help:"Day of month (1-based, default: today)." default:"0"`
	Month string `help:"Month (YYYY-MM, default: current)."`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	key, err := ResolveMonthKey(c.Month)
	if err != nil {
		return err
	}

	day := c.Day
	if day == 0 {
		day = time.Now().Day()
	}

	store, err := ctx.Store.GetStore()
	if err != nil {
		return err
	}
	month := tracker.GetMonth(store, key)
	habit, err := FindHabit(month, c.Name)
	if err != nil {
		return err
	}

	updated := tracker.ToggleCompletion(store, key, habit.ID, day-1)
	if err := ctx.Store.SaveStore(updated); err != nil {
		return err
	}

	done := tracker.GetMonth(updated, key).Completions[habit.ID]
	state := "not completed"
	if idx := day - 1; idx >= 0 && idx < len(done) && done[idx] {
		state = "completed"
	}
	fmt.Printf("Habit %q on day %d: %s\n", habit.Name, day, state)
	return nil
}

type HabitEditCmd struct {
	Name     string  `arg:"" help:"Habit name."`
	NewName  *string `help:"New habit name."`
	Time     *string `help:"New reminder time (HH:MM, empty clears)."`
	Category *string `help:"New category label."`
	Month    string  `help:"Month (YYYY-MM, default: current)."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	key, err := ResolveMonthKey(c.Month)
	if err != nil {
		return err
	}

	store, err := ctx.Store.GetStore()
	if err != nil {
		return err
	}
	habit, err := FindHabit(tracker.GetMonth(store, key), c.Name)
	if err != nil {
		return err
	}

	updated, err := tracker.UpdateHabit(store, key, habit.ID, tracker.HabitUpdate{
		Name:     c.NewName,
		Time:     c.Time,
		Category: c.Category,
	})
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveStore(updated); err != nil {
		return err
	}

	fmt.Printf("Updated habit %q\n", habit.Name)
	return nil
}

type HabitDeleteCmd struct {
	Name  string `arg:"" help:"Habit name."`
	Month string `help:"Month (YYYY-MM, default: current)."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	key, err := ResolveMonthKey(c.Month)
	if err != nil {
		return err
	}

	store, err := ctx.Store.GetStore()
	if err != nil {
		return err
	}
	habit, err := FindHabit(tracker.GetMonth(store, key), c.Name)
	if err != nil {
		return err
	}

	updated, err := tracker.DeleteHabit(store, key, habit.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveStore(updated); err != nil {
		return err
	}

	fmt.Printf("Deleted habit %q and its completion history\n", habit.Name)
	return nil
}

type HabitCopyCmd struct {
	From string `arg:"" help:"Source month (YYYY-MM)."`
	To   string `arg:"" help:"Target month (YYYY-MM)."`
}

func (c *HabitCopyCmd) Run(ctx *Context) error {
	srcKey, err := ResolveMonthKey(c.From)
	if err != nil {
		return err
	}
	dstKey, err := ResolveMonthKey(c.To)
	if err != nil {
		return err
	}

	store, err := ctx.Store.GetStore()
	if err != nil {
		return err
	}
	updated, err := tracker.CopyHabits(store, srcKey, dstKey)
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveStore(updated); err != nil {
		return err
	}

	count := len(tracker.GetMonth(updated, dstKey).Habits)
	fmt.Printf("Copied %d habits from %s to %s (completions reset)\n", count, srcKey, dstKey)
	return nil
}
