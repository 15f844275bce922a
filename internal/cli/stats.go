package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"habitkit/internal/constants"
	"habitkit/internal/models"
	"habitkit/internal/stats"
	"habitkit/internal/tracker"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderBar draws a fixed-width percentage bar for terminal output.
func renderBar(pct, width int) string {
	filled := pct * width / 100
	return barStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
}

type StatsCmd struct {
	Dashboard StatsDashboardCmd `cmd:"" help:"Show the monthly dashboard." default:"1"`
	Today     StatsTodayCmd     `cmd:"" help:"Show today's applicable habits and progress."`
	Week      StatsWeekCmd      `cmd:"" help:"Show the trailing 7-day completion rate."`
	Month     StatsMonthCmd     `cmd:"" help:"Show a month's grid completion and weekly buckets."`
	Year      StatsYearCmd      `cmd:"" help:"Show the 12-month completion trend."`
}

type StatsDashboardCmd struct {
	Month string `help:"Month (YYYY-MM, default: current)."`
	Top   int    `help:"Number of top habits to show." default:"5"`
}

func (c *StatsDashboardCmd) Run(ctx *Context) error {
	key, err := ResolveMonthKey(c.Month)
	if err != nil {
		return err
	}

	store, err := ctx.Store.GetStore()
	if err != nil {
		return err
	}
	month := tracker.GetMonth(store, key)

	monthly := stats.MonthlyCompletionPercentage(month)
	weekly := stats.WeeklyCompletionPercentage(store, time.Now())

	fmt.Println(titleStyle.Render("Dashboard — " + key))
	fmt.Printf("Monthly progress  %s %3d%%\n", renderBar(monthly, 20), monthly)
	fmt.Printf("Weekly progress   %s %3d%%\n", renderBar(weekly, 20), weekly)

	ranks := stats.TopHabits(month, c.Top)
	if len(ranks) > 0 {
		fmt.Println()
		fmt.Println(titleStyle.Render("Top habits"))
		for _, r := range ranks {
			fmt.Printf("%-30s %s %3d%% (%d days)\n", r.Name, renderBar(r.Percentage, 20), r.Percentage, r.Completed)
		}
	}
	return nil
}

type StatsTodayCmd struct{}

func (c *StatsTodayCmd) Run(ctx *Context) error {
	store, err := ctx.Store.GetStore()
	if err != nil {
		return err
	}

	now := time.Now()
	month := tracker.GetMonth(store, models.MonthKeyFor(now))
	dayIndex := now.Day() - 1

	fmt.Println(titleStyle.Render("Today — " + now.Format(constants.DateFormat)))
	shown := 0
	for _, h := range month.Habits {
		if h.Type == models.TypeWeekly || !h.AppliesOn(now) {
			continue
		}
		shown++
		mark := "[ ]"
		days := month.Completions[h.ID]
		if dayIndex >= 0 && dayIndex < len(days) && days[dayIndex] {
			mark = "[x]"
		}
		streak := stats.CurrentStreak(store, h, now)
		streakNote := ""
		if streak > 1 {
			streakNote = fmt.Sprintf("  (%d-day streak)", streak)
		}
		fmt.Printf("%s %s%s\n", mark, h.Name, streakNote)
	}
	if shown == 0 {
		fmt.Println("No habits scheduled for today.")
		return nil
	}

	pct := stats.DailyCompletionPercentage(month.Habits, month.Completions, now)
	fmt.Printf("\nCompletion  %s %3d%%\n", renderBar(pct, 20), pct)
	return nil
}

type StatsWeekCmd struct{}

func (c *StatsWeekCmd) Run(ctx *Context) error {
	store, err := ctx.Store.GetStore()
	if err != nil {
		return err
	}
	pct := stats.WeeklyCompletionPercentage(store, time.Now())
	fmt.Printf("Trailing 7 days  %s %3d%%\n", renderBar(pct, 20), pct)
	return nil
}

type StatsMonthCmd struct {
	Month string `help:"Month (YYYY-MM, default: current)."`
}

func (c *StatsMonthCmd) Run(ctx *Context) error {
	key, err := ResolveMonthKey(c.Month)
	if err != nil {
		return err
	}

	store, err := ctx.Store.GetStore()
	if err != nil {
		return err
	}
	month := tracker.GetMonth(store, key)

	pct := stats.MonthlyCompletionPercentage(month)
	fmt.Println(titleStyle.Render("Month — " + key))
	fmt.Printf("Overall  %s %3d%%\n\n", renderBar(pct, 20), pct)

	buckets := stats.WeeklyBuckets(month.Habits, month.Completions, constants.WeeksPerMonth)
	for i, b := range buckets {
		fmt.Printf("Week %d   %s %3d%%\n", i+1, renderBar(b, 20), b)
	}
	return nil
}

type StatsYearCmd struct {
	Year int `arg:"" optional:"" help:"Year (default: current)."`
}

func (c *StatsYearCmd) Run(ctx *Context) error {
	year := c.Year
	if year == 0 {
		year = time.Now().Year()
	}

	store, err := ctx.Store.GetStore()
	if err != nil {
		return err
	}
	trend := stats.YearlyTrend(store, year)

	fmt.Println(titleStyle.Render("Yearly trend — " + strconv.Itoa(year)))
	for month, pct := range trend {
		fmt.Printf("%-10s %s %3d%%\n", constants.MonthNames[month], renderBar(pct, 20), pct)
	}
	return nil
}
