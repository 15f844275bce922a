// Package stats derives view-level statistics from the habit store.
// Everything here is pure and read-only.
//
// Two deliberately different accounting models coexist: the daily view
// filters habits by applicability before computing its percentage, while
// the monthly grid counts every stored day slot for every habit. They
// stay separate functions; callers pick the formula their view uses.
package stats

import (
	"math"
	"sort"
	"time"

	"habitkit/internal/models"
)

func percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// CompletionRate returns the completed share of a single completions
// array as a whole-number percentage.
func CompletionRate(completions []bool) int {
	completed := 0
	for _, done := range completions {
		if done {
			completed++
		}
	}
	return percent(completed, len(completions))
}

// DailyCompletionPercentage computes, for the habits applicable on the
// reference date, the share whose completion bit for that day is set.
func DailyCompletionPercentage(habits []models.Habit, completions map[string][]bool, ref time.Time) int {
	dayIndex := ref.Day() - 1
	applicable, completed := 0, 0
	for _, h := range habits {
		if h.Type == models.TypeWeekly || !h.AppliesOn(ref) {
			continue
		}
		applicable++
		days := completions[h.ID]
		if dayIndex >= 0 && dayIndex < len(days) && days[dayIndex] {
			completed++
		}
	}
	return percent(completed, applicable)
}

// MonthlyCompletionPercentage computes the flat grid percentage: every
// stored day slot of every non-weekly habit counts, with no
// applicability filtering. Weekly habits store week slots, not day
// slots, and stay out of day-indexed aggregation.
func MonthlyCompletionPercentage(month models.MonthData) int {
	total, completed := 0, 0
	for _, h := range month.Habits {
		if h.Type == models.TypeWeekly {
			continue
		}
		days := month.Completions[h.ID]
		total += len(days)
		for _, done := range days {
			if done {
				completed++
			}
		}
	}
	return percent(completed, total)
}

// WeeklyCompletionPercentage sums completed over stored slots across the
// trailing 7 calendar days ending at ref inclusive, looking each day up
// in its own month record. Days whose month has no record, or habits
// with no stored array, contribute nothing to the denominator.
func WeeklyCompletionPercentage(store models.Store, ref time.Time) int {
	total, completed := 0, 0
	for i := 0; i < 7; i++ {
		day := ref.AddDate(0, 0, -i)
		month, ok := store[models.MonthKeyFor(day)]
		if !ok {
			continue
		}
		dayIndex := day.Day() - 1
		for _, h := range month.Habits {
			if h.Type == models.TypeWeekly {
				continue
			}
			days := month.Completions[h.ID]
			if dayIndex < 0 || dayIndex >= len(days) {
				continue
			}
			total++
			if days[dayIndex] {
				completed++
			}
		}
	}
	return percent(completed, total)
}

// HabitRank is one entry of the top-habit ranking.
type HabitRank struct {
	Name       string
	Completed  int
	Percentage int
}

// TopHabits ranks the month's day-tracked habits by raw completed-day
// count, descending, ties kept in insertion order, truncated to limit.
// Weekly habits are excluded; their 0-4 week counts would rank unfairly
// against 0-31 day counts.
func TopHabits(month models.MonthData, limit int) []HabitRank {
	ranks := make([]HabitRank, 0, len(month.Habits))
	for _, h := range month.Habits {
		if h.Type == models.TypeWeekly {
			continue
		}
		days := month.Completions[h.ID]
		completed := 0
		for _, done := range days {
			if done {
				completed++
			}
		}
		ranks = append(ranks, HabitRank{
			Name:       h.Name,
			Completed:  completed,
			Percentage: percent(completed, len(days)),
		})
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Completed > ranks[j].Completed
	})
	if len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}

// YearlyTrend returns one flat-accounting percentage per month of the
// given year. Months with no record yield 0.
func YearlyTrend(store models.Store, year int) [12]int {
	var trend [12]int
	for month := 0; month < 12; month++ {
		if record, ok := store[models.MonthKey(year, month)]; ok {
			trend[month] = MonthlyCompletionPercentage(record)
		}
	}
	return trend
}

// WeeklyBuckets partitions day indices into weeks of 7 and returns each
// bucket's completion percentage. Day indices at or beyond
// weeksInMonth*7 are dropped from every bucket. Weekly habits' arrays
// are already week-indexed, so each of their slots lands in its own
// bucket directly.
func WeeklyBuckets(habits []models.Habit, completions map[string][]bool, weeksInMonth int) []int {
	type bucket struct{ completed, total int }
	buckets := make([]bucket, weeksInMonth)
	for _, h := range habits {
		for slot, done := range completions[h.ID] {
			week := slot
			if h.Type != models.TypeWeekly {
				week = slot / 7
			}
			if week >= weeksInMonth {
				continue
			}
			buckets[week].total++
			if done {
				buckets[week].completed++
			}
		}
	}
	out := make([]int, weeksInMonth)
	for i, b := range buckets {
		out[i] = percent(b.completed, b.total)
	}
	return out
}

// CurrentStreak counts consecutive applicable days the habit was
// completed, walking backwards from today across month boundaries.
// Habit ids are fresh per month, so earlier months are matched by habit
// name. A not-yet-completed today does not break the streak; days the
// habit does not apply on are skipped.
func CurrentStreak(store models.Store, habit models.Habit, today time.Time) int {
	streak := 0
	day := today
	for i := 0; i < 366; i++ {
		if habit.AppliesOn(day) {
			done := false
			if month, ok := store[models.MonthKeyFor(day)]; ok {
				dayIndex := day.Day() - 1
				for _, h := range month.Habits {
					if h.Name != habit.Name {
						continue
					}
					days := month.Completions[h.ID]
					done = dayIndex >= 0 && dayIndex < len(days) && days[dayIndex]
					break
				}
			}
			if done {
				streak++
			} else if !sameDate(day, today) {
				break
			}
		}
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
