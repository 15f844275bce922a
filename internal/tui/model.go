// Package tui renders the interactive month grid: one row per habit,
// one column per day, completions toggled in place.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"habitkit/internal/constants"
	apperrors "habitkit/internal/errors"
	"habitkit/internal/models"
	"habitkit/internal/stats"
	"habitkit/internal/storage"
	"habitkit/internal/tracker"
)

type mode int

const (
	modeGrid mode = iota
	modeAdd
)

type Model struct {
	provider storage.Provider
	store    models.Store
	key      string
	year     int
	month    int

	cursorRow int
	cursorDay int

	mode mode
	form *huh.Form
	add  *addForm

	keys   KeyMap
	styles Styles
	help   help.Model
	err    string
}

// addForm holds the huh form's bound fields while adding a habit.
type addForm struct {
	Name     string
	Type     string
	Time     string
	WeekDays []string
	Date     string
}

func New(provider storage.Provider) (*Model, error) {
	store, err := provider.GetStore()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Model{
		provider:  provider,
		store:     store,
		key:       models.MonthKeyFor(now),
		year:      now.Year(),
		month:     int(now.Month()) - 1,
		cursorDay: now.Day() - 1,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		help:      help.New(),
	}, nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) currentMonth() models.MonthData {
	return tracker.GetMonth(m.store, m.key)
}

func (m *Model) shiftMonth(delta int) {
	m.month += delta
	for m.month < 0 {
		m.month += 12
		m.year--
	}
	for m.month > 11 {
		m.month -= 12
		m.year++
	}
	m.key = models.MonthKey(m.year, m.month)
	m.clampCursor()
}

func (m *Model) clampCursor() {
	month := m.currentMonth()
	if m.cursorRow >= len(month.Habits) {
		m.cursorRow = len(month.Habits) - 1
	}
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
	days := models.DaysInMonth(m.year, m.month)
	if m.cursorDay >= days {
		m.cursorDay = days - 1
	}
	if m.cursorDay < 0 {
		m.cursorDay = 0
	}
}

func (m *Model) persist() {
	if err := m.provider.SaveStore(m.store); err != nil {
		m.err = apperrors.Formatf("failed to save: %v", err)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == modeAdd {
		return m.updateAddForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.cursorRow--
			m.clampCursor()
		case key.Matches(msg, m.keys.Down):
			m.cursorRow++
			m.clampCursor()
		case key.Matches(msg, m.keys.Left):
			m.cursorDay--
			m.clampCursor()
		case key.Matches(msg, m.keys.Right):
			m.cursorDay++
			m.clampCursor()
		case key.Matches(msg, m.keys.PrevMonth):
			m.shiftMonth(-1)
		case key.Matches(msg, m.keys.NextMonth):
			m.shiftMonth(1)
		case key.Matches(msg, m.keys.Today):
			now := time.Now()
			m.year = now.Year()
			m.month = int(now.Month()) - 1
			m.key = models.MonthKeyFor(now)
			m.cursorDay = now.Day() - 1
			m.clampCursor()
		case key.Matches(msg, m.keys.Toggle):
			month := m.currentMonth()
			if m.cursorRow < len(month.Habits) {
				habit := month.Habits[m.cursorRow]
				m.store = tracker.ToggleCompletion(m.store, m.key, habit.ID, m.cursorDay)
				m.persist()
			}
		case key.Matches(msg, m.keys.Delete):
			month := m.currentMonth()
			if m.cursorRow < len(month.Habits) {
				habit := month.Habits[m.cursorRow]
				updated, err := tracker.DeleteHabit(m.store, m.key, habit.ID)
				if err != nil {
					m.err = apperrors.Format(err)
				} else {
					m.store = updated
					m.persist()
					m.clampCursor()
				}
			}
		case key.Matches(msg, m.keys.Add):
			m.startAddForm()
			return m, m.form.Init()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m *Model) startAddForm() {
	m.add = &addForm{Type: string(models.TypeDaily)}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit name").
				Value(&m.add.Name),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Daily", string(models.TypeDaily)),
					huh.NewOption("Weekly checklist", string(models.TypeWeekly)),
					huh.NewOption("Specific days", string(models.TypeSpecificDays)),
					huh.NewOption("One-time", string(models.TypeOneTime)),
				).
				Value(&m.add.Type),
			huh.NewInput().
				Title("Reminder time (HH:MM, optional)").
				Value(&m.add.Time),
			huh.NewMultiSelect[string]().
				Title("Weekdays (specific-days only)").
				Options(
					huh.NewOption("Monday", "0"),
					huh.NewOption("Tuesday", "1"),
					huh.NewOption("Wednesday", "2"),
					huh.NewOption("Thursday", "3"),
					huh.NewOption("Friday", "4"),
					huh.NewOption("Saturday", "5"),
					huh.NewOption("Sunday", "6"),
				).
				Value(&m.add.WeekDays),
			huh.NewInput().
				Title("Date (one-time only, YYYY-MM-DD)").
				Value(&m.add.Date),
		),
	)
	m.mode = modeAdd
}

func (m *Model) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.mode = modeGrid
		m.submitAddForm()
		return m, nil
	case huh.StateAborted:
		m.mode = modeGrid
		return m, nil
	}
	return m, cmd
}

func (m *Model) submitAddForm() {
	habit := models.Habit{
		ID:        models.NewHabitID(),
		Name:      strings.TrimSpace(m.add.Name),
		Type:      models.HabitType(m.add.Type),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Time:      strings.TrimSpace(m.add.Time),
	}
	if habit.Type == models.TypeSpecificDays {
		for _, d := range m.add.WeekDays {
			habit.WeekDays = append(habit.WeekDays, int(d[0]-'0'))
		}
	}
	if habit.Type == models.TypeOneTime {
		habit.SpecificDate = strings.TrimSpace(m.add.Date)
	}

	updated, err := tracker.AddHabit(m.store, m.key, habit)
	if err != nil {
		m.err = apperrors.Format(err)
		return
	}
	m.store = updated
	m.persist()
}

// truncate shortens a label to max display runes, ending with an
// ellipsis. Slicing runes instead of bytes keeps multi-byte names intact.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func (m *Model) View() string {
	if m.mode == modeAdd {
		return m.form.View()
	}

	var b strings.Builder
	month := m.currentMonth()
	days := models.DaysInMonth(m.year, m.month)

	title := fmt.Sprintf("%s %d — %d%%", constants.MonthNames[m.month], m.year, stats.MonthlyCompletionPercentage(month))
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")

	// day-number header
	var header strings.Builder
	header.WriteString(strings.Repeat(" ", 22))
	for day := 0; day < days; day++ {
		header.WriteString(fmt.Sprintf("%2d", (day+1)%10))
	}
	b.WriteString(m.styles.Header.Render(header.String()))
	b.WriteString("\n")

	if len(month.Habits) == 0 {
		b.WriteString("No habits this month. Press 'a' to add one.\n")
	}

	for row, habit := range month.Habits {
		b.WriteString(m.styles.HabitName.Render(truncate(habit.Name, 20)))

		completions := month.Completions[habit.ID]
		for day := 0; day < days; day++ {
			mark := " ·"
			style := m.styles.Missed
			if day < len(completions) && completions[day] {
				mark = " x"
				style = m.styles.Done
			}
			if row == m.cursorRow && day == m.cursorDay {
				style = m.styles.Selected
			}
			b.WriteString(style.Render(mark))
		}
		b.WriteString("\n")
	}

	if m.err != "" {
		b.WriteString(m.styles.Error.Render(m.err))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render(m.help.View(m.keys)))
	return b.String()
}

