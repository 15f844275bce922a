package constants

const (
	AppName           = "habitkit"
	DefaultConfigPath = "~/.config/habitkit/habitkit.json"
	Version           = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Habit name bounds, measured after trimming whitespace
	MinHabitNameLen = 3
	MaxHabitNameLen = 50

	// Per-type monthly habit quotas
	MaxDailyHabits        = 25
	MaxSpecificDaysHabits = 15
	MaxOneTimeHabits      = 20
	MaxWeeklyHabits       = 10

	// Weekly habits track week slots instead of calendar days
	WeeksPerMonth = 4

	// Backup constants
	MaxBackups = 30

	// Meta store keys
	MetaLastBackupDate = "last_backup_date"
	MetaTheme          = "theme"

	// Theme values
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// MonthNames maps zero-based month indices to the names used in month
// keys and CSV rows.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}
