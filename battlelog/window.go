package battlelog

import (
	"fmt"
	"path/filepath"
)

// AllDays is the fixed set of day labels checked for a month window. Months
// with fewer days simply have empty directories for the missing labels.
var AllDays = []string{
	"01", "02", "03", "04", "05", "06", "07", "08",
	"09", "10", "11", "12", "13", "14", "15", "16",
	"17", "18", "19", "20", "21", "22", "23", "24",
	"25", "26", "27", "28", "29", "30", "31",
}

// Window selects the records of one format within a year and month,
// restricted to the listed day labels.
type Window struct {
	Format string
	Year   string
	Month  string
	Days   []string
}

// MonthWindow covers every canonical day label of the month.
func MonthWindow(format, year, month string) Window {
	days := make([]string, len(AllDays))
	copy(days, AllDays)
	return Window{Format: format, Year: year, Month: month, Days: days}
}

// DayWindow covers a single day.
func DayWindow(format, year, month, day string) Window {
	return Window{Format: format, Year: year, Month: month, Days: []string{day}}
}

// Dirs returns the log directories for the window, one per day label.
// The layout is baseDir/<year>-<month>/<format>/<year>-<month>-<day>.
func (w Window) Dirs(baseDir string) []string {
	dirs := make([]string, 0, len(w.Days))
	monthDir := fmt.Sprintf("%s-%s", w.Year, w.Month)
	for _, day := range w.Days {
		dirs = append(dirs, filepath.Join(
			baseDir,
			monthDir,
			w.Format,
			fmt.Sprintf("%s-%s-%s", w.Year, w.Month, day),
		))
	}
	return dirs
}

// String renders the window for logs, e.g. "gen9ou 2024/05" or "gen9ou 2024/05/03".
func (w Window) String() string {
	if len(w.Days) == 1 {
		return fmt.Sprintf("%s %s/%s/%s", w.Format, w.Year, w.Month, w.Days[0])
	}
	return fmt.Sprintf("%s %s/%s", w.Format, w.Year, w.Month)
}
