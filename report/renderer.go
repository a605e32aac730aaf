// Package report turns window aggregates into a browsable hierarchy of pages:
// format, year, month, day, and one page per species.
package report

import "github.com/MrSableye/showdown-log-parser/stats"

// SpeciesPage is a single species breakdown within a day or month window.
type SpeciesPage struct {
	Title      string
	TotalTeams int
	Entry      stats.SpeciesEntry
}

// DayPage is the index of one day window.
type DayPage struct {
	Title      string
	Format     string
	Year       string
	Month      string
	Day        string
	TotalTeams int
	Species    []stats.SpeciesEntry
	Stats      *stats.Stats
}

// MonthPage is the index of one month window. Days lists the present days.
type MonthPage struct {
	Title      string
	Format     string
	Year       string
	Month      string
	TotalTeams int
	Species    []stats.SpeciesEntry
	Days       []string
	Stats      *stats.Stats
}

// YearPage lists the present months of a year.
type YearPage struct {
	Title  string
	Format string
	Year   string
	Months []string
}

// FormatPage lists the present years of a format.
type FormatPage struct {
	Title  string
	Format string
	Years  []string
}

// RootPage lists the present formats.
type RootPage struct {
	Title   string
	Formats []string
}

// Renderer writes one kind of output artifact. Each method writes into dir,
// which already exists. A renderer may ignore levels it has no artifact for.
type Renderer interface {
	Name() string
	RenderSpecies(dir string, page SpeciesPage) error
	RenderDay(dir string, page DayPage) error
	RenderMonth(dir string, page MonthPage) error
	RenderYear(dir string, page YearPage) error
	RenderFormat(dir string, page FormatPage) error
	RenderRoot(dir string, page RootPage) error
}

// IndexName is the base name of every window page.
const IndexName = "index"

// SpeciesFile returns the file name of a species page. Ids only contain
// [a-z0-9], so the "_" prefix given to an empty id or one equal to the window
// index name cannot collide with another species.
func SpeciesFile(id, ext string) string {
	if id == "" || id == IndexName {
		return "_" + id + ext
	}
	return id + ext
}
