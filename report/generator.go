package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/MrSableye/showdown-log-parser/battlelog"
	"github.com/MrSableye/showdown-log-parser/internal/logger"
	"github.com/MrSableye/showdown-log-parser/stats"
)

// defaultWindowLimit bounds how many day windows of one month are read at once.
const defaultWindowLimit = 4

// DayResult summarizes a present day window.
type DayResult struct {
	Day        string
	TotalTeams int
	Species    int
}

// MonthResult summarizes a month window. Days holds only present days.
type MonthResult struct {
	Month      string
	Present    bool
	TotalTeams int
	Species    int
	Days       []DayResult
}

// YearResult summarizes a year.
type YearResult struct {
	Year    string
	Present bool
	Months  []MonthResult
}

// FormatResult summarizes a format.
type FormatResult struct {
	Format  string
	Present bool
	Years   []YearResult
}

// Summary is the outcome of a generation run.
type Summary struct {
	Present bool
	Formats []FormatResult
}

// Pages counts the present day and month windows in s.
func (s *Summary) Pages() (days, months int) {
	for _, f := range s.Formats {
		for _, y := range f.Years {
			for _, m := range y.Months {
				if m.Present {
					months++
				}
				days += len(m.Days)
			}
		}
	}
	return days, months
}

// Generator aggregates every requested window and hands present windows to
// the renderers. Absent windows produce no directories or files.
type Generator struct {
	Source    battlelog.Source
	Renderers []Renderer
	OutputDir string
	// WindowLimit bounds concurrent day windows per month; <= 0 uses the default.
	WindowLimit int
}

// Run generates reports for every combination of formats, years and months.
func (g *Generator) Run(ctx context.Context, formats, years, months []string) (*Summary, error) {
	results := make([]FormatResult, len(formats))
	eg, ctx := errgroup.WithContext(ctx)
	for i, format := range formats {
		eg.Go(func() error {
			r, err := g.runFormat(ctx, format, years, months)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	present := make([]bool, len(results))
	for i, r := range results {
		present[i] = r.Present
	}
	summary := &Summary{Present: stats.AnyPresent(present...), Formats: results}
	if !summary.Present {
		logger.Info("no battle logs found, nothing generated")
		return summary, nil
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	page := RootPage{Title: RootTitle, Formats: stats.PresentLabels(formats, present)}
	if err := g.each(func(r Renderer) error { return r.RenderRoot(g.OutputDir, page) }); err != nil {
		return nil, err
	}
	return summary, nil
}

func (g *Generator) runFormat(ctx context.Context, format string, years, months []string) (FormatResult, error) {
	results := make([]YearResult, len(years))
	eg, ctx := errgroup.WithContext(ctx)
	for i, year := range years {
		eg.Go(func() error {
			r, err := g.runYear(ctx, format, year, months)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return FormatResult{}, err
	}

	present := make([]bool, len(results))
	for i, r := range results {
		present[i] = r.Present
	}
	result := FormatResult{Format: format, Present: stats.AnyPresent(present...), Years: results}
	if !result.Present {
		return result, nil
	}

	dir := filepath.Join(g.OutputDir, format)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return FormatResult{}, fmt.Errorf("creating %s: %w", dir, err)
	}
	page := FormatPage{
		Title:  formatTitle(format),
		Format: format,
		Years:  stats.PresentLabels(years, present),
	}
	if err := g.each(func(r Renderer) error { return r.RenderFormat(dir, page) }); err != nil {
		return FormatResult{}, err
	}
	return result, nil
}

func (g *Generator) runYear(ctx context.Context, format, year string, months []string) (YearResult, error) {
	results := make([]MonthResult, len(months))
	eg, ctx := errgroup.WithContext(ctx)
	for i, month := range months {
		eg.Go(func() error {
			r, err := g.runMonth(ctx, format, year, month)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return YearResult{}, err
	}

	present := make([]bool, len(results))
	for i, r := range results {
		present[i] = r.Present
	}
	result := YearResult{Year: year, Present: stats.AnyPresent(present...), Months: results}
	if !result.Present {
		return result, nil
	}

	dir := filepath.Join(g.OutputDir, format, year)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return YearResult{}, fmt.Errorf("creating %s: %w", dir, err)
	}
	page := YearPage{
		Title:  yearTitle(format, year),
		Format: format,
		Year:   year,
		Months: stats.PresentLabels(months, present),
	}
	if err := g.each(func(r Renderer) error { return r.RenderYear(dir, page) }); err != nil {
		return YearResult{}, err
	}
	return result, nil
}

func (g *Generator) runMonth(ctx context.Context, format, year, month string) (MonthResult, error) {
	window := battlelog.MonthWindow(format, year, month)
	monthStats, err := stats.AggregateWindow(ctx, g.Source, window)
	if err != nil {
		return MonthResult{}, fmt.Errorf("aggregating %s: %w", window, err)
	}

	dir := filepath.Join(g.OutputDir, format, year, month)

	dayStats := make([]*stats.Stats, len(battlelog.AllDays))
	eg, dayCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.windowLimit())
	for i, day := range battlelog.AllDays {
		eg.Go(func() error {
			s, err := g.runDay(dayCtx, dir, format, year, month, day)
			if err != nil {
				return err
			}
			dayStats[i] = s
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return MonthResult{}, err
	}

	present := make([]bool, len(dayStats))
	var days []DayResult
	for i, s := range dayStats {
		present[i] = s.Present()
		if present[i] {
			days = append(days, DayResult{
				Day:        battlelog.AllDays[i],
				TotalTeams: s.TotalTeams,
				Species:    s.UsedSpecies(),
			})
		}
	}

	entries := stats.SortedSpeciesEntries(monthStats)
	result := MonthResult{
		Month:      month,
		Present:    stats.AnyPresent(present...),
		TotalTeams: monthStats.TotalTeams,
		Species:    len(entries),
		Days:       days,
	}
	if !result.Present {
		logger.Debug("month has no battle logs", "window", window.String())
		return result, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return MonthResult{}, fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := g.renderSpecies(dir, monthStats.TotalTeams, entries, func(name string) string {
		return monthSpeciesTitle(format, year, month, name)
	}); err != nil {
		return MonthResult{}, err
	}
	page := MonthPage{
		Title:      monthTitle(format, year, month),
		Format:     format,
		Year:       year,
		Month:      month,
		TotalTeams: monthStats.TotalTeams,
		Species:    entries,
		Days:       stats.PresentLabels(battlelog.AllDays, present),
		Stats:      monthStats,
	}
	if err := g.each(func(r Renderer) error { return r.RenderMonth(dir, page) }); err != nil {
		return MonthResult{}, err
	}

	logger.Info("month generated",
		"window", window.String(),
		"teams", monthStats.TotalTeams,
		"species", len(entries),
		"days", len(days),
	)
	return result, nil
}

// runDay aggregates one day and writes its pages when it has any species.
func (g *Generator) runDay(ctx context.Context, monthDir, format, year, month, day string) (*stats.Stats, error) {
	window := battlelog.DayWindow(format, year, month, day)
	dayStats, err := stats.AggregateWindow(ctx, g.Source, window)
	if err != nil {
		return nil, fmt.Errorf("aggregating %s: %w", window, err)
	}

	entries := stats.SortedSpeciesEntries(dayStats)
	if len(entries) == 0 {
		return dayStats, nil
	}

	dir := filepath.Join(monthDir, day)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := g.renderSpecies(dir, dayStats.TotalTeams, entries, func(name string) string {
		return daySpeciesTitle(format, year, month, day, name)
	}); err != nil {
		return nil, err
	}
	page := DayPage{
		Title:      dayTitle(format, year, month, day),
		Format:     format,
		Year:       year,
		Month:      month,
		Day:        day,
		TotalTeams: dayStats.TotalTeams,
		Species:    entries,
		Stats:      dayStats,
	}
	if err := g.each(func(r Renderer) error { return r.RenderDay(dir, page) }); err != nil {
		return nil, err
	}
	return dayStats, nil
}

func (g *Generator) renderSpecies(dir string, totalTeams int, entries []stats.SpeciesEntry, title func(string) string) error {
	for _, entry := range entries {
		page := SpeciesPage{
			Title:      title(entry.Name),
			TotalTeams: totalTeams,
			Entry:      entry,
		}
		if err := g.each(func(r Renderer) error { return r.RenderSpecies(dir, page) }); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) each(fn func(Renderer) error) error {
	for _, r := range g.Renderers {
		if err := fn(r); err != nil {
			return fmt.Errorf("%s renderer: %w", r.Name(), err)
		}
	}
	return nil
}

func (g *Generator) windowLimit() int {
	if g.WindowLimit > 0 {
		return g.WindowLimit
	}
	return defaultWindowLimit
}
