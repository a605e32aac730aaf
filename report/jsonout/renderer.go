// Package jsonout renders species entries and window aggregates as JSON.
package jsonout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MrSableye/showdown-log-parser/report"
)

func init() {
	report.Register(&Renderer{})
}

// Renderer implements report.Renderer for JSON output. Only day and month
// windows have JSON artifacts.
type Renderer struct{}

// Name returns the output type name.
func (r *Renderer) Name() string {
	return "json"
}

// RenderSpecies writes the species file holding the sorted species entry.
func (r *Renderer) RenderSpecies(dir string, page report.SpeciesPage) error {
	return writeJSON(filepath.Join(dir, report.SpeciesFile(page.Entry.Name, ".json")), page.Entry)
}

// RenderDay writes index.json holding the raw day aggregate.
func (r *Renderer) RenderDay(dir string, page report.DayPage) error {
	return writeJSON(filepath.Join(dir, report.IndexName+".json"), page.Stats)
}

// RenderMonth writes index.json holding the raw month aggregate.
func (r *Renderer) RenderMonth(dir string, page report.MonthPage) error {
	return writeJSON(filepath.Join(dir, report.IndexName+".json"), page.Stats)
}

func (r *Renderer) RenderYear(string, report.YearPage) error { return nil }
func (r *Renderer) RenderFormat(string, report.FormatPage) error { return nil }
func (r *Renderer) RenderRoot(string, report.RootPage) error { return nil }

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
