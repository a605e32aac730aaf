// Package html renders report pages as static HTML.
package html

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/MrSableye/showdown-log-parser/report"
	"github.com/MrSableye/showdown-log-parser/stats"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var funcs = template.FuncMap{
	"percent": percent,
	"axis":    newAxis,
	"inc":     func(i int) int { return i + 1 },
	"species": speciesHref,
}

func speciesHref(id string) string {
	return report.SpeciesFile(id, ".html")
}

var (
	rootTemplate    = mustParse("root-index.html.tmpl")
	formatTemplate  = mustParse("format-index.html.tmpl")
	yearTemplate    = mustParse("year-index.html.tmpl")
	monthTemplate   = mustParse("month-index.html.tmpl")
	dayTemplate     = mustParse("day-index.html.tmpl")
	speciesTemplate = mustParse("species.html.tmpl")
)

func init() {
	report.Register(&Renderer{})
}

// mustParse pairs a page template with the shared layout.
func mustParse(name string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).ParseFS(
		templateFS,
		"templates/layout.html.tmpl",
		"templates/usage-table.html.tmpl",
		"templates/"+name,
	))
}

// Renderer implements report.Renderer for HTML output.
type Renderer struct{}

// Name returns the output type name.
func (r *Renderer) Name() string {
	return "html"
}

// RenderSpecies writes the species page linked from the window index.
func (r *Renderer) RenderSpecies(dir string, page report.SpeciesPage) error {
	return render(filepath.Join(dir, speciesHref(page.Entry.Name)), speciesTemplate, page)
}

// RenderDay writes the day index.
func (r *Renderer) RenderDay(dir string, page report.DayPage) error {
	return render(filepath.Join(dir, report.IndexName+".html"), dayTemplate, page)
}

// RenderMonth writes the month index.
func (r *Renderer) RenderMonth(dir string, page report.MonthPage) error {
	return render(filepath.Join(dir, report.IndexName+".html"), monthTemplate, page)
}

// RenderYear writes the year index.
func (r *Renderer) RenderYear(dir string, page report.YearPage) error {
	return render(filepath.Join(dir, report.IndexName+".html"), yearTemplate, page)
}

// RenderFormat writes the format index.
func (r *Renderer) RenderFormat(dir string, page report.FormatPage) error {
	return render(filepath.Join(dir, report.IndexName+".html"), formatTemplate, page)
}

// RenderRoot writes the root index.
func (r *Renderer) RenderRoot(dir string, page report.RootPage) error {
	return render(filepath.Join(dir, report.IndexName+".html"), rootTemplate, page)
}

func render(path string, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("rendering %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// axis is one breakdown table on a species page.
type axis struct {
	Title   string
	Entries []stats.Entry
	Total   int
}

func newAxis(title string, entries []stats.Entry, total int) axis {
	return axis{Title: title, Entries: entries, Total: total}
}

// percent formats part/total as a percentage with two decimals.
func percent(part, total int) string {
	if total == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(part)*100/float64(total))
}
