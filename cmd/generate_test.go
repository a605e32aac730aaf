package cmd

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/MrSableye/showdown-log-parser/internal/config"
	"github.com/MrSableye/showdown-log-parser/internal/manifest"
	"github.com/MrSableye/showdown-log-parser/report"
)

// newGenerateCommand returns a command with fresh generate flags and an
// empty config, so tests never see the environment.
func newGenerateCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	saved := cfg
	cfg = &config.Config{}
	t.Cleanup(func() { cfg = saved })

	cmd := &cobra.Command{Use: "generate"}
	addGenerateFlags(cmd.Flags())
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}
	return cmd
}

func TestResolveGenerateOptions(t *testing.T) {
	cmd := newGenerateCommand(t,
		"--directory", "logs",
		"--format", "gen9ou,gen8ou",
		"--year", "2024",
		"--month", "05", "--month", "06",
		"--output-type", "JSON",
		"--output-directory", "site",
		"--workers", "3",
	)

	opts, err := resolveGenerateOptions(cmd)
	if err != nil {
		t.Fatalf("resolveGenerateOptions returned error: %v", err)
	}
	if opts.directory != "logs" || opts.outputDir != "site" || opts.workers != 3 {
		t.Fatalf("opts = %+v", opts)
	}
	if !reflect.DeepEqual(opts.formats, []string{"gen9ou", "gen8ou"}) {
		t.Fatalf("formats = %v", opts.formats)
	}
	if !reflect.DeepEqual(opts.months, []string{"05", "06"}) {
		t.Fatalf("months = %v", opts.months)
	}
	if got := report.Names(opts.renderers); !reflect.DeepEqual(got, []string{"json"}) {
		t.Fatalf("renderers = %v, want [json]", got)
	}
}

func TestResolveGenerateOptions_ConfigFallbacks(t *testing.T) {
	cmd := newGenerateCommand(t,
		"--format", "gen9ou", "--year", "2024", "--month", "05", "--output-type", "html",
	)
	cfg = &config.Config{
		LogDirectory:    "/var/logs",
		OutputDirectory: "/srv/site",
		ManifestPath:    "/var/manifest.db",
		Workers:         6,
	}

	opts, err := resolveGenerateOptions(cmd)
	if err != nil {
		t.Fatalf("resolveGenerateOptions returned error: %v", err)
	}
	if opts.directory != "/var/logs" || opts.outputDir != "/srv/site" || opts.manifestPath != "/var/manifest.db" || opts.workers != 6 {
		t.Fatalf("opts = %+v, want config fallbacks", opts)
	}
}

func TestResolveGenerateOptions_Required(t *testing.T) {
	full := map[string]string{
		"directory":        "logs",
		"format":           "gen9ou",
		"year":             "2024",
		"month":            "05",
		"output-type":      "html",
		"output-directory": "site",
	}

	for missing := range full {
		t.Run(missing, func(t *testing.T) {
			var args []string
			for flag, value := range full {
				if flag != missing {
					args = append(args, "--"+flag, value)
				}
			}
			cmd := newGenerateCommand(t, args...)

			_, err := resolveGenerateOptions(cmd)
			want := "--" + missing + " is required"
			if err == nil || err.Error() != want {
				t.Fatalf("expected %q, got: %v", want, err)
			}
		})
	}
}

func TestResolveRenderers(t *testing.T) {
	renderers, err := resolveRenderers([]string{"json", " HTML "})
	if err != nil {
		t.Fatalf("resolveRenderers returned error: %v", err)
	}
	if got := report.Names(renderers); !reflect.DeepEqual(got, []string{"html", "json"}) {
		t.Fatalf("renderers = %v, want [html json]", got)
	}

	_, err = resolveRenderers([]string{"html", "pdf"})
	if err == nil || !strings.Contains(err.Error(), `invalid --output-type: "pdf"`) {
		t.Fatalf("expected invalid output type error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "html, json") {
		t.Fatalf("error should list allowed types: %v", err)
	}
}

func sampleSummary() *report.Summary {
	return &report.Summary{
		Present: true,
		Formats: []report.FormatResult{
			{
				Format:  "gen9ou",
				Present: true,
				Years: []report.YearResult{{
					Year:    "2024",
					Present: true,
					Months: []report.MonthResult{
						{
							Month:      "05",
							Present:    true,
							TotalTeams: 6,
							Species:    3,
							Days: []report.DayResult{
								{Day: "03", TotalTeams: 2, Species: 2},
								{Day: "17", TotalTeams: 4, Species: 3},
							},
						},
						{Month: "06"},
					},
				}},
			},
			{Format: "gen8ou"},
		},
	}
}

func TestManifestRows(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := manifestRows(sampleSummary(), at)

	want := []manifest.WindowRow{
		{Format: "gen9ou", Year: "2024", Month: "05", TotalTeams: 6, Species: 3, GeneratedAt: at},
		{Format: "gen9ou", Year: "2024", Month: "05", Day: "03", TotalTeams: 2, Species: 2, GeneratedAt: at},
		{Format: "gen9ou", Year: "2024", Month: "05", Day: "17", TotalTeams: 4, Species: 3, GeneratedAt: at},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("manifestRows = %+v\nwant %+v", rows, want)
	}

	if rows := manifestRows(&report.Summary{}, at); len(rows) != 0 {
		t.Fatalf("empty summary produced %d rows", len(rows))
	}
}

func TestRecordManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.db")
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	if err := recordManifest(context.Background(), path, sampleSummary(), at); err != nil {
		t.Fatalf("recordManifest returned error: %v", err)
	}

	db, err := manifest.Open(path)
	if err != nil {
		t.Fatalf("manifest.Open returned error: %v", err)
	}
	defer db.Close()

	rows, err := db.List(context.Background(), "gen9ou")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
}

func TestGenerateOnce(t *testing.T) {
	logs := t.TempDir()
	dayDir := filepath.Join(logs, "2024-05", "gen9ou", "2024-05-03")
	if err := os.MkdirAll(dayDir, 0o755); err != nil {
		t.Fatal(err)
	}
	record := `{"winner":"Ash","p1":"Ash","p2":"Misty",
		"p1team":[{"species":"Pikachu","item":"Light Ball","ability":"Static","nature":"Jolly","moves":["Thunderbolt"]}],
		"p2team":[{"species":"Starmie","item":"Leftovers","ability":"Natural Cure","nature":"Timid","moves":["Surf"]}],
		"p1rating":1500,"p2rating":1480,"timestamp":"2024-05-03T10:00:00Z"}`
	if err := os.WriteFile(filepath.Join(dayDir, "gen9ou-1.log.json"), []byte(record), 0o644); err != nil {
		t.Fatal(err)
	}

	renderers, err := resolveRenderers([]string{"json"})
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "site")
	manifestPath := filepath.Join(t.TempDir(), "manifest.db")
	opts := generateOptions{
		directory:    logs,
		formats:      []string{"gen9ou"},
		years:        []string{"2024"},
		months:       []string{"05"},
		renderers:    renderers,
		outputDir:    out,
		workers:      2,
		manifestPath: manifestPath,
	}

	summary, err := generateOnce(context.Background(), opts)
	if err != nil {
		t.Fatalf("generateOnce returned error: %v", err)
	}
	if days, months := summary.Pages(); days != 1 || months != 1 {
		t.Fatalf("Pages() = %d, %d, want 1, 1", days, months)
	}
	for _, path := range []string{
		filepath.Join(out, "gen9ou", "2024", "05", "index.json"),
		filepath.Join(out, "gen9ou", "2024", "05", "03", "pikachu.json"),
		manifestPath,
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s: %v", path, err)
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "b", "c"); got != "b" {
		t.Fatalf("firstNonEmpty = %q, want b", got)
	}
	if got := firstNonEmpty("", ""); got != "" {
		t.Fatalf("firstNonEmpty = %q, want empty", got)
	}
}

func TestWatchDirs(t *testing.T) {
	opts := generateOptions{
		directory: "logs",
		formats:   []string{"gen9ou"},
		years:     []string{"2024"},
		months:    []string{"05"},
	}
	dirs := watchDirs(opts)

	// root, month, format and 31 day directories
	if len(dirs) != 34 {
		t.Fatalf("got %d dirs, want 34", len(dirs))
	}
	want := []string{
		"logs",
		filepath.Join("logs", "2024-05"),
		filepath.Join("logs", "2024-05", "gen9ou"),
		filepath.Join("logs", "2024-05", "gen9ou", "2024-05-01"),
	}
	if !reflect.DeepEqual(dirs[:4], want) {
		t.Fatalf("dirs[:4] = %v, want %v", dirs[:4], want)
	}
	if last := dirs[len(dirs)-1]; last != filepath.Join("logs", "2024-05", "gen9ou", "2024-05-31") {
		t.Fatalf("last dir = %s", last)
	}
}

func TestIsLogEvent(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"create log", fsnotify.Event{Name: "d/gen9ou-1.log.json", Op: fsnotify.Create}, true},
		{"write log", fsnotify.Event{Name: "d/gen9ou-1.log.json", Op: fsnotify.Write}, true},
		{"remove log", fsnotify.Event{Name: "d/gen9ou-1.log.json", Op: fsnotify.Remove}, true},
		{"rename log", fsnotify.Event{Name: "d/gen9ou-1.log.json", Op: fsnotify.Rename}, true},
		{"chmod log", fsnotify.Event{Name: "d/gen9ou-1.log.json", Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: "d/notes.txt", Op: fsnotify.Write}, false},
		{"temp file", fsnotify.Event{Name: "d/gen9ou-1.log.json.tmp", Op: fsnotify.Create}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isLogEvent(tt.event); got != tt.want {
				t.Fatalf("isLogEvent(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestNotificationText(t *testing.T) {
	title, body := notificationText(sampleSummary())
	if title != "Usage stats generated" {
		t.Fatalf("title = %q", title)
	}
	if body != "1 format(s), 1 month(s), 2 day(s) written." {
		t.Fatalf("body = %q", body)
	}

	title, _ = notificationText(&report.Summary{})
	if title != "Usage stats: nothing generated" {
		t.Fatalf("empty title = %q", title)
	}
}
