package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/MrSableye/showdown-log-parser/battlelog"
	"github.com/MrSableye/showdown-log-parser/internal/logger"
	"github.com/MrSableye/showdown-log-parser/internal/manifest"
	"github.com/MrSableye/showdown-log-parser/report"
	_ "github.com/MrSableye/showdown-log-parser/report/html"
	_ "github.com/MrSableye/showdown-log-parser/report/jsonout"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate usage reports for formats, years and months",
	Example: `  showdown-stats generate --directory ./logs --format gen9ou --year 2024 \
    --month 05 --month 06 --output-type html --output-type json --output-directory ./site`,
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(generateCmd.Flags())
	rootCmd.AddCommand(generateCmd)
}

func addGenerateFlags(fs *pflag.FlagSet) {
	fs.String("directory", "", "Battle log root directory (default $SHOWDOWN_STATS_LOG_DIR)")
	fs.StringSlice("format", nil, "Format id to process (repeatable)")
	fs.StringSlice("year", nil, "Year to process (repeatable)")
	fs.StringSlice("month", nil, "Two-digit month to process (repeatable)")
	fs.StringSlice("output-type", nil, "Output type: html, json (repeatable)")
	fs.String("output-directory", "", "Report output directory (default $SHOWDOWN_STATS_OUTPUT_DIR)")
	fs.Int("workers", 0, "Parallel log readers per window (default $SHOWDOWN_STATS_WORKERS or CPU count)")
	fs.String("manifest", "", "SQLite manifest recording generated windows (default $SHOWDOWN_STATS_MANIFEST)")
	fs.Bool("watch", false, "Regenerate whenever battle logs change")
	fs.Bool("notify", false, "Send a desktop notification after each run")
}

// generateOptions is the resolved run configuration of one generate invocation.
type generateOptions struct {
	directory    string
	formats      []string
	years        []string
	months       []string
	renderers    []report.Renderer
	outputDir    string
	workers      int
	manifestPath string
	notify       bool
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts, err := resolveGenerateOptions(cmd)
	if err != nil {
		return err
	}
	watch, _ := cmd.Flags().GetBool("watch")

	ctx := commandContext(cmd)
	if _, err := generateOnce(ctx, opts); err != nil {
		return err
	}
	if !watch {
		return nil
	}
	return watchAndGenerate(ctx, opts, cfg.WatchDebounce)
}

func resolveGenerateOptions(cmd *cobra.Command) (generateOptions, error) {
	directory, _ := cmd.Flags().GetString("directory")
	formats, _ := cmd.Flags().GetStringSlice("format")
	years, _ := cmd.Flags().GetStringSlice("year")
	months, _ := cmd.Flags().GetStringSlice("month")
	outputTypes, _ := cmd.Flags().GetStringSlice("output-type")
	outputDir, _ := cmd.Flags().GetString("output-directory")
	workers, _ := cmd.Flags().GetInt("workers")
	manifestPath, _ := cmd.Flags().GetString("manifest")
	notify, _ := cmd.Flags().GetBool("notify")

	opts := generateOptions{
		directory:    firstNonEmpty(directory, cfg.LogDirectory),
		formats:      formats,
		years:        years,
		months:       months,
		outputDir:    firstNonEmpty(outputDir, cfg.OutputDirectory),
		workers:      workers,
		manifestPath: firstNonEmpty(manifestPath, cfg.ManifestPath),
		notify:       notify,
	}
	if opts.workers <= 0 {
		opts.workers = cfg.Workers
	}

	required := []struct {
		flag  string
		empty bool
	}{
		{"--directory", opts.directory == ""},
		{"--format", len(opts.formats) == 0},
		{"--year", len(opts.years) == 0},
		{"--month", len(opts.months) == 0},
		{"--output-type", len(outputTypes) == 0},
		{"--output-directory", opts.outputDir == ""},
	}
	for _, r := range required {
		if r.empty {
			return generateOptions{}, fmt.Errorf("%s is required", r.flag)
		}
	}

	renderers, err := resolveRenderers(outputTypes)
	if err != nil {
		return generateOptions{}, err
	}
	opts.renderers = renderers
	return opts, nil
}

// resolveRenderers maps --output-type values onto registered renderers.
func resolveRenderers(outputTypes []string) ([]report.Renderer, error) {
	registered := report.Registry()
	allowed := report.Names(registered)

	names := make([]string, 0, len(outputTypes))
	for _, t := range outputTypes {
		name := strings.ToLower(strings.TrimSpace(t))
		known := false
		for _, a := range allowed {
			if a == name {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("invalid --output-type: %q (allowed: %s)", t, strings.Join(allowed, ", "))
		}
		names = append(names, name)
	}
	return report.FilterRenderers(registered, names), nil
}

// generateOnce runs one full generation, then records and announces the result.
func generateOnce(ctx context.Context, opts generateOptions) (*report.Summary, error) {
	start := time.Now()
	gen := &report.Generator{
		Source:    battlelog.NewDirSource(opts.directory, opts.workers),
		Renderers: opts.renderers,
		OutputDir: opts.outputDir,
	}

	summary, err := gen.Run(ctx, opts.formats, opts.years, opts.months)
	if err != nil {
		return nil, fmt.Errorf("generating reports: %w", err)
	}

	days, months := summary.Pages()
	logger.Info("generation finished",
		"output", opts.outputDir,
		"months", months,
		"days", days,
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
	)

	if opts.manifestPath != "" {
		if err := recordManifest(ctx, opts.manifestPath, summary, time.Now()); err != nil {
			// The reports are already written; a stale manifest is not fatal.
			logger.Warn("failed to record manifest", "path", opts.manifestPath, "error", err)
		}
	}
	if opts.notify {
		notifyFinished(summary)
	}
	return summary, nil
}

func recordManifest(ctx context.Context, path string, summary *report.Summary, at time.Time) error {
	db, err := manifest.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Record(ctx, manifestRows(summary, at))
}

// manifestRows flattens the present month and day windows of a summary.
func manifestRows(summary *report.Summary, at time.Time) []manifest.WindowRow {
	var rows []manifest.WindowRow
	for _, f := range summary.Formats {
		for _, y := range f.Years {
			for _, m := range y.Months {
				if !m.Present {
					continue
				}
				rows = append(rows, manifest.WindowRow{
					Format:      f.Format,
					Year:        y.Year,
					Month:       m.Month,
					TotalTeams:  m.TotalTeams,
					Species:     m.Species,
					GeneratedAt: at,
				})
				for _, d := range m.Days {
					rows = append(rows, manifest.WindowRow{
						Format:      f.Format,
						Year:        y.Year,
						Month:       m.Month,
						Day:         d.Day,
						TotalTeams:  d.TotalTeams,
						Species:     d.Species,
						GeneratedAt: at,
					})
				}
			}
		}
	}
	return rows
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
