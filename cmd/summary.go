package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/MrSableye/showdown-log-parser/battlelog"
	"github.com/MrSableye/showdown-log-parser/stats"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the top species of one month or day window",
	RunE:  runSummary,
}

const defaultSummaryTop = 10

// summaryTitleStyle is used for the window heading.
var summaryTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("205")).
	MarginBottom(1)

var summaryMutedStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240"))

func init() {
	summaryCmd.Flags().String("directory", "", "Battle log root directory (default $SHOWDOWN_STATS_LOG_DIR)")
	summaryCmd.Flags().String("format", "", "Format id")
	summaryCmd.Flags().String("year", "", "Year")
	summaryCmd.Flags().String("month", "", "Two-digit month")
	summaryCmd.Flags().String("day", "", "Two-digit day (default: whole month)")
	summaryCmd.Flags().Int("top", defaultSummaryTop, "Number of species to show")
	summaryCmd.Flags().Int("workers", 0, "Parallel log readers (default $SHOWDOWN_STATS_WORKERS or CPU count)")
	summaryCmd.Flags().Bool("json", false, "Output as JSON")
	rootCmd.AddCommand(summaryCmd)
}

// summaryJSON is the JSON output of the summary command.
type summaryJSON struct {
	Window     string               `json:"window"`
	TotalTeams int                  `json:"totalTeams"`
	Species    []stats.SpeciesEntry `json:"species"`
}

func runSummary(cmd *cobra.Command, args []string) error {
	directory, _ := cmd.Flags().GetString("directory")
	format, _ := cmd.Flags().GetString("format")
	year, _ := cmd.Flags().GetString("year")
	month, _ := cmd.Flags().GetString("month")
	day, _ := cmd.Flags().GetString("day")
	top, _ := cmd.Flags().GetInt("top")
	workers, _ := cmd.Flags().GetInt("workers")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	directory = firstNonEmpty(directory, cfg.LogDirectory)
	if directory == "" || format == "" || year == "" || month == "" {
		return fmt.Errorf("--directory, --format, --year and --month are required")
	}
	if top < 1 {
		return fmt.Errorf("invalid --top: must be >= 1")
	}
	if workers <= 0 {
		workers = cfg.Workers
	}

	ctx := commandContext(cmd)
	source := battlelog.NewDirSource(directory, workers)

	window := battlelog.MonthWindow(format, year, month)
	if day != "" {
		window = battlelog.DayWindow(format, year, month, day)
	}
	windowStats, err := stats.AggregateWindow(ctx, source, window)
	if err != nil {
		return fmt.Errorf("aggregating %s: %w", window, err)
	}
	entries := topEntries(stats.SortedSpeciesEntries(windowStats), top)

	if jsonOutput {
		if entries == nil {
			entries = []stats.SpeciesEntry{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summaryJSON{
			Window:     window.String(),
			TotalTeams: windowStats.TotalTeams,
			Species:    entries,
		})
	}

	fmt.Fprintln(os.Stdout, summaryTitleStyle.Render(window.String()+" Usage Stats"))
	if !windowStats.Present() {
		fmt.Fprintln(os.Stdout, summaryMutedStyle.Render("No battle logs found."))
		return nil
	}
	printSummaryTable(os.Stdout, windowStats.TotalTeams, entries)

	if day == "" {
		teams, err := teamsPerDay(ctx, source, format, year, month)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout)
		fmt.Fprintln(os.Stdout, renderTeamsChart(teams))
	}
	return nil
}

func topEntries(entries []stats.SpeciesEntry, top int) []stats.SpeciesEntry {
	if len(entries) > top {
		return entries[:top]
	}
	return entries
}

// teamsPerDay aggregates each canonical day of the month and returns its team count.
func teamsPerDay(ctx context.Context, source battlelog.Source, format, year, month string) ([]float64, error) {
	teams := make([]float64, len(battlelog.AllDays))
	for i, day := range battlelog.AllDays {
		window := battlelog.DayWindow(format, year, month, day)
		s, err := stats.AggregateWindow(ctx, source, window)
		if err != nil {
			return nil, fmt.Errorf("aggregating %s: %w", window, err)
		}
		teams[i] = float64(s.TotalTeams)
	}
	return teams, nil
}

func renderTeamsChart(teams []float64) string {
	return asciigraph.Plot(teams,
		asciigraph.Height(8),
		asciigraph.Caption("Teams per day (01-31)"),
	)
}

func printSummaryTable(out io.Writer, totalTeams int, entries []stats.SpeciesEntry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Rank\tSpecies\tUsage\tUsage %\tWins\tWin %\tTop Item\tTop Move")

	for i, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%d\t%s\t%s\t%s\n",
			i+1,
			e.Name,
			e.Stats.Usage,
			formatPercent(e.Stats.Usage, totalTeams),
			e.Stats.Wins,
			formatPercent(e.Stats.Wins, e.Stats.Usage),
			firstName(e.Stats.Item),
			firstName(e.Stats.Move),
		)
	}

	fmt.Fprintf(w, "TOTAL\t%d teams\t\t\t\t\t\t\n", totalTeams)
	w.Flush()
}

func formatPercent(part, total int) string {
	if total == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(part)*100/float64(total))
}

func firstName(entries []stats.Entry) string {
	if len(entries) == 0 {
		return "-"
	}
	return entries[0].Name
}
