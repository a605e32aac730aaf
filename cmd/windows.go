package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSableye/showdown-log-parser/internal/manifest"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List the windows recorded by the last generate runs",
	RunE:  runWindows,
}

func init() {
	windowsCmd.Flags().String("manifest", "", "SQLite manifest path (default $SHOWDOWN_STATS_MANIFEST)")
	windowsCmd.Flags().String("format", "", "Only list windows of this format")
	windowsCmd.Flags().Bool("json", false, "Output as JSON")
	rootCmd.AddCommand(windowsCmd)
}

// windowJSON is the JSON output representation of a manifest row.
type windowJSON struct {
	Format      string `json:"format"`
	Year        string `json:"year"`
	Month       string `json:"month"`
	Day         string `json:"day,omitempty"`
	TotalTeams  int    `json:"totalTeams"`
	Species     int    `json:"species"`
	GeneratedAt string `json:"generatedAt"`
}

func runWindows(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("manifest")
	format, _ := cmd.Flags().GetString("format")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	path = firstNonEmpty(path, cfg.ManifestPath)
	if path == "" {
		return fmt.Errorf("--manifest is required")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("opening manifest: %w", err)
	}

	db, err := manifest.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := db.List(commandContext(cmd), format)
	if err != nil {
		return err
	}

	if jsonOutput {
		out := make([]windowJSON, len(rows))
		for i, r := range rows {
			out[i] = windowJSON{
				Format:      r.Format,
				Year:        r.Year,
				Month:       r.Month,
				Day:         r.Day,
				TotalTeams:  r.TotalTeams,
				Species:     r.Species,
				GeneratedAt: r.GeneratedAt.Format(time.RFC3339),
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	printWindowsTable(os.Stdout, rows)
	return nil
}

func printWindowsTable(out io.Writer, rows []manifest.WindowRow) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Format\tWindow\tTeams\tSpecies\tGenerated")
	for _, r := range rows {
		window := r.Year + "/" + r.Month
		if r.Day != "" {
			window += "/" + r.Day
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			r.Format,
			window,
			r.TotalTeams,
			r.Species,
			r.GeneratedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	w.Flush()
}
