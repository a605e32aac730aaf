package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MrSableye/showdown-log-parser/internal/config"
	"github.com/MrSableye/showdown-log-parser/internal/logger"
)

var (
	version    = defaultVersion
	commitHash = defaultCommitHash
	buildDate  = defaultBuildDate
)

// cfg holds .env and environment defaults, loaded before any subcommand runs.
var cfg = &config.Config{}

// SetVersionInfo sets the build version info from ldflags.
func SetVersionInfo(v, c, d string) {
	version, commitHash, buildDate = resolveVersionInfo(v, c, d, readBuildInfo())
}

var rootCmd = &cobra.Command{
	Use:   "showdown-stats",
	Short: "Generate usage statistics from recorded battle logs",
	Long: `showdown-stats reads recorded battle logs, aggregates species usage,
teammates, opponents, items, abilities, natures and moves, and writes
browsable HTML and JSON reports per format, year, month and day.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		logger.SetLevel(cfg.LogLevel)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(formatVersionLine(version, commitHash, buildDate))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// commandContext returns the context the command was executed with, or a
// background context when it runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Execute runs the root command. Interrupts cancel the running command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
