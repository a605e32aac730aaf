package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MrSableye/showdown-log-parser/battlelog"
	"github.com/MrSableye/showdown-log-parser/internal/logger"
)

// watchAndGenerate regenerates all reports whenever battle logs in the
// requested windows change. Bursts of events within debounce trigger one run.
func watchAndGenerate(ctx context.Context, opts generateOptions, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
	}()

	watched := 0
	for _, dir := range watchDirs(opts) {
		if err := watcher.Add(dir); err == nil {
			watched++
		}
	}
	if watched == 0 {
		return fmt.Errorf("watching %s: no log directories exist", opts.directory)
	}
	logger.Info("watching for battle logs", "directory", opts.directory, "dirs", watched)

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New month, format and day directories must be watched too.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						logger.Warn("failed to watch directory", "dir", event.Name, "error", err)
					}
					continue
				}
			}
			if !isLogEvent(event) {
				continue
			}
			logger.Debug("battle log changed", "path", event.Name, "op", event.Op.String())
			fire = time.After(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)

		case <-fire:
			fire = nil
			if _, err := generateOnce(ctx, opts); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Error("regeneration failed", "error", err)
			}
		}
	}
}

// watchDirs lists the directories whose contents feed the requested windows:
// the log root, every month directory, its format directories and every
// canonical day directory below them.
func watchDirs(opts generateOptions) []string {
	dirs := []string{opts.directory}
	for _, year := range opts.years {
		for _, month := range opts.months {
			dirs = append(dirs, filepath.Join(opts.directory, year+"-"+month))
			for _, format := range opts.formats {
				window := battlelog.MonthWindow(format, year, month)
				dirs = append(dirs, filepath.Join(opts.directory, year+"-"+month, format))
				dirs = append(dirs, window.Dirs(opts.directory)...)
			}
		}
	}
	return dirs
}

// isLogEvent reports whether event changes the contents of a battle log.
func isLogEvent(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, battlelog.LogSuffix) {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
