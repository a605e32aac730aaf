// Package battlelog discovers and reads recorded battle logs.
package battlelog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// LogSuffix is the file extension of a battle log.
const LogSuffix = ".log.json"

// Source supplies validated match records for a window. Unreadable or invalid
// logs are omitted rather than reported; only cancellation is an error.
type Source interface {
	FetchRecords(ctx context.Context, w Window) ([]MatchRecord, error)
}

// DirSource reads battle logs from a directory tree laid out as
// <BaseDir>/<year>-<month>/<format>/<year>-<month>-<day>/<format>*.log.json.
type DirSource struct {
	BaseDir string
	Workers int
}

// NewDirSource returns a DirSource rooted at baseDir.
func NewDirSource(baseDir string, workers int) *DirSource {
	return &DirSource{BaseDir: baseDir, Workers: workers}
}

// FetchRecords implements Source.
func (s *DirSource) FetchRecords(ctx context.Context, w Window) ([]MatchRecord, error) {
	var paths []string
	for _, dir := range w.Dirs(s.BaseDir) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		paths = append(paths, ListLogFiles(w.Format, dir)...)
	}

	// Listing is cheap; reading and validating is where the time goes.
	records := ReadParallel(ctx, paths, s.Workers, ReadRecord)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ListLogFiles returns the battle logs of the given format in dir. A missing
// or unreadable directory yields no files.
func ListLogFiles(format, dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, format) || !strings.HasSuffix(name, LogSuffix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths
}
