package cmd

import (
	"fmt"
	"runtime/debug"
	"strings"
)

const (
	defaultVersion    = "dev"
	defaultCommitHash = "none"
	defaultBuildDate  = "unknown"
	develVersion      = "(devel)"
	shortRevisionLen  = 12
)

// buildInfo is the subset of the embedded module build info used to fill in
// version fields that ldflags left unset.
type buildInfo struct {
	mainVersion string
	vcsRevision string
	vcsTime     string
}

func readBuildInfo() buildInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return buildInfo{}
	}

	bi := buildInfo{mainVersion: info.Main.Version}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			bi.vcsRevision = shortRevision(setting.Value)
		case "vcs.time":
			bi.vcsTime = setting.Value
		}
	}
	return bi
}

// resolveVersionInfo prefers ldflags values and falls back to build info,
// then to the defaults. A "(devel)" module version is never reported.
func resolveVersionInfo(v, c, d string, bi buildInfo) (string, string, string) {
	mainVersion := bi.mainVersion
	if mainVersion == develVersion {
		mainVersion = ""
	}
	return pickVersionField(v, defaultVersion, mainVersion),
		pickVersionField(c, defaultCommitHash, bi.vcsRevision),
		pickVersionField(d, defaultBuildDate, bi.vcsTime)
}

func pickVersionField(value, placeholder, fallback string) string {
	if value != "" && value != placeholder {
		return value
	}
	if fallback != "" {
		return fallback
	}
	return placeholder
}

func shortRevision(revision string) string {
	if len(revision) > shortRevisionLen {
		return revision[:shortRevisionLen]
	}
	return revision
}

func formatVersionLine(v, c, d string) string {
	var metadata []string
	if c != defaultCommitHash {
		metadata = append(metadata, "commit: "+c)
	}
	if d != defaultBuildDate {
		metadata = append(metadata, "built: "+d)
	}
	line := "showdown-stats " + v
	if len(metadata) > 0 {
		line += fmt.Sprintf(" (%s)", strings.Join(metadata, ", "))
	}
	return line
}
