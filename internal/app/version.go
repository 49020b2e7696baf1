package app

import (
	"fmt"
	"runtime/debug"
)

// Build metadata, stamped by the release build:
//
//	go build -ldflags "-X github.com/heartmarshall/salita/internal/app.Version=v0.3.0" ./cmd/salita
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is the version shown by `salita version`, the startup log and
// the health probe. Unstamped `go install` builds report their module version.
func BuildVersion() string {
	return formatVersion(Version, Commit, BuildTime, debug.ReadBuildInfo)
}

func formatVersion(version, commit, built string, buildInfo func() (*debug.BuildInfo, bool)) string {
	if version == "dev" {
		if bi, ok := buildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			version = bi.Main.Version
		}
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, built)
}
