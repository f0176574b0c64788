// Package version holds build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime/debug"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Resolved returns the version and commit, falling back to the module
// version and VCS revision recorded by the Go toolchain when no ldflags
// were set.
func Resolved() (version, commit string) {
	version, commit = Version, Commit
	info, ok := readBuildInfo()
	if !ok {
		return version, commit
	}
	if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	if commit == "unknown" {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				commit = s.Value
				if len(commit) > 12 {
					commit = commit[:12]
				}
			}
		}
	}
	return version, commit
}

func String() string {
	v, c := Resolved()
	return fmt.Sprintf("%s (commit: %s, built: %s)", v, c, BuildDate)
}
