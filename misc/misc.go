// Package misc keeps build time information.
package misc

import (
	"runtime/debug"
)

// Set with -ldflags "-X gridder/misc.version=... -X gridder/misc.githash=...".
var (
	version = ""
	githash = ""
)

const appName = "gridder"

// GetAppName returns program name used for logs, reports and temporary files.
func GetAppName() string {
	return appName
}

// GetVersion returns program version, module version is used when it was not
// set at build time.
func GetVersion() string {
	if version != "" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns commit program was built from.
func GetGitHash() string {
	if githash != "" {
		return githash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
