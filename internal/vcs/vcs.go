package vcs

import (
	"fmt"
	"runtime/debug"
)

// Version reports the module version, or the VCS revision when the binary
// was built from a checkout. A "-dirty" suffix marks uncommitted changes.
func Version() string {
	var (
		revision string
		modified bool
	)

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	if revision == "" {
		if bi.Main.Version != "" {
			return bi.Main.Version
		}
		return "unknown"
	}

	if modified {
		return fmt.Sprintf("%s-dirty", revision)
	}

	return revision
}
