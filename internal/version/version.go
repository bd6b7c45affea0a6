// Package version reports the build version of the example binaries.
package version

import (
	"runtime"
	"runtime/debug"

	"github.com/Masterminds/semver/v3"
)

// Version is overridden at build time with
// -ldflags "-X github.com/cristianoliveira/decli/internal/version.Version=1.2.3".
var Version = "development"

// Commit is the git commit hash, set the same way as Version.
var Commit = "unknown"

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info is what the version commands print.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
	Go      string `json:"go"`
}

// String returns the version including the commit hash when known.
func String() string {
	v := resolved()
	if Commit != "unknown" && Commit != "" {
		return v + "+" + Commit
	}
	return v
}

// Get returns the build information.
func Get() Info {
	info := Info{Version: resolved(), Go: runtime.Version()}
	if Commit != "unknown" {
		info.Commit = Commit
	}
	return info
}

// Semver parses the version, accepting a leading "v".
func Semver() (*semver.Version, error) {
	return semver.NewVersion(resolved())
}

// resolved prefers the ldflags version and falls back to the module
// version recorded by "go install".
func resolved() string {
	if Version != "development" {
		return Version
	}
	if bi, ok := readBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return Version
}
