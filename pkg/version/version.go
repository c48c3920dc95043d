// Package version exposes build information injected with -ldflags.
package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/rshade/ecotrack/pkg/version.version=1.2.0"
var (
	version   = "0.0.0-dev" //nolint:gochecknoglobals // ldflags target
	gitCommit = "unknown"   //nolint:gochecknoglobals // ldflags target
	buildDate = "unknown"   //nolint:gochecknoglobals // ldflags target
)

// GetVersion returns the build version.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// IsRelease reports whether the version is a valid semver without a prerelease tag.
func IsRelease() bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return v.Prerelease() == ""
}

// String returns the version line shown by --version. Non-release builds are
// marked as development builds.
func String() string {
	if !IsRelease() {
		return fmt.Sprintf("%s (development build, commit %s, built %s)", version, gitCommit, buildDate)
	}
	return fmt.Sprintf("%s (commit %s, built %s)", version, gitCommit, buildDate)
}
