// Package version holds build metadata injected at link time via -ldflags.
package version

import "fmt"

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String returns a single-line version summary for CLI output.
func String() string {
	return fmt.Sprintf("pitchrover %s (%s, built %s)", Version, GitSHA, BuildTime)
}
