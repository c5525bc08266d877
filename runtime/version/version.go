// Package version supplies the build metadata stamped into release
// binaries.
package version

import (
	"fmt"
	"runtime"
	"time"
)

const dateFormat = time.RFC3339

// Stamped at link time via -ldflags -X.
var (
	gitTag    = "v0.26.0-dev"
	gitCommit = "local"
	buildDate = "now"
)

// Version returns the full build identifier of the binary.
func Version() string {
	if buildDate == "now" {
		buildDate = time.Now().Format(dateFormat)
	}
	return fmt.Sprintf("eas-sdk/%s %s. Built at: %s with %s", gitTag, gitCommit, buildDate, runtime.Version())
}

// SemanticVersion returns the release tag the binary was built from.
func SemanticVersion() string {
	return gitTag
}
