// Package cmd contains build-time variables injected via ldflags.
package cmd

import "fmt"

// Build-time variables set via ldflags:
//
//	go build -ldflags "-X github.com/thoreinstein/tigen/cmd.Version=v1.2.0"
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)

// Info renders the build information on three lines.
func Info() string {
	return fmt.Sprintf("tigen version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
