// Package cmd contains build-time variables injected via ldflags.
package cmd

// Build-time variables set via ldflags.
var (
	// Version is the release version. Documents are classified and migrated
	// against it, so it must be a MAJOR.MINOR.PATCH triple.
	Version = "3.0.0"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)
