// Package buildinfo carries the version stamp injected at build time.
package buildinfo

// Set via -ldflags "-X github.com/cleared-dev/tally/internal/buildinfo.Version=..."
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
