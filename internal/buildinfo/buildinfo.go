// Package buildinfo carries identifiers stamped at link time:
//
//	go build -ldflags "-X plotview/internal/buildinfo.Version=v1.2.0 -X plotview/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for window titles and log lines.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Long is the `plotview version` line.
func Long() string {
	return fmt.Sprintf("plotview %s (commit %s, built %s)", Version, Commit, Date)
}
