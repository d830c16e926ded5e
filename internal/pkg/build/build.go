// Package build contains values set by ldflags on release.
package build

// nolint: gochecknoglobals
var (
	BuildVersion = "dev"
	BuildDate    = "-"
	GitCommit    = "-"
)
