// Package version holds build information, set with -ldflags at release.
package version

var (
	Version = "dev"
	Commit  = "none"
)

func String() string { return Version + " (" + Commit + ")" }
