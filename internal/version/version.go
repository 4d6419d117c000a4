// Package version holds build metadata stamped via ldflags, e.g.
//
//	go build -ldflags "-X .../internal/version.Version=v1.2.3"
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
