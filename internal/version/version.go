// Package version holds the reqpin release version.
package version

// Version is overridden at build time:
//
//	go build -ldflags "-X github.com/reqpin/reqpin/internal/version.Version=v1.2.3"
var Version = "v0.1.0"

// GetVersion returns the reqpin release version.
func GetVersion() string {
	return Version
}
