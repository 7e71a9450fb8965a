// Package version holds the build version, set with
// -ldflags "-X github.com/Coder-Harshit/bloglabs/pkg/version.Version=v1.2.3".
package version

// Version is the release tag, or "dev" for local builds.
var Version = "dev"
