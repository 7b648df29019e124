// Package buildinfo carries version metadata stamped at build time via
// -ldflags.
package buildinfo

var (
	Version = "dev"
	Commit  = "unknown"
)

// Short returns a compact build identifier for the banner and the version
// command.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}
