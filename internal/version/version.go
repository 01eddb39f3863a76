// Package version carries build metadata stamped at link time via
// -ldflags "-X github.com/samcharles93/patina/internal/version.Version=...".
package version

var (
	Version   = ""
	Commit    = ""
	BuildTime = ""
)

type Info struct {
	Version   string
	Commit    string
	BuildTime string
}

// Resolve returns the stamped build metadata. An unstamped build reports
// "dev" so the CLI always has a version to print.
func Resolve() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	return info
}
