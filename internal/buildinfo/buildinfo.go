// Package buildinfo holds version information injected at build time:
//
//	go build -ldflags "-X github.com/autocleaner/autocleaner/internal/buildinfo.Version=1.2.0"
package buildinfo

var (
	Version    = "dev"
	Codename   = "unknown"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Summary returns a one-line description of the build, used in logs and the
// tray tooltip.
func Summary() string {
	s := Version
	if CommitHash != "unknown" && CommitHash != "" {
		short := CommitHash
		if len(short) > 7 {
			short = short[:7]
		}
		s += " (" + short + ")"
	}
	return s
}
