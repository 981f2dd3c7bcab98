// Package version provides information about the build version of the connector.
package version

// BuildInfo holds version information about the connector build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information. The version, commit, and date variables
// are intended to be set at build time using -ldflags.
func Info() BuildInfo {
	// Set via -ldflags "-X 'csvconnector/internal/core/version.version=v0.1.0'
	// -X 'csvconnector/internal/core/version.commit=abcd' -X 'csvconnector/internal/core/version.date=2026-10-19'"
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// UserAgent is the User-Agent sent to feed sources
func UserAgent() string { return service + "/" + version }

const service = "csvconnector"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
