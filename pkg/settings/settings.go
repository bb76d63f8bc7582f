// Package settings provides build metadata, runtime parameters, and context
// helpers shared by the typeahead CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "typeahead"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds parameters for a single execution of the application: logging
// level, output formatting, and error handling behavior.
type Run struct {
	MinLogLevel int8
	IsQuiet     bool
	NoColor     bool
	ExitOnError bool
}

// NewCliParams returns a Run populated with the defaults used when the tool
// is invoked from the command line.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		IsQuiet:     false,
		NoColor:     false,
		ExitOnError: true,
	}
}
