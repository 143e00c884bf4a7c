package version

import "github.com/fatih/color"

// Version information for the birch CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgGreen, color.Bold)
	versionMinorColor = color.New(color.FgCyan, color.Bold)
	versionPatchColor = color.New(color.FgWhite, color.Bold)

	// Version is the semantic version of the CLI.
	Version = versionMajorColor.Sprint("0") + "." + versionMinorColor.Sprint("1") + "." + versionPatchColor.Sprint("0") + "-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)
