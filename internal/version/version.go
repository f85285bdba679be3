package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/fatih/color"
)

// Version information for the stellar CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
	dimColor          = color.New(color.Faint)
)

// Semver parses Version. A malformed override yields an error rather than
// a guess.
func Semver() (*semver.Version, error) {
	v, err := semver.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("invalid build version %q: %w", Version, err)
	}
	return v, nil
}

// Banner renders "stellar 0.1.0-dev (commit, date)" with the version
// components colored. Coloring follows color.NoColor.
func Banner() string {
	var sb strings.Builder
	sb.WriteString("stellar ")
	if v, err := Semver(); err == nil {
		sb.WriteString(versionMajorColor.Sprint(v.Major()))
		sb.WriteString(".")
		sb.WriteString(versionMinorColor.Sprint(v.Minor()))
		sb.WriteString(".")
		sb.WriteString(versionPatchColor.Sprint(v.Patch()))
		if pre := v.Prerelease(); pre != "" {
			sb.WriteString("-" + pre)
		}
		if meta := v.Metadata(); meta != "" {
			sb.WriteString("+" + meta)
		}
	} else {
		sb.WriteString(Version)
	}

	var extra []string
	if GitCommit != "" {
		commit := GitCommit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		extra = append(extra, commit)
	}
	if BuildDate != "" {
		extra = append(extra, BuildDate)
	}
	if len(extra) > 0 {
		sb.WriteString(" ")
		sb.WriteString(dimColor.Sprintf("(%s)", strings.Join(extra, ", ")))
	}
	return sb.String()
}
