// Package output formats a computed Oracle as the CLI-facing variable map,
// JSON document, or explain trace (spec.md §3's Diagnostics, a CLI-only
// convenience that never participates in height or identity computation).
package output

import (
	"github.com/MyCarrier-DevOps/go-versionheight/internal/oracle"
)

// GetVariables flattens every exposed string form of o into the
// key=value variable set the CLI prints or filters with --show-variable.
func GetVariables(o *oracle.Oracle) map[string]string {
	vars := map[string]string{
		"AssemblyVersion":              o.AssemblyVersion,
		"AssemblyInformationalVersion": o.AssemblyInformationalVersion,
		"SemVer1":                      o.SemVer1,
		"SemVer2":                      o.SemVer2,
		"NuGetPackageVersion":          o.NuGetPackageVersion,
		"ChocolateyPackageVersion":     o.ChocolateyPackageVersion,
		"NPMPackageVersion":            o.NPMPackageVersion,
		"CommitIdShort":                o.CommitIDShort,
		"PublicRelease":                boolString(o.PublicRelease),
	}
	if o.CloudBuildNumber != "" {
		vars["CloudBuildNumber"] = o.CloudBuildNumber
	}
	return vars
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
