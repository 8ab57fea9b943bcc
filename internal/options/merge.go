package options

import "fmt"

// Overlay applies child's explicitly-set fields on top of parent, per
// spec.md §4.4 step 2: scalar fields are replaced whole when the child sets
// them, list fields (PublicReleaseRefSpec, PathFilters) replace whole (no
// element-wise merge), and the standalone `prerelease` property is applied
// separately afterward via ApplyPrereleaseOverlay. Neither argument is
// mutated; a new VersionOptions is returned.
func Overlay(parent, child *VersionOptions) *VersionOptions {
	if parent == nil {
		return child.Clone()
	}
	if child == nil {
		return parent.Clone()
	}

	out := parent.Clone()

	if child.Version != nil {
		out.Version = cloneVersion(child.Version)
	}
	if child.AssemblyVersion != nil {
		out.AssemblyVersion = cloneAssemblyVersion(child.AssemblyVersion)
	}
	if child.VersionHeightOffset != nil {
		out.VersionHeightOffset = cloneInt64(child.VersionHeightOffset)
	}
	if child.SemVer1NumericIdentifierPadding != nil {
		out.SemVer1NumericIdentifierPadding = cloneInt(child.SemVer1NumericIdentifierPadding)
	}
	if child.GitCommitIDShortFixedLength != nil {
		out.GitCommitIDShortFixedLength = cloneInt(child.GitCommitIDShortFixedLength)
	}
	if child.GitCommitIDShortAutoMinimum != nil {
		out.GitCommitIDShortAutoMinimum = cloneInt(child.GitCommitIDShortAutoMinimum)
	}
	if child.GitCommitIDPrefix != nil {
		out.GitCommitIDPrefix = cloneString(child.GitCommitIDPrefix)
	}
	if child.NuGetPackageVersion != nil {
		out.NuGetPackageVersion = cloneNuGet(child.NuGetPackageVersion)
	}
	if child.PublicReleaseRefSpec != nil {
		out.PublicReleaseRefSpec = cloneStringSlice(child.PublicReleaseRefSpec)
	}
	if child.CloudBuild != nil {
		out.CloudBuild = cloneCloudBuild(child.CloudBuild)
	}
	if child.Release != nil {
		out.Release = cloneRelease(child.Release)
	}
	if child.PathFilters != nil {
		out.PathFilters = cloneStringSlice(child.PathFilters)
	}
	if child.Inherit != nil {
		out.Inherit = cloneBool(child.Inherit)
	}
	// Prerelease is handled by ApplyPrereleaseOverlay, not here.

	return out
}

// ApplyPrereleaseOverlay applies a standalone `prerelease` property (set on
// an inheriting file) to merged.Version.Prerelease: an empty string
// suppresses the inherited prerelease, a non-empty string errors if the
// inherited version already carries one (spec.md §4.4 step 2).
func ApplyPrereleaseOverlay(merged *VersionOptions, prerelease *string) error {
	if prerelease == nil || merged.Version == nil {
		return nil
	}
	if *prerelease == "" {
		merged.Version.Prerelease = ""
		return nil
	}
	if merged.Version.Prerelease != "" {
		return fmt.Errorf("cannot apply prerelease override %q: inherited version %q already has a prerelease", *prerelease, merged.Version.String())
	}
	merged.Version.Prerelease = *prerelease
	return nil
}
