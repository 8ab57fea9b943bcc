package options

import (
	"crypto/sha256"
	"encoding/json"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/semver"
)

// DefaultAssemblyVersionPrecision is used when AssemblyVersion is present
// but Precision is nil.
const DefaultAssemblyVersionPrecision = semver.Minor

// ResolveDefaults returns a new VersionOptions where every nil field of o
// is replaced by the corresponding field from Defaults(). Version is
// carried through unchanged (it has no default). The result is always
// unfrozen.
func ResolveDefaults(o *VersionOptions) *VersionOptions {
	d := Defaults()
	if o == nil {
		return d
	}
	out := o.Clone()

	if out.VersionHeightOffset == nil {
		out.VersionHeightOffset = d.VersionHeightOffset
	}
	if out.SemVer1NumericIdentifierPadding == nil {
		out.SemVer1NumericIdentifierPadding = d.SemVer1NumericIdentifierPadding
	}
	if out.GitCommitIDShortFixedLength == nil {
		out.GitCommitIDShortFixedLength = d.GitCommitIDShortFixedLength
	}
	if out.GitCommitIDShortAutoMinimum == nil {
		out.GitCommitIDShortAutoMinimum = d.GitCommitIDShortAutoMinimum
	}
	if out.GitCommitIDPrefix == nil {
		out.GitCommitIDPrefix = d.GitCommitIDPrefix
	}
	if out.NuGetPackageVersion == nil {
		out.NuGetPackageVersion = d.NuGetPackageVersion
	} else if out.NuGetPackageVersion.SemVer == nil {
		out.NuGetPackageVersion.SemVer = d.NuGetPackageVersion.SemVer
	}
	if out.PublicReleaseRefSpec == nil {
		out.PublicReleaseRefSpec = d.PublicReleaseRefSpec
	}
	if out.CloudBuild == nil {
		out.CloudBuild = d.CloudBuild
	} else {
		resolveCloudBuild(out.CloudBuild, d.CloudBuild)
	}
	if out.Release == nil {
		out.Release = d.Release
	} else {
		resolveRelease(out.Release, d.Release)
	}
	if out.PathFilters == nil {
		out.PathFilters = d.PathFilters
	}
	if out.Inherit == nil {
		out.Inherit = d.Inherit
	}
	if out.AssemblyVersion != nil && out.AssemblyVersion.Precision == nil {
		p := DefaultAssemblyVersionPrecision
		out.AssemblyVersion.Precision = &p
	}

	return out
}

func resolveCloudBuild(dst, def *CloudBuildOptions) {
	if dst.SetAllVariables == nil {
		dst.SetAllVariables = def.SetAllVariables
	}
	if dst.SetVersionVariables == nil {
		dst.SetVersionVariables = def.SetVersionVariables
	}
	if dst.BuildNumber == nil {
		dst.BuildNumber = def.BuildNumber
		return
	}
	if dst.BuildNumber.Enabled == nil {
		dst.BuildNumber.Enabled = def.BuildNumber.Enabled
	}
	if dst.BuildNumber.IncludeCommitID == nil {
		dst.BuildNumber.IncludeCommitID = def.BuildNumber.IncludeCommitID
		return
	}
	if dst.BuildNumber.IncludeCommitID.When == nil {
		dst.BuildNumber.IncludeCommitID.When = def.BuildNumber.IncludeCommitID.When
	}
	if dst.BuildNumber.IncludeCommitID.Where == nil {
		dst.BuildNumber.IncludeCommitID.Where = def.BuildNumber.IncludeCommitID.Where
	}
}

func resolveRelease(dst, def *ReleaseOptions) {
	if dst.BranchName == nil {
		dst.BranchName = def.BranchName
	}
	if dst.VersionIncrement == nil {
		dst.VersionIncrement = def.VersionIncrement
	}
	if dst.FirstUnstableTag == nil {
		dst.FirstUnstableTag = def.FirstUnstableTag
	}
}

// canonical produces a JSON-serializable snapshot used for both equality
// and hashing, after default substitution. The frozen flag deliberately
// never participates: two configurations that differ only in freeze state
// are still the same configuration.
func canonical(o *VersionOptions) ([]byte, error) {
	r := ResolveDefaults(o)
	r.Prerelease = nil // overlay-only field, never part of effective identity
	r.Schema = ""       // $schema is documentation, never semantic
	return json.Marshal(r)
}

// Equal reports whether a and b are equal after substituting defaults for
// any nil field — the "equality-with-defaults" relation spec.md §3/§4.2
// requires.
func Equal(a, b *VersionOptions) bool {
	ca, err := canonical(a)
	if err != nil {
		return false
	}
	cb, err := canonical(b)
	if err != nil {
		return false
	}
	return string(ca) == string(cb)
}

// Hash returns a content hash consistent with Equal: Equal(a, b) implies
// Hash(a) == Hash(b). Uses sha256 (stdlib) over the same canonical JSON
// encoding Equal compares, since the canonical form is already exactly
// what needs to be hashed and no pack library adds anything over
// crypto/sha256 for this.
func Hash(o *VersionOptions) [32]byte {
	c, err := canonical(o)
	if err != nil {
		return sha256.Sum256(nil)
	}
	return sha256.Sum256(c)
}
