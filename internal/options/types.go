// Package options models VersionOptions: the typed, hierarchical
// configuration document read from version.json / version.txt, with
// per-field default fallbacks, deep equality-with-defaults, a freeze
// (immutability-lock) transition, and JSON round-trip.
//
// Every field is a pointer so nil can mean "not set, fall back to a
// default or an ancestor's value" — the same pointer-field merge idiom
// the teacher uses for its branch/global configuration layering.
package options

import "github.com/MyCarrier-DevOps/go-versionheight/internal/semver"

// NuGetSemVerVersion selects which SemVer dialect the NuGet package
// version string targets.
type NuGetSemVerVersion int

const (
	NuGetSemVer1 NuGetSemVerVersion = 1
	NuGetSemVer2 NuGetSemVerVersion = 2
)

// IncludeCommitIDWhen controls when the commit id is folded into the
// cloud build number.
type IncludeCommitIDWhen int

const (
	CommitIDWhenAlways IncludeCommitIDWhen = iota
	CommitIDWhenNonPublicReleaseOnly
	CommitIDWhenNever
)

// IncludeCommitIDWhere selects which slot of the build number carries the
// commit id.
type IncludeCommitIDWhere int

const (
	CommitIDWhereBuildMetadata IncludeCommitIDWhere = iota
	CommitIDWhereFourthVersionComponent
)

// VersionIncrement names the field a release branch bumps when cut.
type VersionIncrement int

const (
	VersionIncrementMajor VersionIncrement = iota
	VersionIncrementMinor
	VersionIncrementBuild
)

// AssemblyVersionOptions is the polymorphic assemblyVersion field: either a
// bare numeric version (Precision == nil) or an object carrying an explicit
// precision. On encode, a nil/default Precision collapses back to the bare
// scalar form (see marshal.go).
type AssemblyVersionOptions struct {
	Version   *semver.SemanticVersion
	Precision *semver.Position
}

// IncludeCommitIDOptions is cloudBuild.buildNumber.includeCommitId.
type IncludeCommitIDOptions struct {
	When  *IncludeCommitIDWhen  `json:"when,omitempty"`
	Where *IncludeCommitIDWhere `json:"where,omitempty"`
}

// BuildNumberOptions is cloudBuild.buildNumber.
type BuildNumberOptions struct {
	Enabled         *bool                   `json:"enabled,omitempty"`
	IncludeCommitID *IncludeCommitIDOptions `json:"includeCommitId,omitempty"`
}

// CloudBuildOptions is cloudBuild.*.
type CloudBuildOptions struct {
	SetAllVariables     *bool               `json:"setAllVariables,omitempty"`
	SetVersionVariables *bool               `json:"setVersionVariables,omitempty"`
	BuildNumber         *BuildNumberOptions `json:"buildNumber,omitempty"`
}

// ReleaseOptions is release.*.
type ReleaseOptions struct {
	BranchName       *string           `json:"branchName,omitempty"`
	VersionIncrement *VersionIncrement `json:"versionIncrement,omitempty"`
	FirstUnstableTag *string           `json:"firstUnstableTag,omitempty"`
}

// NuGetPackageVersionOptions is nugetPackageVersion.*.
type NuGetPackageVersionOptions struct {
	SemVer *NuGetSemVerVersion `json:"semVer,omitempty"`
}

// VersionOptions is the effective (or, before merge, per-file) configuration
// described by spec.md §3. All fields are optional except `Version`, which
// is required at a non-inheriting file (enforced by the resolver, not here).
type VersionOptions struct {
	Schema                          string                      `json:"$schema,omitempty"`
	Version                         *semver.SemanticVersion     `json:"version,omitempty"`
	AssemblyVersion                 *AssemblyVersionOptions     `json:"assemblyVersion,omitempty"`
	VersionHeightOffset             *int64                      `json:"versionHeightOffset,omitempty"`
	SemVer1NumericIdentifierPadding *int                        `json:"semVer1NumericIdentifierPadding,omitempty"`
	GitCommitIDShortFixedLength     *int                        `json:"gitCommitIdShortFixedLength,omitempty"`
	GitCommitIDShortAutoMinimum     *int                        `json:"gitCommitIdShortAutoMinimum,omitempty"`
	GitCommitIDPrefix               *string                     `json:"gitCommitIdPrefix,omitempty"`
	NuGetPackageVersion             *NuGetPackageVersionOptions `json:"nugetPackageVersion,omitempty"`
	PublicReleaseRefSpec            *[]string                   `json:"publicReleaseRefSpec,omitempty"`
	CloudBuild                      *CloudBuildOptions          `json:"cloudBuild,omitempty"`
	Release                         *ReleaseOptions             `json:"release,omitempty"`
	PathFilters                     *[]string                   `json:"pathFilters,omitempty"`
	Inherit                         *bool                       `json:"inherit,omitempty"`

	// Prerelease is the standalone overlay property (spec.md §4.4, step 2):
	// applied to the parent's merged Version.Prerelease during inheritance,
	// not part of the merged document's own schema. The resolver consumes it
	// and clears it when it merges an inheriting file into its parent; a
	// file returned without that merge keeps the value as read.
	Prerelease *string `json:"prerelease,omitempty"`

	frozen bool
}

// Clone returns a deep, unfrozen copy of o. A nil receiver clones to nil.
func (o *VersionOptions) Clone() *VersionOptions {
	if o == nil {
		return nil
	}
	out := *o
	out.frozen = false

	out.Version = cloneVersion(o.Version)
	out.AssemblyVersion = cloneAssemblyVersion(o.AssemblyVersion)
	out.VersionHeightOffset = cloneInt64(o.VersionHeightOffset)
	out.SemVer1NumericIdentifierPadding = cloneInt(o.SemVer1NumericIdentifierPadding)
	out.GitCommitIDShortFixedLength = cloneInt(o.GitCommitIDShortFixedLength)
	out.GitCommitIDShortAutoMinimum = cloneInt(o.GitCommitIDShortAutoMinimum)
	out.GitCommitIDPrefix = cloneString(o.GitCommitIDPrefix)
	out.NuGetPackageVersion = cloneNuGet(o.NuGetPackageVersion)
	out.PublicReleaseRefSpec = cloneStringSlice(o.PublicReleaseRefSpec)
	out.CloudBuild = cloneCloudBuild(o.CloudBuild)
	out.Release = cloneRelease(o.Release)
	out.PathFilters = cloneStringSlice(o.PathFilters)
	out.Inherit = cloneBool(o.Inherit)
	out.Prerelease = cloneString(o.Prerelease)

	return &out
}

// IsFrozen reports whether o has been frozen.
func (o *VersionOptions) IsFrozen() bool {
	return o != nil && o.frozen
}

// Freeze marks o and every reachable sub-object as immutable. It is
// idempotent: freezing an already-frozen VersionOptions is a no-op.
func (o *VersionOptions) Freeze() {
	if o == nil {
		return
	}
	o.frozen = true
}

// Mutate applies fn to o if o is not frozen, otherwise returns
// ErrIllegalState without invoking fn. This is the only sanctioned way to
// mutate a VersionOptions that might be shared: direct field assignment by
// callers outside this package bypasses the freeze check, the same caveat
// the teacher's own exported-pointer-field Config carries.
func (o *VersionOptions) Mutate(fn func(*VersionOptions)) error {
	if o.IsFrozen() {
		return ErrIllegalState
	}
	fn(o)
	return nil
}

func cloneVersion(v *semver.SemanticVersion) *semver.SemanticVersion {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneAssemblyVersion(a *AssemblyVersionOptions) *AssemblyVersionOptions {
	if a == nil {
		return nil
	}
	c := AssemblyVersionOptions{Version: cloneVersion(a.Version)}
	if a.Precision != nil {
		p := *a.Precision
		c.Precision = &p
	}
	return &c
}

func cloneNuGet(n *NuGetPackageVersionOptions) *NuGetPackageVersionOptions {
	if n == nil {
		return nil
	}
	c := *n
	if n.SemVer != nil {
		v := *n.SemVer
		c.SemVer = &v
	}
	return &c
}

func cloneCloudBuild(c *CloudBuildOptions) *CloudBuildOptions {
	if c == nil {
		return nil
	}
	out := *c
	out.SetAllVariables = cloneBool(c.SetAllVariables)
	out.SetVersionVariables = cloneBool(c.SetVersionVariables)
	if c.BuildNumber != nil {
		bn := *c.BuildNumber
		bn.Enabled = cloneBool(c.BuildNumber.Enabled)
		if c.BuildNumber.IncludeCommitID != nil {
			inc := *c.BuildNumber.IncludeCommitID
			if c.BuildNumber.IncludeCommitID.When != nil {
				w := *c.BuildNumber.IncludeCommitID.When
				inc.When = &w
			}
			if c.BuildNumber.IncludeCommitID.Where != nil {
				w := *c.BuildNumber.IncludeCommitID.Where
				inc.Where = &w
			}
			bn.IncludeCommitID = &inc
		}
		out.BuildNumber = &bn
	}
	return &out
}

func cloneRelease(r *ReleaseOptions) *ReleaseOptions {
	if r == nil {
		return nil
	}
	out := *r
	out.BranchName = cloneString(r.BranchName)
	out.FirstUnstableTag = cloneString(r.FirstUnstableTag)
	if r.VersionIncrement != nil {
		v := *r.VersionIncrement
		out.VersionIncrement = &v
	}
	return &out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt(n *int) *int {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}

func cloneInt64(n *int64) *int64 {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func cloneStringSlice(ss *[]string) *[]string {
	if ss == nil {
		return nil
	}
	out := make([]string, len(*ss))
	copy(out, *ss)
	return &out
}
