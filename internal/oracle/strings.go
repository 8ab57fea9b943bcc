package oracle

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/identity"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/options"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/semver"
)

// buildStrings populates every derived string field (spec.md §4.8) from the
// already-computed EffectiveVersion, h being height+versionHeightOffset
// (the same value folded into EffectiveVersion by EncodeIdentity).
func (o *Oracle) buildStrings(h int64) error {
	subst := o.baseVersion.SubstituteHeight(h)
	prerelease := subst.Prerelease
	metadata := subst.Metadata

	n := 3
	if o.heightPos == semver.Revision {
		n = 4
	}

	prereleaseSuffix := ""
	if prerelease != "" {
		prereleaseSuffix = "-" + prerelease
	}

	o.AssemblyVersion = o.assemblyVersionString()

	var infoMeta []string
	if o.CommitIDShort != "" {
		infoMeta = append(infoMeta, o.CommitIDShort)
	}
	if metadata != "" {
		infoMeta = append(infoMeta, metadata)
	}
	o.AssemblyInformationalVersion = toStringN(o.EffectiveVersion, n) + prereleaseSuffix + metadataSuffix(infoMeta)

	o.SemVer2 = toStringN(o.EffectiveVersion, 3) + prereleaseSuffix + metadataSuffix(nonEmpty(metadata))

	padding := *o.CommittedOptions.SemVer1NumericIdentifierPadding
	paddedPrerelease := padNumericIdentifiers(prerelease, padding)
	semVer1Tail := joinNonEmpty(".", paddedPrerelease, metadata)
	o.SemVer1 = toStringN(o.EffectiveVersion, 3) + prereleaseDashSuffix(semVer1Tail)

	nuGetSemVer1, err := o.nuGetSemVer1Form(paddedPrerelease, metadata)
	if err != nil {
		return err
	}
	o.ChocolateyPackageVersion = nuGetSemVer1

	if *o.CommittedOptions.NuGetPackageVersion.SemVer == options.NuGetSemVer2 {
		o.NuGetPackageVersion = o.SemVer2
	} else {
		o.NuGetPackageVersion = nuGetSemVer1
	}

	o.NPMPackageVersion = o.SemVer2

	o.CloudBuildNumber = o.cloudBuildNumberString(n, prereleaseSuffix, metadata)

	return nil
}

func (o *Oracle) assemblyVersionString() string {
	precision := options.DefaultAssemblyVersionPrecision
	var base identity.NumericVersion
	if av := o.CommittedOptions.AssemblyVersion; av != nil {
		if av.Precision != nil {
			precision = *av.Precision
		}
		if av.Version != nil {
			base = identity.NumericVersion{
				Major:    normalizeOrZero(av.Version.Major),
				Minor:    normalizeOrZero(av.Version.Minor),
				Build:    normalizeOrZero(av.Version.Build),
				Revision: normalizeOrZero(av.Version.Revision),
			}
		}
	} else {
		base = o.EffectiveVersion
	}
	truncated := truncatePrecision(base, precision)
	return fmt.Sprintf("%d.%d.%d.%d", truncated.Major, truncated.Minor, truncated.Build, truncated.Revision)
}

func truncatePrecision(v identity.NumericVersion, precision semver.Position) identity.NumericVersion {
	out := identity.NumericVersion{Major: v.Major}
	if precision >= semver.Minor {
		out.Minor = v.Minor
	}
	if precision >= semver.Build {
		out.Build = v.Build
	}
	if precision >= semver.Revision {
		out.Revision = v.Revision
	}
	return out
}

func normalizeOrZero(n int64) int64 {
	if n == semver.Unset {
		return 0
	}
	return n
}

func toStringN(v identity.NumericVersion, n int) string {
	if n >= 4 {
		return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Build, v.Revision)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Build)
}

func metadataSuffix(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	return "+" + strings.Join(parts, ".")
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

func prereleaseDashSuffix(s string) string {
	if s == "" {
		return ""
	}
	return "-" + s
}

var numericIdentifier = regexp.MustCompile(`^[0-9]+$`)

// padNumericIdentifiers zero-pads every purely-numeric dot-identifier in s
// to padding digits, the SemVer 1.0 numeric-identifier padding rule
// (spec.md §4.8). Non-numeric identifiers, and identifiers already at least
// padding digits long, pass through unchanged.
func padNumericIdentifiers(s string, padding int) string {
	if s == "" || padding <= 0 {
		return s
	}
	parts := strings.Split(s, ".")
	for i, p := range parts {
		if numericIdentifier.MatchString(p) && len(p) < padding {
			parts[i] = strings.Repeat("0", padding-len(p)) + p
		}
	}
	return strings.Join(parts, ".")
}

// nuGetSemVer1Form builds the legacy NuGet subset: no '+' build metadata,
// commit id (when present) folded into the prerelease behind
// gitCommitIdPrefix so it never reads as a bare leading-digit identifier.
func (o *Oracle) nuGetSemVer1Form(paddedPrerelease, metadata string) (string, error) {
	prefix := *o.CommittedOptions.GitCommitIDPrefix
	if prefix != "" {
		c := prefix[0]
		if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_') {
			return "", ErrInvalidCommitIDPrefix
		}
	}

	commitIdentifier := ""
	if o.CommitIDShort != "" {
		commitIdentifier = prefix + o.CommitIDShort
	}

	tail := joinNonEmpty(".", paddedPrerelease, commitIdentifier, metadata)
	return toStringN(o.EffectiveVersion, 3) + prereleaseDashSuffix(tail), nil
}

func (o *Oracle) cloudBuildNumberString(n int, prereleaseSuffix, metadata string) string {
	cb := o.CommittedOptions.CloudBuild
	if cb == nil || cb.BuildNumber == nil || cb.BuildNumber.Enabled == nil || !*cb.BuildNumber.Enabled {
		return ""
	}

	includeCommitID := false
	if cb.BuildNumber.IncludeCommitID != nil && cb.BuildNumber.IncludeCommitID.When != nil {
		switch *cb.BuildNumber.IncludeCommitID.When {
		case options.CommitIDWhenAlways:
			includeCommitID = true
		case options.CommitIDWhenNonPublicReleaseOnly:
			includeCommitID = !o.PublicRelease
		case options.CommitIDWhenNever:
			includeCommitID = false
		}
	}

	where := options.CommitIDWhereBuildMetadata
	if cb.BuildNumber.IncludeCommitID != nil && cb.BuildNumber.IncludeCommitID.Where != nil {
		where = *cb.BuildNumber.IncludeCommitID.Where
	}

	base := n
	var metaParts []string
	if includeCommitID {
		if where == options.CommitIDWhereFourthVersionComponent && o.heightPos == semver.Build {
			base = 4 // EffectiveVersion.Revision already carries the commit-id bits.
		} else if o.CommitIDShort != "" {
			metaParts = append(metaParts, o.CommitIDShort)
		}
	}
	if metadata != "" {
		metaParts = append(metaParts, metadata)
	}

	return toStringN(o.EffectiveVersion, base) + prereleaseSuffix + metadataSuffix(metaParts)
}
