// Package semver models the semantic versions produced and consumed by the
// height engine: a 2-4 integer numeric tuple with explicit "unspecified"
// components, an optional prerelease string, and an optional build-metadata
// string. Both the prerelease and build-metadata strings may contain the
// {height} macro token, which SubstituteHeight replaces once the height is
// known.
package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Unset marks a numeric component (Build, Revision) that was never written
// in the source text, as distinct from an explicit zero.
const Unset = -1

// HeightMacro is the literal placeholder recognized as a whole identifier
// in the prerelease or build-metadata parts of a version string.
const HeightMacro = "{height}"

var versionRegex = regexp.MustCompile(
	`^[vV]?(\d+)\.(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:-([0-9A-Za-z.{}-]+))?(?:\+([0-9A-Za-z.{}-]+))?$`,
)

var identifierRegex = regexp.MustCompile(`^[0-9A-Za-z-]+$`)

// ParseError reports a malformed semantic version string.
type ParseError struct {
	Input string
	Cause string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid semantic version %q: %s", e.Input, e.Cause)
}

// SemanticVersion is a 2-4 integer numeric tuple plus optional prerelease
// and build-metadata strings. Build and Revision use Unset to distinguish
// "not present in the source" from an explicit 0.
type SemanticVersion struct {
	Major      int64
	Minor      int64
	Build      int64
	Revision   int64
	Prerelease string
	Metadata   string
}

// Parse parses a version string of the form
// "major.minor[.build[.revision]][-prerelease][+metadata]".
// An optional leading 'v' or 'V' is accepted and discarded.
func Parse(s string) (SemanticVersion, error) {
	m := versionRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return SemanticVersion{}, &ParseError{Input: s, Cause: "does not match major.minor[.build[.revision]][-pre][+meta]"}
	}

	v := SemanticVersion{Build: Unset, Revision: Unset}

	major, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return SemanticVersion{}, &ParseError{Input: s, Cause: "invalid major: " + m[1]}
	}
	v.Major = major

	minor, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return SemanticVersion{}, &ParseError{Input: s, Cause: "invalid minor: " + m[2]}
	}
	v.Minor = minor

	if m[3] != "" {
		build, err := strconv.ParseInt(m[3], 10, 64)
		if err != nil {
			return SemanticVersion{}, &ParseError{Input: s, Cause: "invalid build: " + m[3]}
		}
		v.Build = build
	}

	if m[4] != "" {
		if m[3] == "" {
			return SemanticVersion{}, &ParseError{Input: s, Cause: "revision present without build"}
		}
		revision, err := strconv.ParseInt(m[4], 10, 64)
		if err != nil {
			return SemanticVersion{}, &ParseError{Input: s, Cause: "invalid revision: " + m[4]}
		}
		v.Revision = revision
	}

	if m[5] != "" {
		if err := validateIdentifiers(m[5]); err != nil {
			return SemanticVersion{}, &ParseError{Input: s, Cause: "prerelease: " + err.Error()}
		}
		v.Prerelease = m[5]
	}

	if m[6] != "" {
		if err := validateIdentifiers(m[6]); err != nil {
			return SemanticVersion{}, &ParseError{Input: s, Cause: "metadata: " + err.Error()}
		}
		v.Metadata = m[6]
	}

	return v, nil
}

// validateIdentifiers checks that every dot-separated identifier is either
// the {height} macro or a legal SemVer 2.0 identifier (alphanumerics and
// hyphens, no empty segments).
func validateIdentifiers(s string) error {
	for _, id := range strings.Split(s, ".") {
		if id == HeightMacro {
			continue
		}
		if id == "" {
			return errors.New("empty identifier segment")
		}
		if !identifierRegex.MatchString(id) {
			return fmt.Errorf("illegal identifier %q", id)
		}
	}
	return nil
}

// HasBuild reports whether Build was present in the source text.
func (v SemanticVersion) HasBuild() bool { return v.Build != Unset }

// HasRevision reports whether Revision was present in the source text.
func (v SemanticVersion) HasRevision() bool { return v.Revision != Unset }

// HasHeightMacro reports whether the {height} token appears as a whole
// identifier in the prerelease or build-metadata string.
func (v SemanticVersion) HasHeightMacro() bool {
	return hasHeightMacro(v.Prerelease) || hasHeightMacro(v.Metadata)
}

// HasHeightMacroInPrerelease reports whether {height} appears in Prerelease
// specifically, which is what fixes the height-position at Prerelease.
func (v SemanticVersion) HasHeightMacroInPrerelease() bool {
	return hasHeightMacro(v.Prerelease)
}

func hasHeightMacro(s string) bool {
	if s == "" {
		return false
	}
	for _, id := range strings.Split(s, ".") {
		if id == HeightMacro {
			return true
		}
	}
	return false
}

// SubstituteHeight returns a copy of v with every occurrence of {height} in
// Prerelease and Metadata replaced by the decimal representation of height.
func (v SemanticVersion) SubstituteHeight(height int64) SemanticVersion {
	out := v
	out.Prerelease = substituteHeight(v.Prerelease, height)
	out.Metadata = substituteHeight(v.Metadata, height)
	return out
}

func substituteHeight(s string, height int64) string {
	if s == "" {
		return s
	}
	parts := strings.Split(s, ".")
	for i, p := range parts {
		if p == HeightMacro {
			parts[i] = strconv.FormatInt(height, 10)
		}
	}
	return strings.Join(parts, ".")
}

// String renders the version in its canonical 2-4 component form with
// prerelease and metadata suffixes, omitting unset trailing components.
func (v SemanticVersion) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d", v.Major, v.Minor)
	if v.HasBuild() {
		fmt.Fprintf(&b, ".%d", v.Build)
		if v.HasRevision() {
			fmt.Fprintf(&b, ".%d", v.Revision)
		}
	}
	if v.Prerelease != "" {
		b.WriteString("-")
		b.WriteString(v.Prerelease)
	}
	if v.Metadata != "" {
		b.WriteString("+")
		b.WriteString(v.Metadata)
	}
	return b.String()
}

// Equal reports structural equality of all components.
func (v SemanticVersion) Equal(other SemanticVersion) bool {
	return v == other
}

// PrefixEqual reports whether v and other agree on every component strictly
// before pos, per the Position ordering. Callers that need Prerelease
// handled as a full-equality case rather than a prefix position should use
// FullOrPrefixEqual instead.
func (v SemanticVersion) PrefixEqual(other SemanticVersion, pos Position) bool {
	if pos > Major && v.Major != other.Major {
		return false
	}
	if pos > Minor && v.Minor != other.Minor {
		return false
	}
	if pos > Build && v.Build != other.Build {
		return false
	}
	if pos > Revision && v.Revision != other.Revision {
		return false
	}
	if pos > Prerelease && v.Prerelease != other.Prerelease {
		return false
	}
	return true
}
