package semver

import (
	"regexp"
	"strconv"
	"strings"
)

var numericIdentifier = regexp.MustCompile(`^[0-9]+$`)

// FormatSemVer1 renders the SemVer 1.0 form: no dots inside the prerelease
// identifier run, and any numeric prerelease identifier zero-padded to at
// least `padding` digits (SemVer 1.0 consumers, e.g. NuGet's legacy parser,
// sort prerelease tags lexically and need fixed-width numbers to do so
// correctly).
func FormatSemVer1(v SemanticVersion, padding int) string {
	var b strings.Builder
	b.WriteString(threeOrFourPart(v))
	if v.Prerelease != "" {
		b.WriteString("-")
		b.WriteString(collapseAndPad(v.Prerelease, padding))
	}
	return b.String()
}

// FormatSemVer2 renders the full SemVer 2.0 form with dotted prerelease
// identifiers and a "+"-delimited build-metadata suffix.
func FormatSemVer2(v SemanticVersion) string {
	return v.String()
}

func threeOrFourPart(v SemanticVersion) string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(v.Major, 10))
	b.WriteString(".")
	b.WriteString(strconv.FormatInt(v.Minor, 10))
	b.WriteString(".")
	if v.HasBuild() {
		b.WriteString(strconv.FormatInt(v.Build, 10))
	} else {
		b.WriteString("0")
	}
	if v.HasRevision() && v.Revision != 0 {
		b.WriteString(".")
		b.WriteString(strconv.FormatInt(v.Revision, 10))
	}
	return b.String()
}

// collapseAndPad removes dot separators (SemVer 1.0 has none) and zero-pads
// any fully-numeric identifier segment to `padding` digits.
func collapseAndPad(prerelease string, padding int) string {
	parts := strings.Split(prerelease, ".")
	for i, p := range parts {
		if numericIdentifier.MatchString(p) {
			parts[i] = padNumeric(p, padding)
		}
	}
	return strings.Join(parts, "")
}

func padNumeric(s string, padding int) string {
	if padding <= len(s) {
		return s
	}
	return strings.Repeat("0", padding-len(s)) + s
}

// WithNuGetCommitIDPrefix prefixes a numeric-leading identifier segment
// with prefix (default "g") so it cannot be mistaken for a numeric
// SemVer 1.0 identifier, avoiding lexical-sort corruption in NuGet's
// legacy parser.
func WithNuGetCommitIDPrefix(identifier, prefix string) string {
	if identifier == "" {
		return identifier
	}
	if identifier[0] >= '0' && identifier[0] <= '9' {
		return prefix + identifier
	}
	return identifier
}
