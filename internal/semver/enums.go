package semver

// Position identifies a slot in a semantic version. The zero value is
// Major. Total order follows declaration order: Major < Minor < Build <
// Revision < Prerelease < BuildMetadata.
type Position int

const (
	Major Position = iota
	Minor
	Build
	Revision
	Prerelease
	BuildMetadata
)

func (p Position) String() string {
	switch p {
	case Major:
		return "Major"
	case Minor:
		return "Minor"
	case Build:
		return "Build"
	case Revision:
		return "Revision"
	case Prerelease:
		return "Prerelease"
	case BuildMetadata:
		return "BuildMetadata"
	default:
		return "Unknown"
	}
}

// HeightPosition returns the slot where height is encoded: the {height}
// macro position if present in the prerelease, otherwise the first
// unspecified numeric component (Build, then Revision). If all four
// numeric components are present and no macro is used, height has no
// slot; HeightPosition returns BuildMetadata and ok is false to signal
// "unused".
func HeightPosition(v SemanticVersion) (pos Position, ok bool) {
	if v.HasHeightMacroInPrerelease() {
		return Prerelease, true
	}
	if !v.HasBuild() {
		return Build, true
	}
	if !v.HasRevision() {
		return Revision, true
	}
	return BuildMetadata, false
}

// CommitIDPosition returns Revision (with ok true) when the height
// position is Build, since the commit-id packs into the next free slot.
// Otherwise the commit id is not encoded in the numeric version.
func CommitIDPosition(heightPos Position, heightOK bool) (pos Position, ok bool) {
	if heightOK && heightPos == Build {
		return Revision, true
	}
	return Revision, false
}

// FullOrPrefixEqual reports whether v matches other's prefix up to pos,
// except when pos is Prerelease: the {height} macro then lives as a literal
// token inside an otherwise-static prerelease template, so the comparison
// falls back to full equality instead of a component-wise prefix (spec.md
// §4.6 condition 1, §4.7 decode condition i).
func FullOrPrefixEqual(v, other SemanticVersion, pos Position) bool {
	if pos == Prerelease {
		return v.Equal(other)
	}
	return v.PrefixEqual(other, pos)
}

// WillResetHeight reports whether height computed against oldVersion would
// necessarily reset (become 0 or restart at 1) given a newVersion observed
// at some ancestry position, per spec: true iff any component strictly
// less than or equal to at_position differs; for at_position == Prerelease,
// true iff the full versions differ (including prerelease, not metadata).
func WillResetHeight(oldVersion, newVersion SemanticVersion, atPosition Position) bool {
	if atPosition == Prerelease {
		return oldVersion.Major != newVersion.Major ||
			oldVersion.Minor != newVersion.Minor ||
			oldVersion.Build != newVersion.Build ||
			oldVersion.Revision != newVersion.Revision ||
			oldVersion.Prerelease != newVersion.Prerelease
	}
	if atPosition >= Major && oldVersion.Major != newVersion.Major {
		return true
	}
	if atPosition >= Minor && oldVersion.Minor != newVersion.Minor {
		return true
	}
	if atPosition >= Build && oldVersion.Build != newVersion.Build {
		return true
	}
	if atPosition >= Revision && oldVersion.Revision != newVersion.Revision {
		return true
	}
	return false
}
