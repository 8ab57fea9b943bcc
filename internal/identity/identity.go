// Package identity implements the Identity Encoder/Decoder (spec.md §4.7):
// packing a computed height and a commit id's leading bits into the numeric
// slots of a 4-int version, and the reverse lookup predicate used to find
// the commit behind a previously-encoded version.
package identity

import (
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/semver"
)

// ErrHeightOverflow is returned when height+versionHeightOffset falls
// outside the 16-bit numeric slot the encoding reserves for it.
var ErrHeightOverflow = errors.New("identity: height overflows its 16-bit slot")

// MaxEncodedHeight is the largest value h := height + versionHeightOffset
// may take; 65535 itself is never encoded (see ClampCommitIDBits).
const MaxEncodedHeight = 65534

// NumericVersion is the 4 integer components of an encoded version. Unlike
// semver.SemanticVersion it carries no prerelease/metadata text and no
// Unset sentinel: every field is a concrete, normalized (>= 0) number.
type NumericVersion struct {
	Major    int64
	Minor    int64
	Build    int64
	Revision int64
}

// ClampHeight computes h := height + versionHeightOffset and asserts it
// fits the numeric slot, failing with ErrHeightOverflow otherwise.
func ClampHeight(height, versionHeightOffset int64) (int64, error) {
	h := height + versionHeightOffset
	if h < 0 || h > MaxEncodedHeight {
		return 0, fmt.Errorf("%w: height=%d offset=%d h=%d", ErrHeightOverflow, height, versionHeightOffset, h)
	}
	return h, nil
}

// ClampCommitIDBits returns the first-16-bits-of-commit-id value to encode,
// clamping 0xFFFF, the one value no encoded numeric component takes: a raw
// 0xFFFF becomes 0xFFFE.
func ClampCommitIDBits(first16 uint16) int64 {
	if first16 == 0xFFFF {
		return 0xFFFE
	}
	return int64(first16)
}

// Mask returns the bitmask the decoder applies to a candidate commit's
// leading bits before comparing them to an encoded revision component:
// 0xFFFE when the encoded revision is the clamped sentinel 65534, else the
// full 0xFFFF.
func Mask(encodedRevision int64) uint16 {
	if encodedRevision == 65534 {
		return 0xFFFE
	}
	return 0xFFFF
}

// normalize maps semver.Unset to 0, the boundary normalization spec.md
// §4.7 requires for components inherited from Version's sentinel.
func normalize(n int64) int64 {
	if n == semver.Unset {
		return 0
	}
	return n
}

// Encode populates a NumericVersion from baseVersion, overlaying h at
// heightPos and (when applicable) the commit id's leading bits at
// commitIDPos. heightPos == semver.Prerelease encodes no numeric slot at
// all: the macro substitution that carries h lives in the prerelease text,
// handled by semver.SemanticVersion.SubstituteHeight at the call site.
func Encode(baseVersion semver.SemanticVersion, heightPos semver.Position, commitIDPos semver.Position, commitIDPosOK bool, h int64, first16 uint16) NumericVersion {
	v := NumericVersion{
		Major:    normalize(baseVersion.Major),
		Minor:    normalize(baseVersion.Minor),
		Build:    normalize(baseVersion.Build),
		Revision: normalize(baseVersion.Revision),
	}

	switch heightPos {
	case semver.Build:
		v.Build = h
	case semver.Revision:
		v.Revision = h
	}

	if commitIDPosOK && commitIDPos == semver.Revision {
		v.Revision = ClampCommitIDBits(first16)
	}

	return v
}

// Matches implements spec.md §4.7's decode predicate for one candidate
// commit: (i) the candidate's own resolved base version agrees with
// expectedBase up to heightPos (full equality when heightPos is
// Prerelease), (ii) the candidate's independently-computed height equals
// the encoded h once versionHeightOffset is removed, and (iii), when a
// commit id is encoded, the candidate's leading bits agree with v.Revision
// under Mask. When heightPos is Prerelease, h has no numeric slot in v (it
// lives as a substituted {height} token in prerelease text instead), so
// condition (ii) is skipped here; a caller decoding a Prerelease-positioned
// version must additionally compare the candidate's substituted prerelease
// string to the target's.
func Matches(v NumericVersion, candidateBase, expectedBase semver.SemanticVersion, heightPos semver.Position, commitIDPos semver.Position, commitIDPosOK bool, versionHeightOffset int64, candidateHeight int64, candidateFirst16 uint16) bool {
	if !semver.FullOrPrefixEqual(candidateBase, expectedBase, heightPos) {
		return false
	}

	encodedHeight := heightComponent(v, heightPos)
	if heightPos != semver.Prerelease && candidateHeight != encodedHeight-versionHeightOffset {
		return false
	}

	if commitIDPosOK && commitIDPos == semver.Revision {
		mask := Mask(v.Revision)
		if uint16(candidateFirst16)&mask != uint16(v.Revision)&mask {
			return false
		}
	}

	return true
}

// heightComponent reads back whichever NumericVersion field h was written
// into during Encode. It is meaningless (and unused by Matches) when
// heightPos is Prerelease, since no numeric slot carries h there.
func heightComponent(v NumericVersion, heightPos semver.Position) int64 {
	switch heightPos {
	case semver.Build:
		return v.Build
	case semver.Revision:
		return v.Revision
	default:
		return 0
	}
}

// ErrAmbiguousMatch is returned by reverse lookup when more than one
// reachable commit satisfies Matches for the same candidate version.
var ErrAmbiguousMatch = errors.New("identity: version matches more than one reachable commit")
