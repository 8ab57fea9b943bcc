package semver

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MarshalJSON encodes a SemanticVersion as its canonical string form, so
// version.json's "version" field round-trips as plain text rather than a
// nested object.
func (v SemanticVersion) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON parses a SemanticVersion from its canonical string form.
func (v *SemanticVersion) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalJSON encodes a Position as its case-sensitive canonical name.
func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON parses a Position name case-insensitively, matching
// spec.md's "enumerations are case-insensitive" rule.
func (p *Position) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.ToLower(s) {
	case "major":
		*p = Major
	case "minor":
		*p = Minor
	case "build":
		*p = Build
	case "revision":
		*p = Revision
	case "prerelease":
		*p = Prerelease
	case "buildmetadata":
		*p = BuildMetadata
	default:
		return fmt.Errorf("unknown Position %q", s)
	}
	return nil
}
