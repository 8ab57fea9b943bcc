package options

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/semver"
)

// UnmarshalJSON decodes the polymorphic assemblyVersion field: either a
// bare numeric version string (Precision left nil, i.e. "not set") or an
// object {"version": ..., "precision": ...}.
func (a *AssemblyVersionOptions) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var v semver.SemanticVersion
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return fmt.Errorf("assemblyVersion: %w", err)
		}
		a.Version = &v
		a.Precision = nil
		return nil
	}

	var obj struct {
		Version   *semver.SemanticVersion `json:"version"`
		Precision *semver.Position        `json:"precision"`
	}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return fmt.Errorf("assemblyVersion: %w", err)
	}
	a.Version = obj.Version
	a.Precision = obj.Precision
	return nil
}

// MarshalJSON collapses to the bare scalar form when Precision is unset or
// equals DefaultAssemblyVersionPrecision, and to the object form otherwise.
func (a AssemblyVersionOptions) MarshalJSON() ([]byte, error) {
	if a.Precision == nil || *a.Precision == DefaultAssemblyVersionPrecision {
		return json.Marshal(a.Version)
	}
	return json.Marshal(struct {
		Version   *semver.SemanticVersion `json:"version,omitempty"`
		Precision *semver.Position        `json:"precision,omitempty"`
	}{a.Version, a.Precision})
}

func unmarshalEnumName(data []byte, names map[string]int) (int, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return 0, err
	}
	if v, ok := names[strings.ToLower(s)]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("unrecognized enumeration value %q", s)
}

var nuGetSemVerNames = map[string]int{"1": int(NuGetSemVer1), "2": int(NuGetSemVer2)}

func (v NuGetSemVerVersion) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(v))
}

func (v *NuGetSemVerVersion) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		n, err := unmarshalEnumName(data, nuGetSemVerNames)
		if err != nil {
			return err
		}
		*v = NuGetSemVerVersion(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if n != 1 && n != 2 {
		return fmt.Errorf("nugetPackageVersion.semVer must be 1 or 2, got %d", n)
	}
	*v = NuGetSemVerVersion(n)
	return nil
}

var includeCommitIDWhenNames = map[string]int{
	"always":                int(CommitIDWhenAlways),
	"nonpublicreleaseonly":  int(CommitIDWhenNonPublicReleaseOnly),
	"never":                 int(CommitIDWhenNever),
}

func (v IncludeCommitIDWhen) MarshalJSON() ([]byte, error) {
	names := []string{"Always", "NonPublicReleaseOnly", "Never"}
	return json.Marshal(names[v])
}

func (v *IncludeCommitIDWhen) UnmarshalJSON(data []byte) error {
	n, err := unmarshalEnumName(data, includeCommitIDWhenNames)
	if err != nil {
		return err
	}
	*v = IncludeCommitIDWhen(n)
	return nil
}

var includeCommitIDWhereNames = map[string]int{
	"buildmetadata":         int(CommitIDWhereBuildMetadata),
	"fourthversioncomponent": int(CommitIDWhereFourthVersionComponent),
}

func (v IncludeCommitIDWhere) MarshalJSON() ([]byte, error) {
	names := []string{"BuildMetadata", "FourthVersionComponent"}
	return json.Marshal(names[v])
}

func (v *IncludeCommitIDWhere) UnmarshalJSON(data []byte) error {
	n, err := unmarshalEnumName(data, includeCommitIDWhereNames)
	if err != nil {
		return err
	}
	*v = IncludeCommitIDWhere(n)
	return nil
}

var versionIncrementNames = map[string]int{
	"major": int(VersionIncrementMajor),
	"minor": int(VersionIncrementMinor),
	"build": int(VersionIncrementBuild),
}

func (v VersionIncrement) MarshalJSON() ([]byte, error) {
	names := []string{"Major", "Minor", "Build"}
	return json.Marshal(names[v])
}

func (v *VersionIncrement) UnmarshalJSON(data []byte) error {
	n, err := unmarshalEnumName(data, versionIncrementNames)
	if err != nil {
		return err
	}
	*v = VersionIncrement(n)
	return nil
}
