package oracle

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/gitcontext"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/identity"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/options"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/semver"
)

// ErrSnapshotMissingDirectory is returned by Deserialize when neither the
// call site nor the snapshot itself carries the absolute base directory
// path filters were resolved against (spec.md §6).
var ErrSnapshotMissingDirectory = errors.New("oracle: deserializing snapshot requires the base directory used to resolve path filters")

// snapshotDoc is the JSON-serializable form of a computed Oracle, used for
// cross-process caching (spec.md §6's "exposed collaborator interface").
type snapshotDoc struct {
	State State `json:"state"`

	CommittedOptions *options.VersionOptions `json:"committedVersionOptions"`
	WorkingOptions   *options.VersionOptions `json:"workingVersionOptions"`

	EffectiveVersion    identity.NumericVersion `json:"effectiveVersion"`
	VersionHeight       int64                   `json:"versionHeight"`
	VersionHeightOffset int64                   `json:"versionHeightOffset"`

	CommitID      gitcontext.CommitID `json:"commitId,omitempty"`
	HasCommit     bool                `json:"hasCommit"`
	CommitIDShort string              `json:"commitIdShort,omitempty"`
	CommitDate    *time.Time          `json:"commitDate,omitempty"`
	BuildingRef   string              `json:"buildingRef,omitempty"`
	PublicRelease bool                `json:"publicRelease"`

	// Directory is the absolute base directory pathFilters were
	// resolved against; required to rehydrate a FilterSet from
	// CommittedOptions.PathFilters after Deserialize.
	Directory string `json:"directory,omitempty"`

	AssemblyVersion              string `json:"assemblyVersion"`
	AssemblyInformationalVersion string `json:"assemblyInformationalVersion"`
	SemVer1                      string `json:"semVer1"`
	SemVer2                      string `json:"semVer2"`
	NuGetPackageVersion          string `json:"nuGetPackageVersion"`
	ChocolateyPackageVersion     string `json:"chocolateyPackageVersion"`
	NPMPackageVersion            string `json:"npmPackageVersion"`
	CloudBuildNumber             string `json:"cloudBuildNumber"`
}

// Serialize writes a JSON snapshot of o, including the base directory
// needed to later rehydrate its path filters.
func (o *Oracle) Serialize() ([]byte, error) {
	doc := snapshotDoc{
		State:                         o.State,
		CommittedOptions:              o.CommittedOptions,
		WorkingOptions:                o.WorkingOptions,
		EffectiveVersion:              o.EffectiveVersion,
		VersionHeight:                 o.VersionHeight,
		VersionHeightOffset:           o.VersionHeightOffset,
		CommitID:                      o.CommitID,
		HasCommit:                     o.HasCommit,
		CommitIDShort:                 o.CommitIDShort,
		CommitDate:                    o.CommitDate,
		BuildingRef:                   o.BuildingRef,
		PublicRelease:                 o.PublicRelease,
		Directory:                     o.directory,
		AssemblyVersion:               o.AssemblyVersion,
		AssemblyInformationalVersion:  o.AssemblyInformationalVersion,
		SemVer1:                       o.SemVer1,
		SemVer2:                       o.SemVer2,
		NuGetPackageVersion:           o.NuGetPackageVersion,
		ChocolateyPackageVersion:      o.ChocolateyPackageVersion,
		NPMPackageVersion:             o.NPMPackageVersion,
		CloudBuildNumber:              o.CloudBuildNumber,
	}
	return json.Marshal(doc)
}

// Deserialize reconstructs an Oracle from a Serialize snapshot. directory,
// when non-empty, overrides the directory embedded in the snapshot; at
// least one of the two must be present.
func Deserialize(data []byte, directory string) (*Oracle, error) {
	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	dir := directory
	if dir == "" {
		dir = doc.Directory
	}
	if dir == "" {
		return nil, ErrSnapshotMissingDirectory
	}

	o := &Oracle{
		State:                         doc.State,
		CommittedOptions:              doc.CommittedOptions,
		WorkingOptions:                doc.WorkingOptions,
		EffectiveVersion:              doc.EffectiveVersion,
		VersionHeight:                 doc.VersionHeight,
		VersionHeightOffset:           doc.VersionHeightOffset,
		CommitID:                      doc.CommitID,
		HasCommit:                     doc.HasCommit,
		CommitIDShort:                 doc.CommitIDShort,
		CommitDate:                    doc.CommitDate,
		BuildingRef:                   doc.BuildingRef,
		PublicRelease:                 doc.PublicRelease,
		directory:                     dir,
		AssemblyVersion:               doc.AssemblyVersion,
		AssemblyInformationalVersion:  doc.AssemblyInformationalVersion,
		SemVer1:                       doc.SemVer1,
		SemVer2:                       doc.SemVer2,
		NuGetPackageVersion:           doc.NuGetPackageVersion,
		ChocolateyPackageVersion:      doc.ChocolateyPackageVersion,
		NPMPackageVersion:             doc.NPMPackageVersion,
		CloudBuildNumber:              doc.CloudBuildNumber,
	}

	if o.CommittedOptions != nil && o.CommittedOptions.Version != nil {
		o.baseVersion = *o.CommittedOptions.Version
		var heightOK bool
		o.heightPos, heightOK = semver.HeightPosition(o.baseVersion)
		o.commitIDPos, o.commitIDPosOK = semver.CommitIDPosition(o.heightPos, heightOK)
	}

	return o, nil
}

// Directory returns the absolute base directory path filters were
// resolved against, for callers that need to rebuild a pathfilter.FilterSet
// from CommittedOptions.PathFilters after Deserialize.
func (o *Oracle) Directory() string {
	return o.directory
}
