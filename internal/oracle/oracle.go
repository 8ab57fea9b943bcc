// Package oracle implements the Oracle (spec.md §4.8): the top-level
// aggregator that resolves configuration, computes height, encodes
// identity, and builds every exposed version string form, walking the
// explicit Start→ReadConfig→ComputeHeight→EncodeIdentity→BuildStrings
// state machine the spec names.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/gitcontext"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/height"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/identity"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/logging"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/options"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/pathfilter"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/resolver"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/semver"
)

// State names a node of the Oracle's construction state machine (spec.md
// §4.8).
type State int

const (
	Start State = iota
	ReadConfig
	EmitDefaultZeroVersion
	ComputeHeight
	EncodeIdentity
	BuildStrings
	Done
	FailShallow
	FailOverflow
)

func (s State) String() string {
	switch s {
	case Start:
		return "Start"
	case ReadConfig:
		return "ReadConfig"
	case EmitDefaultZeroVersion:
		return "EmitDefaultZeroVersion"
	case ComputeHeight:
		return "ComputeHeight"
	case EncodeIdentity:
		return "EncodeIdentity"
	case BuildStrings:
		return "BuildStrings"
	case Done:
		return "Done"
	case FailShallow:
		return "FailShallow"
	case FailOverflow:
		return "FailOverflow"
	default:
		return "Unknown"
	}
}

// Request carries everything one Oracle computation needs.
type Request struct {
	Context gitcontext.Context

	// WorkingTreeRoot and Directory are absolute paths. Directory is the
	// anchor the configuration resolver and height calculator climb from;
	// it defaults to WorkingTreeRoot when empty.
	WorkingTreeRoot string
	Directory       string

	// Commit is the commit under inspection. Nil selects the context's
	// currently selected commit, falling back to HEAD.
	Commit *gitcontext.CommitID

	// CommittedConfig reads the configuration as committed at Commit.
	// Required.
	CommittedConfig resolver.FileSource
	// WorkingConfig, when non-nil, reads the configuration from the
	// working tree (disk), enabling the working-tree override (spec.md
	// §4.6). Nil means "no override": the working tree is assumed to
	// match the committed configuration.
	WorkingConfig resolver.FileSource

	// BuildingRef overrides the ref tested against publicReleaseRefSpec.
	// Empty uses Context.HeadCanonicalName().
	BuildingRef string

	RepoConfig pathfilter.RepoConfig
	Logger     *logrus.Logger
}

// Oracle is the computed, read-only result (spec.md §3 "VersionOracle
// output" + §4.8 derived strings).
type Oracle struct {
	State State

	CommittedOptions *options.VersionOptions
	WorkingOptions   *options.VersionOptions

	EffectiveVersion    identity.NumericVersion
	VersionHeight       int64
	VersionHeightOffset int64

	CommitID      gitcontext.CommitID
	HasCommit     bool
	CommitIDShort string
	CommitDate    *time.Time
	BuildingRef   string
	PublicRelease bool

	CloudBuild *options.CloudBuildOptions

	AssemblyVersion              string
	AssemblyInformationalVersion string
	SemVer1                      string
	SemVer2                      string
	NuGetPackageVersion          string
	ChocolateyPackageVersion     string
	NPMPackageVersion            string
	CloudBuildNumber             string

	heightPos      semver.Position
	commitIDPos    semver.Position
	commitIDPosOK  bool
	baseVersion    semver.SemanticVersion
	directory      string
}

// Compute runs the full state machine and returns the finished Oracle, or a
// surfaced error (FailShallow, FailOverflow, or a propagated resolver/parse
// error).
func Compute(ctx context.Context, req Request) (*Oracle, error) {
	log := logging.Component(req.Logger, "oracle")
	o := &Oracle{State: Start}

	dir := req.Directory
	if dir == "" {
		dir = req.WorkingTreeRoot
	}
	o.directory = dir

	commit, hasCommit, err := selectCommit(req)
	if err != nil {
		return nil, err
	}
	o.CommitID = commit
	o.HasCommit = hasCommit

	o.State = ReadConfig
	log.WithField("state", o.State).Debug("resolving configuration")

	res, err := resolver.Resolve(dir, req.WorkingTreeRoot, resolver.Requirements{}, req.CommittedConfig)
	if err != nil {
		return nil, fmt.Errorf("oracle: reading configuration: %w", err)
	}

	if res == nil || res.Options == nil || res.Options.Version == nil {
		o.State = EmitDefaultZeroVersion
		log.WithField("state", o.State).Debug("no configuration found, using zero version")
		o.CommittedOptions = options.ResolveDefaults(&options.VersionOptions{
			Version: &semver.SemanticVersion{Build: semver.Unset, Revision: semver.Unset},
		})
		o.WorkingOptions = o.CommittedOptions
		o.baseVersion = *o.CommittedOptions.Version
		heightOK := false
		o.heightPos, heightOK = semver.HeightPosition(o.baseVersion)
		o.commitIDPos, o.commitIDPosOK = semver.CommitIDPosition(o.heightPos, heightOK)
		o.VersionHeight = 0
	} else {
		o.CommittedOptions = options.ResolveDefaults(res.Options)
		o.baseVersion = *o.CommittedOptions.Version
		o.WorkingOptions = o.CommittedOptions
		if req.WorkingConfig != nil {
			if wres, werr := resolver.Resolve(dir, req.WorkingTreeRoot, resolver.Requirements{}, req.WorkingConfig); werr == nil && wres != nil && wres.Options != nil {
				o.WorkingOptions = options.ResolveDefaults(wres.Options)
			}
		}

		heightOK := false
		o.heightPos, heightOK = semver.HeightPosition(o.baseVersion)
		o.commitIDPos, o.commitIDPosOK = semver.CommitIDPosition(o.heightPos, heightOK)

		o.State = ComputeHeight
		log.WithField("state", o.State).Debug("computing height")

		filters, ferr := pathfilter.FromOptions(o.CommittedOptions, dir, req.WorkingTreeRoot, req.RepoConfig)
		if ferr != nil {
			return nil, fmt.Errorf("oracle: parsing path filters: %w", ferr)
		}

		var workingVersion *semver.SemanticVersion
		if o.WorkingOptions != o.CommittedOptions && o.WorkingOptions.Version != nil {
			workingVersion = o.WorkingOptions.Version
		}

		if hasCommit {
			calc := height.NewCalculator(req.Context, req.WorkingTreeRoot, dir, o.baseVersion, filters)
			h, herr := calc.Height(ctx, commit, workingVersion)
			if herr != nil {
				if errors.Is(herr, gitcontext.ErrShallowClone) {
					o.State = FailShallow
					return o, fmt.Errorf("oracle: %s: %w", o.State, herr)
				}
				return nil, fmt.Errorf("oracle: computing height: %w", herr)
			}
			o.VersionHeight = h
		}
	}

	o.VersionHeightOffset = *o.CommittedOptions.VersionHeightOffset

	o.State = EncodeIdentity
	log.WithField("state", o.State).Debug("encoding identity")

	h, herr := identity.ClampHeight(o.VersionHeight, o.VersionHeightOffset)
	if herr != nil {
		o.State = FailOverflow
		return o, fmt.Errorf("oracle: %s: %w", o.State, herr)
	}

	var first16 uint16
	if hasCommit {
		first16, err = req.Context.FirstBytesOf(commit)
		if err != nil {
			return nil, fmt.Errorf("oracle: reading commit id bits: %w", err)
		}
	}

	o.EffectiveVersion = identity.Encode(o.baseVersion, o.heightPos, o.commitIDPos, o.commitIDPosOK, h, first16)

	if hasCommit {
		o.CommitDate, _ = optionalDate(req.Context, commit)
		o.CommitIDShort, err = shortCommitID(req.Context, commit, o.CommittedOptions)
		if err != nil {
			return nil, fmt.Errorf("oracle: computing short commit id: %w", err)
		}
	}

	o.BuildingRef = req.BuildingRef
	if o.BuildingRef == "" {
		if name, ok := req.Context.HeadCanonicalName(); ok {
			o.BuildingRef = name
		}
	}
	o.PublicRelease, err = matchesPublicRelease(o.CommittedOptions, o.BuildingRef)
	if err != nil {
		return nil, fmt.Errorf("oracle: matching publicReleaseRefSpec: %w", err)
	}
	o.CloudBuild = o.CommittedOptions.CloudBuild

	o.State = BuildStrings
	log.WithField("state", o.State).Debug("building version strings")

	if err := o.buildStrings(h); err != nil {
		return nil, fmt.Errorf("oracle: building version strings: %w", err)
	}

	o.State = Done
	log.WithField("state", o.State).Debug("done")
	return o, nil
}

func selectCommit(req Request) (gitcontext.CommitID, bool, error) {
	if req.Commit != nil {
		return *req.Commit, true, nil
	}
	if id, ok := req.Context.SelectedCommitID(); ok {
		return id, true, nil
	}
	if id, ok := req.Context.HeadCommitID(); ok {
		return id, true, nil
	}
	return "", false, nil
}

func optionalDate(ctx gitcontext.Context, commit gitcontext.CommitID) (*time.Time, bool) {
	t, ok := ctx.CommitDate(commit)
	if !ok {
		return nil, false
	}
	return &t, true
}

func shortCommitID(ctx gitcontext.Context, commit gitcontext.CommitID, o *options.VersionOptions) (string, error) {
	minLen := *o.GitCommitIDShortFixedLength
	if auto := *o.GitCommitIDShortAutoMinimum; auto > minLen {
		minLen = auto
	}
	return ctx.ShortUniqueID(commit, minLen)
}

