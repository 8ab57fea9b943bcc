package oracle

import (
	"context"
	"fmt"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/gitcontext"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/height"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/identity"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/options"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/pathfilter"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/resolver"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/semver"
)

// DecodeRequest carries the identity.NumericVersion to resolve back to a
// commit, plus the context and governing configuration needed to walk the
// reachable set. Config is resolved once, the same way Compute resolves it
// (spec.md §4.8's ReadConfig), anchoring the single base version/filter set
// every candidate is measured against.
type DecodeRequest struct {
	Context gitcontext.Context

	WorkingTreeRoot string
	Directory       string

	Version identity.NumericVersion

	CommittedConfig resolver.FileSource
	RepoConfig      pathfilter.RepoConfig
}

// Decode implements spec.md §4.7's reverse lookup: enumerate
// Context.ReachableCommits(), resolve each candidate's own configuration,
// and filter by (i) base-version prefix/full-equality match against the
// governing configuration, (ii) height match, (iii) commit-id bit match
// under the sentinel mask. Exactly one surviving candidate is returned;
// more than one is ErrAmbiguousVersionMatch, zero is
// (gitcontext.CommitID(""), false, nil).
func Decode(req DecodeRequest) (gitcontext.CommitID, bool, error) {
	dir := req.Directory
	if dir == "" {
		dir = req.WorkingTreeRoot
	}

	res, err := resolver.Resolve(dir, req.WorkingTreeRoot, resolver.Requirements{}, req.CommittedConfig)
	if err != nil {
		return "", false, fmt.Errorf("oracle: reading configuration: %w", err)
	}
	if res == nil || res.Options == nil || res.Options.Version == nil {
		return "", false, nil
	}
	opts := options.ResolveDefaults(res.Options)
	expectedBase := *opts.Version

	heightPos, heightOK := semver.HeightPosition(expectedBase)
	commitIDPos, commitIDPosOK := semver.CommitIDPosition(heightPos, heightOK)

	filters, err := pathfilter.FromOptions(opts, dir, req.WorkingTreeRoot, req.RepoConfig)
	if err != nil {
		return "", false, fmt.Errorf("oracle: parsing path filters: %w", err)
	}
	versionHeightOffset := *opts.VersionHeightOffset

	calc := height.NewCalculator(req.Context, req.WorkingTreeRoot, dir, expectedBase, filters)

	commits, err := req.Context.ReachableCommits()
	if err != nil {
		return "", false, fmt.Errorf("oracle: enumerating reachable commits: %w", err)
	}

	var match gitcontext.CommitID
	found := false

	for _, commit := range commits {
		ok, err := decodeMatchesAt(req, dir, commit, expectedBase, heightPos, commitIDPos, commitIDPosOK, versionHeightOffset, calc)
		if err != nil {
			return "", false, err
		}
		if !ok {
			continue
		}
		if found {
			return "", false, ErrAmbiguousVersionMatch
		}
		match = commit
		found = true
	}

	return match, found, nil
}

func decodeMatchesAt(
	req DecodeRequest,
	dir string,
	commit gitcontext.CommitID,
	expectedBase semver.SemanticVersion,
	heightPos, commitIDPos semver.Position,
	commitIDPosOK bool,
	versionHeightOffset int64,
	calc *height.Calculator,
) (bool, error) {
	fs := gitcontext.CommitFileSource{Context: req.Context, Commit: commit}
	res, err := resolver.Resolve(dir, req.WorkingTreeRoot, resolver.Requirements{}, fs)
	if err != nil || res == nil || res.Options == nil || res.Options.Version == nil {
		return false, nil
	}
	candidateBase := *options.ResolveDefaults(res.Options).Version

	candidateHeight, err := calc.Height(context.Background(), commit, nil)
	if err != nil {
		return false, nil
	}

	first16, err := req.Context.FirstBytesOf(commit)
	if err != nil {
		return false, nil
	}

	return identity.Matches(req.Version, candidateBase, expectedBase, heightPos, commitIDPos, commitIDPosOK, versionHeightOffset, candidateHeight, first16), nil
}
