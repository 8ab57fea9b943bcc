// Package height implements the Height Calculator (spec.md §4.6): a
// memoized, max-over-parents DFS over the commit DAG that counts how many
// consecutive ancestors share the configured base version and touch a path
// the filter set admits.
package height

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/gitcontext"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/pathfilter"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/resolver"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/semver"
)

// ErrCycle is returned if the memoized walk re-enters a commit that is
// still being visited. The commit DAG is acyclic by construction (spec.md
// §9); this guards against a corrupt/adversarial Git Context instead of
// looping forever.
var ErrCycle = errors.New("height: re-entrant commit detected during traversal")

type state int8

const (
	unvisited state = iota
	visiting
	done
)

type node struct {
	state  state
	height int64
}

// Calculator computes version height for commits reachable from a fixed
// anchor directory, against a fixed base version and filter set.
type Calculator struct {
	Context gitcontext.Context
	// WorkingTreeRoot and Directory are absolute paths; Directory is the
	// directory of the configuration file that produced BaseVersion.
	WorkingTreeRoot string
	Directory       string
	BaseVersion     semver.SemanticVersion
	HeightPos       semver.Position
	Filters         pathfilter.FilterSet

	cache map[gitcontext.CommitID]*node
}

// NewCalculator derives HeightPos from baseVersion (spec.md §4.1) and
// returns a ready-to-use Calculator. When baseVersion has no height slot
// (all four integers set, no {height} macro), comparisons fall back to
// semver.BuildMetadata: every component except build metadata must match,
// since height is then an
// unused derived quantity rather than an encoded one.
func NewCalculator(ctx gitcontext.Context, workingTreeRoot, directory string, baseVersion semver.SemanticVersion, filters pathfilter.FilterSet) *Calculator {
	pos, ok := semver.HeightPosition(baseVersion)
	if !ok {
		pos = semver.BuildMetadata
	}
	return &Calculator{
		Context:         ctx,
		WorkingTreeRoot: workingTreeRoot,
		Directory:       directory,
		BaseVersion:     baseVersion,
		HeightPos:       pos,
		Filters:         filters,
	}
}

// Height computes the height of commit. workingVersion, when non-nil, is
// the working tree's currently-configured base version; if it differs from
// BaseVersion up to HeightPos, height is unconditionally 0 (spec.md §4.6's
// working-tree override) since no commit yet represents the bumped version.
func (c *Calculator) Height(ctx context.Context, commit gitcontext.CommitID, workingVersion *semver.SemanticVersion) (int64, error) {
	if workingVersion != nil && !semver.FullOrPrefixEqual(*workingVersion, c.BaseVersion, c.HeightPos) {
		return 0, nil
	}
	c.cache = map[gitcontext.CommitID]*node{}
	return c.heightOf(ctx, commit)
}

func (c *Calculator) heightOf(ctx context.Context, commit gitcontext.CommitID) (int64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	if n, ok := c.cache[commit]; ok {
		if n.state == visiting {
			return 0, fmt.Errorf("%w: %s", ErrCycle, commit)
		}
		return n.height, nil
	}
	c.cache[commit] = &node{state: visiting}

	baseMatches, err := c.configMatchesAt(commit)
	if err != nil {
		return 0, err
	}
	if !baseMatches {
		c.cache[commit] = &node{state: done, height: 0}
		return 0, nil
	}

	contrib, err := c.contributes(commit)
	if err != nil {
		return 0, err
	}

	parents, err := c.Context.ParentsOf(commit)
	if err != nil {
		return 0, err
	}

	var maxParentHeight int64
	for _, p := range parents {
		h, err := c.heightOf(ctx, p)
		if err != nil {
			return 0, err
		}
		if h > maxParentHeight {
			maxParentHeight = h
		}
	}

	result := maxParentHeight
	if contrib {
		result++
	}

	c.cache[commit] = &node{state: done, height: result}
	return result, nil
}

// configMatchesAt resolves the configuration in effect at Directory as of
// commit and reports whether its version matches BaseVersion's prefix up to
// HeightPos (spec.md §4.6 condition 1). A missing configuration fails the
// condition, yielding a height-0 base case rather than an error.
func (c *Calculator) configMatchesAt(commit gitcontext.CommitID) (bool, error) {
	fs := gitcontext.CommitFileSource{Context: c.Context, Commit: commit}
	res, err := resolver.Resolve(c.Directory, c.WorkingTreeRoot, resolver.Requirements{}, fs)
	if err != nil {
		if errors.Is(err, resolver.ErrMissingParentConfiguration) {
			return false, nil
		}
		return false, err
	}
	if res == nil || res.Options == nil || res.Options.Version == nil {
		return false, nil
	}
	return semver.FullOrPrefixEqual(*res.Options.Version, c.BaseVersion, c.HeightPos), nil
}

// contributes implements spec.md §4.6 condition 2: the tree-diff against at
// least one parent (or the empty tree for a root commit) contains a changed
// path the filter set admits.
func (c *Calculator) contributes(commit gitcontext.CommitID) (bool, error) {
	parents, err := c.Context.ParentsOf(commit)
	if err != nil {
		return false, err
	}
	if len(parents) == 0 {
		changed, err := c.Context.TreeDiffPaths(nil, commit, nil)
		if err != nil {
			return false, err
		}
		return c.Filters.PassesAny(normalizePaths(changed)), nil
	}
	for _, p := range parents {
		parent := p
		changed, err := c.Context.TreeDiffPaths(&parent, commit, nil)
		if err != nil {
			return false, err
		}
		if c.Filters.PassesAny(normalizePaths(changed)) {
			return true, nil
		}
	}
	return false, nil
}

// normalizePaths canonicalizes git's forward-slash diff paths to the OS
// separator FilterPath.RepoRelativePath was built with.
func normalizePaths(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.FromSlash(p)
	}
	return out
}
