// Package versionoracle provides a public Go API for computing a
// git-height-based monotonic version from a repository, locally or via the
// GitHub API, and for reversing a previously computed version back to the
// commit it came from.
//
// Basic usage:
//
//	result, err := versionoracle.Compute(versionoracle.LocalOptions{
//	    Path: "/path/to/repo",
//	})
//	fmt.Println(result.Variables["SemVer2"]) // "1.2.1"
//
//	result, err := versionoracle.ComputeRemote(versionoracle.RemoteOptions{
//	    Owner: "myorg",
//	    Repo:  "myrepo",
//	    Token: os.Getenv("GITHUB_TOKEN"),
//	})
//	fmt.Println(result.Variables["SemVer2"])
package versionoracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/gitcontext"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/logging"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/oracle"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/output"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/pathfilter"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/remoteconfig"
)

// LocalOptions configures a version computation against a local git
// repository.
type LocalOptions struct {
	// Path to the git repository. Defaults to "." if empty.
	Path string

	// Commit overrides HEAD with a specific commit-ish. Empty means HEAD.
	Commit string

	// Explain populates Result.Explanation with a human-readable trace.
	Explain bool
}

// RemoteOptions configures a version computation that reads its
// configuration from a GitHub-hosted repository instead of a local working
// tree. A local clone is still required to walk commit history: Path must
// point at one.
type RemoteOptions struct {
	Path   string
	Commit string

	Owner string
	Repo  string
	Ref   string

	Token      string
	AppID      int64
	AppKeyPath string
	BaseURL    string

	Explain bool
}

// Result holds the computed version's output variables and, when
// requested, a human-readable explanation.
type Result struct {
	// Variables contains every output variable keyed by name: SemVer2,
	// SemVer1, AssemblyVersion, AssemblyInformationalVersion,
	// NuGetPackageVersion, ChocolateyPackageVersion, NPMPackageVersion,
	// CommitIdShort, PublicRelease, and CloudBuildNumber when enabled.
	Variables map[string]string

	// Explanation is the formatted --explain trace, non-empty only when
	// the request asked for one.
	Explanation string
}

// DecodeOptions configures a reverse lookup: given a previously computed
// numeric version, find the commit it was computed at.
type DecodeOptions struct {
	Path    string
	Version string
}

// ErrAmbiguousVersionMatch is returned when a decoded version matches more
// than one reachable commit.
var ErrAmbiguousVersionMatch = oracle.ErrAmbiguousVersionMatch

// Compute computes a version from a local git repository.
func Compute(opts LocalOptions) (*Result, error) {
	path := opts.Path
	if path == "" {
		path = "."
	}

	ctx, err := gitcontext.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	var commit *gitcontext.CommitID
	if opts.Commit != "" {
		if !ctx.SelectCommit(opts.Commit) {
			return nil, fmt.Errorf("resolving commit %q", opts.Commit)
		}
		id, _ := ctx.SelectedCommitID()
		commit = &id
	}

	o, err := oracle.Compute(context.Background(), oracle.Request{
		Context:         ctx,
		WorkingTreeRoot: ctx.WorkingTreePath(),
		Commit:          commit,
		CommittedConfig: committedSourceFor(ctx, commit),
		WorkingConfig:   gitcontext.WorkingTreeFileSource{Root: ctx.WorkingTreePath()},
		Logger:          logging.Discard(),
	})
	if err != nil {
		return nil, err
	}

	return resultFrom(o, opts.Explain)
}

// ComputeRemote computes a version using configuration fetched from a
// GitHub repository rather than the local working tree.
func ComputeRemote(opts RemoteOptions) (*Result, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, errors.New("owner and repo are required")
	}

	path := opts.Path
	if path == "" {
		path = "."
	}

	ctx, err := gitcontext.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	var commit *gitcontext.CommitID
	if opts.Commit != "" {
		if !ctx.SelectCommit(opts.Commit) {
			return nil, fmt.Errorf("resolving commit %q", opts.Commit)
		}
		id, _ := ctx.SelectedCommitID()
		commit = &id
	}

	client, err := remoteconfig.NewClient(remoteconfig.ClientConfig{
		Token:      opts.Token,
		AppID:      opts.AppID,
		AppKeyPath: opts.AppKeyPath,
		BaseURL:    opts.BaseURL,
		Owner:      opts.Owner,
		Repo:       opts.Repo,
		Ref:        opts.Ref,
		Root:       ctx.WorkingTreePath(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating remote config client: %w", err)
	}

	o, err := oracle.Compute(context.Background(), oracle.Request{
		Context:         ctx,
		WorkingTreeRoot: ctx.WorkingTreePath(),
		Commit:          commit,
		CommittedConfig: client,
		Logger:          logging.Discard(),
	})
	if err != nil {
		return nil, err
	}

	return resultFrom(o, opts.Explain)
}

// Decode finds the commit, reachable from any of the repository's refs,
// whose computed version matches opts.Version (configuration is read at
// HEAD), returning ("", false, nil) when no commit matches
// and ErrAmbiguousVersionMatch when more than one does.
func Decode(opts DecodeOptions) (string, bool, error) {
	path := opts.Path
	if path == "" {
		path = "."
	}

	ctx, err := gitcontext.Open(path)
	if err != nil {
		return "", false, fmt.Errorf("opening repository: %w", err)
	}

	v, err := parseNumericVersion(opts.Version)
	if err != nil {
		return "", false, err
	}

	head, _ := ctx.HeadCommitID()
	commit, found, err := oracle.Decode(oracle.DecodeRequest{
		Context:         ctx,
		WorkingTreeRoot: ctx.WorkingTreePath(),
		Version:         v,
		CommittedConfig: gitcontext.CommitFileSource{Context: ctx, Commit: head},
		RepoConfig:      pathfilter.RepoConfig{},
	})
	if err != nil {
		return "", false, err
	}
	return string(commit), found, nil
}

func committedSourceFor(ctx *gitcontext.GoGit, commit *gitcontext.CommitID) gitcontext.CommitFileSource {
	if commit != nil {
		return gitcontext.CommitFileSource{Context: ctx, Commit: *commit}
	}
	id, _ := ctx.HeadCommitID()
	return gitcontext.CommitFileSource{Context: ctx, Commit: id}
}

func resultFrom(o *oracle.Oracle, explain bool) (*Result, error) {
	r := &Result{Variables: output.GetVariables(o)}
	if explain {
		r.Explanation = formatExplanation(o)
	}
	return r, nil
}
