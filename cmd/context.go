package cmd

import (
	"fmt"
	"strings"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/gitcontext"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/remoteconfig"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/resolver"
)

// openedRepo bundles the local git context with the file sources the
// resolver should read committed and working-tree configuration from.
type openedRepo struct {
	Context gitcontext.Context
	Commit  gitcontext.CommitID

	CommittedConfig resolver.FileSource
	WorkingConfig   resolver.FileSource
}

// openRepo opens the repository at flagPath, resolves the target commit,
// and wires up the CommittedConfig/WorkingConfig file sources --
// --remote-config substitutes a GitHub-hosted source for CommittedConfig
// and drops the working-tree override entirely, since a remote ref has no
// local working tree to diverge from.
func openRepo() (*openedRepo, error) {
	ctx, err := gitcontext.Open(flagPath)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	var commit gitcontext.CommitID
	if flagCommit != "" {
		if !ctx.SelectCommit(flagCommit) {
			return nil, fmt.Errorf("resolving commit %q", flagCommit)
		}
		commit, _ = ctx.SelectedCommitID()
	} else if id, ok := ctx.HeadCommitID(); ok {
		commit = id
	}

	if flagRemoteConfig != "" {
		owner, repo, ref, err := parseRemoteConfig(flagRemoteConfig)
		if err != nil {
			return nil, err
		}
		client, err := remoteconfig.NewClient(remoteconfig.ClientConfig{
			Token:      flagToken,
			AppID:      flagAppID,
			AppKeyPath: flagAppKeyPath,
			BaseURL:    flagGitHubURL,
			Owner:      owner,
			Repo:       repo,
			Ref:        ref,
			Root:       ctx.WorkingTreePath(),
		})
		if err != nil {
			return nil, fmt.Errorf("creating remote config client: %w", err)
		}
		return &openedRepo{
			Context:         ctx,
			Commit:          commit,
			CommittedConfig: client,
		}, nil
	}

	return &openedRepo{
		Context:         ctx,
		Commit:          commit,
		CommittedConfig: gitcontext.CommitFileSource{Context: ctx, Commit: commit},
		WorkingConfig:   gitcontext.WorkingTreeFileSource{Root: ctx.WorkingTreePath()},
	}, nil
}

// parseRemoteConfig splits "owner/repo", "owner/repo@ref" into its parts.
func parseRemoteConfig(s string) (owner, repo, ref string, err error) {
	spec, ref, _ := strings.Cut(s, "@")
	parts := strings.SplitN(spec, "/", 3)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", fmt.Errorf("invalid --remote-config %q, expected owner/repo[@ref]", s)
	}
	return parts[0], parts[1], ref, nil
}
