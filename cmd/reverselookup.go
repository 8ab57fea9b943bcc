package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/identity"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/oracle"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/pathfilter"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/semver"
)

var reverseLookupCmd = &cobra.Command{
	Use:   "reverse-lookup <version>",
	Short: "Find the commit an encoded version was computed at",
	Long:  "reverse-lookup walks every commit reachable from any of the repository's refs looking for the one whose computed version matches the given numeric version, failing if more than one commit matches.",
	Args:  cobra.ExactArgs(1),
	RunE:  reverseLookupRunE,
}

func reverseLookupRunE(_ *cobra.Command, args []string) error {
	v, err := parseNumericVersion(args[0])
	if err != nil {
		return err
	}

	repo, err := openRepo()
	if err != nil {
		return err
	}

	commit, found, err := oracle.Decode(oracle.DecodeRequest{
		Context:         repo.Context,
		WorkingTreeRoot: repo.Context.WorkingTreePath(),
		Version:         v,
		CommittedConfig: repo.CommittedConfig,
		RepoConfig:      pathfilter.RepoConfig{},
	})
	if err != nil {
		if errors.Is(err, oracle.ErrAmbiguousVersionMatch) {
			return fmt.Errorf("version %s matches more than one reachable commit: %w", args[0], err)
		}
		return err
	}
	if !found {
		return fmt.Errorf("no reachable commit matches version %s", args[0])
	}

	fmt.Println(commit)
	return nil
}

// parseNumericVersion parses a 2-4 component numeric version string into
// the identity.NumericVersion form oracle.Decode compares against, treating
// an absent build/revision as 0 rather than semver.Unset: the encoded form
// this command searches for always carries concrete height/commit-id
// components, never an unwritten one.
func parseNumericVersion(s string) (identity.NumericVersion, error) {
	v, err := semver.Parse(s)
	if err != nil {
		return identity.NumericVersion{}, fmt.Errorf("parsing version %q: %w", s, err)
	}

	build := v.Build
	if build == semver.Unset {
		build = 0
	}
	revision := v.Revision
	if revision == semver.Unset {
		revision = 0
	}

	return identity.NumericVersion{
		Major:    v.Major,
		Minor:    v.Minor,
		Build:    build,
		Revision: revision,
	}, nil
}
