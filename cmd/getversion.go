package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/gitcontext"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/logging"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/oracle"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/output"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/pathfilter"
)

func getVersionRunE(_ *cobra.Command, _ []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}

	var commit *gitcontext.CommitID
	if repo.Commit != "" {
		commit = &repo.Commit
	}

	req := oracle.Request{
		Context:         repo.Context,
		WorkingTreeRoot: repo.Context.WorkingTreePath(),
		CommittedConfig: repo.CommittedConfig,
		WorkingConfig:   repo.WorkingConfig,
		Commit:          commit,
		RepoConfig:      pathfilter.RepoConfig{},
		Logger:          logging.New(logging.Verbosity(flagVerbosity)),
	}

	o, err := oracle.Compute(context.Background(), req)
	if err != nil {
		return diagnose(err)
	}

	if flagShowConfig {
		return showConfig(o)
	}

	if flagExplain {
		if err := output.WriteExplanation(os.Stderr, o); err != nil {
			return fmt.Errorf("writing explanation: %w", err)
		}
	}

	return writeOutput(output.GetVariables(o))
}

// diagnose maps an oracle.Compute failure onto the user-facing diagnostics
// spec.md §7 names, falling back to the raw error for anything unrecognized.
func diagnose(err error) error {
	switch {
	case errors.Is(err, oracle.ErrShallowClone):
		return fmt.Errorf("repository is a shallow clone; fetch full history to compute height: %w", err)
	case errors.Is(err, oracle.ErrHeightOverflow):
		return fmt.Errorf("computed height overflows its numeric slot; set versionHeightOffset or reset the base version: %w", err)
	case errors.Is(err, oracle.ErrMissingParentConfiguration):
		return fmt.Errorf("a configuration file with inherit=true reached the repository root with no parent to inherit from: %w", err)
	case errors.Is(err, oracle.ErrIllegalState):
		return fmt.Errorf("resolved configuration is internally inconsistent: %w", err)
	default:
		return err
	}
}

// showConfig prints the resolved committed configuration as JSON.
func showConfig(o *oracle.Oracle) error {
	data, err := json.MarshalIndent(o.CommittedOptions, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// writeOutput writes the version variables in the requested format.
func writeOutput(vars map[string]string) error {
	w := os.Stdout

	if flagShowVariable != "" {
		return output.WriteVariable(w, vars, flagShowVariable)
	}

	switch flagOutput {
	case "json":
		return output.WriteJSON(w, vars)
	case "":
		return output.WriteAll(w, vars)
	default:
		return fmt.Errorf("unknown output format %q", flagOutput)
	}
}
