package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Global flags shared across commands.
var (
	flagPath         string
	flagCommit       string
	flagOutput       string
	flagShowVariable string
	flagShowConfig   bool
	flagExplain      bool
	flagVerbosity    string

	// Remote configuration flags (spec.md §6: CLI convenience only, never
	// touched by the Oracle core). --remote-config takes owner/repo[@ref].
	flagRemoteConfig string
	flagToken        string
	flagAppID        int64
	flagAppKeyPath   string
	flagGitHubURL    string
)

// rootCmd is the top-level command for versionheight.
var rootCmd = &cobra.Command{
	Use:   "versionheight",
	Short: "Monotonic versions from git height",
	Long:  "versionheight computes a monotonic semantic version from a repository's commit height, without depending on tags or branch naming conventions.",
	// Default action is get-version.
	RunE: getVersionRunE,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPath, "path", "p", ".", "path to the git repository")
	rootCmd.PersistentFlags().StringVarP(&flagCommit, "commit", "c", "", "target commit-ish (default: HEAD)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output format: json, or empty for key=value")
	rootCmd.PersistentFlags().StringVar(&flagShowVariable, "show-variable", "", "output a single variable (e.g. SemVer2, AssemblyVersion)")
	rootCmd.PersistentFlags().BoolVar(&flagShowConfig, "show-config", false, "display the resolved configuration and exit")
	rootCmd.PersistentFlags().BoolVar(&flagExplain, "explain", false, "show how the version was computed")
	rootCmd.PersistentFlags().StringVarP(&flagVerbosity, "verbosity", "v", "info", "log verbosity: quiet, info, debug")

	rootCmd.PersistentFlags().StringVar(&flagRemoteConfig, "remote-config", "", "read version.json/version.txt from owner/repo[@ref] via the GitHub API instead of the local working tree")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "GitHub token for --remote-config (or set GITHUB_TOKEN env var)")
	rootCmd.PersistentFlags().Int64Var(&flagAppID, "github-app-id", 0, "GitHub App ID for --remote-config (or set GH_APP_ID env var)")
	rootCmd.PersistentFlags().StringVar(&flagAppKeyPath, "github-app-key", "", "GitHub App private key PEM path for --remote-config (or set GH_APP_PRIVATE_KEY env var)")
	rootCmd.PersistentFlags().StringVar(&flagGitHubURL, "github-url", "", "GitHub API base URL for GitHub Enterprise (or set GITHUB_API_URL env var)")

	rootCmd.AddCommand(reverseLookupCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
