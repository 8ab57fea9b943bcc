package pathfilter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/options"
)

// RepoConfig carries the subset of repository configuration the path-filter
// grammar consults: case sensitivity, derived from core.ignorecase when the
// Git Context can report it.
type RepoConfig struct {
	// IgnoreCase is nil when the underlying repository configuration does
	// not expose core.ignorecase; in that case filters are case-sensitive.
	IgnoreCase *bool
}

func (r RepoConfig) caseSensitive() bool {
	if r.IgnoreCase == nil {
		return true
	}
	return !*r.IgnoreCase
}

// FromOptions builds the FilterSet for a configuration file located in
// relativeToFileDir (an absolute path), given the repo working-tree root
// repoRoot. Each spec in opts.PathFilters is resolved per spec.md §3's
// grammar.
func FromOptions(opts *options.VersionOptions, relativeToFileDir, repoRoot string, repoConfig RepoConfig) (FilterSet, error) {
	if opts == nil || opts.PathFilters == nil {
		return nil, nil
	}

	caseSensitive := repoConfig.caseSensitive()
	out := make(FilterSet, 0, len(*opts.PathFilters))
	for _, spec := range *opts.PathFilters {
		f, err := Parse(spec, relativeToFileDir, repoRoot, caseSensitive)
		if err != nil {
			return nil, fmt.Errorf("pathFilters entry %q: %w", spec, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// Parse parses a single pathFilters entry per spec.md §3's grammar:
//
//	":/abs/path"   repo-root-absolute, include
//	":^rel"/":!rel" exclude, relative to the filter file's directory
//	":rel"         include, repo-root-relative (git pathspec top convention)
//	"rel"          include, relative to the filter file's directory
//
// `.` and `..` segments resolve against the appropriate base directory; the
// result is canonicalized to the OS separator and trimmed of any trailing
// separator.
func Parse(spec, relativeToFileDir, repoRoot string, caseSensitive bool) (FilterPath, error) {
	if spec == "" {
		return FilterPath{}, fmt.Errorf("empty path filter spec")
	}

	isExclude := false
	base := relativeToFileDir
	rel := spec

	if strings.HasPrefix(spec, ":") {
		rest := spec[1:]
		switch {
		case strings.HasPrefix(rest, "/"):
			base = repoRoot
			rel = strings.TrimPrefix(rest, "/")
		case strings.HasPrefix(rest, "^") || strings.HasPrefix(rest, "!"):
			isExclude = true
			base = relativeToFileDir
			rel = rest[1:]
		default:
			base = repoRoot
			rel = rest
		}
	}

	repoRelative, err := resolveRepoRelative(base, repoRoot, rel)
	if err != nil {
		return FilterPath{}, err
	}

	return FilterPath{
		RepoRelativePath: repoRelative,
		IsExclude:        isExclude,
		CaseSensitive:    caseSensitive,
	}, nil
}

// resolveRepoRelative resolves rel (which may contain `.`/`..` segments and
// use `/` separators regardless of OS) against base, then re-expresses the
// result relative to repoRoot, canonicalized to the OS separator with any
// trailing separator trimmed.
func resolveRepoRelative(base, repoRoot, rel string) (string, error) {
	abs := filepath.Clean(filepath.Join(base, filepath.FromSlash(rel)))

	repoRelative, err := filepath.Rel(repoRoot, abs)
	if err != nil {
		return "", fmt.Errorf("resolving path filter outside repository root: %w", err)
	}
	if repoRelative == "." {
		repoRelative = ""
	}
	if strings.HasPrefix(repoRelative, "..") {
		return "", fmt.Errorf("path filter resolves outside repository root: %s", repoRelative)
	}

	repoRelative = strings.TrimSuffix(repoRelative, string(filepath.Separator))
	return repoRelative, nil
}
