// Package pathfilter implements the include/exclude path-filter grammar
// (spec.md §3, §4.3): an ordered list of FilterPath specs, each either an
// include or an exclude, matched against repo-relative changed paths during
// height computation.
package pathfilter

import (
	"os"
	"strings"
)

// FilterPath is one parsed pathFilters entry.
type FilterPath struct {
	RepoRelativePath string
	IsExclude        bool
	CaseSensitive    bool
}

// matches reports whether path is covered by f: either path equals
// f.RepoRelativePath or path begins with f.RepoRelativePath followed by a
// path separator. Comparison is case-folded when f.CaseSensitive is false.
func (f FilterPath) matches(path string) bool {
	tp, rp := path, f.RepoRelativePath
	if !f.CaseSensitive {
		tp = strings.ToLower(tp)
		rp = strings.ToLower(rp)
	}
	if rp == "" {
		return true // repo root matches everything
	}
	return tp == rp || strings.HasPrefix(tp, rp+string(os.PathSeparator))
}

// Excludes reports whether f excludes path: always false for an include
// filter, and for an exclude filter true iff f.matches(path).
func (f FilterPath) Excludes(path string) bool {
	return f.IsExclude && f.matches(path)
}

// FilterSet is an ordered list of FilterPath entries, typically built by
// FromOptions from a VersionOptions.PathFilters list.
type FilterSet []FilterPath

// hasEffectiveInclude reports whether fs carries an include restriction.
// Per spec.md §4.3, the restriction degenerates (every path is considered
// included) when no include filter exists, or some include filter is
// exactly the repo root.
func (fs FilterSet) hasEffectiveInclude() bool {
	found := false
	for _, f := range fs {
		if f.IsExclude {
			continue
		}
		found = true
		if f.RepoRelativePath == "" {
			return false
		}
	}
	return found
}

// Includes reports whether path is matched by some include filter, or the
// include restriction is degenerate (spec.md §4.3).
func (fs FilterSet) Includes(path string) bool {
	if !fs.hasEffectiveInclude() {
		return true
	}
	for _, f := range fs {
		if !f.IsExclude && f.matches(path) {
			return true
		}
	}
	return false
}

// IsExcluded reports whether path is matched by any exclude filter in fs.
func (fs FilterSet) IsExcluded(path string) bool {
	for _, f := range fs {
		if f.Excludes(path) {
			return true
		}
	}
	return false
}

// Passes reports whether path counts toward a relevant diff: included (or
// the include restriction is degenerate) and not excluded.
func (fs FilterSet) Passes(path string) bool {
	return fs.Includes(path) && !fs.IsExcluded(path)
}

// PassesAny reports whether at least one of paths passes fs. An empty
// changed-path set never passes.
func (fs FilterSet) PassesAny(paths []string) bool {
	for _, p := range paths {
		if fs.Passes(p) {
			return true
		}
	}
	return false
}
