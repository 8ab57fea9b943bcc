// Package resolver implements the Configuration Resolver (spec.md §4.4): the
// directory-ancestor climb that locates and merges version.json/version.txt
// files between a starting directory and the working-tree root.
package resolver

import (
	"errors"
	"path/filepath"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/options"
)

var (
	// ErrMissingParentConfiguration is returned when an inherit=true file
	// reaches the repository root with no parent configuration file.
	ErrMissingParentConfiguration = errors.New("inherit=true reached the repository root with no parent configuration file")
	// ErrVersionNotSpecified is returned when Requirements.VersionSpecified
	// is set and the resolved configuration has no version.
	ErrVersionNotSpecified = errors.New("resolved configuration has no version")
	// ErrInvalidRequirements is returned when NonMergedResult is requested
	// without AcceptInheritingFile.
	ErrInvalidRequirements = errors.New("NonMergedResult requires AcceptInheritingFile")
)

// ConfigFileFormat records which on-disk form produced a VersionOptions.
type ConfigFileFormat int

const (
	FormatUnknown ConfigFileFormat = iota
	FormatJSON
	FormatText
)

func (f ConfigFileFormat) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

// VersionFileLocations records, during a resolution walk, the directory of
// the first non-inheriting file seen and the first file with an explicit
// version, both starting the search at the leaf (spec.md §3).
type VersionFileLocations struct {
	NonInheritingVersionDirectory     string
	VersionSpecifyingVersionDirectory string
}

// Requirements are the flags from spec.md §4.4 governing how far the walk
// climbs and whether inheriting files are merged.
type Requirements struct {
	VersionSpecified     bool
	AcceptInheritingFile bool
	NonMergedResult      bool
}

// FileSource abstracts reading a configuration file out of a directory,
// whether that directory is on the working tree or a commit's tree. Name is
// always options.JSONFileName or options.TextFileName. How case is matched
// depends on the implementation: gitcontext.WorkingTreeFileSource ignores
// case, gitcontext.CommitFileSource tries the name as given, lower case and
// upper case, and remoteconfig.Client requests the exact name.
type FileSource interface {
	ReadVersionFile(dir, name string) (data []byte, ok bool, err error)
}

// Result is the output of a successful resolution.
type Result struct {
	Options   *options.VersionOptions
	Format    ConfigFileFormat
	Locations VersionFileLocations
}

// Resolve climbs from d up to and including root, looking for version.txt
// then version.json at each level, per spec.md §4.4. A nil Result with a
// nil error means no configuration file exists anywhere in range (the
// missing-file case, recovered locally per spec.md §7): callers should
// treat that as the zero-version default.
func Resolve(d, root string, req Requirements, fs FileSource) (*Result, error) {
	if req.NonMergedResult && !req.AcceptInheritingFile {
		return nil, ErrInvalidRequirements
	}

	res, err := resolveAt(filepath.Clean(d), filepath.Clean(root), req, fs, VersionFileLocations{})
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	if req.VersionSpecified && (res.Options == nil || res.Options.Version == nil) {
		return nil, ErrVersionNotSpecified
	}
	return res, nil
}

func resolveAt(dir, root string, req Requirements, fs FileSource, locs VersionFileLocations) (*Result, error) {
	textData, textOk, err := fs.ReadVersionFile(dir, options.TextFileName)
	if err != nil {
		return nil, err
	}
	if textOk {
		opts, err := options.LoadTextBytes(textData)
		if err != nil {
			return nil, err
		}
		locs = recordLocations(locs, dir, true, opts.Version != nil)
		return &Result{Options: opts, Format: FormatText, Locations: locs}, nil
	}

	jsonData, jsonOk, err := fs.ReadVersionFile(dir, options.JSONFileName)
	if err != nil {
		return nil, err
	}
	if jsonOk {
		return resolveJSON(dir, root, req, fs, locs, jsonData)
	}

	parent, ok := parentWithinRoot(dir, root)
	if !ok {
		return nil, nil
	}
	return resolveAt(parent, root, req, fs, locs)
}

func resolveJSON(dir, root string, req Requirements, fs FileSource, locs VersionFileLocations, jsonData []byte) (*Result, error) {
	opts, err := options.LoadJSONBytes(jsonData)
	if err != nil {
		return nil, err
	}

	inherit := opts.Inherit != nil && *opts.Inherit
	locs = recordLocations(locs, dir, !inherit, opts.Version != nil)

	if !inherit || req.AcceptInheritingFile {
		return &Result{Options: opts, Format: FormatJSON, Locations: locs}, nil
	}

	parent, ok := parentWithinRoot(dir, root)
	if !ok {
		return nil, ErrMissingParentConfiguration
	}

	parentResult, err := resolveAt(parent, root, req, fs, locs)
	if err != nil {
		return nil, err
	}
	if parentResult == nil {
		return nil, ErrMissingParentConfiguration
	}

	merged := options.Overlay(parentResult.Options, opts)
	if err := options.ApplyPrereleaseOverlay(merged, opts.Prerelease); err != nil {
		return nil, err
	}
	merged.Prerelease = nil

	return &Result{Options: merged, Format: parentResult.Format, Locations: parentResult.Locations}, nil
}

func recordLocations(locs VersionFileLocations, dir string, nonInheriting, versionSet bool) VersionFileLocations {
	if nonInheriting && locs.NonInheritingVersionDirectory == "" {
		locs.NonInheritingVersionDirectory = dir
	}
	if versionSet && locs.VersionSpecifyingVersionDirectory == "" {
		locs.VersionSpecifyingVersionDirectory = dir
	}
	return locs
}

// parentWithinRoot returns dir's parent directory, unless dir is already
// root (the walk never steps above root).
func parentWithinRoot(dir, root string) (string, bool) {
	if dir == root {
		return "", false
	}
	return filepath.Dir(dir), true
}
