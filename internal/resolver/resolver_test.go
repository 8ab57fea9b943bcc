package resolver_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/resolver"
)

// fakeFileSource is a directory->filename->contents map, case-insensitive on
// the file name the way a real filesystem lookup would be.
type fakeFileSource map[string]map[string][]byte

func (f fakeFileSource) ReadVersionFile(dir, name string) ([]byte, bool, error) {
	files, ok := f[filepath.Clean(dir)]
	if !ok {
		return nil, false, nil
	}
	for fname, data := range files {
		if strings.EqualFold(fname, name) {
			return data, true, nil
		}
	}
	return nil, false, nil
}

func TestResolve_NonInheritingJSON(t *testing.T) {
	fs := fakeFileSource{
		"/repo": {"version.json": []byte(`{"version":"1.2"}`)},
	}
	res, err := resolver.Resolve("/repo", "/repo", resolver.Requirements{}, fs)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, resolver.FormatJSON, res.Format)
	assert.Equal(t, int64(1), res.Options.Version.Major)
	assert.Equal(t, "/repo", res.Locations.NonInheritingVersionDirectory)
	assert.Equal(t, "/repo", res.Locations.VersionSpecifyingVersionDirectory)
}

func TestResolve_TextFile(t *testing.T) {
	fs := fakeFileSource{
		"/repo": {"version.txt": []byte("1.2\nbeta\n")},
	}
	res, err := resolver.Resolve("/repo", "/repo", resolver.Requirements{}, fs)
	require.NoError(t, err)
	assert.Equal(t, resolver.FormatText, res.Format)
	assert.Equal(t, "beta", res.Options.Version.Prerelease)
}

func TestResolve_TextBeatsJSONInSameDirectory(t *testing.T) {
	fs := fakeFileSource{
		"/repo": {
			"version.txt":  []byte("1.2\n"),
			"version.json": []byte(`{"version":"9.9"}`),
		},
	}
	res, err := resolver.Resolve("/repo", "/repo", resolver.Requirements{}, fs)
	require.NoError(t, err)
	assert.Equal(t, resolver.FormatText, res.Format)
	assert.Equal(t, int64(1), res.Options.Version.Major)
}

func TestResolve_ClimbsToParentOnInherit(t *testing.T) {
	fs := fakeFileSource{
		"/repo":     {"version.json": []byte(`{"version":"1.0-alpha"}`)},
		"/repo/sub": {"version.json": []byte(`{"inherit":true}`)},
	}
	res, err := resolver.Resolve("/repo/sub", "/repo", resolver.Requirements{}, fs)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Options.Version.Major)
	assert.Equal(t, "alpha", res.Options.Version.Prerelease)
	assert.Equal(t, "/repo", res.Locations.NonInheritingVersionDirectory)
}

func TestResolve_PrereleaseSuppressionOnInherit(t *testing.T) {
	fs := fakeFileSource{
		"/repo":     {"version.json": []byte(`{"version":"1.0-alpha"}`)},
		"/repo/sub": {"version.json": []byte(`{"inherit":true,"prerelease":""}`)},
	}
	res, err := resolver.Resolve("/repo/sub", "/repo", resolver.Requirements{}, fs)
	require.NoError(t, err)
	assert.Empty(t, res.Options.Version.Prerelease)
}

func TestResolve_PrereleaseConflictErrors(t *testing.T) {
	fs := fakeFileSource{
		"/repo":     {"version.json": []byte(`{"version":"1.0-alpha"}`)},
		"/repo/sub": {"version.json": []byte(`{"inherit":true,"prerelease":"beta"}`)},
	}
	_, err := resolver.Resolve("/repo/sub", "/repo", resolver.Requirements{}, fs)
	assert.Error(t, err)
}

func TestResolve_MissingParentConfiguration(t *testing.T) {
	fs := fakeFileSource{
		"/repo/sub": {"version.json": []byte(`{"inherit":true}`)},
	}
	_, err := resolver.Resolve("/repo/sub", "/repo", resolver.Requirements{}, fs)
	assert.ErrorIs(t, err, resolver.ErrMissingParentConfiguration)
}

func TestResolve_NoFilesAnywhereIsRecoveredLocally(t *testing.T) {
	fs := fakeFileSource{}
	res, err := resolver.Resolve("/repo/a/b", "/repo", resolver.Requirements{}, fs)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestResolve_VersionSpecifiedRequirement(t *testing.T) {
	fs := fakeFileSource{
		"/repo": {"version.json": []byte(`{"inherit":false}`)},
	}
	_, err := resolver.Resolve("/repo", "/repo", resolver.Requirements{VersionSpecified: true}, fs)
	assert.ErrorIs(t, err, resolver.ErrVersionNotSpecified)
}

func TestResolve_AcceptInheritingFileStopsClimb(t *testing.T) {
	fs := fakeFileSource{
		"/repo":     {"version.json": []byte(`{"version":"1.0-alpha"}`)},
		"/repo/sub": {"version.json": []byte(`{"inherit":true}`)},
	}
	res, err := resolver.Resolve("/repo/sub", "/repo", resolver.Requirements{AcceptInheritingFile: true}, fs)
	require.NoError(t, err)
	assert.Nil(t, res.Options.Version)
	require.NotNil(t, res.Options.Inherit)
	assert.True(t, *res.Options.Inherit)
}

func TestResolve_NonMergedResultRequiresAcceptInheritingFile(t *testing.T) {
	fs := fakeFileSource{}
	_, err := resolver.Resolve("/repo", "/repo", resolver.Requirements{NonMergedResult: true}, fs)
	assert.ErrorIs(t, err, resolver.ErrInvalidRequirements)
}

func TestResolve_ClimbsPastEmptyIntermediateDirectories(t *testing.T) {
	fs := fakeFileSource{
		"/repo": {"version.json": []byte(`{"version":"2.0"}`)},
	}
	res, err := resolver.Resolve("/repo/a/b/c", "/repo", resolver.Requirements{}, fs)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Options.Version.Major)
}
