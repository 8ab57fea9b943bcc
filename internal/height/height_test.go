package height_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/gitcontext"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/height"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/pathfilter"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/semver"
)

func mustParse(t *testing.T, s string) semver.SemanticVersion {
	t.Helper()
	v, err := semver.Parse(s)
	require.NoError(t, err)
	return v
}

func mustFilters(excludeRel string) (pathfilter.FilterSet, error) {
	f, err := pathfilter.Parse(":!"+excludeRel, "/repo", "/repo", true)
	if err != nil {
		return nil, err
	}
	return pathfilter.FilterSet{f}, nil
}

func TestHeight_LinearThreeCommits(t *testing.T) {
	f := gitcontext.NewFake("/repo")
	f.AddCommit("a000", gitcontext.FakeCommit{Tree: map[string][]byte{"version.json": []byte(`{"version":"1.2"}`)}})
	f.AddCommit("b000", gitcontext.FakeCommit{Parents: []gitcontext.CommitID{"a000"}, Tree: map[string][]byte{
		"version.json": []byte(`{"version":"1.2"}`),
		"src/main.go":  []byte("v1"),
	}})
	f.AddCommit("c000", gitcontext.FakeCommit{Parents: []gitcontext.CommitID{"b000"}, Tree: map[string][]byte{
		"version.json": []byte(`{"version":"1.2"}`),
		"src/main.go":  []byte("v2"),
	}})
	f.Refs = []gitcontext.CommitID{"c000"}

	base := mustParse(t, "1.2")
	calc := height.NewCalculator(f, "/repo", "/repo", base, nil)

	h, err := calc.Height(context.Background(), "c000", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), h)
}

func TestHeight_ZeroOnMinorBump(t *testing.T) {
	f := gitcontext.NewFake("/repo")
	f.AddCommit("a000", gitcontext.FakeCommit{Tree: map[string][]byte{"version.json": []byte(`{"version":"1.2"}`)}})
	f.AddCommit("b000", gitcontext.FakeCommit{Parents: []gitcontext.CommitID{"a000"}, Tree: map[string][]byte{
		"version.json": []byte(`{"version":"1.3"}`),
		"src/main.go":  []byte("v1"),
	}})
	f.Refs = []gitcontext.CommitID{"b000"}

	base := mustParse(t, "1.3")
	calc := height.NewCalculator(f, "/repo", "/repo", base, nil)

	h, err := calc.Height(context.Background(), "b000", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), h)
}

func TestHeight_PathFilterExcludesDocsOnly(t *testing.T) {
	f := gitcontext.NewFake("/repo")
	f.AddCommit("a000", gitcontext.FakeCommit{Tree: map[string][]byte{"version.json": []byte(`{"version":"2.0"}`)}})
	f.AddCommit("b000", gitcontext.FakeCommit{Parents: []gitcontext.CommitID{"a000"}, Tree: map[string][]byte{
		"version.json": []byte(`{"version":"2.0"}`),
		"docs/readme":  []byte("hello"),
	}})
	f.Refs = []gitcontext.CommitID{"b000"}

	base := mustParse(t, "2.0")
	fs, err := mustFilters("docs")
	require.NoError(t, err)
	calc := height.NewCalculator(f, "/repo", "/repo", base, fs)

	h, err := calc.Height(context.Background(), "b000", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), h, "b000 touches only the excluded docs path, so height does not advance past its parent's")
}

func TestHeight_MergeCommitTakesMaxOverParents(t *testing.T) {
	f := gitcontext.NewFake("/repo")
	f.AddCommit("root", gitcontext.FakeCommit{Tree: map[string][]byte{"version.json": []byte(`{"version":"1.0"}`)}})
	f.AddCommit("left1", gitcontext.FakeCommit{Parents: []gitcontext.CommitID{"root"}, Tree: map[string][]byte{
		"version.json": []byte(`{"version":"1.0"}`), "left.txt": []byte("1"),
	}})
	f.AddCommit("left2", gitcontext.FakeCommit{Parents: []gitcontext.CommitID{"left1"}, Tree: map[string][]byte{
		"version.json": []byte(`{"version":"1.0"}`), "left.txt": []byte("2"),
	}})
	f.AddCommit("right1", gitcontext.FakeCommit{Parents: []gitcontext.CommitID{"root"}, Tree: map[string][]byte{
		"version.json": []byte(`{"version":"1.0"}`), "right.txt": []byte("1"),
	}})
	f.AddCommit("merge", gitcontext.FakeCommit{Parents: []gitcontext.CommitID{"left2", "right1"}, Tree: map[string][]byte{
		"version.json": []byte(`{"version":"1.0"}`), "left.txt": []byte("2"), "right.txt": []byte("1"),
	}})
	f.Refs = []gitcontext.CommitID{"merge"}

	base := mustParse(t, "1.0")
	calc := height.NewCalculator(f, "/repo", "/repo", base, nil)

	h, err := calc.Height(context.Background(), "merge", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), h)
}

func TestHeight_WorkingTreeOverrideForcesZero(t *testing.T) {
	f := gitcontext.NewFake("/repo")
	f.AddCommit("a000", gitcontext.FakeCommit{Tree: map[string][]byte{"version.json": []byte(`{"version":"1.0"}`)}})
	f.Refs = []gitcontext.CommitID{"a000"}

	base := mustParse(t, "1.0")
	calc := height.NewCalculator(f, "/repo", "/repo", base, nil)

	working := mustParse(t, "1.1")
	h, err := calc.Height(context.Background(), "a000", &working)
	require.NoError(t, err)
	assert.Equal(t, int64(0), h)
}

func TestHeight_ShallowCloneSurfaces(t *testing.T) {
	f := gitcontext.NewFake("/repo")
	f.AddCommit("a000", gitcontext.FakeCommit{Tree: map[string][]byte{"version.json": []byte(`{"version":"1.0"}`)}})
	f.AddCommit("b000", gitcontext.FakeCommit{Parents: []gitcontext.CommitID{"a000"}, Tree: map[string][]byte{
		"version.json": []byte(`{"version":"1.0"}`), "x": []byte("1"),
	}})
	f.Shallow["a000"] = true
	f.Refs = []gitcontext.CommitID{"b000"}

	base := mustParse(t, "1.0")
	calc := height.NewCalculator(f, "/repo", "/repo", base, nil)

	_, err := calc.Height(context.Background(), "b000", nil)
	assert.ErrorIs(t, err, gitcontext.ErrShallowClone)
}
