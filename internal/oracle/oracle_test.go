package oracle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/gitcontext"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/oracle"
)

func TestCompute_Basic(t *testing.T) {
	f := gitcontext.NewFake("/repo")
	f.AddCommit("aaaa0001", gitcontext.FakeCommit{Tree: map[string][]byte{
		"version.json": []byte(`{"version":"1.2"}`),
	}})
	f.Refs = []gitcontext.CommitID{"aaaa0001"}

	commit := gitcontext.CommitID("aaaa0001")
	req := oracle.Request{
		Context:         f,
		WorkingTreeRoot: "/repo",
		Directory:       "/repo",
		Commit:          &commit,
		CommittedConfig: gitcontext.CommitFileSource{Context: f, Commit: commit},
	}

	o, err := oracle.Compute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, oracle.Done, o.State)
	assert.Equal(t, int64(1), o.VersionHeight)
	assert.Equal(t, "aaaa0001", o.CommitIDShort)
	assert.Equal(t, "1.2.1", o.SemVer2)
	assert.Equal(t, "1.2.0.0", o.AssemblyVersion)
	assert.Equal(t, "1.2.1+aaaa0001", o.AssemblyInformationalVersion)
	assert.Equal(t, "1.2.1-gaaaa0001", o.NuGetPackageVersion)
	assert.Equal(t, "1.2.1-gaaaa0001", o.ChocolateyPackageVersion)
	assert.Equal(t, "1.2.1", o.NPMPackageVersion)
	assert.Equal(t, "", o.CloudBuildNumber)
	assert.False(t, o.PublicRelease)
	assert.Equal(t, int64(0xaaaa), o.EffectiveVersion.Revision)
	assert.Equal(t, int64(1), o.EffectiveVersion.Build)
}

func TestCompute_NoConfigurationAnywhereEmitsZeroVersion(t *testing.T) {
	f := gitcontext.NewFake("/repo")
	f.AddCommit("bbbb0002", gitcontext.FakeCommit{Tree: map[string][]byte{
		"src/main.go": []byte("package main"),
	}})
	f.Refs = []gitcontext.CommitID{"bbbb0002"}

	commit := gitcontext.CommitID("bbbb0002")
	req := oracle.Request{
		Context:         f,
		WorkingTreeRoot: "/repo",
		Directory:       "/repo",
		Commit:          &commit,
		CommittedConfig: gitcontext.CommitFileSource{Context: f, Commit: commit},
	}

	o, err := oracle.Compute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, oracle.Done, o.State)
	assert.Equal(t, int64(0), o.VersionHeight)
	assert.Equal(t, "0.0.0", o.SemVer2)
}

func TestCompute_ShallowCloneFailsExplicitly(t *testing.T) {
	f := gitcontext.NewFake("/repo")
	f.AddCommit("aaaa0001", gitcontext.FakeCommit{Tree: map[string][]byte{"version.json": []byte(`{"version":"1.0"}`)}})
	f.AddCommit("bbbb0002", gitcontext.FakeCommit{Parents: []gitcontext.CommitID{"aaaa0001"}, Tree: map[string][]byte{
		"version.json": []byte(`{"version":"1.0"}`), "x": []byte("1"),
	}})
	f.Shallow["aaaa0001"] = true
	f.Refs = []gitcontext.CommitID{"bbbb0002"}

	commit := gitcontext.CommitID("bbbb0002")
	req := oracle.Request{
		Context:         f,
		WorkingTreeRoot: "/repo",
		Directory:       "/repo",
		Commit:          &commit,
		CommittedConfig: gitcontext.CommitFileSource{Context: f, Commit: commit},
	}

	o, err := oracle.Compute(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, oracle.ErrShallowClone)
	require.NotNil(t, o)
	assert.Equal(t, oracle.FailShallow, o.State)
}

func TestCompute_HeightOverflowFailsExplicitly(t *testing.T) {
	f := gitcontext.NewFake("/repo")
	f.AddCommit("aaaa0001", gitcontext.FakeCommit{Tree: map[string][]byte{
		"version.json": []byte(`{"version":"1.2","versionHeightOffset":70000}`),
	}})
	f.Refs = []gitcontext.CommitID{"aaaa0001"}

	commit := gitcontext.CommitID("aaaa0001")
	req := oracle.Request{
		Context:         f,
		WorkingTreeRoot: "/repo",
		Directory:       "/repo",
		Commit:          &commit,
		CommittedConfig: gitcontext.CommitFileSource{Context: f, Commit: commit},
	}

	o, err := oracle.Compute(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, oracle.ErrHeightOverflow)
	require.NotNil(t, o)
	assert.Equal(t, oracle.FailOverflow, o.State)
}

func TestCompute_PublicReleaseMatch(t *testing.T) {
	f := gitcontext.NewFake("/repo")
	f.AddCommit("aaaa0001", gitcontext.FakeCommit{Tree: map[string][]byte{
		"version.json": []byte(`{"version":"1.2","publicReleaseRefSpec":["^refs/heads/main$"]}`),
	}})
	f.Refs = []gitcontext.CommitID{"aaaa0001"}
	f.Head = "aaaa0001"
	f.HeadName = "refs/heads/main"

	commit := gitcontext.CommitID("aaaa0001")
	req := oracle.Request{
		Context:         f,
		WorkingTreeRoot: "/repo",
		Directory:       "/repo",
		Commit:          &commit,
		CommittedConfig: gitcontext.CommitFileSource{Context: f, Commit: commit},
	}

	o, err := oracle.Compute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, o.PublicRelease)
}

func TestCompute_PrereleaseHeightMacro(t *testing.T) {
	f := gitcontext.NewFake("/repo")
	f.AddCommit("aaaa0001", gitcontext.FakeCommit{Tree: map[string][]byte{
		"version.json": []byte(`{"version":"1.2.3.4-beta.{height}"}`),
	}})
	f.Refs = []gitcontext.CommitID{"aaaa0001"}

	commit := gitcontext.CommitID("aaaa0001")
	req := oracle.Request{
		Context:         f,
		WorkingTreeRoot: "/repo",
		Directory:       "/repo",
		Commit:          &commit,
		CommittedConfig: gitcontext.CommitFileSource{Context: f, Commit: commit},
	}

	o, err := oracle.Compute(context.Background(), req)
	require.NoError(t, err)
	// All four numeric components come from baseVersion unchanged; height
	// is carried only in the substituted prerelease text.
	assert.Equal(t, int64(1), o.EffectiveVersion.Major)
	assert.Equal(t, int64(2), o.EffectiveVersion.Minor)
	assert.Equal(t, int64(3), o.EffectiveVersion.Build)
	assert.Equal(t, int64(4), o.EffectiveVersion.Revision)
	assert.Equal(t, "1.2.3-beta.1", o.SemVer2)
}

func TestCompute_SnapshotRoundTrip(t *testing.T) {
	f := gitcontext.NewFake("/repo")
	f.AddCommit("aaaa0001", gitcontext.FakeCommit{Tree: map[string][]byte{"version.json": []byte(`{"version":"1.2"}`)}})
	f.Refs = []gitcontext.CommitID{"aaaa0001"}

	commit := gitcontext.CommitID("aaaa0001")
	req := oracle.Request{
		Context:         f,
		WorkingTreeRoot: "/repo",
		Directory:       "/repo",
		Commit:          &commit,
		CommittedConfig: gitcontext.CommitFileSource{Context: f, Commit: commit},
	}

	o, err := oracle.Compute(context.Background(), req)
	require.NoError(t, err)

	data, err := o.Serialize()
	require.NoError(t, err)

	restored, err := oracle.Deserialize(data, "")
	require.NoError(t, err)
	assert.Equal(t, o.SemVer2, restored.SemVer2)
	assert.Equal(t, o.AssemblyInformationalVersion, restored.AssemblyInformationalVersion)
	assert.Equal(t, "/repo", restored.Directory())
}

func TestDeserialize_MissingDirectoryErrors(t *testing.T) {
	_, err := oracle.Deserialize([]byte(`{}`), "")
	assert.ErrorIs(t, err, oracle.ErrSnapshotMissingDirectory)
}
