package oracle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/gitcontext"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/identity"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/oracle"
)

func TestDecode_FindsUniqueCommit(t *testing.T) {
	f := gitcontext.NewFake("/repo")
	f.AddCommit("aaaa0001", gitcontext.FakeCommit{Tree: map[string][]byte{"version.json": []byte(`{"version":"1.2"}`)}})
	f.AddCommit("bbbb0002", gitcontext.FakeCommit{
		Parents: []gitcontext.CommitID{"aaaa0001"},
		Tree:    map[string][]byte{"version.json": []byte(`{"version":"1.2"}`), "x": []byte("1")},
	})
	f.Refs = []gitcontext.CommitID{"bbbb0002"}

	headCommit := gitcontext.CommitID("bbbb0002")
	req := oracle.Request{
		Context:         f,
		WorkingTreeRoot: "/repo",
		Directory:       "/repo",
		Commit:          &headCommit,
		CommittedConfig: gitcontext.CommitFileSource{Context: f, Commit: headCommit},
	}
	computed, err := oracle.Compute(context.Background(), req)
	require.NoError(t, err)

	commit, ok, err := oracle.Decode(oracle.DecodeRequest{
		Context:         f,
		WorkingTreeRoot: "/repo",
		Directory:       "/repo",
		Version:         computed.EffectiveVersion,
		CommittedConfig: gitcontext.CommitFileSource{Context: f, Commit: headCommit},
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, gitcontext.CommitID("bbbb0002"), commit)
}

func TestDecode_NoMatchReturnsFalse(t *testing.T) {
	f := gitcontext.NewFake("/repo")
	f.AddCommit("aaaa0001", gitcontext.FakeCommit{Tree: map[string][]byte{"version.json": []byte(`{"version":"1.2"}`)}})
	f.Refs = []gitcontext.CommitID{"aaaa0001"}

	_, ok, err := oracle.Decode(oracle.DecodeRequest{
		Context:         f,
		WorkingTreeRoot: "/repo",
		Directory:       "/repo",
		Version:         identity.NumericVersion{Major: 9, Minor: 9, Build: 9, Revision: 9},
		CommittedConfig: gitcontext.CommitFileSource{Context: f, Commit: "aaaa0001"},
	})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecode_AmbiguousWhenTwoCommitsShareEncodedVersion(t *testing.T) {
	f := gitcontext.NewFake("/repo")
	// Two unrelated roots, same version, same path touched, same first
	// 16 bits of commit id -> identical encoded NumericVersion from both.
	f.AddCommit("aaaa0001", gitcontext.FakeCommit{Tree: map[string][]byte{"version.json": []byte(`{"version":"1.2"}`)}})
	f.AddCommit("aaaa0002", gitcontext.FakeCommit{Tree: map[string][]byte{"version.json": []byte(`{"version":"1.2"}`)}})
	f.Refs = []gitcontext.CommitID{"aaaa0001", "aaaa0002"}

	_, ok, err := oracle.Decode(oracle.DecodeRequest{
		Context:         f,
		WorkingTreeRoot: "/repo",
		Directory:       "/repo",
		Version:         identity.NumericVersion{Major: 1, Minor: 2, Build: 1, Revision: 0xaaaa},
		CommittedConfig: gitcontext.CommitFileSource{Context: f, Commit: "aaaa0001"},
	})
	assert.False(t, ok)
	assert.ErrorIs(t, err, oracle.ErrAmbiguousVersionMatch)
}
