package output_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/identity"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/oracle"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/options"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/output"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/semver"
)

func TestWriteExplanation_Basic(t *testing.T) {
	base := semver.SemanticVersion{Major: 1, Minor: 2}
	committed := options.ResolveDefaults(&options.VersionOptions{Version: &base})

	o := &oracle.Oracle{
		State:               oracle.Done,
		CommittedOptions:    committed,
		WorkingOptions:      committed,
		VersionHeight:       1,
		VersionHeightOffset: 0,
		CommitID:            "aaaa0001",
		HasCommit:           true,
		CommitIDShort:       "aaaa0001",
		BuildingRef:         "refs/heads/main",
		PublicRelease:       false,
		EffectiveVersion:    identity.NumericVersion{Major: 1, Minor: 2, Build: 1, Revision: 0xaaaa},
		SemVer2:             "1.2.1",
	}

	var buf bytes.Buffer
	err := output.WriteExplanation(&buf, o)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "base version 1.2")
	require.Contains(t, out, "versionHeight = 1")
	require.Contains(t, out, "commit aaaa0001")
	require.Contains(t, out, "effective version 1.2.1.43690")
	require.Contains(t, out, `building ref "refs/heads/main"`)
	require.Contains(t, out, "Result: 1.2.1 (state Done)")
}

func TestWriteExplanation_WorkingTreeOverride(t *testing.T) {
	base := semver.SemanticVersion{Major: 1, Minor: 0}
	override := semver.SemanticVersion{Major: 1, Minor: 1}
	committed := options.ResolveDefaults(&options.VersionOptions{Version: &base})
	working := options.ResolveDefaults(&options.VersionOptions{Version: &override})

	o := &oracle.Oracle{
		State:            oracle.Done,
		CommittedOptions: committed,
		WorkingOptions:   working,
		SemVer2:          "1.1.0",
	}

	var buf bytes.Buffer
	err := output.WriteExplanation(&buf, o)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "working-tree override in effect")
}

func TestWriteExplanation_MissingCommit(t *testing.T) {
	o := &oracle.Oracle{State: oracle.EmitDefaultZeroVersion, SemVer2: "0.0.0"}

	var buf bytes.Buffer
	err := output.WriteExplanation(&buf, o)
	require.NoError(t, err)

	out := buf.String()
	require.NotContains(t, out, "commit ")
	require.Contains(t, out, "Result: 0.0.0 (state EmitDefaultZeroVersion)")
}
