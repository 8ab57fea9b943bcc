package output_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/oracle"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/output"
)

func TestGetVariables_Basic(t *testing.T) {
	o := &oracle.Oracle{
		AssemblyVersion:              "1.2.0.0",
		AssemblyInformationalVersion: "1.2.1+aaaa0001",
		SemVer1:                      "1.2.1",
		SemVer2:                      "1.2.1",
		NuGetPackageVersion:          "1.2.1-gaaaa0001",
		ChocolateyPackageVersion:     "1.2.1-gaaaa0001",
		NPMPackageVersion:            "1.2.1",
		CommitIDShort:                "aaaa0001",
		PublicRelease:                true,
	}

	vars := output.GetVariables(o)
	require.Equal(t, "1.2.0.0", vars["AssemblyVersion"])
	require.Equal(t, "1.2.1", vars["SemVer2"])
	require.Equal(t, "aaaa0001", vars["CommitIdShort"])
	require.Equal(t, "true", vars["PublicRelease"])
	_, hasCloudBuild := vars["CloudBuildNumber"]
	require.False(t, hasCloudBuild)
}

func TestGetVariables_IncludesCloudBuildNumberWhenSet(t *testing.T) {
	o := &oracle.Oracle{
		SemVer2:          "1.2.1",
		PublicRelease:    false,
		CloudBuildNumber: "1.2.1.42",
	}

	vars := output.GetVariables(o)
	require.Equal(t, "1.2.1.42", vars["CloudBuildNumber"])
	require.Equal(t, "false", vars["PublicRelease"])
}
