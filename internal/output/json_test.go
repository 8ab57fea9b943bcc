package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/output"
)

func TestWriteJSON(t *testing.T) {
	vars := map[string]string{"SemVer2": "1.2.1", "CommitIdShort": "aaaa0001"}
	var buf bytes.Buffer
	err := output.WriteJSON(&buf, vars)
	require.NoError(t, err)

	var parsed map[string]string
	err = json.Unmarshal(buf.Bytes(), &parsed)
	require.NoError(t, err)
	require.Equal(t, "1.2.1", parsed["SemVer2"])
	require.Equal(t, "aaaa0001", parsed["CommitIdShort"])
}

func TestWriteVariable(t *testing.T) {
	vars := map[string]string{"SemVer2": "1.2.1"}
	var buf bytes.Buffer
	err := output.WriteVariable(&buf, vars, "SemVer2")
	require.NoError(t, err)
	require.Equal(t, "1.2.1\n", buf.String())
}

func TestWriteVariable_Unknown(t *testing.T) {
	vars := map[string]string{"SemVer2": "1.2.1"}
	var buf bytes.Buffer
	err := output.WriteVariable(&buf, vars, "NonExistent")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown variable")
}

func TestWriteAll(t *testing.T) {
	vars := map[string]string{"A": "1", "B": "2"}
	var buf bytes.Buffer
	err := output.WriteAll(&buf, vars)
	require.NoError(t, err)
	require.Equal(t, "A=1\nB=2\n", buf.String())
}
