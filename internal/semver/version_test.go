package semver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/semver"
)

func TestParse_RoundTrip(t *testing.T) {
	cases := []string{
		"1.2",
		"1.2.3",
		"1.2.3.4",
		"1.0-beta.{height}",
		"v2.5.0-alpha+build.5",
		"0.1.0.0",
	}
	for _, s := range cases {
		v, err := semver.Parse(s)
		require.NoError(t, err, s)
		reparsed, err := semver.Parse(v.String())
		require.NoError(t, err, s)
		assert.Equal(t, v, reparsed, "round trip mismatch for %q", s)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []string{
		"",
		"1",
		"1.2.3.4.5",
		"1.2.x",
		"1.2-pre$$",
	}
	for _, s := range cases {
		_, err := semver.Parse(s)
		assert.Error(t, err, s)
	}
}

func TestParse_LeadingV(t *testing.T) {
	v, err := semver.Parse("v1.2.3")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Major)
	assert.Equal(t, int64(2), v.Minor)
	assert.Equal(t, int64(3), v.Build)
}

func TestHeightPosition(t *testing.T) {
	v1, _ := semver.Parse("1.2")
	pos, ok := semver.HeightPosition(v1)
	assert.True(t, ok)
	assert.Equal(t, semver.Build, pos)

	v2, _ := semver.Parse("1.2.3")
	pos, ok = semver.HeightPosition(v2)
	assert.True(t, ok)
	assert.Equal(t, semver.Revision, pos)

	v3, _ := semver.Parse("1.2.3.4")
	_, ok = semver.HeightPosition(v3)
	assert.False(t, ok)

	v4, _ := semver.Parse("1.0-beta.{height}")
	pos, ok = semver.HeightPosition(v4)
	assert.True(t, ok)
	assert.Equal(t, semver.Prerelease, pos)
}

func TestCommitIDPosition(t *testing.T) {
	pos, ok := semver.CommitIDPosition(semver.Build, true)
	assert.True(t, ok)
	assert.Equal(t, semver.Revision, pos)

	_, ok = semver.CommitIDPosition(semver.Revision, true)
	assert.False(t, ok)

	_, ok = semver.CommitIDPosition(semver.Prerelease, true)
	assert.False(t, ok)
}

func TestSubstituteHeight(t *testing.T) {
	v, err := semver.Parse("1.0-beta.{height}")
	require.NoError(t, err)
	out := v.SubstituteHeight(12)
	assert.Equal(t, "beta.12", out.Prerelease)
}

func TestWillResetHeight(t *testing.T) {
	a, _ := semver.Parse("1.2.3")
	b, _ := semver.Parse("1.3.3")
	assert.True(t, semver.WillResetHeight(a, b, semver.Build))

	c, _ := semver.Parse("1.2.9")
	assert.False(t, semver.WillResetHeight(a, c, semver.Minor))

	d, _ := semver.Parse("1.2.3-rc.1")
	e, _ := semver.Parse("1.2.3-rc.2")
	assert.True(t, semver.WillResetHeight(d, e, semver.Prerelease))
}

func TestPrefixEqual(t *testing.T) {
	a, _ := semver.Parse("1.2.3")
	b, _ := semver.Parse("1.2.9")
	assert.True(t, a.PrefixEqual(b, semver.Build))
	assert.False(t, a.PrefixEqual(b, semver.Revision))
}

func TestFormatSemVer1Padding(t *testing.T) {
	v, err := semver.Parse("1.2.3-alpha.5")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3-alpha0005", semver.FormatSemVer1(v, 4))
}

func TestNuGetCommitIDPrefix(t *testing.T) {
	assert.Equal(t, "g1a2b3c", semver.WithNuGetCommitIDPrefix("1a2b3c", "g"))
	assert.Equal(t, "abc123", semver.WithNuGetCommitIDPrefix("abc123", "g"))
}
