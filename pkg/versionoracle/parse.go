package versionoracle

import (
	"bytes"
	"fmt"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/identity"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/oracle"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/output"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/semver"
)

// parseNumericVersion parses a 2-4 component numeric version string into
// the identity.NumericVersion form oracle.Decode compares against,
// defaulting an absent build/revision to 0 rather than semver.Unset.
func parseNumericVersion(s string) (identity.NumericVersion, error) {
	v, err := semver.Parse(s)
	if err != nil {
		return identity.NumericVersion{}, fmt.Errorf("parsing version %q: %w", s, err)
	}

	build := v.Build
	if build == semver.Unset {
		build = 0
	}
	revision := v.Revision
	if revision == semver.Unset {
		revision = 0
	}

	return identity.NumericVersion{
		Major:    v.Major,
		Minor:    v.Minor,
		Build:    build,
		Revision: revision,
	}, nil
}

// formatExplanation renders o's --explain trace as a string, for callers
// that want the text without writing to an io.Writer themselves.
func formatExplanation(o *oracle.Oracle) string {
	var buf bytes.Buffer
	_ = output.WriteExplanation(&buf, o)
	return buf.String()
}
