package output

import (
	"fmt"
	"io"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/oracle"
)

const arrowPrefix = "→"

// WriteExplanation writes a human-readable trace of how o's version was
// derived: the state the computation reached, the resolved base version and
// height, and the identity/commit inputs that fed the final strings.
func WriteExplanation(w io.Writer, o *oracle.Oracle) error {
	fmt.Fprintln(w, "Configuration:")
	if o.CommittedOptions != nil && o.CommittedOptions.Version != nil {
		fmt.Fprintf(w, "  %s base version %s\n", arrowPrefix, o.CommittedOptions.Version.String())
	}
	if o.WorkingOptions != o.CommittedOptions {
		fmt.Fprintf(w, "  %s working-tree override in effect\n", arrowPrefix)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Height:")
	fmt.Fprintf(w, "  %s versionHeight = %d (offset %d)\n", arrowPrefix, o.VersionHeight, o.VersionHeightOffset)
	if o.HasCommit {
		fmt.Fprintf(w, "  %s commit %s (short %s)\n", arrowPrefix, o.CommitID, o.CommitIDShort)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Identity:")
	fmt.Fprintf(w, "  %s effective version %d.%d.%d.%d\n", arrowPrefix,
		o.EffectiveVersion.Major, o.EffectiveVersion.Minor, o.EffectiveVersion.Build, o.EffectiveVersion.Revision)
	fmt.Fprintf(w, "  %s building ref %q (publicRelease=%t)\n", arrowPrefix, o.BuildingRef, o.PublicRelease)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Result: %s (state %s)\n", o.SemVer2, o.State)

	return nil
}
