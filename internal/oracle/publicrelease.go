package oracle

import (
	"fmt"
	"regexp"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/options"
)

// matchesPublicRelease implements spec.md §4.8's
// publicRelease := any(publicReleaseRefSpec match buildingRef). An empty
// buildingRef (no ref known) never matches.
func matchesPublicRelease(o *options.VersionOptions, buildingRef string) (bool, error) {
	if buildingRef == "" || o.PublicReleaseRefSpec == nil {
		return false, nil
	}
	for _, spec := range *o.PublicReleaseRefSpec {
		re, err := regexp.Compile(spec)
		if err != nil {
			return false, fmt.Errorf("publicReleaseRefSpec entry %q: %w", spec, err)
		}
		if re.MatchString(buildingRef) {
			return true, nil
		}
	}
	return false, nil
}
