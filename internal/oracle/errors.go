package oracle

import (
	"errors"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/gitcontext"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/identity"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/options"
	"github.com/MyCarrier-DevOps/go-versionheight/internal/resolver"
)

// The sentinel errors surfaced at the boundary (spec.md §6), re-exported
// here so callers only need to import internal/oracle to errors.Is against
// any of them, regardless of which inner package actually detected the
// condition.
var (
	ErrShallowClone               = gitcontext.ErrShallowClone
	ErrHeightOverflow             = identity.ErrHeightOverflow
	ErrAmbiguousVersionMatch      = identity.ErrAmbiguousMatch
	ErrMissingParentConfiguration = resolver.ErrMissingParentConfiguration
	ErrIllegalState               = options.ErrIllegalState

	// ErrInvalidCommitIDPrefix is returned when gitCommitIdPrefix does not
	// start with a letter or underscore (spec.md §3), the constraint that
	// keeps a prefixed commit id from being mistaken for a numeric SemVer
	// identifier.
	ErrInvalidCommitIDPrefix = errors.New("oracle: gitCommitIdPrefix must start with a letter or underscore")
)
