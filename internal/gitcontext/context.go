// Package gitcontext defines the external Git Context collaborator
// (spec.md §4.5) the core consumes, plus a go-git-backed implementation and
// an in-memory fake for tests.
package gitcontext

import (
	"errors"
	"time"
)

// CommitID is a hex-encoded git object id.
type CommitID string

// ErrShallowClone is returned when a traversal needs an object absent from
// a shallow clone (spec.md §4.5, §7).
var ErrShallowClone = errors.New("shallow clone: ancestor object unavailable")

// Context is the Git Context abstraction the core's Height Calculator and
// Oracle (including reverse lookup) depend on. No implementation in the
// core itself; GoGit (gogit.go) and Fake (fake.go) are the two provided
// implementations.
type Context interface {
	WorkingTreePath() string
	DotGitPath() (string, bool)
	IsRepository() bool
	IsShallow() bool

	HeadCommitID() (CommitID, bool)
	SelectedCommitID() (CommitID, bool)
	IsHead() bool
	CommitDate(id CommitID) (time.Time, bool)
	HeadCanonicalName() (string, bool)

	SelectCommit(committish string) bool

	ReadBlobAtPath(id CommitID, repoRelativePath string) (data []byte, ok bool, err error)
	ParentsOf(id CommitID) ([]CommitID, error)
	TreeDiffPaths(parent *CommitID, child CommitID, includePaths []string) ([]string, error)

	ShortUniqueID(id CommitID, minLen int) (string, error)
	FirstBytesOf(id CommitID) (uint16, error)
	IDStartsWith(id CommitID, leading, mask uint16) (bool, error)

	ReachableCommits() ([]CommitID, error)
}
