package gitcontext

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// GoGit is a Context backed by a go-git repository.
type GoGit struct {
	repo            *git.Repository
	workingTreePath string
	selected        CommitID
	selectedOK      bool
}

// Open opens the repository rooted at or above workingTreePath. If no
// repository is found, a non-repository Context is returned (IsRepository
// reports false) rather than an error, matching the teacher's tolerant
// discovery in its own repository-opening path.
func Open(workingTreePath string) (*GoGit, error) {
	repo, err := git.PlainOpenWithOptions(workingTreePath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return &GoGit{workingTreePath: workingTreePath}, nil
		}
		return nil, fmt.Errorf("opening repository at %s: %w", workingTreePath, err)
	}
	return &GoGit{repo: repo, workingTreePath: workingTreePath}, nil
}

func (g *GoGit) WorkingTreePath() string { return g.workingTreePath }

func (g *GoGit) DotGitPath() (string, bool) {
	if g.repo == nil {
		return "", false
	}
	return filepath.Join(g.workingTreePath, ".git"), true
}

func (g *GoGit) IsRepository() bool { return g.repo != nil }

func (g *GoGit) IsShallow() bool {
	if g.repo == nil {
		return false
	}
	shallow, err := g.repo.Storer.Shallow()
	if err != nil {
		return false
	}
	return len(shallow) > 0
}

func (g *GoGit) HeadCommitID() (CommitID, bool) {
	if g.repo == nil {
		return "", false
	}
	ref, err := g.repo.Head()
	if err != nil {
		return "", false
	}
	return CommitID(ref.Hash().String()), true
}

func (g *GoGit) HeadCanonicalName() (string, bool) {
	if g.repo == nil {
		return "", false
	}
	ref, err := g.repo.Head()
	if err != nil {
		return "", false
	}
	return string(ref.Name()), true
}

func (g *GoGit) SelectedCommitID() (CommitID, bool) { return g.selected, g.selectedOK }

func (g *GoGit) IsHead() bool {
	head, ok := g.HeadCommitID()
	return ok && g.selectedOK && head == g.selected
}

func (g *GoGit) SelectCommit(committish string) bool {
	if g.repo == nil {
		return false
	}
	hash, err := g.repo.ResolveRevision(plumbing.Revision(committish))
	if err != nil {
		return false
	}
	g.selected = CommitID(hash.String())
	g.selectedOK = true
	return true
}

func (g *GoGit) CommitDate(id CommitID) (time.Time, bool) {
	c, err := g.commitObject(id)
	if err != nil {
		return time.Time{}, false
	}
	return c.Committer.When, true
}

func (g *GoGit) commitObject(id CommitID) (*object.Commit, error) {
	h := plumbing.NewHash(string(id))
	c, err := g.repo.CommitObject(h)
	if err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) && g.IsShallow() {
			return nil, ErrShallowClone
		}
		return nil, err
	}
	return c, nil
}

func (g *GoGit) ReadBlobAtPath(id CommitID, repoRelativePath string) ([]byte, bool, error) {
	c, err := g.commitObject(id)
	if err != nil {
		return nil, false, err
	}
	tree, err := c.Tree()
	if err != nil {
		return nil, false, err
	}
	file, err := tree.File(filepath.ToSlash(repoRelativePath))
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	reader, err := file.Reader()
	if err != nil {
		return nil, false, err
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (g *GoGit) ParentsOf(id CommitID) ([]CommitID, error) {
	c, err := g.commitObject(id)
	if err != nil {
		return nil, err
	}
	out := make([]CommitID, 0, len(c.ParentHashes))
	for _, h := range c.ParentHashes {
		out = append(out, CommitID(h.String()))
	}
	return out, nil
}

func (g *GoGit) TreeDiffPaths(parent *CommitID, child CommitID, includePaths []string) ([]string, error) {
	childCommit, err := g.commitObject(child)
	if err != nil {
		return nil, err
	}
	childTree, err := childCommit.Tree()
	if err != nil {
		return nil, err
	}

	var parentTree *object.Tree
	if parent != nil {
		parentCommit, err := g.commitObject(*parent)
		if err != nil {
			return nil, err
		}
		parentTree, err = parentCommit.Tree()
		if err != nil {
			return nil, err
		}
	}

	changes, err := object.DiffTree(parentTree, childTree)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []string
	for _, ch := range changes {
		for _, p := range []string{ch.From.Name, ch.To.Name} {
			if p == "" {
				continue
			}
			if len(includePaths) > 0 && !pathUnderAny(p, includePaths) {
				continue
			}
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func pathUnderAny(p string, includes []string) bool {
	for _, inc := range includes {
		if p == inc || strings.HasPrefix(p, inc+"/") {
			return true
		}
	}
	return false
}

// ShortUniqueID returns the shortest prefix of id, at least minLen
// characters, that uniquely identifies it among reachableCommits(). A
// minLen of zero or less, or longer than id, yields the full id.
func (g *GoGit) ShortUniqueID(id CommitID, minLen int) (string, error) {
	full := string(id)
	if minLen <= 0 || minLen > len(full) {
		minLen = len(full)
	}
	ids, err := g.ReachableCommits()
	if err != nil {
		return "", err
	}
	for length := minLen; length <= len(full); length++ {
		prefix := full[:length]
		if countWithPrefix(ids, prefix) <= 1 {
			return prefix, nil
		}
	}
	return full, nil
}

func countWithPrefix(ids []CommitID, prefix string) int {
	count := 0
	for _, id := range ids {
		if strings.HasPrefix(string(id), prefix) {
			count++
		}
	}
	return count
}

func (g *GoGit) FirstBytesOf(id CommitID) (uint16, error) {
	h := plumbing.NewHash(string(id))
	return uint16(h[0])<<8 | uint16(h[1]), nil
}

func (g *GoGit) IDStartsWith(id CommitID, leading, mask uint16) (bool, error) {
	v, err := g.FirstBytesOf(id)
	if err != nil {
		return false, err
	}
	return v&mask == leading&mask, nil
}

func (g *GoGit) ReachableCommits() ([]CommitID, error) {
	if g.repo == nil {
		return nil, nil
	}
	refs, err := g.repo.References()
	if err != nil {
		return nil, err
	}

	seen := make(map[plumbing.Hash]bool)
	var out []CommitID
	var walkErr error

	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		commitIter, err := g.repo.Log(&git.LogOptions{From: ref.Hash()})
		if err != nil {
			return nil
		}
		iterErr := commitIter.ForEach(func(c *object.Commit) error {
			if seen[c.Hash] {
				return nil
			}
			seen[c.Hash] = true
			out = append(out, CommitID(c.Hash.String()))
			return nil
		})
		if iterErr != nil {
			if errors.Is(iterErr, plumbing.ErrObjectNotFound) && g.IsShallow() {
				walkErr = ErrShallowClone
				return storer.ErrStop
			}
			return iterErr
		}
		return nil
	})
	if err != nil {
		return out, err
	}
	if walkErr != nil {
		return out, walkErr
	}
	return out, nil
}
