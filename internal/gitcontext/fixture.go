package gitcontext

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// FixtureRepo is a builder for temporary git repositories used by height,
// resolver and oracle tests: controlled commit history plus writers for
// version.json/version.txt at arbitrary nested directories.
type FixtureRepo struct {
	t    testing.TB
	path string
	repo *gogit.Repository
	time time.Time
}

// NewFixtureRepo creates and initializes a repository in a fresh temp dir.
func NewFixtureRepo(t testing.TB) *FixtureRepo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init fixture repo: %v", err)
	}

	return &FixtureRepo{
		t:    t,
		path: dir,
		repo: repo,
		time: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Path returns the repository's working-tree root.
func (r *FixtureRepo) Path() string { return r.path }

// Context opens a GoGit Context over this fixture.
func (r *FixtureRepo) Context() *GoGit {
	ctx, err := Open(r.path)
	if err != nil {
		r.t.Fatalf("opening fixture as context: %v", err)
	}
	return ctx
}

// WriteFile writes repoRelativePath under the working tree, creating parent
// directories as needed, without committing it.
func (r *FixtureRepo) WriteFile(repoRelativePath, content string) {
	r.t.Helper()
	full := filepath.Join(r.path, filepath.FromSlash(repoRelativePath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.t.Fatalf("mkdir for %s: %v", repoRelativePath, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		r.t.Fatalf("writing %s: %v", repoRelativePath, err)
	}
}

// WriteVersionJSON writes a version.json at repoRelativeDir.
func (r *FixtureRepo) WriteVersionJSON(repoRelativeDir, content string) {
	r.WriteFile(filepath.Join(repoRelativeDir, "version.json"), content)
}

// WriteVersionTxt writes a version.txt at repoRelativeDir.
func (r *FixtureRepo) WriteVersionTxt(repoRelativeDir, content string) {
	r.WriteFile(filepath.Join(repoRelativeDir, "version.txt"), content)
}

// Commit stages every pending working-tree change and commits it, returning
// the new commit id.
func (r *FixtureRepo) Commit(message string) CommitID {
	r.t.Helper()
	r.time = r.time.Add(time.Minute)

	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("worktree: %v", err)
	}
	if _, err := wt.Add("."); err != nil {
		r.t.Fatalf("staging: %v", err)
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{Name: "fixture", Email: "fixture@example.com", When: r.time},
	})
	if err != nil {
		r.t.Fatalf("committing: %v", err)
	}
	return CommitID(hash.String())
}

// MergeCommit commits a merge of the current HEAD with other, after any
// pending working-tree writes.
func (r *FixtureRepo) MergeCommit(message string, other CommitID) CommitID {
	r.t.Helper()
	r.time = r.time.Add(time.Minute)

	head, err := r.repo.Head()
	if err != nil {
		r.t.Fatalf("head: %v", err)
	}
	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("worktree: %v", err)
	}
	if _, err := wt.Add("."); err != nil {
		r.t.Fatalf("staging: %v", err)
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author:  &object.Signature{Name: "fixture", Email: "fixture@example.com", When: r.time},
		Parents: []plumbing.Hash{head.Hash(), plumbing.NewHash(string(other))},
	})
	if err != nil {
		r.t.Fatalf("merge commit: %v", err)
	}
	return CommitID(hash.String())
}

// Branch creates (or resets) a branch ref pointing at id, without checking
// it out.
func (r *FixtureRepo) Branch(name string, id CommitID) {
	r.t.Helper()
	ref := plumbing.NewReferenceFromStrings("refs/heads/"+name, string(id))
	if err := r.repo.Storer.SetReference(ref); err != nil {
		r.t.Fatalf("creating branch %s: %v", name, err)
	}
}

// HeadCommitID returns the current HEAD commit id.
func (r *FixtureRepo) HeadCommitID() CommitID {
	r.t.Helper()
	head, err := r.repo.Head()
	if err != nil {
		r.t.Fatalf("head: %v", err)
	}
	return CommitID(head.Hash().String())
}

// WorkingTreeFileSource adapts a working tree on disk to
// resolver.FileSource, reading directly off disk and matching file names
// case-insensitively (used for working-tree resolution, as opposed to
// CommitFileSource which reads a historical commit's tree).
type WorkingTreeFileSource struct {
	Root string
}

func (w WorkingTreeFileSource) ReadVersionFile(dir, name string) ([]byte, bool, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if eqFold(e.Name(), name) {
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				return nil, false, fmt.Errorf("reading %s: %w", e.Name(), err)
			}
			return data, true, nil
		}
	}
	return nil, false, nil
}

func eqFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
