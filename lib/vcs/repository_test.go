package vcs_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pescuma/siri/lib/model"
	"github.com/pescuma/siri/lib/vcs"
)

type testRepo struct {
	t    *testing.T
	root string
	repo *git.Repository
	when time.Time
}

func newTestRepo(t *testing.T) *testRepo {
	root := t.TempDir()

	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)

	return &testRepo{
		t:    t,
		root: root,
		repo: repo,
		when: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *testRepo) commit(email string, files map[string]string) string {
	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)

	for name, contents := range files {
		path := filepath.Join(r.root, filepath.FromSlash(name))
		require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(r.t, os.WriteFile(path, []byte(contents), 0o600))

		_, err = wt.Add(name)
		require.NoError(r.t, err)
	}

	r.when = r.when.Add(time.Hour)

	hash, err := wt.Commit("change by "+email, &git.CommitOptions{
		Author: &object.Signature{Name: email, Email: email, When: r.when},
	})
	require.NoError(r.t, err)

	return hash.String()
}

func TestFindRoot(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("a@x.com", map[string]string{"src/deep/file.go": "x\n"})

	root, err := vcs.FindRoot(filepath.Join(r.root, "src", "deep", "file.go"))
	require.NoError(t, err)
	assert.Equal(t, r.root, root)

	root, err = vcs.FindRoot(r.root)
	require.NoError(t, err)
	assert.Equal(t, r.root, root)
}

func TestFindRootWithGitFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git"), []byte("gitdir: ../elsewhere\n"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a"), 0o700))

	found, err := vcs.FindRoot(filepath.Join(root, "a"))
	require.NoError(t, err)
	assert.Equal(t, root, found)
}

func TestFindRootOutsideRepository(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	// The temp dir itself may live inside a repository on some machines
	if _, err := vcs.FindRoot(filepath.Dir(dir)); err == nil {
		t.Skip("temp dir is inside a git repository")
	}

	_, err := vcs.FindRoot(dir)
	assert.True(t, errors.Is(err, vcs.ErrNotInRepository))
}

func TestRelativePath(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("a@x.com", map[string]string{"a.go": "x\n"})

	repo, err := vcs.Open(r.root, "")
	require.NoError(t, err)

	rel, err := repo.RelativePath(filepath.Join(r.root, "src", "a.go"))
	require.NoError(t, err)
	assert.Equal(t, "src/a.go", rel)

	rel, err = repo.RelativePath(r.root)
	require.NoError(t, err)
	assert.Equal(t, "", rel)

	_, err = repo.RelativePath(filepath.Dir(r.root))
	assert.True(t, errors.Is(err, vcs.ErrNotInRepository))
}

func TestOpenUnknownRevision(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("a@x.com", map[string]string{"a.go": "x\n"})

	_, err := vcs.Open(r.root, "no-such-branch")
	assert.Error(t, err)
}

func TestListFiles(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("a@x.com", map[string]string{
		"root.go":         "x\n",
		"src/b.go":        "x\n",
		"src/a.go":        "x\n",
		"src/image.bin":   "\x00\x01\x02",
		"src/sub/deep.go": "x\n",
	})

	repo, err := vcs.Open(r.root, "HEAD")
	require.NoError(t, err)

	var skipped []string
	files, err := repo.ListFiles("src", &vcs.ListOptions{
		Skipped: func(path string) { skipped = append(skipped, path) },
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.go", "src/b.go"}, files)
	assert.Equal(t, []string{"src/image.bin"}, skipped)

	files, err = repo.ListFiles("src", &vcs.ListOptions{Recursive: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.go", "src/b.go", "src/sub/deep.go"}, files)

	files, err = repo.ListFiles("", &vcs.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"root.go"}, files)

	_, err = repo.ListFiles("missing", &vcs.ListOptions{})
	assert.True(t, errors.Is(err, vcs.ErrNotFound))
}

func TestGoGitBlame(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	c1 := r.commit("a@x.com", map[string]string{"main.go": "package main\n\nfunc a() {}\n"})
	c2 := r.commit("b@x.com", map[string]string{"main.go": "package main\n\nfunc a() {}\n// b\nfunc b() {}\n"})

	repo, err := vcs.Open(r.root, "")
	require.NoError(t, err)

	attributor, err := repo.NewAttributor(vcs.BackendGoGit)
	require.NoError(t, err)

	records, err := attributor.Blame(context.Background(), "main.go")
	require.NoError(t, err)

	assert.Equal(t, []model.AttributionRecord{
		{Commit: c1, Author: "a@x.com", Lines: []string{"package main", "", "func a() {}"}},
		{Commit: c2, Author: "b@x.com", Lines: []string{"// b", "func b() {}"}},
	}, records)
}

func TestGoGitBlameOldRevision(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	c1 := r.commit("a@x.com", map[string]string{"main.go": "a\n"})
	r.commit("b@x.com", map[string]string{"main.go": "b\n"})

	repo, err := vcs.Open(r.root, c1)
	require.NoError(t, err)

	attributor, err := repo.NewAttributor(vcs.BackendGoGit)
	require.NoError(t, err)

	records, err := attributor.Blame(context.Background(), "main.go")
	require.NoError(t, err)

	assert.Equal(t, []model.AttributionRecord{
		{Commit: c1, Author: "a@x.com", Lines: []string{"a"}},
	}, records)
}

func TestGoGitBlameNotFound(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("a@x.com", map[string]string{"main.go": "a\n"})

	repo, err := vcs.Open(r.root, "")
	require.NoError(t, err)

	attributor, err := repo.NewAttributor(vcs.BackendGoGit)
	require.NoError(t, err)

	_, err = attributor.Blame(context.Background(), "missing.go")
	assert.True(t, errors.Is(err, vcs.ErrNotFound))
}

func TestGoGitBlameCancelled(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("a@x.com", map[string]string{"main.go": "a\n"})

	repo, err := vcs.Open(r.root, "")
	require.NoError(t, err)

	attributor, err := repo.NewAttributor(vcs.BackendGoGit)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = attributor.Blame(ctx, "main.go")
	if err != nil {
		assert.True(t, errors.Is(err, context.Canceled))
	}
}

func TestUnknownBackend(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("a@x.com", map[string]string{"main.go": "a\n"})

	repo, err := vcs.Open(r.root, "")
	require.NoError(t, err)

	_, err = repo.NewAttributor("svn")
	assert.Error(t, err)
}

func newGitAttributor(t *testing.T, root string) vcs.Attributor {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}

	repo, err := vcs.Open(root, "")
	require.NoError(t, err)

	attributor, err := repo.NewAttributor(vcs.BackendGit)
	require.NoError(t, err)

	return attributor
}

func TestGitBlame(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	c1 := r.commit("a@x.com", map[string]string{"main.go": "package main\n\nfunc a() {}\n"})
	c2 := r.commit("b@x.com", map[string]string{"main.go": "package main\n\nfunc a() {}\n// b\nfunc b() {}\n"})

	records, err := newGitAttributor(t, r.root).Blame(context.Background(), "main.go")
	require.NoError(t, err)

	assert.Equal(t, []model.AttributionRecord{
		{Commit: c1, Author: "a@x.com", Lines: []string{"package main", "", "func a() {}"}},
		{Commit: c2, Author: "b@x.com", Lines: []string{"// b", "func b() {}"}},
	}, records)
}

func TestGitBlameNotFound(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("a@x.com", map[string]string{"main.go": "a\n"})

	_, err := newGitAttributor(t, r.root).Blame(context.Background(), "missing.go")
	assert.True(t, errors.Is(err, vcs.ErrNotFound))
}

func TestGitMissing(t *testing.T) {
	r := newTestRepo(t)
	r.commit("a@x.com", map[string]string{"main.go": "a\n"})

	t.Setenv("PATH", t.TempDir())

	_, err := vcs.FindGit()
	assert.True(t, errors.Is(err, vcs.ErrDependencyMissing))

	repo, err := vcs.Open(r.root, "")
	require.NoError(t, err)

	_, err = repo.NewAttributor(vcs.BackendGit)
	assert.True(t, errors.Is(err, vcs.ErrDependencyMissing))
}
