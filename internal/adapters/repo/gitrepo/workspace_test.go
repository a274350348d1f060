package gitrepo

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/platform-intake/internal/domain"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testSignature = &object.Signature{Name: "seed", Email: "seed@example.com", When: time.Unix(1700000000, 0)}

// requireGit skips tests that move objects between repositories on disk;
// go-git's file transport shells out to the git binaries.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

// seedRemote creates a bare remote holding master and dev at the same commit.
func seedRemote(t *testing.T) string {
	t.Helper()

	bare := filepath.Join(t.TempDir(), "remote.git")
	_, err := git.PlainInit(bare, true)
	require.NoError(t, err)

	seedDir := filepath.Join(t.TempDir(), "seed")
	seed, err := git.PlainInit(seedDir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(seedDir, "README.md"), []byte("infra\n"), 0o644))

	wt, err := seed.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{Author: testSignature})
	require.NoError(t, err)
	require.NoError(t, seed.Storer.SetReference(plumbing.NewHashReference(plumbing.NewBranchReferenceName("dev"), hash)))

	_, err = seed.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{bare}})
	require.NoError(t, err)
	require.NoError(t, seed.Push(&git.PushOptions{
		RemoteName: "origin",
		RefSpecs:   []config.RefSpec{"refs/heads/*:refs/heads/*"},
	}))
	return bare
}

func cloneRemote(t *testing.T, bare string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "clone")
	_, err := git.PlainClone(dir, false, &git.CloneOptions{URL: bare})
	require.NoError(t, err)
	return dir
}

func initLocal(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("infra\n"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{Author: testSignature})
	require.NoError(t, err)
	return dir
}

func newTestWorkspace(t *testing.T, dir string) *Workspace {
	t.Helper()
	w, err := New(Config{Path: dir, AuthorName: "intake", AuthorEmail: "intake@example.com"}, nil, fixedClock{now: time.Unix(1700000100, 0)})
	require.NoError(t, err)
	return w
}

func TestNewRejectsEmptyPath(t *testing.T) {
	_, err := New(Config{}, nil, nil)
	require.Error(t, err)
}

func TestOpenFailsOutsideRepository(t *testing.T) {
	w := newTestWorkspace(t, t.TempDir())
	_, _, err := w.IsClean(context.Background(), "intake")
	require.Error(t, err)
}

func TestIsCleanIgnoresLeftoversUnderOutputDir(t *testing.T) {
	dir := initLocal(t)
	w := newTestWorkspace(t, dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "intake", "buckets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "intake", "buckets", "old.yaml"), []byte("x: 1\n"), 0o644))

	clean, dirty, err := w.IsClean(context.Background(), "intake")
	require.NoError(t, err)
	assert.True(t, clean)
	assert.Empty(t, dirty)
}

func TestIsCleanReportsChangesOutsideOutputDir(t *testing.T) {
	dir := initLocal(t)
	w := newTestWorkspace(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("changed\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("scratch\n"), 0o644))

	clean, dirty, err := w.IsClean(context.Background(), "intake")
	require.NoError(t, err)
	assert.False(t, clean)
	assert.Equal(t, []string{"README.md", "notes.txt"}, dirty)
}

func TestIsCleanReportsStagedChangesUnderOutputDir(t *testing.T) {
	dir := initLocal(t)
	w := newTestWorkspace(t, dir)

	require.NoError(t, w.WriteFile(context.Background(), "intake/buckets/a.yaml", []byte("bucket_name: a\n")))

	clean, dirty, err := w.IsClean(context.Background(), "intake")
	require.NoError(t, err)
	assert.False(t, clean)
	assert.Equal(t, []string{"intake/buckets/a.yaml"}, dirty)
}

func TestUnstageClearsFailedTransaction(t *testing.T) {
	dir := initLocal(t)
	w := newTestWorkspace(t, dir)
	ctx := context.Background()

	require.NoError(t, w.WriteFile(ctx, "intake/buckets/a.yaml", []byte("bucket_name: a\n")))
	require.NoError(t, w.WriteFile(ctx, "README.md", []byte("rewritten\n")))

	require.NoError(t, w.Unstage(ctx, []string{"intake/buckets/a.yaml"}))

	_, dirty, err := w.IsClean(ctx, "intake")
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md"}, dirty)
	assert.FileExists(t, filepath.Join(dir, "intake", "buckets", "a.yaml"))

	require.NoError(t, w.Unstage(ctx, []string{"README.md"}))
	_, dirty, err = w.IsClean(ctx, "intake")
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md"}, dirty, "unstaged edits outside the output dir still count")

	require.NoError(t, w.Unstage(ctx, nil))
	assert.ErrorIs(t, w.Unstage(canceledContext(), []string{"README.md"}), context.Canceled)
}

func canceledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func TestWriteFileRejectsEscapingPaths(t *testing.T) {
	w := newTestWorkspace(t, initLocal(t))

	for _, name := range []string{"../outside.yaml", "/etc/passwd"} {
		assert.Error(t, w.WriteFile(context.Background(), name, []byte("x")), name)
	}
}

func TestCommitReportsNoChangesForIdenticalContent(t *testing.T) {
	dir := initLocal(t)
	w := newTestWorkspace(t, dir)
	ctx := context.Background()
	paths := []string{"intake/buckets/a.yaml"}

	require.NoError(t, w.WriteFile(ctx, paths[0], []byte("bucket_name: a\n")))
	hash, err := w.Commit(ctx, paths, "Add bucket a\n")
	require.NoError(t, err)
	assert.Len(t, hash, 40)

	require.NoError(t, w.WriteFile(ctx, paths[0], []byte("bucket_name: a\n")))
	_, err = w.Commit(ctx, paths, "Add bucket a again\n")
	assert.ErrorIs(t, err, domain.ErrNoChanges)

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, "intake", commit.Author.Name)
	assert.Equal(t, "Add bucket a\n", commit.Message)
}

func TestSyncCommitPushRoundTrip(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	bare := seedRemote(t)
	w := newTestWorkspace(t, cloneRemote(t, bare))

	require.NoError(t, w.SyncBranch(ctx, "dev"))
	require.NoError(t, w.WriteFile(ctx, "intake/buckets/minerva-a.yaml", []byte("bucket_name: minerva-a\n")))
	hash, err := w.Commit(ctx, []string{"intake/buckets/minerva-a.yaml"}, "Add bucket\n")
	require.NoError(t, err)
	require.NoError(t, w.Push(ctx, "dev"))

	remote, err := git.PlainOpen(bare)
	require.NoError(t, err)
	ref, err := remote.Reference(plumbing.NewBranchReferenceName("dev"), true)
	require.NoError(t, err)
	assert.Equal(t, hash, ref.Hash().String())

	// A second push of the same tip is not an error.
	require.NoError(t, w.Push(ctx, "dev"))
}

func TestSyncBranchFastForwardsToRemote(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	bare := seedRemote(t)

	first := newTestWorkspace(t, cloneRemote(t, bare))
	second := newTestWorkspace(t, cloneRemote(t, bare))

	require.NoError(t, first.SyncBranch(ctx, "dev"))
	require.NoError(t, first.WriteFile(ctx, "intake/roles/r.yaml", []byte("role_name: r\n")))
	hash, err := first.Commit(ctx, []string{"intake/roles/r.yaml"}, "Add role\n")
	require.NoError(t, err)
	require.NoError(t, first.Push(ctx, "dev"))

	require.NoError(t, second.SyncBranch(ctx, "dev"))

	repo, err := git.PlainOpen(second.Root())
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, plumbing.NewBranchReferenceName("dev"), head.Name())
	assert.Equal(t, hash, head.Hash().String())
	assert.FileExists(t, filepath.Join(second.Root(), "intake", "roles", "r.yaml"))
}

func TestSyncBranchFailsForUnknownBranch(t *testing.T) {
	requireGit(t)
	w := newTestWorkspace(t, cloneRemote(t, seedRemote(t)))

	err := w.SyncBranch(context.Background(), "does-not-exist")
	require.Error(t, err)
}

func TestCancelledContextStopsBeforeWork(t *testing.T) {
	w := newTestWorkspace(t, initLocal(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, w.SyncBranch(ctx, "dev"), context.Canceled)
	assert.ErrorIs(t, w.WriteFile(ctx, "a.yaml", nil), context.Canceled)
	assert.ErrorIs(t, w.Push(ctx, "dev"), context.Canceled)
}
