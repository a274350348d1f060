package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/bnema/platform-intake/internal/domain"
	"github.com/bnema/platform-intake/internal/ports"
)

const (
	defaultRemote      = "origin"
	defaultAuthorName  = "platform-intake"
	defaultAuthorEmail = "platform-intake@users.noreply.github.com"
	artifactFileMode   = 0o644
	artifactDirMode    = 0o755
	tempFilePattern    = ".intake-*.tmp"
	tokenUsername      = "x-access-token"
)

type Config struct {
	Path        string
	Remote      string
	AuthorName  string
	AuthorEmail string
}

// Workspace is a working copy on local disk whose integration branch is
// synchronised with a remote. The repository is opened on first use so the
// process can start before the clone exists.
type Workspace struct {
	root   string
	remote string
	author object.Signature
	tokens ports.TokenSource
	clock  ports.Clock

	mu   sync.Mutex
	repo *git.Repository
}

var _ ports.Workspace = (*Workspace)(nil)

func New(cfg Config, tokens ports.TokenSource, clock ports.Clock) (*Workspace, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("repository path is empty")
	}
	root, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve repository path: %w", err)
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	w := &Workspace{
		root:   filepath.Clean(root),
		remote: cfg.Remote,
		author: object.Signature{Name: cfg.AuthorName, Email: cfg.AuthorEmail},
		tokens: tokens,
		clock:  clock,
	}
	if w.remote == "" {
		w.remote = defaultRemote
	}
	if w.author.Name == "" {
		w.author.Name = defaultAuthorName
	}
	if w.author.Email == "" {
		w.author.Email = defaultAuthorEmail
	}
	return w, nil
}

func (w *Workspace) Root() string {
	return w.root
}

// IsClean reports whether the working copy can be published from. Staged
// changes anywhere make it dirty; unstaged and untracked changes below
// excludePrefix are ignored because they are previous publish leftovers.
func (w *Workspace) IsClean(ctx context.Context, excludePrefix string) (bool, []string, error) {
	if err := ctx.Err(); err != nil {
		return false, nil, err
	}

	_, wt, err := w.open()
	if err != nil {
		return false, nil, err
	}

	status, err := wt.Status()
	if err != nil {
		return false, nil, fmt.Errorf("read worktree status: %w", err)
	}

	excludePrefix = strings.Trim(excludePrefix, "/")
	var dirty []string
	for file, st := range status {
		staged := st.Staging != git.Unmodified && st.Staging != git.Untracked
		changed := st.Worktree != git.Unmodified
		switch {
		case staged:
			dirty = append(dirty, file)
		case changed && !underPrefix(file, excludePrefix):
			dirty = append(dirty, file)
		}
	}
	slices.Sort(dirty)

	return len(dirty) == 0, dirty, nil
}

// SyncBranch checks out branch, creating it from the remote branch when it
// only exists there, and fast-forwards it to the remote tip.
func (w *Workspace) SyncBranch(ctx context.Context, branch string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo, wt, err := w.open()
	if err != nil {
		return err
	}
	auth, err := w.auth(ctx, repo)
	if err != nil {
		return err
	}

	localRef := plumbing.NewBranchReferenceName(branch)
	remoteRef := plumbing.NewRemoteReferenceName(w.remote, branch)

	err = repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: w.remote,
		RefSpecs:   []config.RefSpec{config.RefSpec(fmt.Sprintf("+%s:%s", localRef, remoteRef))},
		Auth:       auth,
	})
	remoteExists := true
	switch {
	case err == nil, errors.Is(err, git.NoErrAlreadyUpToDate):
	case errors.Is(err, git.NoMatchingRefSpecError{}):
		remoteExists = false
	default:
		return fmt.Errorf("fetch %s from %s: %w", branch, w.remote, err)
	}

	if err := w.checkout(repo, wt, localRef, remoteRef); err != nil {
		return err
	}
	if !remoteExists {
		return nil
	}

	err = wt.PullContext(ctx, &git.PullOptions{
		RemoteName:    w.remote,
		ReferenceName: localRef,
		SingleBranch:  true,
		Auth:          auth,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("fast-forward %s: %w", branch, err)
	}
	return nil
}

func (w *Workspace) checkout(repo *git.Repository, wt *git.Worktree, localRef, remoteRef plumbing.ReferenceName) error {
	_, err := repo.Reference(localRef, true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		tip, err := repo.Reference(remoteRef, true)
		if err != nil {
			return fmt.Errorf("branch %s not found locally or on %s: %w", localRef.Short(), w.remote, err)
		}
		if err := wt.Checkout(&git.CheckoutOptions{Branch: localRef, Hash: tip.Hash(), Create: true}); err != nil {
			return fmt.Errorf("create branch %s: %w", localRef.Short(), err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("resolve branch %s: %w", localRef.Short(), err)
	}

	head, err := repo.Head()
	if err == nil && head.Name() == localRef {
		return nil
	}
	if err := wt.Checkout(&git.CheckoutOptions{Branch: localRef}); err != nil {
		return fmt.Errorf("checkout %s: %w", localRef.Short(), err)
	}
	return nil
}

// WriteFile replaces the file atomically and stages it.
func (w *Workspace) WriteFile(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rel, err := cleanRelative(name)
	if err != nil {
		return err
	}
	_, wt, err := w.open()
	if err != nil {
		return err
	}

	target := filepath.Join(w.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(target), artifactDirMode); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(target), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp artifact: %w", err)
	}
	if err := tempFile.Chmod(artifactFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp artifact: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp artifact: %w", err)
	}
	if err := os.Rename(tempName, target); err != nil {
		return fmt.Errorf("replace artifact %s: %w", rel, err)
	}
	cleanup = false

	if _, err := wt.Add(rel); err != nil {
		return fmt.Errorf("stage %s: %w", rel, err)
	}
	return nil
}

// Commit records the staged paths. domain.ErrNoChanges is returned when the
// files already match HEAD.
func (w *Workspace) Commit(ctx context.Context, paths []string, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	_, wt, err := w.open()
	if err != nil {
		return "", err
	}

	status, err := wt.Status()
	if err != nil {
		return "", fmt.Errorf("read worktree status: %w", err)
	}
	staged := 0
	for _, p := range paths {
		rel, err := cleanRelative(p)
		if err != nil {
			return "", err
		}
		st := status.File(rel)
		if st.Staging != git.Unmodified && st.Staging != git.Untracked {
			staged++
		}
	}
	if staged == 0 {
		return "", domain.ErrNoChanges
	}

	author := w.author
	author.When = w.clock.Now()
	hash, err := wt.Commit(message, &git.CommitOptions{Author: &author, Committer: &author})
	if errors.Is(err, git.ErrEmptyCommit) {
		return "", domain.ErrNoChanges
	}
	if err != nil {
		return "", fmt.Errorf("commit artifacts: %w", err)
	}
	return hash.String(), nil
}

// Unstage resets the index entries for paths to HEAD. Files that HEAD does
// not know are dropped from the index and stay on disk as untracked.
func (w *Workspace) Unstage(ctx context.Context, paths []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(paths) == 0 {
		return nil
	}

	files := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := cleanRelative(p)
		if err != nil {
			return err
		}
		files = append(files, rel)
	}

	repo, wt, err := w.open()
	if err != nil {
		return err
	}
	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("resolve HEAD: %w", err)
	}

	if err := wt.Reset(&git.ResetOptions{Commit: head.Hash(), Mode: git.MixedReset, Files: files}); err != nil {
		return fmt.Errorf("unstage %s: %w", strings.Join(files, ", "), err)
	}
	return nil
}

func (w *Workspace) Push(ctx context.Context, branch string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo, _, err := w.open()
	if err != nil {
		return err
	}
	auth, err := w.auth(ctx, repo)
	if err != nil {
		return err
	}

	ref := plumbing.NewBranchReferenceName(branch)
	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: w.remote,
		RefSpecs:   []config.RefSpec{config.RefSpec(fmt.Sprintf("%s:%s", ref, ref))},
		Auth:       auth,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("push %s to %s: %w", branch, w.remote, err)
	}
	return nil
}

func (w *Workspace) open() (*git.Repository, *git.Worktree, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.repo == nil {
		repo, err := git.PlainOpen(w.root)
		if err != nil {
			return nil, nil, fmt.Errorf("open repository %s: %w", w.root, err)
		}
		w.repo = repo
	}

	wt, err := w.repo.Worktree()
	if err != nil {
		return nil, nil, fmt.Errorf("open worktree: %w", err)
	}
	return w.repo, wt, nil
}

// auth returns token credentials for http(s) remotes. Other transports use
// their own ambient credentials.
func (w *Workspace) auth(ctx context.Context, repo *git.Repository) (transport.AuthMethod, error) {
	if w.tokens == nil {
		return nil, nil
	}

	remote, err := repo.Remote(w.remote)
	if err != nil {
		return nil, fmt.Errorf("resolve remote %s: %w", w.remote, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 || !(strings.HasPrefix(urls[0], "https://") || strings.HasPrefix(urls[0], "http://")) {
		return nil, nil
	}

	token, err := w.tokens.Token(ctx)
	if errors.Is(err, domain.ErrSecretNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve push token: %w", err)
	}
	return &githttp.BasicAuth{Username: tokenUsername, Password: token}, nil
}

func cleanRelative(name string) (string, error) {
	rel := path.Clean(strings.ReplaceAll(name, "\\", "/"))
	if !filepath.IsLocal(filepath.FromSlash(rel)) {
		return "", fmt.Errorf("artifact path %q escapes the working copy", name)
	}
	return rel, nil
}

func underPrefix(file, prefix string) bool {
	if prefix == "" || prefix == "." {
		return false
	}
	return file == prefix || strings.HasPrefix(file, prefix+"/")
}
