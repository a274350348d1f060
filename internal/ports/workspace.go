package ports

import "context"

// Workspace is the shared working copy the publisher writes into. Paths are
// slash-separated and relative to the working-copy root.
type Workspace interface {
	Root() string
	IsClean(ctx context.Context, excludePrefix string) (bool, []string, error)
	SyncBranch(ctx context.Context, branch string) error
	WriteFile(ctx context.Context, path string, data []byte) error
	Commit(ctx context.Context, paths []string, message string) (string, error)
	// Unstage resets the index entries of paths to HEAD, leaving the files
	// on disk untouched.
	Unstage(ctx context.Context, paths []string) error
	Push(ctx context.Context, branch string) error
}
