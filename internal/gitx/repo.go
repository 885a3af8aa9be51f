package gitx

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// InitResult describes what InitRepo did.
type InitResult int

const (
	// InitCreated means a new repository was created in the directory.
	InitCreated InitResult = iota
	// InitExisting means the directory already belongs to a git or hg work tree.
	InitExisting
)

// DefaultBranch is checked out when git has no init.defaultBranch configured.
const DefaultBranch = "main"

// IsInsideWorkTree reports whether dir is inside a git working tree.
func IsInsideWorkTree(ctx context.Context, dir string) bool {
	out, err := runGit(ctx, dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// isInsideMercurial reports whether dir is inside a Mercurial repository.
func isInsideMercurial(ctx context.Context, dir string) bool {
	if _, err := exec.LookPath("hg"); err != nil {
		return false
	}
	cmd := exec.CommandContext(ctx, "hg", "--cwd", dir, "root")
	return cmd.Run() == nil
}

func hasDefaultBranchConfig(ctx context.Context, dir string) bool {
	_, err := runGit(ctx, dir, "config", "init.defaultBranch")
	return err == nil
}

// InitRepo initializes a git repository in dir unless dir already lives in a
// git or Mercurial work tree. When git has no init.defaultBranch configured the
// new repository is switched to DefaultBranch. If any step fails after the
// repository was created, the partial .git directory is removed.
func InitRepo(ctx context.Context, dir string) (InitResult, error) {
	if err := ensureGit(); err != nil {
		return InitExisting, err
	}
	if IsInsideWorkTree(ctx, dir) || isInsideMercurial(ctx, dir) {
		return InitExisting, nil
	}

	if _, err := runGit(ctx, dir, "init"); err != nil {
		return InitCreated, fmt.Errorf("initializing repository: %w", err)
	}

	if !hasDefaultBranchConfig(ctx, dir) {
		if _, err := runGit(ctx, dir, "checkout", "-b", DefaultBranch); err != nil {
			_ = os.RemoveAll(filepath.Join(dir, ".git"))
			return InitCreated, fmt.Errorf("creating %s branch: %w", DefaultBranch, err)
		}
	}
	return InitCreated, nil
}

// CommitAll stages every file in dir and records a commit with message.
func CommitAll(ctx context.Context, dir, message string) error {
	if _, err := runGit(ctx, dir, "add", "-A"); err != nil {
		return fmt.Errorf("staging files: %w", err)
	}
	if _, err := runGit(ctx, dir, "commit", "-m", message); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}
