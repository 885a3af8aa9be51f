package gitx

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage/memory"
)

// Reachability is the outcome of a remote access check.
type Reachability int

const (
	// Unreachable means the check ran and the remote could not be listed.
	Unreachable Reachability = iota
	// Reachable means the remote answered.
	Reachable
	// Unavailable means the checking tool itself could not run.
	Unavailable
)

func (r Reachability) String() string {
	switch r {
	case Reachable:
		return "reachable"
	case Unreachable:
		return "unreachable"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Checker decides whether a remote repository URL can be accessed.
// The call blocks until the underlying tool terminates; the returned error is
// only non-nil when ctx was cancelled.
type Checker interface {
	Check(ctx context.Context, url string) (Reachability, error)
}

// CLIChecker runs `git ls-remote <url>`; exit status 0 means reachable.
type CLIChecker struct{}

// Check implements Checker.
func (CLIChecker) Check(ctx context.Context, url string) (Reachability, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return Unavailable, nil
	}

	cmd := exec.CommandContext(ctx, path, "ls-remote", url)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	err = cmd.Run()
	if err == nil {
		return Reachable, nil
	}
	if ctx.Err() != nil {
		return Unreachable, ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Unreachable, nil
	}
	// The process could not be started at all.
	return Unavailable, nil
}

// GoGitChecker lists the remote in-process with go-git, so it never reports
// Unavailable. SSH URLs authenticate through the running ssh-agent.
type GoGitChecker struct{}

// Check implements Checker.
func (GoGitChecker) Check(ctx context.Context, url string) (Reachability, error) {
	remote := git.NewRemote(memory.NewStorage(), &gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})

	_, err := remote.ListContext(ctx, &git.ListOptions{})
	switch {
	case err == nil:
		return Reachable, nil
	case errors.Is(err, transport.ErrEmptyRemoteRepository):
		// An empty repository still answered.
		return Reachable, nil
	case ctx.Err() != nil:
		return Unreachable, ctx.Err()
	default:
		return Unreachable, nil
	}
}

// NewChecker returns the checker for a configured backend name ("git" or "go-git").
func NewChecker(backend string) Checker {
	if backend == "go-git" {
		return GoGitChecker{}
	}
	return CLIChecker{}
}
