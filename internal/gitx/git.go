package gitx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrGitNotFound is returned when the git binary is not on PATH.
var ErrGitNotFound = errors.New("git is required but not found in PATH")

// binary is the git executable name; tests point it at a stub.
var binary = "git"

// Available reports whether git can be found on PATH.
func Available() bool {
	_, err := exec.LookPath(binary)
	return err == nil
}

// ensureGit checks that git is available on PATH.
func ensureGit() error {
	if !Available() {
		return ErrGitNotFound
	}
	return nil
}

// runGit executes git in dir and returns trimmed combined output.
func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	output := strings.TrimSpace(out.String())
	if err != nil {
		if output != "" {
			return output, fmt.Errorf("git %s: %w\n%s", strings.Join(args, " "), err, output)
		}
		return output, fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return output, nil
}
