//go:build integration

package integration_test

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/wsgen-labs/wsgen/internal/artifact"
	"github.com/wsgen-labs/wsgen/internal/submodule"
)

// testEnv isolates git from the user's configuration.
type testEnv struct {
	HomeDir    string
	ProjectDir string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: filepath.Join(t.TempDir(), "demo"),
	}
	t.Setenv("HOME", env.HomeDir)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Integration")
	t.Setenv("GIT_AUTHOR_EMAIL", "integration@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Integration")
	t.Setenv("GIT_COMMITTER_EMAIL", "integration@example.com")
	// Submodules cloned from local paths need the file transport.
	t.Setenv("GIT_CONFIG_COUNT", "1")
	t.Setenv("GIT_CONFIG_KEY_0", "protocol.file.allow")
	t.Setenv("GIT_CONFIG_VALUE_0", "always")
	t.Setenv("NO_COLOR", "1")

	if err := os.MkdirAll(env.ProjectDir, 0755); err != nil {
		t.Fatal(err)
	}
	return env
}

func git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
	return string(out)
}

// bareRepo creates a bare repository with one commit on main and returns its path.
func bareRepo(t *testing.T, name string) string {
	t.Helper()
	work := t.TempDir()
	git(t, work, "init")
	git(t, work, "checkout", "-b", "main")
	writeFile(t, filepath.Join(work, "README.md"), "# "+name+"\n")
	git(t, work, "add", ".")
	git(t, work, "commit", "-m", "initial")

	bare := filepath.Join(t.TempDir(), name+".git")
	git(t, work, "clone", "--bare", work, bare)
	return bare
}

// writeArtifacts generates and writes the artifacts for entries into dir.
func writeArtifacts(t *testing.T, dir string, entries []submodule.Entry) *artifact.Bundle {
	t.Helper()
	b, err := artifact.Generate(filepath.Base(dir), entries, artifact.DefaultOptions())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := artifact.Write(dir, b, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return b
}

// runScript executes the setup script with sh and returns its exit code and output.
func runScript(t *testing.T, dir string) (int, string) {
	t.Helper()
	cmd := exec.Command("sh", filepath.Join(dir, artifact.SetupScriptFile))
	cmd.Dir = t.TempDir()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0, out.String()
	case errors.As(err, &exitErr):
		return exitErr.ExitCode(), out.String()
	default:
		t.Fatalf("running script: %v", err)
		return -1, ""
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory", path)
	}
}
