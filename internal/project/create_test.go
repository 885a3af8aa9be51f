package project

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wsgen-labs/wsgen/internal/artifact"
	"github.com/wsgen-labs/wsgen/internal/gitx"
	"github.com/wsgen-labs/wsgen/internal/prompt"
	"github.com/wsgen-labs/wsgen/internal/register"
	"github.com/wsgen-labs/wsgen/internal/workspace"
)

type answer struct {
	value string
	err   error
}

type scriptedPrompter struct {
	t       *testing.T
	answers []answer
}

func (p *scriptedPrompter) next() (string, error) {
	p.t.Helper()
	require.NotEmpty(p.t, p.answers, "prompter ran out of scripted answers")
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a.value, a.err
}

func (p *scriptedPrompter) Text(context.Context, string, string, prompt.ValidateFunc) (string, error) {
	return p.next()
}

func (p *scriptedPrompter) Select(context.Context, string, []prompt.Choice) (string, error) {
	return p.next()
}

type allReachable struct{}

func (allReachable) Check(context.Context, string) (gitx.Reachability, error) {
	return gitx.Reachable, nil
}

func newCreator(t *testing.T, answers ...answer) (*Creator, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Creator{
		Prompter:     &scriptedPrompter{t: t, answers: answers},
		Checker:      allReachable{},
		Logger:       zerolog.New(&buf),
		GitAvailable: func() bool { return true },
	}, &buf
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCreateWithInteractiveSubmodule(t *testing.T) {
	root := filepath.Join(t.TempDir(), "my-app")
	c, _ := newCreator(t,
		answer{value: "git@github.com:org/service.git"},
		answer{value: string(register.ContinueStop)},
	)

	res, err := c.Create(context.Background(), Options{Path: root, NoGit: true})
	require.NoError(t, err)

	assert.Equal(t, "my-app", res.Name)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "service", res.Entries[0].Name)
	assert.Equal(t, "my-app.code-workspace", res.Workspace)
	assert.False(t, res.GitInitialized)

	env := readFile(t, filepath.Join(root, artifact.EnvFile))
	assert.Contains(t, env, "SGM_SERVICE_URL=git@github.com:org/service.git")

	manifest := readFile(t, filepath.Join(root, artifact.ManifestFile))
	assert.Contains(t, manifest, `[submodule "service"]`)

	info, err := os.Stat(filepath.Join(root, artifact.SetupScriptFile))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0100)

	ws := readFile(t, filepath.Join(root, "my-app.code-workspace"))
	assert.Contains(t, ws, `"path": "./service"`)
	assert.NoFileExists(t, filepath.Join(root, workspace.TemplateFile))

	assert.Contains(t, readFile(t, filepath.Join(root, ".gitignore")), ".env")
	assert.FileExists(t, filepath.Join(root, "README.md"))
}

func TestCreateWithoutSubmodules(t *testing.T) {
	root := filepath.Join(t.TempDir(), "plain")
	c, _ := newCreator(t)

	res, err := c.Create(context.Background(), Options{Path: root, NoSubmodules: true, NoGit: true})
	require.NoError(t, err)
	assert.Empty(t, res.Entries)

	assert.Contains(t, readFile(t, filepath.Join(root, artifact.EnvFile)), "# No submodules configured.")
	// The scaffolded template stays in place when nothing was registered.
	assert.Contains(t, readFile(t, filepath.Join(root, artifact.ManifestFile)), "# Submodules of this workspace")
}

func TestCreateFromURLList(t *testing.T) {
	root := filepath.Join(t.TempDir(), "listed")
	c, _ := newCreator(t)
	c.Prompter = nil

	res, err := c.Create(context.Background(), Options{
		Path:  root,
		URLs:  []string{"https://github.com/org/api.git", "https://github.com/org/web.git"},
		NoGit: true,
	})
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, "api", res.Entries[0].Name)
	assert.Equal(t, "web", res.Entries[1].Name)
}

func TestCreateCancelledWritesNothing(t *testing.T) {
	root := filepath.Join(t.TempDir(), "cancelled")
	c, _ := newCreator(t, answer{err: prompt.ErrInterrupted})

	_, err := c.Create(context.Background(), Options{Path: root, NoGit: true})
	assert.ErrorIs(t, err, register.ErrCancelled)
	assert.NoDirExists(t, root)
}

func TestCreateRejectsNonEmptyDir(t *testing.T) {
	root := filepath.Join(t.TempDir(), "busy")
	touch(t, filepath.Join(root, "main.go"))
	c, _ := newCreator(t)

	_, err := c.Create(context.Background(), Options{Path: root, NoSubmodules: true, NoGit: true})
	assert.ErrorIs(t, err, ErrNotEmpty)
}

func TestCreateRejectsInvalidName(t *testing.T) {
	c, _ := newCreator(t)
	_, err := c.Create(context.Background(), Options{Path: filepath.Join(t.TempDir(), "MyApp"), NoGit: true})
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestCreateReportsKeyCollisions(t *testing.T) {
	root := filepath.Join(t.TempDir(), "collide")
	c, _ := newCreator(t)

	res, err := c.Create(context.Background(), Options{
		Path:  root,
		URLs:  []string{"https://github.com/a/repo.git", "https://github.com/b/Repo.git"},
		NoGit: true,
	})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "SGM_REPO_2_URL")
	assert.Contains(t, readFile(t, filepath.Join(root, artifact.EnvFile)), "SGM_REPO_2_URL=https://github.com/b/Repo.git")
}

func TestCreateWithoutGitSkipsChecksAndInit(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nogit")
	c, logs := newCreator(t,
		answer{value: "https://github.com/org/svc.git"},
		answer{value: string(register.ContinueStop)},
	)
	c.GitAvailable = func() bool { return false }

	res, err := c.Create(context.Background(), Options{Path: root})
	require.NoError(t, err)
	assert.Len(t, res.Entries, 1)
	assert.False(t, res.GitInitialized)
	assert.Contains(t, logs.String(), "skipping access check")
	assert.Contains(t, logs.String(), "skipping repository initialization")
}

func TestCreateInitializesGitAndCommits(t *testing.T) {
	if !gitx.Available() {
		t.Skip("git not installed")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")

	root := filepath.Join(t.TempDir(), "committed")
	c, _ := newCreator(t)

	res, err := c.Create(context.Background(), Options{Path: root, NoSubmodules: true})
	require.NoError(t, err)
	assert.True(t, res.GitInitialized)
	assert.True(t, res.Committed)
	assert.DirExists(t, filepath.Join(root, ".git"))
}

func TestCommitMessage(t *testing.T) {
	assert.Equal(t, commitPlain, commitMessage(nil))
}

func TestCreateListsEachFileOnce(t *testing.T) {
	root := filepath.Join(t.TempDir(), "listed-once")
	c, _ := newCreator(t)

	res, err := c.Create(context.Background(), Options{
		Path:  root,
		URLs:  []string{"https://github.com/org/api.git"},
		NoGit: true,
	})
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, f := range res.Files {
		assert.False(t, seen[f], "duplicate file %s", f)
		seen[f] = true
	}
	assert.True(t, seen[artifact.ManifestFile])
	assert.True(t, seen["listed-once.code-workspace"])
	assert.False(t, seen[workspace.TemplateFile])
}
