package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog"
	"github.com/wsgen-labs/wsgen/internal/artifact"
	"github.com/wsgen-labs/wsgen/internal/gitx"
	"github.com/wsgen-labs/wsgen/internal/prompt"
	"github.com/wsgen-labs/wsgen/internal/register"
	"github.com/wsgen-labs/wsgen/internal/scaffold"
	"github.com/wsgen-labs/wsgen/internal/submodule"
	"github.com/wsgen-labs/wsgen/internal/workspace"
)

// Commit messages for the initial commit.
const (
	commitWithSubmodules = "Initial commit: workspace structure, config files, and submodules setup"
	commitPlain          = "Initial commit: workspace structure and config files"
)

// Options controls a single Create run.
type Options struct {
	// Path is the project directory, absolute or relative to the working directory.
	Path string
	// URLs registers these submodules without prompting when non-empty.
	URLs []string
	// NoSubmodules skips registration entirely.
	NoSubmodules bool
	// NoGit skips repository initialization and the initial commit.
	NoGit    bool
	Scaffold scaffold.Options
	Artifact artifact.Options
}

// Result describes a created project.
type Result struct {
	Name     string
	Path     string
	Entries  []submodule.Entry
	Keys     *submodule.KeyTable
	Files    []string
	Warnings []string
	// Workspace is the descriptor file name, empty when none was produced.
	Workspace      string
	GitInitialized bool
	Committed      bool
}

// Creator wires the collaborators of the create workflow.
type Creator struct {
	Prompter prompt.Prompter
	// Checker verifies submodule access. It is ignored when git is missing.
	Checker gitx.Checker
	Logger  zerolog.Logger
	// Writer receives the generated artifacts; nil means the real filesystem.
	Writer artifact.Writer
	// GitAvailable reports whether git can be used; nil means gitx.Available.
	GitAvailable func() bool
}

func (c *Creator) gitAvailable() bool {
	if c.GitAvailable != nil {
		return c.GitAvailable()
	}
	return gitx.Available()
}

// Create builds a project at opts.Path. Submodules are registered before
// anything is written, so a cancelled registration leaves no files behind and
// returns register.ErrCancelled.
func (c *Creator) Create(ctx context.Context, opts Options) (*Result, error) {
	root, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", opts.Path, err)
	}
	name := filepath.Base(root)
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := EnsureWritable(root); err != nil {
		return nil, err
	}
	if err := CheckEmpty(root); err != nil {
		return nil, err
	}

	res := &Result{Name: name, Path: root}
	hasGit := c.gitAvailable()

	entries, err := c.register(ctx, opts, hasGit)
	if err != nil {
		return nil, err
	}
	res.Entries = entries

	c.Logger.Info().Str("path", root).Msg("Creating a new workspace")
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", root, err)
	}

	sres, err := scaffold.Generate(scaffold.NewData(name), root, opts.Scaffold)
	if err != nil {
		return nil, fmt.Errorf("copying template: %w", err)
	}
	res.Files = append(res.Files, sres.Files...)
	res.Warnings = append(res.Warnings, sres.Warnings...)

	bundle, err := artifact.Generate(name, entries, opts.Artifact)
	if err != nil {
		return nil, err
	}
	res.Keys = bundle.Keys
	written, err := artifact.Write(root, bundle, c.Writer)
	for _, f := range written {
		if !slices.Contains(res.Files, f) {
			res.Files = append(res.Files, f)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("writing configuration files: %w", err)
	}
	for _, col := range bundle.Keys.Collisions() {
		res.Warnings = append(res.Warnings, "Env key collision "+col.String())
	}

	if _, err := scaffold.EnsureIgnored(root, artifact.EnvFile); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Could not add %s to .gitignore: %v", artifact.EnvFile, err))
	}

	ws, err := workspace.Apply(root, name, entries, c.Writer)
	switch {
	case err != nil:
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("Could not prepare %s: %v. You may need to configure it manually.", workspace.FileName(name), err))
	case !ws.Skipped:
		res.Workspace = ws.File
		res.Files = slices.DeleteFunc(res.Files, func(f string) bool { return f == workspace.TemplateFile })
		res.Files = append(res.Files, ws.File)
	}

	for _, w := range res.Warnings {
		c.Logger.Warn().Msg(w)
	}

	if opts.NoGit {
		return res, nil
	}
	if !hasGit {
		c.Logger.Warn().Msg("Git is not available, skipping repository initialization.")
		return res, nil
	}
	c.initGit(ctx, res)
	return res, nil
}

func (c *Creator) register(ctx context.Context, opts Options, hasGit bool) ([]submodule.Entry, error) {
	if opts.NoSubmodules {
		return nil, nil
	}
	checker := c.Checker
	if !hasGit {
		checker = nil
	}
	r := &register.Registrar{Prompter: c.Prompter, Checker: checker, Logger: c.Logger}
	if len(opts.URLs) > 0 {
		return r.RegisterURLs(ctx, opts.URLs)
	}
	if c.Prompter == nil {
		return nil, errors.New("no prompter configured for interactive registration")
	}
	return r.Run(ctx)
}

func (c *Creator) initGit(ctx context.Context, res *Result) {
	status, err := gitx.InitRepo(ctx, res.Path)
	if err != nil {
		c.Logger.Warn().Err(err).Msg("Failed to initialize Git in the project. You may need to do this manually.")
		return
	}
	res.GitInitialized = status == gitx.InitCreated
	if status == gitx.InitExisting {
		c.Logger.Debug().Msg("project is inside an existing repository")
	}
	if !res.GitInitialized || len(res.Entries) > 0 {
		return
	}
	if err := gitx.CommitAll(ctx, res.Path, commitMessage(res.Entries)); err != nil {
		c.Logger.Warn().Err(err).Msg("Could not create the initial commit.")
		return
	}
	res.Committed = true
	c.Logger.Info().Msg("Initialized a git repository with an initial commit.")
}

func commitMessage(entries []submodule.Entry) string {
	if len(entries) > 0 {
		return commitWithSubmodules
	}
	return commitPlain
}
