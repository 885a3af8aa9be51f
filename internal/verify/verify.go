package verify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/wsgen-labs/wsgen/internal/artifact"
	"github.com/wsgen-labs/wsgen/internal/gitx"
	"github.com/wsgen-labs/wsgen/internal/platform"
	"github.com/wsgen-labs/wsgen/internal/workspace"
)

// Status is the outcome of one check.
type Status int

const (
	StatusOK Status = iota
	StatusInfo
	StatusMissing
	StatusFail
)

// Tag returns the fixed-width label printed in front of a check.
func (s Status) Tag() string {
	switch s {
	case StatusOK:
		return "[ OK ]"
	case StatusInfo:
		return "[INFO]"
	case StatusMissing:
		return "[MISS]"
	default:
		return "[FAIL]"
	}
}

// Check is one line of the report.
type Check struct {
	Status  Status
	Subject string
	Detail  string
}

// Report is the result of verifying one project.
type Report struct {
	Root   string
	Pairs  []Pair
	Checks []Check
}

// Failed reports whether any check failed. Missing optional files do not count.
func (r *Report) Failed() bool {
	for _, c := range r.Checks {
		if c.Status == StatusFail {
			return true
		}
	}
	return false
}

// Print writes the report in the doctor layout.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Verifying %s:\n", r.Root)
	for _, c := range r.Checks {
		if c.Detail == "" {
			fmt.Fprintf(w, "  %s %s\n", c.Status.Tag(), c.Subject)
			continue
		}
		fmt.Fprintf(w, "  %s %s: %s\n", c.Status.Tag(), c.Subject, c.Detail)
	}
}

func (r *Report) add(status Status, subject, format string, args ...any) {
	r.Checks = append(r.Checks, Check{Status: status, Subject: subject, Detail: fmt.Sprintf(format, args...)})
}

// Project verifies the artifacts under root and, when root is a git work tree,
// the state of the submodules the setup script has already added. It returns
// an error only when the setup script cannot be read.
func Project(ctx context.Context, root string) (*Report, error) {
	r := &Report{Root: root}

	scriptPath := filepath.Join(root, artifact.SetupScriptFile)
	script, err := os.ReadFile(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", artifact.SetupScriptFile, err)
	}
	if info, err := os.Stat(scriptPath); err == nil && !platform.IsExecutable(info) {
		r.add(StatusFail, artifact.SetupScriptFile, "not executable (run chmod +x %s)", artifact.SetupScriptFile)
	}
	pairs, err := parseScript(script)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", artifact.SetupScriptFile, err)
	}
	r.Pairs = pairs
	if len(pairs) == 0 {
		r.add(StatusInfo, artifact.SetupScriptFile, "no submodules configured")
	} else {
		r.add(StatusOK, artifact.SetupScriptFile, "%d submodule(s)", len(pairs))
	}

	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = p.Key
	}

	r.checkEnv(artifact.EnvFile, keys, true)
	r.checkEnv(artifact.EnvExampleFile, keys, false)
	r.checkManifest(pairs)
	r.checkWorkspace(pairs)
	r.checkSubmodules(ctx, pairs)
	return r, nil
}

func (r *Report) read(name string) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(r.Root, name))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		r.add(StatusMissing, name, "file not found")
		return nil, false
	case err != nil:
		r.add(StatusFail, name, "%v", err)
		return nil, false
	}
	return data, true
}

func (r *Report) checkEnv(name string, keys []string, requireValues bool) {
	data, ok := r.read(name)
	if !ok {
		return
	}
	env, err := parseEnv(data)
	if err != nil {
		r.add(StatusFail, name, "%v", err)
		return
	}

	var present []string
	for k := range env {
		present = append(present, k)
	}
	missing, extra := diff(keys, present)

	var problems []string
	if len(missing) > 0 {
		problems = append(problems, "missing "+strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		problems = append(problems, "not used by the setup script "+strings.Join(extra, ", "))
	}
	if requireValues {
		var empty []string
		for _, k := range keys {
			if v, ok := env[k]; ok && v == "" {
				empty = append(empty, k)
			}
		}
		if len(empty) > 0 {
			problems = append(problems, "empty "+strings.Join(empty, ", "))
		}
	}
	r.result(name, problems)
}

func (r *Report) checkManifest(pairs []Pair) {
	data, ok := r.read(artifact.ManifestFile)
	if !ok {
		return
	}
	declared, err := parseManifest(data)
	if err != nil {
		r.add(StatusFail, artifact.ManifestFile, "%v", err)
		return
	}
	if len(declared) == 0 && len(pairs) == 0 {
		r.add(StatusInfo, artifact.ManifestFile, "template only")
		return
	}

	var problems []string
	missing, extra := diff(pairStrings(pairs), pairStrings(declared))
	if len(missing) > 0 {
		problems = append(problems, "missing "+strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		problems = append(problems, "unexpected "+strings.Join(extra, ", "))
	}
	if len(problems) == 0 && !slices.Equal(pairs, declared) {
		problems = append(problems, "order differs from the setup script")
	}
	r.result(artifact.ManifestFile, problems)
}

func (r *Report) checkWorkspace(pairs []Pair) {
	name := workspace.FileName(filepath.Base(r.Root))
	data, err := os.ReadFile(filepath.Join(r.Root, name))
	if errors.Is(err, fs.ErrNotExist) {
		r.add(StatusInfo, name, "no workspace descriptor")
		return
	}
	if err != nil {
		r.add(StatusFail, name, "%v", err)
		return
	}
	folders, ignore, err := parseWorkspace(data)
	if err != nil {
		r.add(StatusFail, name, "%v", err)
		return
	}

	var problems []string
	var noFolder, notIgnored []string
	for _, p := range pairs {
		if !slices.Contains(folders, "./"+p.Name) {
			noFolder = append(noFolder, p.Name)
		}
		if !slices.Contains(ignore, p.Name+"/") {
			notIgnored = append(notIgnored, p.Name)
		}
	}
	if len(noFolder) > 0 {
		problems = append(problems, "no folder for "+strings.Join(noFolder, ", "))
	}
	if len(notIgnored) > 0 {
		problems = append(problems, "root folder does not ignore "+strings.Join(notIgnored, ", "))
	}
	r.result(name, problems)
}

func (r *Report) checkSubmodules(ctx context.Context, pairs []Pair) {
	if len(pairs) == 0 || !gitx.Available() || !gitx.IsInsideWorkTree(ctx, r.Root) {
		return
	}
	states, err := gitx.SubmoduleStatus(ctx, r.Root)
	if err != nil {
		r.add(StatusFail, "git submodule status", "%v", err)
		return
	}

	var pending []string
	for _, p := range pairs {
		state, ok := states[p.Name]
		switch {
		case !ok:
			pending = append(pending, p.Name)
		case state == gitx.SubmoduleClean:
			r.add(StatusOK, p.Name, "submodule initialized")
		case state == gitx.SubmoduleUninitialized:
			r.add(StatusMissing, p.Name, "submodule not initialized (run git submodule update --init)")
		default:
			r.add(StatusInfo, p.Name, "submodule %s", state)
		}
	}
	if len(pending) > 0 {
		r.add(StatusInfo, "submodules", "not added yet: %s (run ./%s)",
			strings.Join(pending, ", "), artifact.SetupScriptFile)
	}
}

func (r *Report) result(subject string, problems []string) {
	if len(problems) == 0 {
		r.add(StatusOK, subject, "consistent")
		return
	}
	r.add(StatusFail, subject, "%s", strings.Join(problems, "; "))
}

func pairStrings(pairs []Pair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.Name + " (" + p.Key + ")"
	}
	return out
}

// diff returns the elements of want absent from have and the elements of
// have absent from want, both sorted.
func diff(want, have []string) (missing, extra []string) {
	for _, w := range want {
		if !slices.Contains(have, w) {
			missing = append(missing, w)
		}
	}
	for _, h := range have {
		if !slices.Contains(want, h) {
			extra = append(extra, h)
		}
	}
	slices.Sort(missing)
	slices.Sort(extra)
	return missing, extra
}
