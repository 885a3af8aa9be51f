package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// ErrNotEmpty is returned when the target directory holds files that the
// template could overwrite.
var ErrNotEmpty = errors.New("directory contains files that could conflict")

// tolerated lists files that may already exist in a new project directory.
var tolerated = func() []glob.Glob {
	patterns := []string{
		".DS_Store",
		".git",
		".gitattributes",
		".idea",
		".npmignore",
		".travis.yml",
		"LICENSE",
		"Thumbs.db",
		"docs",
		"mkdocs.yml",
		"npm-debug.log*",
		"yarn-debug.log*",
		"yarn-error.log*",
		"*.iml",
	}
	globs := make([]glob.Glob, len(patterns))
	for i, p := range patterns {
		globs[i] = glob.MustCompile(p)
	}
	return globs
}()

func isTolerated(name string) bool {
	for _, g := range tolerated {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Conflicts returns the entries of dir that are not tolerated in a new
// project. A missing directory has no conflicts.
func Conflicts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var conflicts []string
	for _, e := range entries {
		if isTolerated(e.Name()) {
			continue
		}
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		conflicts = append(conflicts, name)
	}
	sort.Strings(conflicts)
	return conflicts, nil
}

// CheckEmpty fails with ErrNotEmpty when dir holds conflicting files.
func CheckEmpty(dir string) error {
	conflicts, err := Conflicts(dir)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return fmt.Errorf("%w: %s: %s", ErrNotEmpty, dir, strings.Join(conflicts, ", "))
	}
	return nil
}

// EnsureWritable creates dir's parent if needed and checks that it accepts
// new files.
func EnsureWritable(dir string) error {
	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return fmt.Errorf("creating parent directory %s: %w", parent, err)
	}
	f, err := os.CreateTemp(parent, ".write-check-*")
	if err != nil {
		return fmt.Errorf("the application path %s is not writable: %w", parent, err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
