package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/gobwas/glob"
	"github.com/wsgen-labs/wsgen/internal/branding"
)

//go:embed all:templates
var templateFS embed.FS

// GitignoreTemplate is renamed to .gitignore on copy.
const GitignoreTemplate = "gitignore.template"

// Data holds the variables available to .tmpl files.
type Data struct {
	Name string // project name
	Tool string // CLI name, e.g. "wsgen"
	Year int
}

// NewData returns template data for project name.
func NewData(name string) *Data {
	return &Data{
		Name: name,
		Tool: branding.CLIName(),
		Year: time.Now().Year(),
	}
}

// Options selects and filters the template tree.
type Options struct {
	// Dir replaces the embedded tree when non-empty.
	Dir string
	// Exclude holds glob patterns matched against slash-separated relative
	// paths and base names.
	Exclude []string
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// Source returns the template tree for opts.
func Source(opts Options) (fs.FS, error) {
	if opts.Dir == "" {
		return fs.Sub(templateFS, "templates")
	}
	info, err := os.Stat(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template directory %s is not a directory", opts.Dir)
	}
	return os.DirFS(opts.Dir), nil
}

func compileExcludes(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func excluded(globs []glob.Glob, rel string) bool {
	base := path.Base(rel)
	for _, g := range globs {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

// outputName maps a template path to its path in the project.
func outputName(rel string) string {
	dir, base := path.Split(rel)
	switch {
	case base == GitignoreTemplate:
		base = ".gitignore"
	case strings.HasSuffix(base, ".tmpl"):
		base = strings.TrimSuffix(base, ".tmpl")
	}
	return dir + base
}

// Generate copies the template tree into outputDir, which must exist.
// Existing files with the same names are overwritten.
func Generate(data *Data, outputDir string, opts Options) (*Result, error) {
	src, err := Source(opts)
	if err != nil {
		return nil, err
	}
	globs, err := compileExcludes(opts.Exclude)
	if err != nil {
		return nil, err
	}

	result := &Result{OutputDir: outputDir}

	err = fs.WalkDir(src, ".", func(rel string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if excluded(globs, rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		target := filepath.Join(outputDir, filepath.FromSlash(outputName(rel)))
		if d.IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("creating %s: %w", target, err)
			}
			return nil
		}

		content, err := fs.ReadFile(src, rel)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", rel, err)
		}
		if strings.HasSuffix(rel, ".tmpl") {
			if content, err = render(rel, content, data); err != nil {
				return err
			}
		}

		if err := os.WriteFile(target, content, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", target, err)
		}
		result.Files = append(result.Files, outputName(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(result.Files) == 0 {
		result.Warnings = append(result.Warnings, "template tree is empty; no files were copied")
	}
	return result, nil
}

func render(name string, content []byte, data *Data) ([]byte, error) {
	tmpl, err := template.New(path.Base(name)).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
