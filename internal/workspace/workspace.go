package workspace

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/wsgen-labs/wsgen/internal/artifact"
	"github.com/wsgen-labs/wsgen/internal/schema"
	"github.com/wsgen-labs/wsgen/internal/submodule"
)

// TemplateFile is the descriptor shipped in the project template.
const TemplateFile = "templates.code-workspace"

// ProjectToken is replaced by the project name everywhere in the template.
const ProjectToken = "<project-name>"

//go:embed workspace.schema.json
var schemaBytes []byte

var descriptorSchema = schema.MustCompile("workspace.schema.json", schemaBytes)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FileName returns the final descriptor name for project.
func FileName(project string) string {
	return project + ".code-workspace"
}

// Patch rewrites a descriptor for project and entries. The root folder always
// comes first with path "."; each submodule gets its own folder and an ignore
// entry on the root. Patching its own output again changes nothing.
func Patch(doc []byte, project string, entries []submodule.Entry) ([]byte, error) {
	text := strings.ReplaceAll(string(doc), ProjectToken, project)

	var ws map[string]any
	if err := json.Unmarshal([]byte(text), &ws); err != nil {
		return nil, fmt.Errorf("parsing workspace descriptor: %w", err)
	}
	if ws == nil {
		ws = map[string]any{}
	}

	folders, _ := ws["folders"].([]any)
	var root map[string]any
	if len(folders) > 0 {
		root, _ = folders[0].(map[string]any)
	}
	if root == nil {
		root = map[string]any{}
		folders = append([]any{root}, folders...)
	}
	root["name"] = project
	root["path"] = "."

	ignore := stringList(root["ignore"])
	for _, e := range entries {
		path := "./" + e.Name
		if !hasFolder(folders, path) {
			folders = append(folders, map[string]any{"name": e.Name, "path": path})
		}
		if pattern := e.Name + "/"; !contains(ignore, pattern) {
			ignore = append(ignore, pattern)
		}
	}
	root["ignore"] = ignore
	ws["folders"] = folders

	res, err := descriptorSchema.Validate(ws)
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("workspace descriptor: %w", err)
	}

	out, err := json.MarshalIndent(ws, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("encoding workspace descriptor: %w", err)
	}
	return append(out, '\n'), nil
}

func stringList(v any) []any {
	items, ok := v.([]any)
	if !ok {
		return []any{}
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func contains(list []any, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func hasFolder(folders []any, path string) bool {
	want := filepath.ToSlash(filepath.Clean(path))
	for _, f := range folders {
		m, ok := f.(map[string]any)
		if !ok {
			continue
		}
		if p, ok := m["path"].(string); ok && filepath.ToSlash(filepath.Clean(p)) == want {
			return true
		}
	}
	return false
}

// Result describes what Apply did.
type Result struct {
	// Skipped is true when the project has no template descriptor.
	Skipped bool
	File    string
}

// Apply patches root/templates.code-workspace into root/<project>.code-workspace
// and removes the template. Errors are meant to be reported as warnings.
func Apply(root, project string, entries []submodule.Entry, w artifact.Writer) (*Result, error) {
	if w == nil {
		w = artifact.OSWriter{}
	}
	src := filepath.Join(root, TemplateFile)
	final := FileName(project)

	if _, err := w.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return &Result{Skipped: true}, nil
	} else if err != nil {
		return nil, fmt.Errorf("checking %s: %w", TemplateFile, err)
	}

	doc, err := w.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", TemplateFile, err)
	}
	patched, err := Patch(doc, project, entries)
	if err != nil {
		return nil, fmt.Errorf("processing %s: %w", TemplateFile, err)
	}
	if err := w.WriteFile(filepath.Join(root, final), patched, 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", final, err)
	}
	if final != TemplateFile {
		if err := w.Remove(src); err != nil {
			return &Result{File: final}, fmt.Errorf("removing %s: %w", TemplateFile, err)
		}
	}
	return &Result{File: final}, nil
}
