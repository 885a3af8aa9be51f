package workspace

import (
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wsgen-labs/wsgen/internal/submodule"
)

const template = `{
	"folders": [
		{ "name": "<project-name>", "path": ".", "ignore": ["node_modules/"] }
	],
	"settings": { "window.title": "<project-name> workspace" }
}`

type folder struct {
	Name   string   `json:"name"`
	Path   string   `json:"path"`
	Ignore []string `json:"ignore"`
}

type descriptor struct {
	Folders  []folder       `json:"folders"`
	Settings map[string]any `json:"settings"`
}

func decode(t *testing.T, data []byte) descriptor {
	t.Helper()
	var d descriptor
	require.NoError(t, jsoniter.Unmarshal(data, &d))
	return d
}

var twoEntries = []submodule.Entry{
	{URL: "git@host:org/api.git", Name: "api"},
	{URL: "https://host/org/web.git", Name: "web"},
}

func TestPatch(t *testing.T) {
	out, err := Patch([]byte(template), "demo", twoEntries)
	require.NoError(t, err)

	d := decode(t, out)
	require.Len(t, d.Folders, 3)
	assert.Equal(t, folder{Name: "demo", Path: ".", Ignore: []string{"node_modules/", "api/", "web/"}}, d.Folders[0])
	assert.Equal(t, folder{Name: "api", Path: "./api"}, d.Folders[1])
	assert.Equal(t, folder{Name: "web", Path: "./web"}, d.Folders[2])
	assert.Equal(t, "demo workspace", d.Settings["window.title"])
	assert.Contains(t, string(out), "\n\t\"folders\"")
}

func TestPatchIsIdempotent(t *testing.T) {
	once, err := Patch([]byte(template), "demo", twoEntries)
	require.NoError(t, err)
	twice, err := Patch(once, "demo", twoEntries)
	require.NoError(t, err)

	assert.Equal(t, string(once), string(twice))
	d := decode(t, twice)
	assert.Len(t, d.Folders, 3)
	assert.Equal(t, []string{"node_modules/", "api/", "web/"}, d.Folders[0].Ignore)
}

func TestPatchCreatesRootFolder(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no folders", `{"settings": {}}`},
		{"empty folders", `{"folders": []}`},
		{"folders not an array", `{"folders": "nope"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Patch([]byte(tt.doc), "demo", twoEntries[:1])
			require.NoError(t, err)

			d := decode(t, out)
			require.Len(t, d.Folders, 2)
			assert.Equal(t, ".", d.Folders[0].Path)
			assert.Equal(t, "demo", d.Folders[0].Name)
			assert.Equal(t, []string{"api/"}, d.Folders[0].Ignore)
		})
	}
}

func TestPatchForcesRootPath(t *testing.T) {
	out, err := Patch([]byte(`{"folders": [{"name": "x", "path": "src"}]}`), "demo", nil)
	require.NoError(t, err)

	d := decode(t, out)
	require.Len(t, d.Folders, 1)
	assert.Equal(t, folder{Name: "demo", Path: ".", Ignore: []string{}}, d.Folders[0])
}

func TestPatchInvalidJSON(t *testing.T) {
	_, err := Patch([]byte(`{"folders": [`), "demo", nil)
	assert.Error(t, err)
}

func TestPatchRejectsInvalidFolder(t *testing.T) {
	_, err := Patch([]byte(`{"folders": [{"path": "."}, {"name": "x", "path": ""}]}`), "demo", nil)
	assert.ErrorContains(t, err, "/folders/1/path")
}

func TestApply(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, TemplateFile), []byte(template), 0644))

	res, err := Apply(root, "demo", twoEntries, nil)
	require.NoError(t, err)
	assert.Equal(t, "demo.code-workspace", res.File)
	assert.NoFileExists(t, filepath.Join(root, TemplateFile))

	data, err := os.ReadFile(filepath.Join(root, "demo.code-workspace"))
	require.NoError(t, err)
	assert.Len(t, decode(t, data).Folders, 3)
}

func TestApplyWithoutTemplate(t *testing.T) {
	res, err := Apply(t.TempDir(), "demo", twoEntries, nil)
	require.NoError(t, err)
	assert.True(t, res.Skipped)
}

func TestApplyBrokenTemplateKeepsSource(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, TemplateFile), []byte("not json"), 0644))

	_, err := Apply(root, "demo", nil, nil)
	assert.Error(t, err)
	assert.FileExists(t, filepath.Join(root, TemplateFile))
	assert.NoFileExists(t, filepath.Join(root, "demo.code-workspace"))
}
