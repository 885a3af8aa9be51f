package scaffold

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func TestGenerateEmbedded(t *testing.T) {
	outDir := t.TempDir()

	result, err := Generate(NewData("demo"), outDir, Options{})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	expectedFiles := []string{".gitignore", ".gitmodules.template", "README.md", "templates.code-workspace"}
	assertFiles(t, result, expectedFiles)

	readme := readGenerated(t, outDir, "README.md")
	assertContains(t, readme, "# demo")
	assertContains(t, readme, "demo.code-workspace")
	assertContains(t, readme, "wsgen verify")

	// The workspace template keeps its token for the workspace step.
	ws := readGenerated(t, outDir, "templates.code-workspace")
	assertContains(t, ws, "<project-name>")

	if _, err := os.Stat(filepath.Join(outDir, GitignoreTemplate)); !os.IsNotExist(err) {
		t.Errorf("%s should have been renamed", GitignoreTemplate)
	}
}

func TestGenerateFromDirectory(t *testing.T) {
	srcDir := t.TempDir()
	writeFile(t, srcDir, "docs/intro.md.tmpl", "Welcome to {{.Name}}\n")
	writeFile(t, srcDir, "gitignore.template", "dist/\n")
	writeFile(t, srcDir, "scratch/notes.txt", "private\n")
	writeFile(t, srcDir, "keep.bak", "old\n")

	outDir := t.TempDir()
	result, err := Generate(NewData("demo"), outDir, Options{
		Dir:     srcDir,
		Exclude: []string{"scratch", "*.bak"},
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	assertFiles(t, result, []string{".gitignore", "docs/intro.md"})
	if got := readGenerated(t, outDir, "docs/intro.md"); got != "Welcome to demo\n" {
		t.Errorf("intro.md = %q", got)
	}
	if _, err := os.Stat(filepath.Join(outDir, "scratch")); !os.IsNotExist(err) {
		t.Error("excluded directory was copied")
	}
}

func TestGenerateErrors(t *testing.T) {
	t.Run("missing template dir", func(t *testing.T) {
		_, err := Generate(NewData("demo"), t.TempDir(), Options{Dir: filepath.Join(t.TempDir(), "nope")})
		if err == nil {
			t.Fatal("expected error for missing template dir")
		}
	})

	t.Run("bad glob", func(t *testing.T) {
		_, err := Generate(NewData("demo"), t.TempDir(), Options{Exclude: []string{"[unclosed"}})
		if err == nil {
			t.Fatal("expected error for invalid exclude pattern")
		}
	})

	t.Run("bad template", func(t *testing.T) {
		srcDir := t.TempDir()
		writeFile(t, srcDir, "broken.tmpl", "{{.Name")
		_, err := Generate(NewData("demo"), t.TempDir(), Options{Dir: srcDir})
		if err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestGenerateEmptyTreeWarns(t *testing.T) {
	result, err := Generate(NewData("demo"), t.TempDir(), Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("warnings = %v, want one", result.Warnings)
	}
}

func TestEnsureIgnored(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "node_modules/\n.env")

	added, err := EnsureIgnored(dir, ".env", ".env.local")
	if err != nil {
		t.Fatalf("EnsureIgnored() error: %v", err)
	}
	if len(added) != 1 || added[0] != ".env.local" {
		t.Errorf("added = %v, want [.env.local]", added)
	}
	if got := readGenerated(t, dir, ".gitignore"); got != "node_modules/\n.env\n.env.local\n" {
		t.Errorf(".gitignore = %q", got)
	}

	added, err = EnsureIgnored(dir, ".env")
	if err != nil || added != nil {
		t.Errorf("second call added %v, err %v", added, err)
	}
}

func TestEnsureIgnoredCreatesFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := EnsureIgnored(dir, ".env"); err != nil {
		t.Fatal(err)
	}
	if got := readGenerated(t, dir, ".gitignore"); got != ".env\n" {
		t.Errorf(".gitignore = %q", got)
	}
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func assertFiles(t *testing.T, result *Result, expected []string) {
	t.Helper()
	got := append([]string(nil), result.Files...)
	sort.Strings(got)
	sort.Strings(expected)
	if strings.Join(got, ",") != strings.Join(expected, ",") {
		t.Errorf("Files = %v, want %v", got, expected)
	}
}

func readGenerated(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q", substr)
	}
}
