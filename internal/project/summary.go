package project

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/wsgen-labs/wsgen/internal/artifact"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// CdPath returns the path a user in cwd should cd into: relative when the
// project lives under cwd, absolute otherwise.
func CdPath(cwd, path string) string {
	rel, err := filepath.Rel(cwd, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// PrintSummary writes the closing guidance for res.
func PrintSummary(w io.Writer, res *Result, cwd string) {
	fmt.Fprintln(w)
	if len(res.Entries) == 0 {
		fmt.Fprintln(w, "No submodules were configured.")
		printer.Fprintf(w, "Edit %s and %s, then run ./%s to add submodules later.\n",
			artifact.EnvExampleFile, artifact.ManifestFile, artifact.SetupScriptFile)
	} else {
		printer.Fprintf(w, "Registered %d submodule(s):\n", len(res.Entries))
		for i, e := range res.Entries {
			fmt.Fprintf(w, "  %-20s %s\n", e.Name, res.Keys.KeyAt(i))
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Next steps to add the submodules:")
		fmt.Fprintf(w, "  1. Review %s\n", artifact.EnvFile)
		fmt.Fprintf(w, "  2. ./%s\n", artifact.SetupScriptFile)
		fmt.Fprintln(w, "  3. git add .")
		fmt.Fprintln(w, `  4. git commit -m "Add and initialize submodules via script"`)
	}

	if len(res.Warnings) > 0 {
		fmt.Fprintln(w)
		printer.Fprintf(w, "Completed with %d warning(s).\n", len(res.Warnings))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Success! Created %s at %s\n", res.Name, res.Path)
	fmt.Fprintln(w, "Inside that directory, you can run:")
	fmt.Fprintf(w, "  cd %s\n", CdPath(cwd, res.Path))
	if res.Workspace != "" {
		fmt.Fprintf(w, "  code %s\n", res.Workspace)
	} else {
		fmt.Fprintln(w, "  code .")
	}
}
