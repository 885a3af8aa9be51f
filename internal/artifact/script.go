package artifact

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/kballard/go-shellquote"
	"github.com/wsgen-labs/wsgen/internal/branding"
	"github.com/wsgen-labs/wsgen/internal/submodule"
)

// Exit codes of the setup script.
const (
	ExitMissingEnvFile = 2
	ExitMissingKeys    = 3
	ExitAddFailed      = 4
)

// Step is one section of the setup script.
type Step int

const (
	StepPrelude Step = iota
	StepGuardEnvFile
	StepExportEnv
	StepEchoKeys
	StepVerifyKeys
	StepAddSubmodules
	StepUpdateAll
	StepCheckoutFallback
	StepGuidance
	StepFinish
)

var stepNames = [...]string{
	StepPrelude:          "prelude",
	StepGuardEnvFile:     "guard-env-file",
	StepExportEnv:        "export-env",
	StepEchoKeys:         "echo-keys",
	StepVerifyKeys:       "verify-keys",
	StepAddSubmodules:    "add-submodules",
	StepUpdateAll:        "update-all",
	StepCheckoutFallback: "checkout-fallback",
	StepGuidance:         "guidance",
	StepFinish:           "finish",
}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return "unknown"
	}
	return stepNames[s]
}

// Plan returns the ordered steps of the script for n submodules. Every key is
// verified before the first submodule is added.
func Plan(n int) []Step {
	if n == 0 {
		return []Step{StepPrelude, StepGuardEnvFile, StepExportEnv, StepGuidance}
	}
	return []Step{
		StepPrelude,
		StepGuardEnvFile,
		StepExportEnv,
		StepEchoKeys,
		StepVerifyKeys,
		StepAddSubmodules,
		StepUpdateAll,
		StepCheckoutFallback,
		StepFinish,
	}
}

var stepTemplates = map[Step]string{
	StepPrelude: `#!/bin/sh
# setup-submodules.sh - generated by {{.Tool}} for {{.Project}}.
# Adds the submodules whose URLs are listed in .env, then clones them.

GREEN='\033[0;32m'
RED='\033[0;31m'
YELLOW='\033[0;33m'
NC='\033[0m'

info() { printf '%b\n' "${YELLOW}$*${NC}"; }
ok() { printf '%b\n' "${GREEN}$*${NC}"; }
fail() { printf '%b\n' "${RED}$*${NC}" >&2; }

cd "$(dirname "$0")" || exit 1
`,
	StepGuardEnvFile: `if [ ! -f {{.EnvFile}} ]; then
    fail "Error: {{.EnvFile}} file not found!"
    info "Please copy {{.EnvExampleFile}} to {{.EnvFile}} and update the values, then re-run this script."
    exit {{.ExitMissingEnvFile}}
fi
`,
	StepExportEnv: `info "Sourcing environment variables from {{.EnvFile}}..."
set -a
. ./{{.EnvFile}}
set +a
`,
	StepEchoKeys: `info "Checking environment variables for configured submodules:"
{{range .Entries}}info "{{.Key}}: {{.Ref}}"
{{end}}`,
	StepVerifyKeys: `missing=""
{{range .Entries}}if [ -z "{{.Ref}}" ]; then
    missing="$missing {{.Key}}"
fi
{{end}}if [ -n "$missing" ]; then
    fail "Error: submodule URL variables missing in {{.EnvFile}}:$missing"
    exit {{.ExitMissingKeys}}
fi
`,
	StepAddSubmodules: `add_submodule() {
    if [ -f .gitmodules ] && git config -f .gitmodules --get "submodule.$2.path" >/dev/null 2>&1; then
        info "Submodule '$2' is already registered, skipping."
        return 0
    fi
    info "Adding submodule '$2' from URL in $3..."
    if ! git submodule add -- "$1" "$2"; then
        fail "Error: could not add submodule '$2' from $3."
        exit {{.ExitAddFailed}}
    fi
}

{{range .Entries}}add_submodule "{{.Ref}}" {{.Path}} {{.Key}}
{{end}}`,
	StepUpdateAll: `info "Cloning and initializing all submodules (this may take a while)..."
git submodule update --init --recursive
`,
	StepCheckoutFallback: `info "Attempting to checkout {{.Primary}} in all submodules..."
git submodule foreach --quiet 'git checkout {{.Primary}} || git checkout {{.Fallback}} || echo "Warning: could not checkout {{.Primary}}/{{.Fallback}} in $name, please check manually."'
`,
	StepGuidance: `info "No submodules were configured for this project."
info "To add one manually, run: git submodule add <repository_url> <path_to_submodule>"
info "Then run 'git submodule update --init --recursive' to clone its content."
exit 0
`,
	StepFinish: `ok "Submodule setup script finished successfully!"
exit 0
`,
}

var scriptTemplate = func() *template.Template {
	root := template.New("setup-submodules")
	for step, text := range stepTemplates {
		template.Must(root.New(step.String()).Parse(text))
	}
	return root
}()

type scriptEntry struct {
	Key  string
	Ref  string // ${KEY}
	Name string
	Path string // shell-quoted
}

type scriptData struct {
	Tool               string
	Project            string
	EnvFile            string
	EnvExampleFile     string
	Entries            []scriptEntry
	Primary            string
	Fallback           string
	ExitMissingEnvFile int
	ExitMissingKeys    int
	ExitAddFailed      int
}

func renderScript(project string, keys *submodule.KeyTable, opts Options) ([]byte, error) {
	data := scriptData{
		Tool:               branding.CLIName(),
		Project:            project,
		EnvFile:            EnvFile,
		EnvExampleFile:     EnvExampleFile,
		Primary:            opts.PrimaryBranch,
		Fallback:           opts.FallbackBranch,
		ExitMissingEnvFile: ExitMissingEnvFile,
		ExitMissingKeys:    ExitMissingKeys,
		ExitAddFailed:      ExitAddFailed,
	}
	for i := 0; i < keys.Len(); i++ {
		e := keys.Entry(i)
		data.Entries = append(data.Entries, scriptEntry{
			Key:  keys.KeyAt(i),
			Ref:  "${" + keys.KeyAt(i) + "}",
			Name: e.Name,
			Path: shellquote.Join(e.Name),
		})
	}

	var buf bytes.Buffer
	for i, step := range Plan(keys.Len()) {
		if i > 0 {
			buf.WriteByte('\n')
		}
		if err := scriptTemplate.ExecuteTemplate(&buf, step.String(), data); err != nil {
			return nil, fmt.Errorf("rendering %s step: %w", step, err)
		}
	}
	return buf.Bytes(), nil
}
