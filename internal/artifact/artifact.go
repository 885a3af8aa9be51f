package artifact

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/wsgen-labs/wsgen/internal/submodule"
)

// Artifact file names, relative to the project root.
const (
	EnvFile         = ".env"
	EnvExampleFile  = ".env.example"
	ManifestFile    = ".gitmodules.template"
	SetupScriptFile = "setup-submodules.sh"
)

// Options tunes the generated content. Zero fields take the defaults.
type Options struct {
	KeyPrefix       string
	PlaceholderHost string
	PlaceholderOrg  string
	PrimaryBranch   string
	FallbackBranch  string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		KeyPrefix:       submodule.DefaultKeyPrefix,
		PlaceholderHost: "github.com",
		PlaceholderOrg:  "your-org",
		PrimaryBranch:   "main",
		FallbackBranch:  "master",
	}
}

var (
	keyPrefixPattern = regexp.MustCompile(`^[A-Z0-9_]+$`)
	branchPattern    = regexp.MustCompile(`^[A-Za-z0-9._/-]+$`)
)

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.KeyPrefix == "" {
		o.KeyPrefix = d.KeyPrefix
	}
	if o.PlaceholderHost == "" {
		o.PlaceholderHost = d.PlaceholderHost
	}
	if o.PlaceholderOrg == "" {
		o.PlaceholderOrg = d.PlaceholderOrg
	}
	if o.PrimaryBranch == "" {
		o.PrimaryBranch = d.PrimaryBranch
	}
	if o.FallbackBranch == "" {
		o.FallbackBranch = d.FallbackBranch
	}
	return o
}

// validate rejects values that would break the shell script or the env files.
func (o Options) validate() error {
	if !keyPrefixPattern.MatchString(o.KeyPrefix) {
		return fmt.Errorf("key prefix %q must contain only A-Z, 0-9 and _", o.KeyPrefix)
	}
	for _, b := range []string{o.PrimaryBranch, o.FallbackBranch} {
		if !branchPattern.MatchString(b) {
			return fmt.Errorf("branch name %q contains unsupported characters", b)
		}
	}
	return nil
}

// Bundle is the generated content for one project.
type Bundle struct {
	Project    string
	Keys       *submodule.KeyTable
	EnvActual  []byte
	EnvExample []byte
	// Manifest is nil when there are no entries; an existing template is then left alone.
	Manifest    []byte
	SetupScript []byte
}

// Generate renders every artifact for entries, in registration order.
func Generate(project string, entries []submodule.Entry, opts Options) (*Bundle, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	keys := submodule.NewKeyTable(opts.KeyPrefix, entries)
	script, err := renderScript(project, keys, opts)
	if err != nil {
		return nil, err
	}

	b := &Bundle{
		Project:     project,
		Keys:        keys,
		EnvActual:   renderEnv(keys, opts, false),
		EnvExample:  renderEnv(keys, opts, true),
		SetupScript: script,
	}
	if keys.Len() > 0 {
		b.Manifest = renderManifest(keys)
	}
	return b, nil
}

// PlaceholderURL returns a URL for name on the placeholder host and org that
// keeps the scheme of original.
func PlaceholderURL(original, name string, opts Options) string {
	opts = opts.withDefaults()
	if submodule.IsSSH(original) {
		return fmt.Sprintf("git@%s:%s/%s.git", opts.PlaceholderHost, opts.PlaceholderOrg, name)
	}
	return fmt.Sprintf("https://%s/%s/%s.git", opts.PlaceholderHost, opts.PlaceholderOrg, name)
}

func renderEnv(keys *submodule.KeyTable, opts Options, example bool) []byte {
	var b strings.Builder
	if example {
		b.WriteString("# .env.example - Git submodule repository URLs (placeholder values)\n")
		b.WriteString("# Copy this file to .env and replace the placeholders with the real URLs.\n\n")
	} else {
		b.WriteString("# .env - Actual Git submodule repository URLs\n")
		b.WriteString("# Keep this file out of version control. setup-submodules.sh reads it.\n\n")
	}

	if keys.Len() == 0 {
		b.WriteString("# No submodules configured.\n")
		if example {
			fmt.Fprintf(&b, "# EXAMPLE_SUBMODULE_URL=%s\n",
				PlaceholderURL(submodule.SchemeSSH, "your-repo", opts))
		}
		return []byte(b.String())
	}

	for i := 0; i < keys.Len(); i++ {
		e := keys.Entry(i)
		value := e.URL
		if example {
			value = PlaceholderURL(e.URL, e.Name, opts)
		}
		fmt.Fprintf(&b, "# Submodule: %s\n", e.Name)
		fmt.Fprintf(&b, "%s=%s\n\n", keys.KeyAt(i), envValue(value))
	}
	return []byte(b.String())
}

// envValue quotes v when sh would not read it back verbatim; .env is sourced.
func envValue(v string) string {
	if shellquote.Join(v) == v {
		return v
	}
	if !strings.Contains(v, "'") {
		return "'" + v + "'"
	}
	return shellquote.Join(v)
}

var sectionEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func renderManifest(keys *submodule.KeyTable) []byte {
	blocks := make([]string, keys.Len())
	for i := range blocks {
		e := keys.Entry(i)
		blocks[i] = fmt.Sprintf("[submodule \"%s\"]\n\tpath = %s\n\turl = ${%s}",
			sectionEscaper.Replace(e.Name), e.Name, keys.KeyAt(i))
	}
	return []byte(strings.Join(blocks, "\n\n") + "\n")
}
