package verify

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kballard/go-shellquote"
	"github.com/subosito/gotenv"
	"gopkg.in/ini.v1"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Pair is a submodule name and the env key that carries its URL.
type Pair struct {
	Name string
	Key  string
}

var (
	sectionName = regexp.MustCompile(`^submodule "(.*)"$`)
	keyRef      = regexp.MustCompile(`^\$\{([A-Za-z0-9_]+)\}$`)
)

// parseEnv reads KEY=value lines the way the setup script's shell would.
func parseEnv(data []byte) (map[string]string, error) {
	return gotenv.StrictParse(bytes.NewReader(data))
}

// parseManifest returns the submodule blocks of a .gitmodules template.
func parseManifest(data []byte) ([]Pair, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, data)
	if err != nil {
		return nil, err
	}

	var pairs []Pair
	for _, sec := range cfg.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		m := sectionName.FindStringSubmatch(sec.Name())
		if m == nil {
			return nil, fmt.Errorf("unexpected section [%s]", sec.Name())
		}
		name := m[1]
		if path := sec.Key("path").String(); path != name {
			return nil, fmt.Errorf("submodule %q has path %q", name, path)
		}
		url := sec.Key("url").String()
		ref := keyRef.FindStringSubmatch(url)
		if ref == nil {
			return nil, fmt.Errorf("submodule %q url %q is not an env reference", name, url)
		}
		pairs = append(pairs, Pair{Name: name, Key: ref[1]})
	}
	return pairs, nil
}

// parseScript returns the submodules added by a generated setup script, in order.
func parseScript(data []byte) ([]Pair, error) {
	var pairs []Pair
	sc := bufio.NewScanner(bytes.NewReader(data))
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(text, "add_submodule ") {
			continue
		}
		args, err := shellquote.Split(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(args) != 4 {
			return nil, fmt.Errorf("line %d: expected 3 arguments to add_submodule, got %d", line, len(args)-1)
		}
		pairs = append(pairs, Pair{Name: args[2], Key: args[3]})
	}
	return pairs, sc.Err()
}

// parseWorkspace returns the folder paths and the root ignore list of a
// workspace descriptor.
func parseWorkspace(data []byte) (folders []string, ignore []string, err error) {
	var doc struct {
		Folders []struct {
			Path   string   `json:"path"`
			Ignore []string `json:"ignore"`
		} `json:"folders"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}
	for _, f := range doc.Folders {
		if f.Path == "." {
			ignore = append(ignore, f.Ignore...)
			continue
		}
		folders = append(folders, f.Path)
	}
	return folders, ignore, nil
}
