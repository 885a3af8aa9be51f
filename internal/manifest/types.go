package manifest

import "go.yaml.in/yaml/v3"

// List is a decoded submodule list file.
type List struct {
	// Project is the default project name when none is given on the command line.
	Project    string `yaml:"project,omitempty" json:"project,omitempty"`
	Submodules []Item `yaml:"submodules" json:"submodules"`
}

// Item is one submodule; it may be written as a bare URL string.
type Item struct {
	URL string `yaml:"url" json:"url"`
}

// UnmarshalYAML accepts both "- git@host:org/repo.git" and "- url: ...".
func (i *Item) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		i.URL = n.Value
		return nil
	}
	type plain Item
	return n.Decode((*plain)(i))
}

// URLs returns the submodule URLs in file order.
func (l *List) URLs() []string {
	urls := make([]string, len(l.Submodules))
	for i, s := range l.Submodules {
		urls[i] = s.URL
	}
	return urls
}
