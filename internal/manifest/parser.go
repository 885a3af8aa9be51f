package manifest

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Parse validates and decodes YAML data. name is used in error messages.
func Parse(data []byte, name string) (*List, error) {
	res, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	var l List
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing submodule list %s: %w", name, err)
	}
	return &l, nil
}

// ParseFile reads and parses a submodule list file.
func ParseFile(path string) (*List, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
