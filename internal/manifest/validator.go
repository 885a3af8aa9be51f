package manifest

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/wsgen-labs/wsgen/internal/schema"
	"go.yaml.in/yaml/v3"
)

//go:embed schema/submodules.schema.json
var schemaBytes []byte

var (
	compiledSchema *schema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*schema.Schema, error) {
	compileOnce.Do(func() {
		compiledSchema, compileErr = schema.Compile("submodules.schema.json", schemaBytes)
	})
	return compiledSchema, compileErr
}

// Validate validates raw YAML bytes against the submodule list schema.
// The error return is for parse or schema compilation failures;
// validation issues are returned in the result.
func Validate(data []byte) (*schema.Result, error) {
	s, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return s.Validate(raw)
}

// ValidateFile reads a file and validates it against the schema.
func ValidateFile(path string) (*schema.Result, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}
