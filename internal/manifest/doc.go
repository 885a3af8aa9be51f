// Package manifest reads submodule list files: YAML documents naming the
// submodule URLs of a project so that `create --from-file` can run without
// prompts. Files are checked against an embedded JSON Schema before decoding.
package manifest
