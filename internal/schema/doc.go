// Package schema validates decoded JSON and YAML documents against embedded
// JSON Schemas and flattens validation failures into readable issues.
package schema
