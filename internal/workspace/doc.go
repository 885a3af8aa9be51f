// Package workspace turns the templates.code-workspace file shipped with the
// project template into <project>.code-workspace, with one folder per
// submodule and the submodule directories hidden from the root folder.
package workspace
