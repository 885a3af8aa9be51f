// Package project implements the create workflow: it validates the target,
// registers submodules, copies the template tree, writes the generated
// artifacts and workspace descriptor, and initializes git.
package project
