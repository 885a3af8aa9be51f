// Package verify re-reads the generated files of an existing project and
// reports where their submodule sets disagree.
//
// The setup script is the reference: every other artifact is compared with
// the submodules it adds.
package verify
