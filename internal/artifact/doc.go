// Package artifact derives the files that make a project's submodule list
// reproducible: .env, .env.example, .gitmodules.template and
// setup-submodules.sh.
//
// Generate is pure. Every artifact is rendered from one submodule.KeyTable so
// that all of them agree on the env key of each submodule. Write puts the
// bundle on disk through a Writer and reports every failed file.
package artifact
