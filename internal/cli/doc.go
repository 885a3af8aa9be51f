// Package cli defines the Cobra command tree for the wsgen CLI. Each file
// in this package registers one top-level command (create, verify, doctor,
// config, version) with the root command. Command implementations delegate to
// internal packages for the workflow and only handle flags, output and signals.
package cli
