// Package register collects the submodules of a new project.
//
// The flow is an explicit state machine: Transition is a pure function from
// (Session, Event) to the next Session plus the notices to show the user.
// Registrar drives it with a prompt.Prompter and a gitx.Checker, either
// interactively (Run) or from a fixed URL list (RegisterURLs).
package register
