// Package prompt asks the user for free text and single choices.
//
// Two backends implement Prompter: a bubbletea TUI used when both ends of the
// session are terminals, and a numbered-menu line prompter used for pipes,
// CI and tests. Ctrl+C maps to ErrInterrupted and Esc to ErrDismissed.
package prompt
