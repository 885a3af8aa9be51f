// Package logging configures the process-wide zerolog logger.
//
// Diagnostics go to stderr through a console writer so that stdout stays
// reserved for prompts and command output.
package logging
