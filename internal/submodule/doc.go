// Package submodule models a registered submodule: its remote URL, the name
// derived from that URL, and the environment variable key that carries the URL
// into generated artifacts. KeyTable assigns keys for a whole run so that every
// artifact references the same, collision-free key set.
package submodule
