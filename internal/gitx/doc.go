// Package gitx wraps the git operations the create workflow needs: detecting
// and versioning the git binary, checking whether a remote URL is reachable
// (through `git ls-remote` or in-process with go-git), and initializing the new
// project repository with its first commit. SubmoduleStatus reads the state of
// submodules that the setup script has already added.
package gitx
