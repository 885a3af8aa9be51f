package gitx

import (
	"context"
	"strings"
)

// SubmoduleState is the state of one submodule in `git submodule status`.
type SubmoduleState string

const (
	SubmoduleClean         SubmoduleState = "ok"
	SubmoduleUninitialized SubmoduleState = "uninitialized"
	SubmoduleModified      SubmoduleState = "modified"
	SubmoduleConflict      SubmoduleState = "conflict"
)

// SubmoduleStatus runs `git submodule status` in dir and returns the state of
// every registered submodule keyed by path.
func SubmoduleStatus(ctx context.Context, dir string) (map[string]SubmoduleState, error) {
	if err := ensureGit(); err != nil {
		return nil, err
	}
	out, err := runGit(ctx, dir, "submodule", "status")
	if err != nil {
		return nil, err
	}
	return parseSubmoduleStatus(out), nil
}

// parseSubmoduleStatus reads lines of the form " <sha> <path> (<desc>)",
// where the first column is ' ', '-', '+' or 'U'.
func parseSubmoduleStatus(out string) map[string]SubmoduleState {
	result := make(map[string]SubmoduleState)
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		state := SubmoduleClean
		switch line[0] {
		case '-':
			state = SubmoduleUninitialized
		case '+':
			state = SubmoduleModified
		case 'U':
			state = SubmoduleConflict
		}

		parts := strings.Fields(line[1:])
		if len(parts) >= 2 {
			result[parts[1]] = state
		}
	}
	return result
}
