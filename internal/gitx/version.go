package gitx

import (
	"context"
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

var versionPattern = regexp.MustCompile(`git version (\d+\.\d+(?:\.\d+)?)`)

// Version returns the installed git version.
func Version(ctx context.Context) (*semver.Version, error) {
	if err := ensureGit(); err != nil {
		return nil, err
	}
	out, err := runGit(ctx, "", "--version")
	if err != nil {
		return nil, err
	}
	return ParseVersion(out)
}

// ParseVersion extracts the semantic version from `git --version` output,
// tolerating vendor suffixes such as "(Apple Git-143)" or ".windows.1".
func ParseVersion(output string) (*semver.Version, error) {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("unrecognized git version output %q", output)
	}
	v, err := semver.NewVersion(m[1])
	if err != nil {
		return nil, fmt.Errorf("parsing git version %q: %w", m[1], err)
	}
	return v, nil
}

// AtLeast reports whether current satisfies the minimum version min.
func AtLeast(current *semver.Version, min string) (bool, error) {
	c, err := semver.NewConstraint(">= " + min)
	if err != nil {
		return false, fmt.Errorf("parsing minimum version %q: %w", min, err)
	}
	return c.Check(current), nil
}
