package project

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidName is returned when the project directory name is not usable
// as a package name.
var ErrInvalidName = errors.New("invalid project name")

const maxNameLength = 214

var reservedNames = map[string]bool{
	"node_modules": true,
	"favicon.ico":  true,
}

// ValidateName applies npm package naming rules to a project name and returns
// every problem found. The error wraps ErrInvalidName.
func ValidateName(name string) error {
	var problems []string
	switch {
	case name == "":
		problems = append(problems, "name length must be greater than zero")
	case strings.TrimSpace(name) != name:
		problems = append(problems, "name cannot contain leading or trailing spaces")
	}
	if strings.HasPrefix(name, ".") {
		problems = append(problems, "name cannot start with a period")
	}
	if strings.HasPrefix(name, "_") {
		problems = append(problems, "name cannot start with an underscore")
	}
	if reservedNames[strings.ToLower(name)] {
		problems = append(problems, fmt.Sprintf("%s is not a valid package name", name))
	}
	if len(name) > maxNameLength {
		problems = append(problems, fmt.Sprintf("name can no longer contain more than %d characters", maxNameLength))
	}
	if strings.ToLower(name) != name {
		problems = append(problems, "name can no longer contain capital letters")
	}
	if strings.ContainsAny(name, "~'!()*") {
		problems = append(problems, `name can no longer contain special characters ("~'!()*")`)
	}
	if name != "" && url.PathEscape(name) != name {
		problems = append(problems, "name can only contain URL-friendly characters")
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w %q: %s", ErrInvalidName, name, strings.Join(problems, "; "))
}
