package prompt

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"
)

var (
	// ErrInterrupted is returned when the user aborts the session (Ctrl+C,
	// end of input, or a cancelled context).
	ErrInterrupted = errors.New("prompt interrupted")
	// ErrDismissed is returned when the user closes a single prompt (Esc)
	// without answering it.
	ErrDismissed = errors.New("prompt dismissed")
)

// Choice is one option of a Select prompt.
type Choice struct {
	Label string
	Value string
	// Disabled choices are shown but cannot be picked.
	Disabled bool
	// Default marks the option preselected (TUI) or chosen on empty input (line).
	Default bool
}

// ValidateFunc returns a user-facing error for unacceptable text input.
type ValidateFunc func(string) error

// Prompter is the interaction surface used by the create workflow.
type Prompter interface {
	// Text asks for a line of text. Empty input yields defaultValue. When
	// validate is non-nil the question is repeated until it passes.
	Text(ctx context.Context, message, defaultValue string, validate ValidateFunc) (string, error)
	// Select asks the user to pick one enabled choice and returns its Value.
	Select(ctx context.Context, message string, choices []Choice) (string, error)
}

// New picks the TUI backend when in and out are both terminals, and the
// line backend otherwise.
func New(in *os.File, out *os.File) Prompter {
	if isTerminal(in) && isTerminal(out) {
		return NewTUI(in, out)
	}
	return NewLine(in, out)
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func defaultIndex(choices []Choice) int {
	for i, c := range choices {
		if c.Default && !c.Disabled {
			return i
		}
	}
	for i, c := range choices {
		if !c.Disabled {
			return i
		}
	}
	return -1
}

var errNoChoices = errors.New("no selectable choices")
