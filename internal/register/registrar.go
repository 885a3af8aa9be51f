package register

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wsgen-labs/wsgen/internal/gitx"
	"github.com/wsgen-labs/wsgen/internal/prompt"
	"github.com/wsgen-labs/wsgen/internal/submodule"
)

var (
	// ErrCancelled is returned when the user interrupts registration. The
	// entries accepted before the interrupt are returned alongside it.
	ErrCancelled = errors.New("submodule registration cancelled")
	// ErrFirstUnreachable is returned by RegisterURLs when the first URL of
	// the list cannot be accessed.
	ErrFirstUnreachable = errors.New("first submodule URL is not accessible")
	// ErrRejected is returned by RegisterURLs for a URL the interactive flow
	// would have re-prompted for.
	ErrRejected = errors.New("submodule URL rejected")
)

// Registrar drives a Session to completion.
type Registrar struct {
	Prompter prompt.Prompter
	// Checker verifies remote access. A nil Checker behaves like a missing git.
	Checker gitx.Checker
	Logger  zerolog.Logger
}

// Run registers submodules interactively until the user finishes.
func (r *Registrar) Run(ctx context.Context) ([]submodule.Entry, error) {
	r.Logger.Info().Msg("Configuring Git submodules...")

	s := NewSession()
	for !s.Phase.Terminal() {
		ev, err := r.ask(ctx, s)
		if err != nil {
			return s.Entries, err
		}
		if s, err = r.apply(s, ev); err != nil {
			return s.Entries, err
		}
	}
	return finish(s)
}

// RegisterURLs registers a fixed list of URLs with the same rules as Run:
// unreachable URLs are skipped once an entry exists, and the list ends the
// session. An empty list yields no entries.
func (r *Registrar) RegisterURLs(ctx context.Context, urls []string) ([]submodule.Entry, error) {
	s := NewSession()
	next := 0

	for !s.Phase.Terminal() {
		var ev Event
		switch s.Phase {
		case AwaitingURL:
			if next == len(urls) {
				if s.IsFirst {
					return nil, nil
				}
				ev = URLSubmitted{}
				break
			}
			url := urls[next]
			next++
			var notices []Notice
			var err error
			s, notices, err = Transition(s, URLSubmitted{Input: url})
			r.emit(notices)
			if err != nil {
				return s.Entries, err
			}
			if s.Phase == AwaitingURL {
				return s.Entries, fmt.Errorf("%w: %s: %s", ErrRejected, submodule.Redact(url), firstError(notices))
			}
			continue
		case CheckingAccess:
			var err error
			if ev, err = r.check(ctx, s); err != nil {
				return s.Entries, err
			}
		case AwaitingRetryChoice:
			if !s.SkipAllowed() {
				return s.Entries, fmt.Errorf("%w: %s", ErrFirstUnreachable, submodule.Redact(s.Pending.URL))
			}
			ev = RetryChosen{Choice: RetrySkip}
		case AwaitingContinueChoice:
			if next < len(urls) {
				ev = ContinueChosen{Answer: ContinueYes}
			} else {
				ev = ContinueChosen{Answer: ContinueStop}
			}
		}

		var err error
		if s, err = r.apply(s, ev); err != nil {
			return s.Entries, err
		}
	}
	return finish(s)
}

func finish(s Session) ([]submodule.Entry, error) {
	if s.Phase == Cancelled {
		return s.Entries, ErrCancelled
	}
	return s.Entries, nil
}

func (r *Registrar) apply(s Session, ev Event) (Session, error) {
	next, notices, err := Transition(s, ev)
	r.emit(notices)
	return next, err
}

func (r *Registrar) emit(notices []Notice) {
	for _, n := range notices {
		r.Logger.WithLevel(n.Level).Msg(n.Text)
	}
}

func firstError(notices []Notice) string {
	for _, n := range notices {
		if n.Level >= zerolog.ErrorLevel {
			return n.Text
		}
	}
	return "invalid input"
}

// ask obtains the event for the current phase from the user or the checker.
func (r *Registrar) ask(ctx context.Context, s Session) (Event, error) {
	switch s.Phase {
	case AwaitingURL:
		message := "Enter the Git submodule URL:"
		if !s.IsFirst {
			message = "Enter the next Git submodule URL (or leave blank to finish):"
		}
		input, err := r.Prompter.Text(ctx, message, "", nil)
		switch {
		case errors.Is(err, prompt.ErrInterrupted):
			return Interrupted{}, nil
		case errors.Is(err, prompt.ErrDismissed):
			// Closing the prompt is the same as leaving it blank.
			return URLSubmitted{}, nil
		case err != nil:
			return nil, err
		}
		return URLSubmitted{Input: input}, nil

	case CheckingAccess:
		return r.check(ctx, s)

	case AwaitingRetryChoice:
		choice, err := r.Prompter.Select(ctx, "What would you like to do?", []prompt.Choice{
			{Label: "Try a different URL for this submodule", Value: string(RetryAgain), Default: true},
			{Label: "Skip this submodule and continue", Value: string(RetrySkip), Disabled: !s.SkipAllowed()},
			{Label: "Finish adding submodules", Value: string(RetryFinish)},
		})
		switch {
		case errors.Is(err, prompt.ErrInterrupted):
			return Interrupted{}, nil
		case errors.Is(err, prompt.ErrDismissed):
			return RetryChosen{Choice: RetryDismissed}, nil
		case err != nil:
			return nil, err
		}
		return RetryChosen{Choice: RetryChoice(choice)}, nil

	case AwaitingContinueChoice:
		answer, err := r.Prompter.Select(ctx, "Would you like to add another submodule?", []prompt.Choice{
			{Label: "Yes", Value: string(ContinueYes)},
			{Label: "No", Value: string(ContinueStop), Default: true},
		})
		switch {
		case errors.Is(err, prompt.ErrInterrupted):
			return Interrupted{}, nil
		case errors.Is(err, prompt.ErrDismissed):
			return ContinueChosen{Answer: ContinueDismissed}, nil
		case err != nil:
			return nil, err
		}
		return ContinueChosen{Answer: ContinueAnswer(answer)}, nil
	}
	return nil, fmt.Errorf("%w: no prompt for %s", ErrUnexpectedEvent, s.Phase)
}

// check runs the reachability check for the pending URL. A cancelled context
// becomes an interrupt.
func (r *Registrar) check(ctx context.Context, s Session) (Event, error) {
	if err := ctx.Err(); err != nil {
		return Interrupted{}, nil
	}
	if r.Checker == nil {
		return AccessChecked{Result: gitx.Unavailable}, nil
	}

	r.Logger.Info().Msgf("Checking Git URL access: %s...", submodule.Redact(s.Pending.URL))
	result, err := r.Checker.Check(ctx, s.Pending.URL)
	if err != nil {
		if ctx.Err() != nil {
			return Interrupted{}, nil
		}
		return nil, fmt.Errorf("checking %s: %w", submodule.Redact(s.Pending.URL), err)
	}
	r.Logger.Debug().Str("url", submodule.Redact(s.Pending.URL)).Stringer("result", result).Msg("access check finished")
	return AccessChecked{Result: result}, nil
}
