package register

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/wsgen-labs/wsgen/internal/gitx"
	"github.com/wsgen-labs/wsgen/internal/submodule"
)

// ErrUnexpectedEvent is returned when an event does not belong to the
// session's current phase. It indicates a bug in the driver, not user input.
var ErrUnexpectedEvent = errors.New("unexpected registration event")

func notice(level zerolog.Level, format string, args ...any) Notice {
	return Notice{Level: level, Text: fmt.Sprintf(format, args...)}
}

func info(format string, args ...any) Notice { return notice(zerolog.InfoLevel, format, args...) }
func warn(format string, args ...any) Notice { return notice(zerolog.WarnLevel, format, args...) }
func errorf(format string, args ...any) Notice { return notice(zerolog.ErrorLevel, format, args...) }

// Transition applies ev to s and returns the next session together with the
// notices to show. s itself is never modified.
func Transition(s Session, ev Event) (Session, []Notice, error) {
	if s.Phase.Terminal() {
		return s, nil, fmt.Errorf("%w: %T after %s", ErrUnexpectedEvent, ev, s.Phase)
	}
	if _, ok := ev.(Interrupted); ok {
		next := s
		next.Phase = Cancelled
		next.Pending = nil
		return next, []Notice{info("Submodule addition cancelled by user.")}, nil
	}

	switch s.Phase {
	case AwaitingURL:
		if e, ok := ev.(URLSubmitted); ok {
			return submitURL(s, e.Input)
		}
	case CheckingAccess:
		if e, ok := ev.(AccessChecked); ok {
			return checked(s, e.Result)
		}
	case AwaitingRetryChoice:
		if e, ok := ev.(RetryChosen); ok {
			return retry(s, e.Choice)
		}
	case AwaitingContinueChoice:
		if e, ok := ev.(ContinueChosen); ok {
			return proceed(s, e.Answer)
		}
	}
	return s, nil, fmt.Errorf("%w: %T in %s", ErrUnexpectedEvent, ev, s.Phase)
}

func submitURL(s Session, input string) (Session, []Notice, error) {
	next := s
	url := strings.TrimSpace(input)

	if url == "" {
		if s.IsFirst {
			return next, []Notice{errorf("At least one submodule URL is required.")}, nil
		}
		next.Phase = Done
		return next, nil, nil
	}

	entry, err := submodule.NewEntry(url)
	switch {
	case errors.Is(err, submodule.ErrUnsupportedScheme):
		return next, []Notice{errorf("Please enter a valid Git URL (%s or %s).",
			submodule.SchemeHTTPS, submodule.SchemeSSH)}, nil
	case err != nil:
		return next, []Notice{errorf("Cannot derive a submodule name from %s: %v",
			submodule.Redact(url), err)}, nil
	}
	if s.has(entry.Name) {
		return next, []Notice{errorf("A submodule named %q is already registered.", entry.Name)}, nil
	}

	next.Pending = &entry
	next.Phase = CheckingAccess
	return next, nil, nil
}

func checked(s Session, result gitx.Reachability) (Session, []Notice, error) {
	next := s
	if s.Pending == nil {
		return s, nil, fmt.Errorf("%w: no pending URL to check", ErrUnexpectedEvent)
	}
	url := submodule.Redact(s.Pending.URL)

	var notices []Notice
	switch result {
	case gitx.Unavailable:
		notices = append(notices, warn("Git is not available, skipping access check for %s. Assuming it is valid.", url))
	case gitx.Unreachable:
		next.Phase = AwaitingRetryChoice
		return next, []Notice{
			errorf("Unable to access Git URL: %s", url),
			warn("Please check the URL and your network connection/permissions."),
		}, nil
	}

	next.Entries = append(slices.Clone(s.Entries), *s.Pending)
	next.IsFirst = false
	next.Phase = AwaitingContinueChoice
	notices = append(notices, info("Submodule %s (to be added at %s) is registered.", url, s.Pending.Name))
	next.Pending = nil
	return next, notices, nil
}

func retry(s Session, choice RetryChoice) (Session, []Notice, error) {
	next := s
	switch choice {
	case RetryAgain:
		next.Phase = AwaitingURL
		next.Pending = nil
		return next, nil, nil
	case RetrySkip:
		if !s.SkipAllowed() {
			return next, []Notice{errorf("The first submodule cannot be skipped. Try another URL or finish.")}, nil
		}
		next.Phase = AwaitingURL
		next.Pending = nil
		return next, []Notice{info("Skipped %s.", pendingURL(s))}, nil
	case RetryFinish:
		next.Phase = Done
		next.Pending = nil
		return next, nil, nil
	case RetryDismissed:
		next.Phase = Cancelled
		next.Pending = nil
		return next, []Notice{info("Submodule addition cancelled by user.")}, nil
	default:
		return s, nil, fmt.Errorf("%w: retry choice %q", ErrUnexpectedEvent, choice)
	}
}

func pendingURL(s Session) string {
	if s.Pending == nil {
		return "the submodule"
	}
	return submodule.Redact(s.Pending.URL)
}

func proceed(s Session, answer ContinueAnswer) (Session, []Notice, error) {
	next := s
	switch answer {
	case ContinueYes:
		next.Phase = AwaitingURL
	case ContinueStop, ContinueDismissed:
		next.Phase = Done
	default:
		return s, nil, fmt.Errorf("%w: continue answer %q", ErrUnexpectedEvent, answer)
	}
	return next, nil, nil
}
