package register

import (
	"github.com/rs/zerolog"
	"github.com/wsgen-labs/wsgen/internal/gitx"
	"github.com/wsgen-labs/wsgen/internal/submodule"
)

// Phase is the current state of a registration session.
type Phase int

const (
	AwaitingURL Phase = iota
	CheckingAccess
	AwaitingRetryChoice
	AwaitingContinueChoice
	Done
	Cancelled
)

var phaseNames = [...]string{
	AwaitingURL:            "awaiting-url",
	CheckingAccess:         "checking-access",
	AwaitingRetryChoice:    "awaiting-retry-choice",
	AwaitingContinueChoice: "awaiting-continue-choice",
	Done:                   "done",
	Cancelled:              "cancelled",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Terminal reports whether no further events are accepted.
func (p Phase) Terminal() bool {
	return p == Done || p == Cancelled
}

// Session is the state owned by one registration run.
type Session struct {
	// Entries are the accepted submodules in registration order.
	Entries []submodule.Entry
	// IsFirst stays true until the first entry is accepted.
	IsFirst bool
	Phase   Phase
	// Pending is the entry whose access is being checked or has just failed.
	Pending *submodule.Entry
}

// NewSession returns a session waiting for its first URL.
func NewSession() Session {
	return Session{IsFirst: true, Phase: AwaitingURL}
}

// SkipAllowed reports whether the retry dialog may offer "skip". Skipping is
// refused until one entry exists so that an empty result always comes from an
// explicit finish.
func (s Session) SkipAllowed() bool {
	return !s.IsFirst
}

// has reports whether an entry with exactly this name was already accepted.
func (s Session) has(name string) bool {
	for _, e := range s.Entries {
		if e.Name == name {
			return true
		}
	}
	return false
}

// Event is an input to Transition.
type Event interface {
	isEvent()
}

// URLSubmitted carries the raw text typed at the URL prompt.
type URLSubmitted struct{ Input string }

// AccessChecked carries the reachability verdict for the pending URL.
type AccessChecked struct{ Result gitx.Reachability }

// RetryChoice is an answer to the dialog shown after a failed check.
type RetryChoice string

const (
	RetryAgain     RetryChoice = "retry"
	RetrySkip      RetryChoice = "skip"
	RetryFinish    RetryChoice = "finish"
	RetryDismissed RetryChoice = ""
)

// RetryChosen answers the retry dialog.
type RetryChosen struct{ Choice RetryChoice }

// ContinueAnswer is an answer to "add another submodule?".
type ContinueAnswer string

const (
	ContinueYes       ContinueAnswer = "yes"
	ContinueStop      ContinueAnswer = "no"
	ContinueDismissed ContinueAnswer = ""
)

// ContinueChosen answers the continue prompt.
type ContinueChosen struct{ Answer ContinueAnswer }

// Interrupted signals an explicit cancellation by the user.
type Interrupted struct{}

func (URLSubmitted) isEvent()   {}
func (AccessChecked) isEvent()  {}
func (RetryChosen) isEvent()    {}
func (ContinueChosen) isEvent() {}
func (Interrupted) isEvent()    {}

// Notice is a message for the user produced by a transition.
type Notice struct {
	Level zerolog.Level
	Text  string
}
