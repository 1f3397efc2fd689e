// Package speech abstracts the voice-input capability behind an
// interface with an explicit unsupported variant, instead of probing
// the environment at call sites.
package speech

import (
	"context"
	"errors"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en-US"

// ErrUnavailable is returned when no recognition capability exists in
// this environment.
var ErrUnavailable = errors.New("voice input is not available")

// EventKind enumerates the lifecycle events of one recognition session.
type EventKind int

const (
	SessionStarted EventKind = iota
	ResultAvailable
	SessionError
	SessionEnded
)

// Event is one lifecycle notification. Transcript is set only on
// ResultAvailable, Err only on SessionError.
type Event struct {
	Kind       EventKind
	Transcript string
	Err        error
}

// Recognizer runs single-shot, non-continuous recognition sessions.
// A session emits SessionStarted, at most one ResultAvailable, and
// always finishes with SessionEnded; the channel closes afterwards.
type Recognizer interface {
	Start(ctx context.Context, locale string) (<-chan Event, error)
}

// Unsupported is the no-capability variant: starting a session fails
// immediately.
type Unsupported struct{}

func (Unsupported) Start(context.Context, string) (<-chan Event, error) {
	return nil, ErrUnavailable
}

// FromCommand picks the recognizer for a configured transcriber
// command; empty means the capability is absent.
func FromCommand(command string, args []string) Recognizer {
	if command == "" {
		return Unsupported{}
	}
	return &CommandRecognizer{Command: command, Args: args}
}
