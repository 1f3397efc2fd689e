package speech

import (
	"context"
	"os/exec"
	"strings"
)

// CommandRecognizer shells out to an external transcriber. The command
// is expected to capture audio once, print the final transcript to
// stdout, and exit; the locale is appended as the last argument.
type CommandRecognizer struct {
	Command string
	Args    []string
}

func (r *CommandRecognizer) Start(ctx context.Context, locale string) (<-chan Event, error) {
	if r.Command == "" {
		return nil, ErrUnavailable
	}
	if _, err := exec.LookPath(r.Command); err != nil {
		return nil, ErrUnavailable
	}
	if locale == "" {
		locale = DefaultLocale
	}

	args := append(append([]string(nil), r.Args...), locale)
	events := make(chan Event, 4)
	go func() {
		defer close(events)
		events <- Event{Kind: SessionStarted}

		out, err := exec.CommandContext(ctx, r.Command, args...).Output()
		if err != nil {
			events <- Event{Kind: SessionError, Err: err}
			events <- Event{Kind: SessionEnded}
			return
		}
		// Single-shot: only the first line counts as the final transcript.
		transcript, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
		if transcript != "" {
			events <- Event{Kind: ResultAvailable, Transcript: transcript}
		}
		events <- Event{Kind: SessionEnded}
	}()
	return events, nil
}
