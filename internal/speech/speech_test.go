package speech

import (
	"context"
	"testing"
)

func TestUnsupportedFailsImmediately(t *testing.T) {
	_, err := Unsupported{}.Start(context.Background(), DefaultLocale)
	if err != ErrUnavailable {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestFromCommandPicksVariant(t *testing.T) {
	if _, ok := FromCommand("", nil).(Unsupported); !ok {
		t.Fatal("empty command must mean no capability")
	}
	if _, ok := FromCommand("echo", nil).(*CommandRecognizer); !ok {
		t.Fatal("configured command must mean exec recognizer")
	}
}

func TestMissingBinaryIsUnavailable(t *testing.T) {
	r := &CommandRecognizer{Command: "definitely-not-a-real-transcriber"}
	if _, err := r.Start(context.Background(), DefaultLocale); err != ErrUnavailable {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	r := &CommandRecognizer{Command: "echo", Args: []string{"buy milk"}}
	events, err := r.Start(context.Background(), "en-US")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	var kinds []EventKind
	var transcript string
	for ev := range events {
		kinds = append(kinds, ev.Kind)
		if ev.Kind == ResultAvailable {
			transcript = ev.Transcript
		}
		if ev.Kind == SessionError {
			t.Fatalf("unexpected session error: %v", ev.Err)
		}
	}

	if len(kinds) != 3 || kinds[0] != SessionStarted || kinds[1] != ResultAvailable || kinds[2] != SessionEnded {
		t.Fatalf("unexpected event order: %v", kinds)
	}
	// The locale rides along as the last argument.
	if transcript != "buy milk en-US" {
		t.Fatalf("transcript = %q", transcript)
	}
}

func TestSessionWithoutResultStillEnds(t *testing.T) {
	// true exits successfully without printing anything.
	r := &CommandRecognizer{Command: "true"}
	events, err := r.Start(context.Background(), "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	var kinds []EventKind
	for ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	if len(kinds) != 2 || kinds[0] != SessionStarted || kinds[1] != SessionEnded {
		t.Fatalf("unexpected event order: %v", kinds)
	}
}
