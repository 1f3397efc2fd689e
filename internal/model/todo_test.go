package model

import (
	"testing"
	"time"
)

func TestNewSetsCreateDefaults(t *testing.T) {
	todo := New("Buy milk")

	if todo.ID != "" {
		t.Errorf("expected empty id before the server assigns one, got %q", todo.ID)
	}
	if todo.Completed {
		t.Error("new todo must not be completed")
	}
	if todo.Progress != 0 {
		t.Errorf("new todo must have zero progress, got %d", todo.Progress)
	}
	if todo.CreatedAt.IsZero() || todo.UpdatedAt.IsZero() {
		t.Error("both timestamps must be set at creation")
	}
	if !todo.CreatedAt.Equal(todo.UpdatedAt) {
		t.Error("timestamps must match at creation")
	}
}

func TestTouchedRefreshesOnlyUpdatedAt(t *testing.T) {
	todo := New("Buy milk")
	before := todo.UpdatedAt

	time.Sleep(2 * time.Millisecond)
	touched := todo.Touched()

	if !touched.CreatedAt.Equal(todo.CreatedAt) {
		t.Error("CreatedAt must never change")
	}
	if !touched.UpdatedAt.After(before) {
		t.Errorf("UpdatedAt must be refreshed: %v -> %v", before, touched.UpdatedAt)
	}
}

func TestToggledFlipsOnlyCompleted(t *testing.T) {
	todo := New("Buy milk")
	todo.ID = "t1"
	todo.Progress = 40

	time.Sleep(2 * time.Millisecond)
	toggled := todo.Toggled()

	if !toggled.Completed {
		t.Error("expected completed=true after toggle")
	}
	if toggled.ID != todo.ID || toggled.Title != todo.Title || toggled.Progress != todo.Progress {
		t.Error("toggle must leave all other fields alone")
	}
	if !toggled.CreatedAt.Equal(todo.CreatedAt) {
		t.Error("CreatedAt must never change")
	}
	if !toggled.UpdatedAt.After(todo.UpdatedAt) {
		t.Error("UpdatedAt must be refreshed by toggle")
	}
	if toggled.Toggled().Completed {
		t.Error("double toggle must restore completed=false")
	}
}

func TestRetitledReplacesTitle(t *testing.T) {
	todo := New("Buy milk")
	got := todo.Retitled("Buy oat milk")
	if got.Title != "Buy oat milk" {
		t.Errorf("title = %q", got.Title)
	}
	if !got.CreatedAt.Equal(todo.CreatedAt) {
		t.Error("CreatedAt must never change")
	}
}
