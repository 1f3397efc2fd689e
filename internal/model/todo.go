// Package model holds the todo record shared by the client, the TUI,
// and the dev server.
package model

import "time"

// Todo is the persisted unit of work-tracking data. Field names on the
// wire follow the remote store contract.
type Todo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Progress  int       `json:"progress"` // percent; display-only in this client
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New builds an unsaved record the way the create form submits it:
// not completed, zero progress, both timestamps set to now.
// The id stays empty until the server assigns one.
func New(title string) Todo {
	now := time.Now().UTC()
	return Todo{
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touched returns a copy with UpdatedAt refreshed. CreatedAt is left
// alone; it never changes after creation.
func (t Todo) Touched() Todo {
	t.UpdatedAt = time.Now().UTC()
	return t
}

// Toggled returns a copy with Completed flipped and UpdatedAt refreshed.
func (t Todo) Toggled() Todo {
	t.Completed = !t.Completed
	return t.Touched()
}

// Retitled returns a copy with a new title and UpdatedAt refreshed.
func (t Todo) Retitled(title string) Todo {
	t.Title = title
	return t.Touched()
}
