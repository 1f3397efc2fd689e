package server

import (
	"time"

	"github.com/idilsaglam/tudu/internal/model"
)

// Timestamps are stored as unix nanoseconds so client-supplied values
// survive the round-trip exactly.

func (r todoRecord) toModel() model.Todo {
	return model.Todo{
		ID:        r.ID,
		Title:     r.Title,
		Completed: r.Completed,
		Progress:  r.Progress,
		CreatedAt: time.Unix(0, r.CreatedAt).UTC(),
		UpdatedAt: time.Unix(0, r.UpdatedAt).UTC(),
	}
}

func fromModel(t model.Todo) todoRecord {
	return todoRecord{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		Progress:  t.Progress,
		CreatedAt: t.CreatedAt.UnixNano(),
		UpdatedAt: t.UpdatedAt.UnixNano(),
	}
}
