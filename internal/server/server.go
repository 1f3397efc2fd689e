// Package server is a small dev implementation of the remote store
// contract, so the client has something to talk to locally.
package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/idilsaglam/tudu/internal/model"
)

// Server exposes the todo collection over HTTP with JSON bodies.
type Server struct {
	store *Store
	log   *log.Logger
}

func New(store *Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Server{store: store, log: logger}
}

// todoPayload is the request body for create and update. Every write
// carries the full record; there is no PATCH.
type todoPayload struct {
	Title     string    `json:"title" binding:"required,min=3,max=20"`
	Completed bool      `json:"completed"`
	Progress  int       `json:"progress" binding:"min=0,max=100"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Handler builds the router for the store contract.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/todos", s.listTodos)
	r.POST("/todos", s.createTodo)
	r.PUT("/todos/:id", s.updateTodo)
	r.DELETE("/todos/:id", s.deleteTodo)
	return r
}

func (s *Server) listTodos(c *gin.Context) {
	todos, err := s.store.List(c.Request.Context())
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	c.JSON(http.StatusOK, todos)
}

func (s *Server) createTodo(c *gin.Context) {
	var body todoPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	now := time.Now().UTC()
	if body.CreatedAt.IsZero() {
		body.CreatedAt = now
	}
	if body.UpdatedAt.IsZero() {
		body.UpdatedAt = now
	}
	created, err := s.store.Create(c.Request.Context(), model.Todo{
		ID:        uuid.NewString(),
		Title:     body.Title,
		Completed: body.Completed,
		Progress:  body.Progress,
		CreatedAt: body.CreatedAt,
		UpdatedAt: body.UpdatedAt,
	})
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	s.log.Info("created", "id", created.ID)
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateTodo(c *gin.Context) {
	id := c.Param("id")
	existing, err := s.store.Get(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		s.fail(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	var body todoPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	// createdAt is immutable; whatever the client sent, the stored
	// value wins.
	updated, err := s.store.Update(c.Request.Context(), model.Todo{
		ID:        id,
		Title:     body.Title,
		Completed: body.Completed,
		Progress:  body.Progress,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: body.UpdatedAt,
	})
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	s.log.Info("updated", "id", id)
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteTodo(c *gin.Context) {
	id := c.Param("id")
	err := s.store.Delete(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		s.fail(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	s.log.Info("deleted", "id", id)
	c.Status(http.StatusNoContent)
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	if status >= 500 {
		s.log.Error("request failed", "path", c.Request.URL.Path, "err", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
