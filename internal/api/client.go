// Package api is the todo collection accessor: a REST client over the
// remote store plus the client-side collection cache.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tudu/internal/model"
	"github.com/idilsaglam/tudu/internal/validate"
)

// Client talks to the remote store. Every mutation resends the full
// record (no PATCH semantics) and merges the response into the cache.
type Client struct {
	base  string
	http  *http.Client
	cache *Cache
	log   *log.Logger
}

// New builds a client for the store at baseURL. The logger may not be
// nil; pass a discard logger when logging is off.
func New(baseURL string, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		http:  httpClient,
		cache: NewCache(),
		log:   logger,
	}
}

// List returns the full collection, served from the cache when warm.
// No filtering, sorting, or pagination.
func (c *Client) List(ctx context.Context) ([]model.Todo, error) {
	if todos, ok := c.cache.Get(CollectionID); ok {
		return todos, nil
	}
	var todos []model.Todo
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &todos); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	c.cache.Put(CollectionID, todos)
	return todos, nil
}

// Create validates the title and submits a new record with
// completed=false, progress=0 and both timestamps set to now. Invalid
// titles never reach the wire.
func (c *Client) Create(ctx context.Context, title string) (model.Todo, error) {
	if err := validate.Title(title); err != nil {
		return model.Todo{}, err
	}
	var created model.Todo
	if err := c.do(ctx, http.MethodPost, "/todos", model.New(title), &created); err != nil {
		return model.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	c.log.Info("created todo", "id", created.ID)
	c.cache.Upsert(CollectionID, created)
	return created, nil
}

// Update resubmits the entire record with UpdatedAt refreshed.
// CreatedAt is passed through unchanged.
func (c *Client) Update(ctx context.Context, todo model.Todo) (model.Todo, error) {
	if err := validate.Title(todo.Title); err != nil {
		return model.Todo{}, err
	}
	todo = todo.Touched()
	var updated model.Todo
	if err := c.do(ctx, http.MethodPut, "/todos/"+todo.ID, todo, &updated); err != nil {
		return model.Todo{}, fmt.Errorf("update todo %s: %w", todo.ID, err)
	}
	c.log.Info("updated todo", "id", updated.ID)
	c.cache.Upsert(CollectionID, updated)
	return updated, nil
}

// Toggle flips only the completed field; everything else rides along
// unchanged through Update.
func (c *Client) Toggle(ctx context.Context, todo model.Todo) (model.Todo, error) {
	todo.Completed = !todo.Completed
	return c.Update(ctx, todo)
}

// Delete removes the record and drops it from the cached collection.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/todos/"+id, nil, nil); err != nil {
		return fmt.Errorf("delete todo %s: %w", id, err)
	}
	c.log.Info("deleted todo", "id", id)
	c.cache.Drop(CollectionID, id)
	return nil
}

// Invalidate drops the cached collection so the next List refetches.
func (c *Client) Invalidate() {
	c.cache.Invalidate(CollectionID)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed", "method", method, "path", path, "err", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Error("unexpected status", "method", method, "path", path, "status", resp.StatusCode)
		if len(bytes.TrimSpace(msg)) > 0 {
			return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, strings.TrimSpace(string(msg)))
		}
		return fmt.Errorf("%s %s: %s", method, path, resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
