package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tudu/internal/api"
	"github.com/idilsaglam/tudu/internal/model"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := OpenStore(":memory:")
	require.NoError(t, err)
	ts := httptest.NewServer(New(store, nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCreateAssignsIDAndStores(t *testing.T) {
	ts := newTestServer(t)

	now := time.Now().UTC()
	resp := doJSON(t, http.MethodPost, ts.URL+"/todos", model.Todo{
		Title: "Buy milk", CreatedAt: now, UpdatedAt: now,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decode[model.Todo](t, resp)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.Completed)
	assert.Zero(t, created.Progress)

	list := decode[[]model.Todo](t, doJSON(t, http.MethodGet, ts.URL+"/todos", nil))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestCreateValidatesTitleBounds(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/todos", map[string]any{"title": "ab"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, ts.URL+"/todos", map[string]any{
		"title": "a much much too long title for this",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	list := decode[[]model.Todo](t, doJSON(t, http.MethodGet, ts.URL+"/todos", nil))
	assert.Empty(t, list)
}

func TestUpdatePreservesStoredCreatedAt(t *testing.T) {
	ts := newTestServer(t)

	now := time.Now().UTC()
	created := decode[model.Todo](t, doJSON(t, http.MethodPost, ts.URL+"/todos", model.Todo{
		Title: "Buy milk", CreatedAt: now, UpdatedAt: now,
	}))

	// A client lying about createdAt must not move it.
	tampered := created
	tampered.Title = "Buy oat milk"
	tampered.CreatedAt = now.Add(-24 * time.Hour)
	tampered.UpdatedAt = now.Add(time.Minute)

	resp := doJSON(t, http.MethodPut, ts.URL+"/todos/"+created.ID, tampered)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated := decode[model.Todo](t, resp)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt), "createdAt is immutable")
	assert.Equal(t, "Buy oat milk", updated.Title)
	assert.True(t, updated.UpdatedAt.Equal(tampered.UpdatedAt))
}

func TestUnknownIDs(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPut, ts.URL+"/todos/nope", model.Todo{Title: "Buy milk"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, ts.URL+"/todos/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// TestClientAgainstServer walks the whole lifecycle through the real
// accessor: create, toggle, edit, delete.
func TestClientAgainstServer(t *testing.T) {
	ts := newTestServer(t)
	logger := log.NewWithOptions(io.Discard, log.Options{})
	client := api.New(ts.URL, ts.Client(), logger)
	ctx := context.Background()

	created, err := client.Create(ctx, "Buy milk")
	require.NoError(t, err)

	todos, err := client.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "Buy milk", todos[0].Title)
	assert.False(t, todos[0].Completed)
	assert.Zero(t, todos[0].Progress)

	time.Sleep(2 * time.Millisecond)
	toggled, err := client.Toggle(ctx, created)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	assert.True(t, toggled.UpdatedAt.After(created.UpdatedAt))

	edited, err := client.Update(ctx, toggled.Retitled("Buy oat milk"))
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", edited.Title)
	assert.True(t, edited.Completed, "edit must not clear completion")
	assert.True(t, edited.CreatedAt.Equal(created.CreatedAt))

	require.NoError(t, client.Delete(ctx, edited.ID))

	client.Invalidate()
	todos, err = client.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}
