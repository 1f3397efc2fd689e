package api

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/idilsaglam/tudu/internal/model"
)

// CollectionID is the fixed key the todo list is cached under.
const CollectionID = "todos"

const cacheSize = 8

// Cache holds fetched collections keyed by collection identifier.
// Mutations merge their server response into the cached slice instead
// of forcing a refetch; Invalidate drops the entry so the next List
// goes back to the store.
type Cache struct {
	mu  sync.Mutex
	lru *lru.Cache[string, []model.Todo]
}

func NewCache() *Cache {
	c, _ := lru.New[string, []model.Todo](cacheSize)
	return &Cache{lru: c}
}

// Get returns a copy of the cached collection, if present.
func (c *Cache) Get(key string) ([]model.Todo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	todos, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	out := make([]model.Todo, len(todos))
	copy(out, todos)
	return out, true
}

// Put replaces the cached collection.
func (c *Cache) Put(key string, todos []model.Todo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stored := make([]model.Todo, len(todos))
	copy(stored, todos)
	c.lru.Add(key, stored)
}

// Invalidate marks the collection stale; the next read fetches fresh.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Remove(key)
}

// Upsert merges one record into the cached collection: replace by id,
// append when new. A miss on the collection itself is a no-op; the
// next List fetches everything anyway.
func (c *Cache) Upsert(key string, todo model.Todo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	todos, ok := c.lru.Get(key)
	if !ok {
		return
	}
	out := make([]model.Todo, len(todos))
	copy(out, todos)
	for i := range out {
		if out[i].ID == todo.ID {
			out[i] = todo
			c.lru.Add(key, out)
			return
		}
	}
	c.lru.Add(key, append(out, todo))
}

// Drop removes one record from the cached collection by id.
func (c *Cache) Drop(key, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	todos, ok := c.lru.Get(key)
	if !ok {
		return
	}
	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if t.ID != id {
			out = append(out, t)
		}
	}
	c.lru.Add(key, out)
}
