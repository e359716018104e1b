package service

import (
	"context"
	"sync"
)

// ListState is a render snapshot of a resource list.
type ListState[T any] struct {
	Items   []T
	Loaded  bool
	Loading bool
	Busy    bool
	Err     string
}

// collection caches one remote list. Mutations never edit items in place:
// callers run the command, then Invalidate and Reload.
type collection[T any] struct {
	fetch func(ctx context.Context) ([]T, error)

	mu      sync.Mutex
	items   []T
	loaded  bool
	loading int
	busy    bool
	err     string
	seq     uint64
	closed  bool
}

func newCollection[T any](fetch func(ctx context.Context) ([]T, error)) *collection[T] {
	return &collection[T]{fetch: fetch}
}

// Reload fetches the whole list. On failure the previous items stay and
// the error message is recorded. A result from an older Reload, or one
// that arrives after Close, is dropped.
func (c *collection[T]) Reload(ctx context.Context, failMsg string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.seq++
	seq := c.seq
	c.loading++
	c.mu.Unlock()

	items, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading--
	if c.closed || seq != c.seq {
		return nil
	}
	if err != nil {
		c.err = failMsg
		return err
	}
	c.items = items
	c.loaded = true
	c.err = ""
	return nil
}

func (c *collection[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
}

// begin marks the collection busy for a mutation. It reports false when a
// mutation is already running or the collection is closed.
func (c *collection[T]) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy || c.closed {
		return false
	}
	c.busy = true
	return true
}

func (c *collection[T]) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
}

func (c *collection[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *collection[T]) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *collection[T]) Snapshot() ListState[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return ListState[T]{
		Items:   items,
		Loaded:  c.loaded,
		Loading: c.loading > 0,
		Busy:    c.busy,
		Err:     c.err,
	}
}
