package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"foodcost/internal/kv"
)

// collection keeps a whole slice of records under one backend key. The
// mutex serialises read-modify-write cycles; last write wins.
type collection[T any] struct {
	mu      sync.Mutex
	backend kv.Backend
	key     string
	idOf    func(T) string
}

func newCollection[T any](backend kv.Backend, key string, idOf func(T) string) *collection[T] {
	return &collection[T]{backend: backend, key: key, idOf: idOf}
}

func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	var records []T
	if _, err := c.backend.Get(ctx, c.key, &records); err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}
	return records, nil
}

func (c *collection[T]) save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	if err := c.backend.Set(ctx, c.key, records); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

func (c *collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	for _, record := range records {
		if c.idOf(record) == id {
			return record, nil
		}
	}
	return zero, ErrNotFound
}

func (c *collection[T]) List(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// Put replaces the record with the same id in place, or appends it.
func (c *collection[T]) Put(ctx context.Context, record T) error {
	id := c.idOf(record)
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for idx := range records {
		if c.idOf(records[idx]) == id {
			records[idx] = record
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, record)
	}
	return c.save(ctx, records)
}

func (c *collection[T]) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	kept := records[:0]
	found := false
	for _, record := range records {
		if c.idOf(record) == id {
			found = true
			continue
		}
		kept = append(kept, record)
	}
	if !found {
		return ErrNotFound
	}
	return c.save(ctx, kept)
}

func (c *collection[T]) ReplaceAll(ctx context.Context, records []T) error {
	for _, record := range records {
		if strings.TrimSpace(c.idOf(record)) == "" {
			return ErrMissingID
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.save(ctx, append([]T(nil), records...))
}
