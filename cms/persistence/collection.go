package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dojoworks/dojosite/cms/domain"
)

// Collection is a whole-document JSON array store for one content type
// (programs, instructors, testimonials). T is a pointer to the entity
// struct. Mutations follow the same read-modify-write-under-mutex contract
// as the image registry.
type Collection[T domain.Entity] struct {
	path string
	mu   sync.Mutex
}

// NewCollection creates a Collection backed by the JSON document at path.
func NewCollection[T domain.Entity](path string) (*Collection[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create collection directory: %w: %w", domain.ErrIO, err)
	}
	return &Collection[T]{path: path}, nil
}

// List returns every entry in storage order. A missing document reads as
// an empty collection.
func (c *Collection[T]) List() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read()
}

// Upsert creates the entry when its id is zero (assigning a fresh one) and
// replaces the stored entry otherwise. Updating an unknown id returns
// ErrNotFound.
func (c *Collection[T]) Upsert(item T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.read()
	if err != nil {
		var zero T
		return zero, err
	}

	if item.EntityID() == 0 {
		item.SetEntityID(domain.NewID())
		return item, c.write(append(items, item))
	}

	for i := range items {
		if items[i].EntityID() == item.EntityID() {
			items[i] = item
			return item, c.write(items)
		}
	}

	var zero T
	return zero, fmt.Errorf("entry %d: %w", item.EntityID(), domain.ErrNotFound)
}

// Delete removes the entry with the given id.
func (c *Collection[T]) Delete(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.read()
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].EntityID() == id {
			return c.write(append(items[:i], items[i+1:]...))
		}
	}
	return fmt.Errorf("entry %d: %w", id, domain.ErrNotFound)
}

func (c *Collection[T]) read() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection: %w: %w", domain.ErrIO, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse collection: %w: %w", domain.ErrIO, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[T]) write(items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection: %w: %w", domain.ErrIO, err)
	}
	return replaceFile(c.path, append(data, '\n'))
}
