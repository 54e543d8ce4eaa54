package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dojoworks/dojosite/cms/domain"
)

// Document is a single whole-document JSON settings store. Load serves the
// default document when none has been written yet, matching the admin UI's
// expectation of always receiving a complete settings object.
type Document[T any] struct {
	path     string
	defaults func() T
	mu       sync.Mutex
}

// NewDocument creates a Document backed by path; defaults builds the
// document served before the first Save.
func NewDocument[T any](path string, defaults func() T) (*Document[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create document directory: %w: %w", domain.ErrIO, err)
	}
	return &Document[T]{path: path, defaults: defaults}, nil
}

func (d *Document[T]) Load() (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var doc T
	data, err := os.ReadFile(d.path)
	if os.IsNotExist(err) {
		return d.defaults(), nil
	}
	if err != nil {
		return doc, fmt.Errorf("read document: %w: %w", domain.ErrIO, err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parse document: %w: %w", domain.ErrIO, err)
	}
	return doc, nil
}

func (d *Document[T]) Save(doc T) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w: %w", domain.ErrIO, err)
	}
	return replaceFile(d.path, append(data, '\n'))
}
