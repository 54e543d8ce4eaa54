package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dojoworks/dojosite/cms/domain"
)

var _ domain.ImageRegistry = (*Registry)(nil)

// Registry persists the image registry as a single pretty-printed JSON
// array. Every mutation is a whole-document read-modify-write; cycles are
// serialized behind a mutex, which closes the lost-update race between
// concurrent writers.
type Registry struct {
	path string
	mu   sync.Mutex
}

// NewRegistry creates a Registry backed by the JSON document at path. A
// missing document reads as an empty registry.
func NewRegistry(path string) (*Registry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create registry directory: %w: %w", domain.ErrIO, err)
	}
	return &Registry{path: path}, nil
}

// List returns every record in storage (insertion) order.
func (r *Registry) List() ([]domain.ImageRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

// Append adds one record and persists the whole document.
func (r *Registry) Append(rec domain.ImageRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	recs, err := r.read()
	if err != nil {
		return err
	}
	return r.write(append(recs, rec))
}

// Remove deletes the record with the given id and returns it.
func (r *Registry) Remove(id int64) (domain.ImageRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	recs, err := r.read()
	if err != nil {
		return domain.ImageRecord{}, err
	}
	for i, rec := range recs {
		if rec.ID == id {
			return rec, r.write(append(recs[:i], recs[i+1:]...))
		}
	}
	return domain.ImageRecord{}, fmt.Errorf("image %d: %w", id, domain.ErrNotFound)
}

func (r *Registry) read() ([]domain.ImageRecord, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return []domain.ImageRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read registry: %w: %w", domain.ErrIO, err)
	}

	var recs []domain.ImageRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parse registry: %w: %w", domain.ErrIO, err)
	}
	if recs == nil {
		recs = []domain.ImageRecord{}
	}
	return recs, nil
}

func (r *Registry) write(recs []domain.ImageRecord) error {
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode registry: %w: %w", domain.ErrIO, err)
	}
	return replaceFile(r.path, append(data, '\n'))
}

// replaceFile writes data to a sibling temp file and renames it over path
// so readers never observe a half-written document.
func replaceFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w: %w", filepath.Base(path), domain.ErrIO, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w: %w", filepath.Base(path), domain.ErrIO, err)
	}
	return nil
}
