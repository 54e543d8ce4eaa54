package persistence

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dojoworks/dojosite/cms/domain"
)

var _ domain.BlobStore = (*BlobDir)(nil)

// BlobDir is a flat-directory blob store for encoded image files. The
// directory doubles as the static content root the processed images are
// served from.
type BlobDir struct {
	dir string
}

// NewBlobDir creates the directory if needed and returns the store.
func NewBlobDir(dir string) (*BlobDir, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create blob directory: %w: %w", domain.ErrIO, err)
	}
	return &BlobDir{dir: dir}, nil
}

// Dir returns the directory blobs are stored in.
func (b *BlobDir) Dir() string { return b.dir }

func (b *BlobDir) Write(filename string, data []byte) error {
	if err := os.WriteFile(b.filePath(filename), data, 0644); err != nil {
		return fmt.Errorf("write blob %s: %w: %w", filename, domain.ErrIO, err)
	}
	return nil
}

func (b *BlobDir) Open(filename string) (io.ReadCloser, error) {
	f, err := os.Open(b.filePath(filename))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("blob %s: %w", filename, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open blob %s: %w: %w", filename, domain.ErrIO, err)
	}
	return f, nil
}

func (b *BlobDir) Stat(filename string) (int64, error) {
	info, err := os.Stat(b.filePath(filename))
	if os.IsNotExist(err) {
		return 0, fmt.Errorf("blob %s: %w", filename, domain.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("stat blob %s: %w: %w", filename, domain.ErrIO, err)
	}
	return info.Size(), nil
}

func (b *BlobDir) Remove(filename string) error {
	err := os.Remove(b.filePath(filename))
	if os.IsNotExist(err) {
		return fmt.Errorf("blob %s: %w", filename, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("remove blob %s: %w: %w", filename, domain.ErrIO, err)
	}
	return nil
}

// filePath confines filename to the blob directory.
func (b *BlobDir) filePath(filename string) string {
	return filepath.Join(b.dir, filepath.Base(filename))
}
