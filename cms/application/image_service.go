package application

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	"github.com/dojoworks/dojosite/cms/domain"
	"github.com/dojoworks/dojosite/cms/pipeline"
)

// ImageService turns uploads plus edit specifications into persisted
// derived images and maintains the image registry. Creation is
// all-or-nothing: a failure leaves neither a record nor a discoverable
// blob behind.
type ImageService struct {
	registry     domain.ImageRegistry
	blobs        domain.BlobStore
	publicPrefix string
}

// NewImageService wires the service to its registry and blob store.
// publicPrefix is the URL prefix the blob directory is served under.
func NewImageService(registry domain.ImageRegistry, blobs domain.BlobStore, publicPrefix string) *ImageService {
	return &ImageService{
		registry:     registry,
		blobs:        blobs,
		publicPrefix: strings.TrimSuffix(publicPrefix, "/"),
	}
}

// List returns every registry record in storage order.
func (s *ImageService) List() ([]domain.ImageRecord, error) {
	return s.registry.List()
}

// Create runs the pipeline for one upload: decode, render the edit
// specification, encode, write the blob, re-read the written file's
// metadata and append the record. The blob write is the last fallible step
// before the registry mutation; a blob that cannot be registered is
// removed again.
func (s *ImageService) Create(raw []byte, originalName string, spec domain.EditSpec) (domain.ImageRecord, error) {
	if len(raw) == 0 {
		return domain.ImageRecord{}, fmt.Errorf("%w: empty upload", domain.ErrInvalidImage)
	}
	src, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return domain.ImageRecord{}, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}

	img, err := pipeline.Render(src, spec)
	if err != nil {
		return domain.ImageRecord{}, err
	}
	encoded, err := pipeline.EncodeJPEG(img, spec.Quality)
	if err != nil {
		return domain.ImageRecord{}, err
	}

	id := domain.NewID()
	filename := storedFilename(originalName, id)

	if err := s.blobs.Write(filename, encoded); err != nil {
		return domain.ImageRecord{}, err
	}

	rec, err := s.describe(id, filename, originalName, spec)
	if err == nil {
		err = s.registry.Append(rec)
	}
	if err != nil {
		if rmErr := s.blobs.Remove(filename); rmErr != nil && !errors.Is(rmErr, domain.ErrNotFound) {
			log.Error().Err(rmErr).Str("filename", filename).Msg("Failed to clean up unregistered blob")
		}
		return domain.ImageRecord{}, err
	}
	return rec, nil
}

// Delete removes the blob first and the record second, so a crash between
// the two can only leave a record pointing at a missing file, which a
// retried delete tolerates. The registry stays authoritative for logical
// existence; a blob that is already gone is logged, not fatal.
func (s *ImageService) Delete(id int64) error {
	recs, err := s.registry.List()
	if err != nil {
		return err
	}

	var rec *domain.ImageRecord
	for i := range recs {
		if recs[i].ID == id {
			rec = &recs[i]
			break
		}
	}
	if rec == nil {
		return fmt.Errorf("image %d: %w", id, domain.ErrNotFound)
	}

	if err := s.blobs.Remove(rec.Filename); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		log.Warn().Str("filename", rec.Filename).Msg("Blob already missing on delete")
	}

	_, err = s.registry.Remove(id)
	return err
}

// describe re-reads the written file so the record reflects the derived
// image, never pre-encode estimates or client-supplied values.
func (s *ImageService) describe(id int64, filename, originalName string, spec domain.EditSpec) (domain.ImageRecord, error) {
	f, err := s.blobs.Open(filename)
	if err != nil {
		return domain.ImageRecord{}, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return domain.ImageRecord{}, fmt.Errorf("%w: read back %s: %v", domain.ErrProcessing, filename, err)
	}

	size, err := s.blobs.Stat(filename)
	if err != nil {
		return domain.ImageRecord{}, err
	}

	return domain.ImageRecord{
		ID:           id,
		Filename:     filename,
		OriginalName: originalName,
		Path:         s.publicPrefix + "/" + filename,
		Size:         size,
		Width:        cfg.Width,
		Height:       cfg.Height,
		Format:       format,
		UploadedAt:   time.Now().UTC(),
		EditOptions:  spec,
	}, nil
}

// storedFilename derives a unique, human-traceable blob name from the
// upload's stem, the record id (a creation timestamp) and the original
// extension.
func storedFilename(originalName string, id int64) string {
	base := filepath.Base(originalName)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" || stem == "." {
		stem = "image"
	}
	return fmt.Sprintf("%s_%d%s", stem, id, ext)
}
