package application

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dojoworks/dojosite/cms/domain"
	"github.com/dojoworks/dojosite/cms/persistence"
)

type serviceFixture struct {
	svc     *ImageService
	reg     *persistence.Registry
	blobDir string
}

func setupService(t *testing.T) *serviceFixture {
	t.Helper()
	dir := t.TempDir()

	reg, err := persistence.NewRegistry(filepath.Join(dir, "images.json"))
	require.NoError(t, err)
	blobs, err := persistence.NewBlobDir(filepath.Join(dir, "blobs"))
	require.NoError(t, err)

	return &serviceFixture{
		svc:     NewImageService(reg, blobs, "/images"),
		reg:     reg,
		blobDir: filepath.Join(dir, "blobs"),
	}
}

// pngBytes encodes a deterministic w x h test image as PNG.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = uint8(i % 251)
		img.Pix[i+1] = uint8(i % 241)
		img.Pix[i+2] = uint8(i % 239)
		img.Pix[i+3] = 255
	}
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func (f *serviceFixture) blobCount(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(f.blobDir)
	require.NoError(t, err)
	return len(entries)
}

func TestCreateCropScenario(t *testing.T) {
	f := setupService(t)

	before, err := f.svc.List()
	require.NoError(t, err)

	rec, err := f.svc.Create(pngBytes(t, 1000, 1000), "hero.png", domain.EditSpec{
		Crop:    &domain.CropRect{X: 100, Y: 100, Width: 400, Height: 300},
		Filters: domain.NeutralFilters(),
		Quality: 85,
	})
	require.NoError(t, err)

	assert.Equal(t, 400, rec.Width)
	assert.Equal(t, 300, rec.Height)
	assert.Equal(t, "jpeg", rec.Format)
	assert.NotZero(t, rec.ID)
	assert.Equal(t, "hero.png", rec.OriginalName)
	assert.Equal(t, fmt.Sprintf("hero_%d.png", rec.ID), rec.Filename)
	assert.Equal(t, "/images/"+rec.Filename, rec.Path)

	// Size reflects the file actually written.
	info, err := os.Stat(filepath.Join(f.blobDir, rec.Filename))
	require.NoError(t, err)
	assert.Equal(t, info.Size(), rec.Size)

	after, err := f.svc.List()
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)
	assert.Equal(t, rec.ID, after[len(after)-1].ID)
}

func TestCreateNeutralSpecKeepsDimensions(t *testing.T) {
	f := setupService(t)

	rec, err := f.svc.Create(pngBytes(t, 320, 200), "banner.png", domain.EditSpec{
		Filters: domain.NeutralFilters(),
	})
	require.NoError(t, err)

	assert.Equal(t, 320, rec.Width)
	assert.Equal(t, 200, rec.Height)
	assert.Equal(t, "jpeg", rec.Format, "output is always the default lossy encoding")
}

func TestCreateListedIDsAreFresh(t *testing.T) {
	f := setupService(t)

	first, err := f.svc.Create(pngBytes(t, 60, 60), "a.png", domain.EditSpec{Filters: domain.NeutralFilters()})
	require.NoError(t, err)
	second, err := f.svc.Create(pngBytes(t, 60, 60), "a.png", domain.EditSpec{Filters: domain.NeutralFilters()})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.Filename, second.Filename)
}

func TestCreateRejectsBadUploads(t *testing.T) {
	f := setupService(t)
	neutral := domain.EditSpec{Filters: domain.NeutralFilters()}

	_, err := f.svc.Create(nil, "empty.png", neutral)
	assert.ErrorIs(t, err, domain.ErrInvalidImage)

	_, err = f.svc.Create([]byte("definitely not an image"), "junk.bin", neutral)
	assert.ErrorIs(t, err, domain.ErrInvalidImage)

	assert.Equal(t, 0, f.blobCount(t), "failed creates must not leave blobs")
}

func TestDeleteRemovesRecordAndBlob(t *testing.T) {
	f := setupService(t)

	rec, err := f.svc.Create(pngBytes(t, 80, 80), "gone.png", domain.EditSpec{Filters: domain.NeutralFilters()})
	require.NoError(t, err)
	require.Equal(t, 1, f.blobCount(t))

	require.NoError(t, f.svc.Delete(rec.ID))

	recs, err := f.svc.List()
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Equal(t, 0, f.blobCount(t))
}

func TestDeleteUnknownIDLeavesRegistryUnchanged(t *testing.T) {
	f := setupService(t)

	rec, err := f.svc.Create(pngBytes(t, 80, 80), "keep.png", domain.EditSpec{Filters: domain.NeutralFilters()})
	require.NoError(t, err)

	err = f.svc.Delete(rec.ID + 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	recs, err := f.svc.List()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, rec.ID, recs[0].ID)
}

func TestDeleteToleratesMissingBlob(t *testing.T) {
	f := setupService(t)

	rec, err := f.svc.Create(pngBytes(t, 80, 80), "vanished.png", domain.EditSpec{Filters: domain.NeutralFilters()})
	require.NoError(t, err)

	// The registry is authoritative for logical existence: a blob lost out
	// of band must not block the delete.
	require.NoError(t, os.Remove(filepath.Join(f.blobDir, rec.Filename)))
	require.NoError(t, f.svc.Delete(rec.ID))

	recs, err := f.svc.List()
	require.NoError(t, err)
	assert.Empty(t, recs)
}

// failingRegistry rejects appends to exercise the cleanup path.
type failingRegistry struct {
	domain.ImageRegistry
}

func (f *failingRegistry) Append(domain.ImageRecord) error {
	return fmt.Errorf("append rejected: %w", domain.ErrIO)
}

func TestCreateCleansUpBlobWhenAppendFails(t *testing.T) {
	dir := t.TempDir()
	reg, err := persistence.NewRegistry(filepath.Join(dir, "images.json"))
	require.NoError(t, err)
	blobs, err := persistence.NewBlobDir(filepath.Join(dir, "blobs"))
	require.NoError(t, err)

	svc := NewImageService(&failingRegistry{ImageRegistry: reg}, blobs, "/images")

	_, err = svc.Create(pngBytes(t, 40, 40), "orphan.png", domain.EditSpec{Filters: domain.NeutralFilters()})
	require.ErrorIs(t, err, domain.ErrIO)

	entries, err := os.ReadDir(filepath.Join(dir, "blobs"))
	require.NoError(t, err)
	assert.Empty(t, entries, "unregistered blob must be removed")

	recs, err := reg.List()
	require.NoError(t, err)
	assert.Empty(t, recs)
}
