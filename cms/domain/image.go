package domain

import (
	"encoding/json"
	"io"
	"time"
)

// CropRect is a crop region in source-pixel units. Coordinates stay
// fractional until the pipeline rounds each axis to whole pixels.
type CropRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Dimensions is a resize target in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Filters is the adjustment set applied after crop and resize. Brightness,
// contrast and saturation are multiplicative factors around a neutral value
// of 1; blur and sharpen are kernel sigmas with a neutral value of 0.
type Filters struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Saturation float64 `json:"saturation"`
	Blur       float64 `json:"blur"`
	Sharpen    float64 `json:"sharpen"`
}

// NeutralFilters returns the filter set that leaves the image untouched.
func NeutralFilters() Filters {
	return Filters{Brightness: 1, Contrast: 1, Saturation: 1}
}

// UnmarshalJSON decodes over neutral defaults so an absent field means "no
// adjustment" rather than a zero factor.
func (f *Filters) UnmarshalJSON(data []byte) error {
	type plain Filters
	p := plain(NeutralFilters())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*f = Filters(p)
	return nil
}

// EditSpec describes the crop/resize/filter/quality transform applied to
// one uploaded image. It is owned by the save request that carries it and
// is persisted verbatim inside the resulting ImageRecord.
type EditSpec struct {
	Crop    *CropRect   `json:"crop,omitempty"`
	Resize  *Dimensions `json:"resize,omitempty"`
	Filters Filters     `json:"filters"`
	// Quality is the output encoding quality, 1-100. Zero means "use the
	// service default".
	Quality int `json:"quality,omitempty"`
}

// UnmarshalJSON keeps an omitted filter block neutral.
func (s *EditSpec) UnmarshalJSON(data []byte) error {
	type plain EditSpec
	p := plain{Filters: NeutralFilters()}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = EditSpec(p)
	return nil
}

// ImageRecord describes one derived, stored image. Width, height, size and
// format always reflect the processed file, never the original upload.
type ImageRecord struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	Format       string    `json:"format"`
	UploadedAt   time.Time `json:"uploadedAt"`
	EditOptions  EditSpec  `json:"editOptions"`
}

// ImageRegistry is the durable, ordered collection of all ImageRecords. It
// is the sole source of truth for which images exist.
type ImageRegistry interface {
	List() ([]ImageRecord, error)
	Append(rec ImageRecord) error
	// Remove deletes the record with the given id and returns it, or
	// ErrNotFound when the id is unknown.
	Remove(id int64) (ImageRecord, error)
}

// BlobStore holds the encoded bytes of processed images in durable storage.
type BlobStore interface {
	Write(filename string, data []byte) error
	Open(filename string) (io.ReadCloser, error)
	Stat(filename string) (int64, error)
	// Remove deletes a blob, returning ErrNotFound when it does not exist.
	Remove(filename string) error
}
